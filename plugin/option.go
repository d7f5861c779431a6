// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package plugin

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

type PluginOptionType int

const (
	PluginOptionTypeString   PluginOptionType = 1
	PluginOptionTypeBool     PluginOptionType = 2
	PluginOptionTypeInt      PluginOptionType = 3
	PluginOptionTypeUint     PluginOptionType = 4
	PluginOptionTypeDuration PluginOptionType = 5
)

type PluginOption struct {
	DefaultValue any
	Dest         any
	Name         string
	CustomEnvVar string
	CustomFlag   string
	Description  string
	Type         PluginOptionType
}

func (p *PluginOption) flagName(pluginType string, pluginName string) string {
	if p.CustomFlag != "" {
		return fmt.Sprintf("%s-%s", pluginType, p.CustomFlag)
	}
	return fmt.Sprintf("%s-%s-%s", pluginType, pluginName, p.Name)
}

func (p *PluginOption) AddToFlagSet(
	fs *pflag.FlagSet,
	pluginType string,
	pluginName string,
) error {
	flagName := p.flagName(pluginType, pluginName)
	switch p.Type {
	case PluginOptionTypeString:
		fs.StringVar(
			p.Dest.(*string),
			flagName,
			p.DefaultValue.(string),
			p.Description,
		)
	case PluginOptionTypeBool:
		fs.BoolVar(
			p.Dest.(*bool),
			flagName,
			p.DefaultValue.(bool),
			p.Description,
		)
	case PluginOptionTypeInt:
		fs.IntVar(p.Dest.(*int), flagName, p.DefaultValue.(int), p.Description)
	case PluginOptionTypeUint:
		fs.UintVar(
			p.Dest.(*uint),
			flagName,
			p.DefaultValue.(uint),
			p.Description,
		)
	case PluginOptionTypeDuration:
		fs.DurationVar(
			p.Dest.(*time.Duration),
			flagName,
			p.DefaultValue.(time.Duration),
			p.Description,
		)
	default:
		return fmt.Errorf(
			"unknown plugin option type %d for option %s",
			p.Type,
			p.Name,
		)
	}
	return nil
}

// setFromString parses a textual value (env var or YAML scalar) into the
// option destination
func (p *PluginOption) setFromString(value string) error {
	switch p.Type {
	case PluginOptionTypeString:
		*(p.Dest.(*string)) = value
	case PluginOptionTypeBool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		*(p.Dest.(*bool)) = v
	case PluginOptionTypeInt:
		// We limit to 32-bit to not get inconsistent behavior on 32-bit platforms
		v, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return err
		}
		*(p.Dest.(*int)) = int(v)
	case PluginOptionTypeUint:
		// We limit to 32-bit to not get inconsistent behavior on 32-bit platforms
		v, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return err
		}
		*(p.Dest.(*uint)) = uint(v)
	case PluginOptionTypeDuration:
		v, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*(p.Dest.(*time.Duration)) = v
	default:
		return fmt.Errorf(
			"unknown plugin option type %d for option %s",
			p.Type,
			p.Name,
		)
	}
	return nil
}

func (p *PluginOption) ProcessEnvVars(envPrefix string) error {
	envVars := []string{
		// Automatically generate env var from specified prefix and option name
		strings.ToUpper(
			strings.ReplaceAll(
				envPrefix+p.Name,
				"-",
				"_",
			),
		),
	}
	// Also check any custom env var specified
	if p.CustomEnvVar != "" {
		envVars = append(envVars, p.CustomEnvVar)
	}
	for _, envVar := range envVars {
		value, ok := os.LookupEnv(envVar)
		if !ok {
			continue
		}
		if err := p.setFromString(value); err != nil {
			return fmt.Errorf("error processing env var %s: %w", envVar, err)
		}
	}
	return nil
}

func (p *PluginOption) ProcessConfig(
	pluginData map[any]any,
) error {
	optionData, ok := pluginData[p.Name]
	if !ok {
		return nil
	}
	switch value := optionData.(type) {
	case string:
		if err := p.setFromString(value); err != nil {
			return fmt.Errorf("invalid value for option '%s': %w", p.Name, err)
		}
		return nil
	case bool:
		if p.Type == PluginOptionTypeBool {
			*(p.Dest.(*bool)) = value
			return nil
		}
	case int:
		switch p.Type {
		case PluginOptionTypeInt:
			*(p.Dest.(*int)) = value
			return nil
		case PluginOptionTypeUint:
			if value < 0 {
				return fmt.Errorf("invalid value for option '%s': negative value: %d", p.Name, value)
			}
			*(p.Dest.(*uint)) = uint(value)
			return nil
		case PluginOptionTypeDuration:
			// Bare integers are taken as seconds
			*(p.Dest.(*time.Duration)) = time.Duration(value) * time.Second
			return nil
		}
	}
	return fmt.Errorf(
		"invalid value for option '%s': unexpected %T",
		p.Name,
		optionData,
	)
}
