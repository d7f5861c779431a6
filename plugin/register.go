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
	"sort"

	"github.com/spf13/pflag"
)

type PluginType int

const (
	PluginTypeInput  PluginType = 1
	PluginTypeOutput PluginType = 2
)

func PluginTypeName(pluginType PluginType) string {
	switch pluginType {
	case PluginTypeInput:
		return "input"
	case PluginTypeOutput:
		return "output"
	default:
		return ""
	}
}

type PluginEntry struct {
	NewFromOptionsFunc func() Plugin
	Name               string
	Description        string
	Options            []PluginOption
	Type               PluginType
}

var pluginEntries []PluginEntry

func Register(pluginEntry PluginEntry) {
	pluginEntries = append(pluginEntries, pluginEntry)
}

func PopulateCmdlineOptions(fs *pflag.FlagSet) error {
	for _, plugin := range pluginEntries {
		for _, option := range plugin.Options {
			if err := option.AddToFlagSet(fs, PluginTypeName(plugin.Type), plugin.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

func ProcessEnvVars() error {
	for _, plugin := range pluginEntries {
		// Generate env var prefix based on plugin type and name
		envVarPrefix := fmt.Sprintf(
			"%s-%s-",
			PluginTypeName(plugin.Type),
			plugin.Name,
		)
		for _, option := range plugin.Options {
			if err := option.ProcessEnvVars(envVarPrefix); err != nil {
				return err
			}
		}
	}
	return nil
}

func ProcessConfig(
	pluginConfig map[string]map[string]map[any]any,
) error {
	for _, plugin := range pluginEntries {
		pluginTypeData, ok := pluginConfig[PluginTypeName(plugin.Type)]
		if !ok {
			continue
		}
		pluginData, ok := pluginTypeData[plugin.Name]
		if !ok {
			continue
		}
		for _, option := range plugin.Options {
			if err := option.ProcessConfig(pluginData); err != nil {
				return fmt.Errorf(
					"%s plugin %s: %w",
					PluginTypeName(plugin.Type),
					plugin.Name,
					err,
				)
			}
		}
	}
	return nil
}

// GetPlugins returns the registered plugins of a type sorted by name
func GetPlugins(pluginType PluginType) []PluginEntry {
	ret := []PluginEntry{}
	for _, plugin := range pluginEntries {
		if plugin.Type == pluginType {
			ret = append(ret, plugin)
		}
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].Name < ret[j].Name
	})
	return ret
}

func getPluginEntry(pluginType PluginType, name string) (PluginEntry, bool) {
	for _, plugin := range pluginEntries {
		if plugin.Type == pluginType && plugin.Name == name {
			return plugin, true
		}
	}
	return PluginEntry{}, false
}

func GetPlugin(pluginType PluginType, name string) Plugin {
	entry, ok := getPluginEntry(pluginType, name)
	if !ok {
		return nil
	}
	return entry.NewFromOptionsFunc()
}

// buildPlugin distinguishes an unknown plugin from one whose options were
// rejected. Constructors log the reason before returning nil
func buildPlugin(pluginType PluginType, name string) (Plugin, error) {
	entry, ok := getPluginEntry(pluginType, name)
	if !ok {
		return nil, fmt.Errorf("unknown %s: %s", PluginTypeName(pluginType), name)
	}
	p := entry.NewFromOptionsFunc()
	if p == nil {
		return nil, fmt.Errorf(
			"%s %s: invalid configuration",
			PluginTypeName(pluginType),
			name,
		)
	}
	return p, nil
}

// GetInput builds the named credential source
func GetInput(name string) (Input, error) {
	p, err := buildPlugin(PluginTypeInput, name)
	if err != nil {
		return nil, err
	}
	input, ok := p.(Input)
	if !ok {
		return nil, fmt.Errorf("plugin %s is not a credential source", name)
	}
	return input, nil
}

// GetOutput builds the named report output
func GetOutput(name string) (Output, error) {
	p, err := buildPlugin(PluginTypeOutput, name)
	if err != nil {
		return nil, err
	}
	output, ok := p.(Output)
	if !ok {
		return nil, fmt.Errorf("plugin %s is not a report output", name)
	}
	return output, nil
}
