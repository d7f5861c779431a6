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
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPluginOptionFlags(t *testing.T) {
	var (
		file    string
		verbose bool
		retries uint
		wait    time.Duration
	)
	options := []PluginOption{
		{Name: "file", Type: PluginOptionTypeString, DefaultValue: "-", Dest: &file},
		{Name: "verbose", Type: PluginOptionTypeBool, DefaultValue: false, Dest: &verbose},
		{Name: "retries", Type: PluginOptionTypeUint, DefaultValue: uint(3), Dest: &retries},
		{Name: "wait", Type: PluginOptionTypeDuration, DefaultValue: time.Second, Dest: &wait, CustomFlag: "wait"},
	}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	for i := range options {
		require.NoError(t, options[i].AddToFlagSet(fs, "input", "csv"))
	}
	assert.Equal(t, "-", file)
	assert.Equal(t, uint(3), retries)

	err := fs.Parse([]string{
		"--input-csv-file", "export.csv",
		"--input-csv-verbose",
		"--input-csv-retries", "5",
		"--input-wait", "2m",
	})
	require.NoError(t, err)
	assert.Equal(t, "export.csv", file)
	assert.True(t, verbose)
	assert.Equal(t, uint(5), retries)
	assert.Equal(t, 2*time.Minute, wait)
}

func TestPluginOptionUnknownType(t *testing.T) {
	var dest string
	opt := PluginOption{Name: "bad", Type: PluginOptionType(42), Dest: &dest}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	assert.Error(t, opt.AddToFlagSet(fs, "input", "csv"))
	t.Setenv("INPUT_CSV_BAD", "x")
	assert.Error(t, opt.ProcessEnvVars("input-csv-"))
}

func TestPluginOptionEnvVars(t *testing.T) {
	var (
		file  string
		count int
	)
	fileOpt := PluginOption{Name: "file", Type: PluginOptionTypeString, Dest: &file, CustomEnvVar: "PWCHECK_EXPORT"}
	countOpt := PluginOption{Name: "count", Type: PluginOptionTypeInt, Dest: &count}

	t.Setenv("INPUT_CSV_FILE", "a.csv")
	require.NoError(t, fileOpt.ProcessEnvVars("input-csv-"))
	assert.Equal(t, "a.csv", file)

	// The custom env var is checked last and wins
	t.Setenv("PWCHECK_EXPORT", "b.csv")
	require.NoError(t, fileOpt.ProcessEnvVars("input-csv-"))
	assert.Equal(t, "b.csv", file)

	t.Setenv("INPUT_CSV_COUNT", "many")
	err := countOpt.ProcessEnvVars("input-csv-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INPUT_CSV_COUNT")
}

func TestPluginOptionConfig(t *testing.T) {
	var (
		name    string
		enabled bool
		count   int
		limit   uint
		timeout time.Duration
	)
	opts := map[string]*PluginOption{
		"name":    {Name: "name", Type: PluginOptionTypeString, Dest: &name},
		"enabled": {Name: "enabled", Type: PluginOptionTypeBool, Dest: &enabled},
		"count":   {Name: "count", Type: PluginOptionTypeInt, Dest: &count},
		"limit":   {Name: "limit", Type: PluginOptionTypeUint, Dest: &limit},
		"timeout": {Name: "timeout", Type: PluginOptionTypeDuration, Dest: &timeout},
	}
	data := map[any]any{
		"name":    "vault",
		"enabled": true,
		"count":   -2,
		"limit":   7,
		"timeout": 15,
	}
	for _, opt := range opts {
		require.NoError(t, opt.ProcessConfig(data))
	}
	assert.Equal(t, "vault", name)
	assert.True(t, enabled)
	assert.Equal(t, -2, count)
	assert.Equal(t, uint(7), limit)
	assert.Equal(t, 15*time.Second, timeout)

	require.NoError(t, opts["timeout"].ProcessConfig(map[any]any{"timeout": "90s"}))
	assert.Equal(t, 90*time.Second, timeout)

	// Missing keys leave the destination alone
	require.NoError(t, opts["name"].ProcessConfig(map[any]any{}))
	assert.Equal(t, "vault", name)
}

func TestPluginOptionConfigErrors(t *testing.T) {
	var (
		enabled bool
		limit   uint
	)
	boolOpt := PluginOption{Name: "enabled", Type: PluginOptionTypeBool, Dest: &enabled}
	uintOpt := PluginOption{Name: "limit", Type: PluginOptionTypeUint, Dest: &limit}

	assert.Error(t, boolOpt.ProcessConfig(map[any]any{"enabled": "sometimes"}))
	assert.Error(t, boolOpt.ProcessConfig(map[any]any{"enabled": 1.5}))
	assert.Error(t, uintOpt.ProcessConfig(map[any]any{"limit": -1}))
	assert.Error(t, uintOpt.ProcessConfig(map[any]any{"limit": true}))
}
