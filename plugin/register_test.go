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
	"context"
	"iter"
	"testing"

	"github.com/blinklabs-io/pwcheck/event"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testInput struct {
	path string
}

func (t *testInput) Start() error { return nil }
func (t *testInput) Stop() error  { return nil }

func (t *testInput) Credentials(
	ctx context.Context,
) iter.Seq2[event.Credential, error] {
	return func(yield func(event.Credential, error) bool) {
		yield(event.Credential{Name: t.path, Password: "hunter2"}, nil)
	}
}

type testPlain struct{}

func (testPlain) Start() error { return nil }
func (testPlain) Stop() error  { return nil }

var testOptions struct {
	path string
}

func init() {
	Register(PluginEntry{
		Type:        PluginTypeInput,
		Name:        "test-source",
		Description: "test credential source",
		NewFromOptionsFunc: func() Plugin {
			return &testInput{path: testOptions.path}
		},
		Options: []PluginOption{
			{
				Name:         "path",
				Type:         PluginOptionTypeString,
				DefaultValue: "default.csv",
				Dest:         &(testOptions.path),
			},
		},
	})
	Register(PluginEntry{
		Type:               PluginTypeInput,
		Name:               "test-plain",
		NewFromOptionsFunc: func() Plugin { return testPlain{} },
	})
	Register(PluginEntry{
		Type:               PluginTypeOutput,
		Name:               "test-plain",
		NewFromOptionsFunc: func() Plugin { return testPlain{} },
	})
	Register(PluginEntry{
		Type:               PluginTypeOutput,
		Name:               "test-invalid",
		NewFromOptionsFunc: func() Plugin { return nil },
	})
}

func TestPluginTypeName(t *testing.T) {
	assert.Equal(t, "input", PluginTypeName(PluginTypeInput))
	assert.Equal(t, "output", PluginTypeName(PluginTypeOutput))
	assert.Empty(t, PluginTypeName(PluginType(99)))
}

func TestGetPluginsSorted(t *testing.T) {
	inputs := GetPlugins(PluginTypeInput)
	require.Len(t, inputs, 2)
	assert.Equal(t, "test-plain", inputs[0].Name)
	assert.Equal(t, "test-source", inputs[1].Name)
	assert.Len(t, GetPlugins(PluginTypeOutput), 2)
}

func TestGetInput(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, PopulateCmdlineOptions(fs))
	require.NoError(t, fs.Parse([]string{"--input-test-source-path", "vault.csv"}))

	input, err := GetInput("test-source")
	require.NoError(t, err)
	for cred, err := range input.Credentials(context.Background()) {
		require.NoError(t, err)
		assert.Equal(t, "vault.csv", cred.Name)
	}

	_, err = GetInput("missing")
	assert.ErrorContains(t, err, "unknown input")

	_, err = GetInput("test-plain")
	assert.ErrorContains(t, err, "not a credential source")

	_, err = GetOutput("test-plain")
	assert.ErrorContains(t, err, "not a report output")

	_, err = GetOutput("test-invalid")
	assert.ErrorContains(t, err, "output test-invalid: invalid configuration")

	assert.Nil(t, GetPlugin(PluginTypeOutput, "test-source"))
}

func TestProcessConfigAndEnv(t *testing.T) {
	err := ProcessConfig(map[string]map[string]map[any]any{
		"input": {
			"test-source": {"path": "from-config.csv"},
		},
		"output": {
			"unknown": {"path": "ignored"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "from-config.csv", testOptions.path)

	t.Setenv("INPUT_TEST_SOURCE_PATH", "from-env.csv")
	require.NoError(t, ProcessEnvVars())
	assert.Equal(t, "from-env.csv", testOptions.path)

	err = ProcessConfig(map[string]map[string]map[any]any{
		"input": {
			"test-source": {"path": []any{"a", "b"}},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input plugin test-source")
}

func TestSourceError(t *testing.T) {
	inner := assert.AnError
	err := &SourceError{Plugin: "csv", Path: "export.csv", Err: inner}
	assert.Equal(t, "input csv: export.csv: "+inner.Error(), err.Error())
	assert.ErrorIs(t, err, inner)

	err = &SourceError{Plugin: "yaml", Err: inner}
	assert.Equal(t, "input yaml: "+inner.Error(), err.Error())
}
