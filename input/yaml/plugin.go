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

package yaml

import (
	"github.com/blinklabs-io/pwcheck/internal/logging"
	"github.com/blinklabs-io/pwcheck/plugin"
)

var cmdlineOptions struct {
	file string
}

func init() {
	plugin.Register(
		plugin.PluginEntry{
			Type:               plugin.PluginTypeInput,
			Name:               "yaml",
			Description:        "reads credentials from a YAML group/entry tree",
			NewFromOptionsFunc: NewFromCmdlineOptions,
			Options: []plugin.PluginOption{
				{
					Name:         "file",
					Type:         plugin.PluginOptionTypeString,
					Description:  "path to the YAML document (- for stdin)",
					DefaultValue: "",
					Dest:         &(cmdlineOptions.file),
				},
			},
		},
	)
}

func NewFromCmdlineOptions() plugin.Plugin {
	return New(
		WithLogger(
			logging.GetLogger().With("plugin", "input.yaml"),
		),
		WithFile(cmdlineOptions.file),
	)
}
