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

package json

import (
	"github.com/blinklabs-io/pwcheck/internal/logging"
	"github.com/blinklabs-io/pwcheck/plugin"
)

var cmdlineOptions struct {
	indent bool
}

func init() {
	plugin.Register(
		plugin.PluginEntry{
			Type:               plugin.PluginTypeOutput,
			Name:               "json",
			Description:        "print the report as a JSON event to stdout",
			NewFromOptionsFunc: NewFromCmdlineOptions,
			Options: []plugin.PluginOption{
				{
					Name:         "indent",
					Type:         plugin.PluginOptionTypeBool,
					Description:  "indent the JSON output",
					DefaultValue: false,
					Dest:         &(cmdlineOptions.indent),
				},
			},
		},
	)
}

func NewFromCmdlineOptions() plugin.Plugin {
	p := New(
		WithLogger(
			logging.GetLogger().With("plugin", "output.json"),
		),
		WithIndent(cmdlineOptions.indent),
	)
	return p
}
