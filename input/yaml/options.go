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
	"github.com/blinklabs-io/pwcheck/plugin"
)

type YamlOptionFunc func(*Yaml)

// WithLogger specifies the logger to use
func WithLogger(logger plugin.Logger) YamlOptionFunc {
	return func(y *Yaml) {
		y.logger = logger
	}
}

// WithFile specifies the path of the vault document. "-" reads from stdin.
func WithFile(file string) YamlOptionFunc {
	return func(y *Yaml) {
		y.file = file
	}
}
