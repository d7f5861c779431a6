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

package csv

import (
	"github.com/blinklabs-io/pwcheck/plugin"
)

type CsvOptionFunc func(*Csv)

// WithLogger specifies the logger to use
func WithLogger(logger plugin.Logger) CsvOptionFunc {
	return func(c *Csv) {
		c.logger = logger
	}
}

// WithFile specifies the path of the export to read. "-" reads from stdin.
func WithFile(file string) CsvOptionFunc {
	return func(c *Csv) {
		c.file = file
	}
}

// WithSeparator specifies the field separator. Only the first rune is used.
func WithSeparator(separator string) CsvOptionFunc {
	return func(c *Csv) {
		c.separator = separator
	}
}
