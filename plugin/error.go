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
)

// SourceError is returned by input plugins when the credential store cannot
// be opened, unlocked or read
type SourceError struct {
	Err    error
	Plugin string
	Path   string
}

// type check
var _ error = (*SourceError)(nil)

// Error implements the error interface for *SourceError.
func (err *SourceError) Error() string {
	if err.Path == "" {
		return fmt.Sprintf("input %s: %s", err.Plugin, err.Err)
	}
	return fmt.Sprintf("input %s: %s: %s", err.Plugin, err.Path, err.Err)
}

// Unwrap returns the underlying error.
func (err *SourceError) Unwrap() error {
	return err.Err
}
