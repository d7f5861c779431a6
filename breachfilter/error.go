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

package breachfilter

import (
	"fmt"
)

// ShardError is returned when the shard for a prefix cannot be loaded. A
// missing shard means the filter set is incomplete.
type ShardError struct {
	Err   error
	Shard string
	Path  string
}

// type check
var _ error = (*ShardError)(nil)

// Error implements the error interface for *ShardError.
func (err *ShardError) Error() string {
	return fmt.Sprintf("filter shard %s (%s): %s", err.Shard, err.Path, err.Err)
}

// Unwrap returns the underlying error.
func (err *ShardError) Unwrap() error {
	return err.Err
}

// DumpError is returned for a line of the corpus dump that cannot be used
type DumpError struct {
	Err  error
	Line int
}

// type check
var _ error = (*DumpError)(nil)

// Error implements the error interface for *DumpError.
func (err *DumpError) Error() string {
	return fmt.Sprintf("dump line %d: %s", err.Line, err.Err)
}

// Unwrap returns the underlying error.
func (err *DumpError) Unwrap() error {
	return err.Err
}
