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

	"github.com/blinklabs-io/pwcheck/event"
)

type Plugin interface {
	Start() error
	Stop() error
}

// Input is a credential source. Credentials yields each credential with a
// non-empty password, or a single non-nil error which ends the sequence.
type Input interface {
	Plugin
	Credentials(ctx context.Context) iter.Seq2[event.Credential, error]
}

// Output delivers a finished report
type Output interface {
	Plugin
	Report(ctx context.Context, report event.Report) error
}
