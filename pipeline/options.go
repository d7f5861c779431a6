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

package pipeline

import (
	"time"

	"github.com/blinklabs-io/pwcheck/plugin"
)

type PipelineOptionFunc func(*Pipeline)

// WithLogger specifies the logger to use
func WithLogger(logger plugin.Logger) PipelineOptionFunc {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithWorkers specifies how many lookups may run at once. Values below 1
// are treated as 1.
func WithWorkers(workers uint) PipelineOptionFunc {
	return func(p *Pipeline) {
		p.workers = max(1, int(workers)) //nolint:gosec
	}
}

// WithBackend specifies the backend name recorded in reports
func WithBackend(backend string) PipelineOptionFunc {
	return func(p *Pipeline) {
		p.backend = backend
	}
}

// WithProgress specifies the progress sink. The default logs periodically.
func WithProgress(progress Progress) PipelineOptionFunc {
	return func(p *Pipeline) {
		p.progress = progress
	}
}

// WithClock specifies the time source used for report timestamps
func WithClock(now func() time.Time) PipelineOptionFunc {
	return func(p *Pipeline) {
		p.now = now
	}
}
