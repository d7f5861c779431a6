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
	"sync"
	"time"

	"github.com/blinklabs-io/pwcheck/plugin"
)

const defaultProgressInterval = 5 * time.Second

// Progress receives scan progress. CredentialRead is called after every
// credential and once more with finished set when the source is exhausted.
// PrefixChecked may be called from several goroutines, but never
// concurrently.
type Progress interface {
	CredentialRead(read int, finished bool)
	PrefixChecked(done int, total int)
}

// LogProgress logs progress at most once per interval, plus once when the
// source is exhausted and once when all prefixes have been checked
type LogProgress struct {
	logger      plugin.Logger
	interval    time.Duration
	mu          sync.Mutex
	lastRead    time.Time
	lastChecked time.Time
	now         func() time.Time
}

func NewLogProgress(logger plugin.Logger, interval time.Duration) *LogProgress {
	return &LogProgress{
		logger:   logger,
		interval: interval,
		now:      time.Now,
	}
}

// due reports whether a message should be logged and records the time if so
func (l *LogProgress) due(last *time.Time, final bool) bool {
	now := l.now()
	if !final && !last.IsZero() && now.Sub(*last) < l.interval {
		return false
	}
	*last = now
	return true
}

func (l *LogProgress) CredentialRead(read int, finished bool) {
	if l.logger == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.due(&l.lastRead, finished) {
		return
	}
	if finished {
		l.logger.Info("read credentials", "count", read)
		return
	}
	l.logger.Info("reading credentials", "count", read)
}

func (l *LogProgress) PrefixChecked(done int, total int) {
	if l.logger == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.due(&l.lastChecked, done >= total) {
		return
	}
	l.logger.Info("checked prefixes", "done", done, "total", total)
}
