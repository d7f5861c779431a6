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

package log

import (
	"context"

	"github.com/blinklabs-io/pwcheck/event"
	"github.com/blinklabs-io/pwcheck/internal/logging"
	"github.com/blinklabs-io/pwcheck/plugin"
)

type LogOutput struct {
	logger plugin.Logger
	level  string
}

func New(options ...LogOptionFunc) *LogOutput {
	l := &LogOutput{
		logger: logging.GetLogger().With("type", "event"),
		level:  "info",
	}
	for _, option := range options {
		option(l)
	}
	return l
}

// Start the log output
func (l *LogOutput) Start() error {
	return nil
}

// Stop the log output
func (l *LogOutput) Stop() error {
	return nil
}

// Report logs the report summary. Each breached credential is logged
// separately at warn level.
func (l *LogOutput) Report(_ context.Context, report event.Report) error {
	args := []any{
		"event", event.TypeReport,
		"scanned", report.CredentialsScanned,
		"breached", len(report.Matches),
		"prefixes", report.PrefixesQueried,
		"backend", report.Backend,
		"duration", report.FinishedAt.Sub(report.StartedAt).String(),
	}
	switch l.level {
	case "info":
		l.logger.Info(report.Summary(), args...)
	case "warn":
		l.logger.Warn(report.Summary(), args...)
	case "error":
		l.logger.Error(report.Summary(), args...)
	default:
		// Use INFO level if log level isn't recognized
		l.logger.Info(report.Summary(), args...)
	}
	for _, name := range report.Matches {
		l.logger.Warn("breached password", "credential", name)
	}
	return nil
}
