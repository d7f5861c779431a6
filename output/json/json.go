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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/blinklabs-io/pwcheck/event"
	"github.com/blinklabs-io/pwcheck/plugin"
)

type JsonOutput struct {
	logger plugin.Logger
	writer io.Writer
	indent bool
}

func New(options ...JsonOptionFunc) *JsonOutput {
	j := &JsonOutput{
		writer: os.Stdout,
	}
	for _, option := range options {
		option(j)
	}
	return j
}

// Start the JSON output
func (j *JsonOutput) Start() error {
	return nil
}

// Stop the JSON output
func (j *JsonOutput) Stop() error {
	return nil
}

// Report writes the report event as a single JSON document
func (j *JsonOutput) Report(_ context.Context, report event.Report) error {
	enc := json.NewEncoder(j.writer)
	if j.indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(event.NewReportEvent(report)); err != nil {
		if j.logger != nil {
			j.logger.Error("failed to write report", "error", err)
		}
		return fmt.Errorf("failed to write report: %w", err)
	}
	if j.logger != nil {
		j.logger.Debug("wrote report", "breached", len(report.Matches))
	}
	return nil
}
