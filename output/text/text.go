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

package text

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/blinklabs-io/pwcheck/event"
	"github.com/blinklabs-io/pwcheck/plugin"
)

type TextOutput struct {
	logger plugin.Logger
	writer io.Writer
}

func New(options ...TextOptionFunc) *TextOutput {
	t := &TextOutput{
		writer: os.Stdout,
	}
	for _, option := range options {
		option(t)
	}
	return t
}

// Start the text output
func (t *TextOutput) Start() error {
	return nil
}

// Stop the text output
func (t *TextOutput) Stop() error {
	return nil
}

// Report prints the breached credential names, one per line
func (t *TextOutput) Report(_ context.Context, report event.Report) error {
	w := bufio.NewWriter(t.writer)
	switch {
	case !report.Scanned():
		_, _ = w.WriteString(event.MessageNothingScanned + "\n")
	case !report.Breached():
		_, _ = w.WriteString(event.MessageNoMatches + "\n")
	default:
		_, _ = w.WriteString(event.MessageMatchesHeader + "\n\n")
		for _, name := range report.Matches {
			_, _ = w.WriteString(name + "\n")
		}
	}
	if err := w.Flush(); err != nil {
		if t.logger != nil {
			t.logger.Error("failed to write report", "error", err)
		}
		return fmt.Errorf("failed to write report: %w", err)
	}
	if t.logger != nil {
		t.logger.Debug("wrote report", "breached", len(report.Matches))
	}
	return nil
}
