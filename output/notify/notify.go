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

package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/blinklabs-io/pwcheck/event"
	"github.com/blinklabs-io/pwcheck/plugin"
	"github.com/gen2brain/beeep"
)

// Names listed in the notification body before the rest are elided
const maxListedNames = 5

// sendNotification is replaced in tests
var sendNotification = func(title, message, icon string) error {
	return beeep.Notify(title, message, icon)
}

type NotifyOutput struct {
	logger    plugin.Logger
	title     string
	icon      string
	onlyMatch bool
}

func New(options ...NotifyOptionFunc) *NotifyOutput {
	n := &NotifyOutput{
		title: "pwcheck",
	}
	for _, option := range options {
		option(n)
	}
	return n
}

// Start the notify output
func (n *NotifyOutput) Start() error {
	return nil
}

// Stop the notify output
func (n *NotifyOutput) Stop() error {
	return nil
}

// Report displays a desktop notification with the match count
func (n *NotifyOutput) Report(_ context.Context, report event.Report) error {
	if n.onlyMatch && !report.Breached() {
		return nil
	}
	if err := sendNotification(n.title, formatMessage(report), n.icon); err != nil {
		return fmt.Errorf("failed to show notification: %w", err)
	}
	if n.logger != nil {
		n.logger.Debug("displayed notification", "breached", len(report.Matches))
	}
	return nil
}

func formatMessage(report event.Report) string {
	if !report.Breached() {
		return report.Summary()
	}
	names := report.Matches
	var more int
	if len(names) > maxListedNames {
		more = len(names) - maxListedNames
		names = names[:maxListedNames]
	}
	msg := report.Summary() + "\n" + strings.Join(names, "\n")
	if more > 0 {
		msg += fmt.Sprintf("\n...and %d more", more)
	}
	return msg
}
