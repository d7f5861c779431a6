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
	"errors"
	"fmt"
	"testing"

	"github.com/blinklabs-io/pwcheck/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notification struct {
	title   string
	message string
	icon    string
}

func captureNotifications(t *testing.T, err error) *[]notification {
	t.Helper()
	var sent []notification
	orig := sendNotification
	sendNotification = func(title, message, icon string) error {
		sent = append(sent, notification{title: title, message: message, icon: icon})
		return err
	}
	t.Cleanup(func() { sendNotification = orig })
	return &sent
}

func TestReportNotification(t *testing.T) {
	sent := captureNotifications(t, nil)
	n := New(WithTitle("Vault check"), WithIcon("/tmp/icon.png"))
	require.NoError(t, n.Start())
	require.NoError(t, n.Report(context.Background(), event.Report{
		CredentialsScanned: 4,
		Matches:            []string{"Alice", "Bob"},
	}))
	require.Len(t, *sent, 1)
	assert.Equal(t, notification{
		title:   "Vault check",
		message: "2 of 4 credentials use passwords found in the Pwned Passwords database\nAlice\nBob",
		icon:    "/tmp/icon.png",
	}, (*sent)[0])
}

func TestReportOnlyMatches(t *testing.T) {
	sent := captureNotifications(t, nil)
	clean := event.Report{CredentialsScanned: 4}

	require.NoError(t, New(WithOnlyMatches(true)).Report(context.Background(), clean))
	assert.Empty(t, *sent)

	require.NoError(t, New().Report(context.Background(), clean))
	require.Len(t, *sent, 1)
	assert.Equal(t, event.MessageNoMatches, (*sent)[0].message)
}

func TestReportNotificationError(t *testing.T) {
	notifyErr := errors.New("no notification daemon")
	captureNotifications(t, notifyErr)
	err := New().Report(context.Background(), event.Report{CredentialsScanned: 1})
	assert.ErrorIs(t, err, notifyErr)
}

func TestFormatMessageElidesLongLists(t *testing.T) {
	var names []string
	for i := range 8 {
		names = append(names, fmt.Sprintf("entry %d", i))
	}
	msg := formatMessage(event.Report{CredentialsScanned: 10, Matches: names})
	assert.Contains(t, msg, "entry 4")
	assert.NotContains(t, msg, "entry 5")
	assert.Contains(t, msg, "...and 3 more")
}
