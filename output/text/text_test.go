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
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/blinklabs-io/pwcheck/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	testDefs := []struct {
		name     string
		report   event.Report
		expected string
	}{
		{
			name:     "nothing scanned",
			report:   event.Report{},
			expected: "No credentials with passwords were found.\n",
		},
		{
			name:     "no matches",
			report:   event.Report{CredentialsScanned: 3, Matches: []string{}},
			expected: "No matching passwords found in the Pwned Passwords database!\n",
		},
		{
			name: "matches",
			report: event.Report{
				CredentialsScanned: 3,
				Matches:            []string{"Alice", "Root -> Bob"},
			},
			expected: "These passwords were found in the Pwned Passwords database:\n\nAlice\nRoot -> Bob\n",
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			var buf bytes.Buffer
			o := New(WithWriter(&buf))
			require.NoError(t, o.Start())
			require.NoError(t, o.Report(context.Background(), testDef.report))
			require.NoError(t, o.Stop())
			assert.Equal(t, testDef.expected, buf.String())
		})
	}
}

// failingWriter rejects every write
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestReportWriteError(t *testing.T) {
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	o := New(WithWriter(failingWriter{}), WithLogger(logger))
	err := o.Report(context.Background(), event.Report{CredentialsScanned: 3, Matches: []string{"Alice", "Bob"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write report: disk full")
	assert.Contains(t, logBuf.String(), `"msg":"failed to write report"`)
}

func TestReportLogsDebug(t *testing.T) {
	var buf, logBuf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	o := New(WithWriter(&buf), WithLogger(logger))
	require.NoError(t, o.Report(context.Background(), event.Report{CredentialsScanned: 3, Matches: []string{"Alice", "Bob"}}))
	assert.Contains(t, logBuf.String(), `"msg":"wrote report"`)
	assert.Contains(t, logBuf.String(), `"breached":2`)
}
