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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/blinklabs-io/pwcheck/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReport() event.Report {
	return event.Report{
		Matches:            []string{"Alice", "Bob"},
		CredentialsScanned: 3,
		PrefixesQueried:    2,
		Backend:            "api",
		StartedAt:          time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		FinishedAt:         time.Date(2026, 1, 1, 0, 0, 5, 0, time.UTC),
	}
}

func TestReportJSON(t *testing.T) {
	var buf bytes.Buffer
	o := New(WithWriter(&buf))
	require.NoError(t, o.Report(context.Background(), testReport()))

	line := strings.TrimSpace(buf.String())
	assert.NotContains(t, line, "\n")

	var parsed struct {
		Type      string       `json:"type"`
		Timestamp time.Time    `json:"timestamp"`
		Payload   event.Report `json:"payload"`
	}
	require.NoError(t, json.Unmarshal([]byte(line), &parsed))
	assert.Equal(t, event.TypeReport, parsed.Type)
	assert.Equal(t, testReport().FinishedAt, parsed.Timestamp)
	assert.Equal(t, testReport(), parsed.Payload)
}

func TestReportJSONIndent(t *testing.T) {
	var buf bytes.Buffer
	o := New(WithWriter(&buf), WithIndent(true))
	require.NoError(t, o.Report(context.Background(), testReport()))
	assert.Contains(t, buf.String(), "\n  \"type\": \"pwcheck.report\"")
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
	err := o.Report(context.Background(), testReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write report: disk full")
	assert.Contains(t, logBuf.String(), `"msg":"failed to write report"`)
}

func TestReportLogsDebug(t *testing.T) {
	var buf, logBuf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	o := New(WithWriter(&buf), WithLogger(logger))
	require.NoError(t, o.Report(context.Background(), testReport()))
	assert.Contains(t, logBuf.String(), `"msg":"wrote report"`)
	assert.Contains(t, logBuf.String(), `"breached":2`)
}
