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

package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/blinklabs-io/pwcheck/event"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "123456:test-token"

// fakeBotAPI answers getMe and sendMessage like the Bot API does
type fakeBotAPI struct {
	mu       sync.Mutex
	failures int
	texts    []string
	chatIDs  []string
	modes    []string
}

func (f *fakeBotAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if !strings.HasPrefix(r.URL.Path, "/bot"+testToken+"/") {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":404,"description":"Not Found"}`))
		return
	}
	switch {
	case strings.HasSuffix(r.URL.Path, "/getMe"):
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"pwcheck","username":"pwcheck_bot"}}`))
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		_ = r.ParseMultipartForm(1 << 20)
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failures > 0 {
			f.failures--
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"ok":false,"error_code":500,"description":"Internal Server Error"}`))
			return
		}
		f.texts = append(f.texts, r.FormValue("text"))
		f.chatIDs = append(f.chatIDs, r.FormValue("chat_id"))
		f.modes = append(f.modes, r.FormValue("parse_mode"))
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":12345,"type":"private"}}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":404,"description":"Not Found"}`))
	}
}

func (f *fakeBotAPI) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.texts...)
}

func newTestOutput(t *testing.T, api *fakeBotAPI, options ...TelegramOptionFunc) *TelegramOutput {
	t.Helper()
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)
	opts := append(
		[]TelegramOptionFunc{
			WithBotToken(testToken),
			WithChatID(12345),
			WithServerURL(server.URL),
			WithRetryConfig(2, time.Millisecond, time.Millisecond),
		},
		options...,
	)
	output, err := New(opts...)
	require.NoError(t, err)
	return output
}

func testReport(matches ...string) event.Report {
	return event.Report{
		CredentialsScanned: 3,
		Matches:            matches,
	}
}

func TestNew(t *testing.T) {
	output, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram bot token is required")
	assert.Nil(t, output)

	output, err = New(WithBotToken(testToken), WithChatID(42))
	require.NoError(t, err)
	assert.NotNil(t, output.GetBot())
	assert.Equal(t, int64(42), output.GetChatID())
}

func TestStart(t *testing.T) {
	api := &fakeBotAPI{}
	output := newTestOutput(t, api)
	require.NoError(t, output.Start())
	require.NoError(t, output.Stop())
}

func TestStartRequiresChatID(t *testing.T) {
	api := &fakeBotAPI{}
	output := newTestOutput(t, api, WithChatID(0))
	err := output.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat ID is required")
}

func TestStartUnauthorized(t *testing.T) {
	api := &fakeBotAPI{}
	output := newTestOutput(t, api, WithBotToken("999:wrong"))
	err := output.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to authorize with Telegram")
}

func TestReport(t *testing.T) {
	api := &fakeBotAPI{}
	output := newTestOutput(t, api)
	require.NoError(t, output.Report(context.Background(), testReport("Alice", "Work -> <admin>")))

	sent := api.sent()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0], "<b>🔐 Password breach check</b>")
	assert.Contains(t, sent[0], "2 of 3 credentials use passwords found in the Pwned Passwords database")
	assert.Contains(t, sent[0], "\n• Alice")
	assert.Contains(t, sent[0], "\n• Work -&gt; &lt;admin&gt;")
	assert.Contains(t, api.chatIDs[0], "12345")
	assert.Contains(t, api.modes[0], "HTML")
}

func TestReportOnlyMatches(t *testing.T) {
	api := &fakeBotAPI{}
	output := newTestOutput(t, api, WithOnlyMatches(true))
	require.NoError(t, output.Report(context.Background(), testReport()))
	assert.Empty(t, api.sent())

	require.NoError(t, output.Report(context.Background(), testReport("Alice")))
	assert.Len(t, api.sent(), 1)
}

func TestReportRetries(t *testing.T) {
	api := &fakeBotAPI{failures: 2}
	output := newTestOutput(t, api)
	require.NoError(t, output.Report(context.Background(), testReport("Alice")))
	assert.Len(t, api.sent(), 1)
}

func TestReportRetriesExhausted(t *testing.T) {
	api := &fakeBotAPI{failures: 5}
	output := newTestOutput(t, api)
	err := output.Report(context.Background(), testReport("Alice"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed after 2 retries")
	assert.Empty(t, api.sent())
}

func TestReportCanceled(t *testing.T) {
	api := &fakeBotAPI{failures: 5}
	output := newTestOutput(
		t,
		api,
		WithRetryConfig(3, time.Hour, time.Hour),
	)
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)
	err := output.Report(ctx, testReport("Alice"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestFormatReportMessage(t *testing.T) {
	t.Run("no matches", func(t *testing.T) {
		msg := formatReportMessage(testReport(), models.ParseModeHTML)
		assert.Contains(t, msg, event.MessageNoMatches)
		assert.NotContains(t, msg, "•")
	})

	t.Run("nothing scanned", func(t *testing.T) {
		msg := formatReportMessage(event.Report{}, models.ParseModeHTML)
		assert.Contains(t, msg, event.MessageNothingScanned)
	})

	t.Run("markdown escaping", func(t *testing.T) {
		msg := formatReportMessage(testReport("a_b (c)"), models.ParseModeMarkdown)
		assert.True(t, strings.HasPrefix(msg, "*🔐 Password breach check*"))
		assert.Contains(t, msg, `a\_b \(c\)`)
	})
}

func TestTruncateMessage(t *testing.T) {
	t.Run("empty string", func(t *testing.T) {
		result := truncateMessage("", 100)
		assert.Equal(t, "", result)
	})

	t.Run("short string unchanged", func(t *testing.T) {
		msg := "short"
		result := truncateMessage(msg, 100)
		assert.Equal(t, msg, result)
	})

	t.Run("exactly at limit unchanged", func(t *testing.T) {
		msg := strings.Repeat("x", 4096)
		result := truncateMessage(msg, 4096)
		assert.Equal(t, msg, result)
	})

	t.Run("over limit truncated with suffix", func(t *testing.T) {
		msg := strings.Repeat("aaaaaaaaaa", 500)
		result := truncateMessage(msg, 4096)
		assert.LessOrEqual(t, len(result), 4096)
		assert.Contains(t, result, "… [truncated]")
		assert.Less(t, len(result), len(msg))
	})

	t.Run("multibyte boundary kept valid", func(t *testing.T) {
		msg := strings.Repeat("é", 100)
		result := truncateMessage(msg, 50)
		assert.LessOrEqual(t, len(result), 50)
		assert.True(t, strings.HasSuffix(result, "… [truncated]"))
		assert.NotContains(t, result, "�")
	})

	t.Run("maxLen zero returns as-is", func(t *testing.T) {
		msg := "hello"
		result := truncateMessage(msg, 0)
		assert.Equal(t, msg, result)
	})
}

func TestWithOptions(t *testing.T) {
	t.Run("WithChatID negative (group)", func(t *testing.T) {
		tg := &TelegramOutput{}
		WithChatID(-1001234567890)(tg)
		assert.Equal(t, int64(-1001234567890), tg.chatID)
	})

	t.Run("WithParseMode", func(t *testing.T) {
		tg := &TelegramOutput{}
		WithParseMode("HTML")(tg)
		assert.Equal(t, models.ParseModeHTML, tg.parseMode)
		WithParseMode("MarkdownV2")(tg)
		assert.Equal(t, models.ParseModeMarkdown, tg.parseMode)
		WithParseMode("bogus")(tg)
		assert.Equal(t, models.ParseModeHTML, tg.parseMode)
	})

	t.Run("WithDisableLinkPreview", func(t *testing.T) {
		tg := &TelegramOutput{}
		WithDisableLinkPreview(true)(tg)
		assert.True(t, tg.disablePreview)
	})

	t.Run("WithRetryConfig ignores invalid values", func(t *testing.T) {
		tg := &TelegramOutput{maxRetries: 3, initialBackoff: time.Second, maxBackoff: time.Minute}
		WithRetryConfig(-1, 0, 0)(tg)
		assert.Equal(t, 3, tg.maxRetries)
		assert.Equal(t, time.Second, tg.initialBackoff)
		assert.Equal(t, time.Minute, tg.maxBackoff)
	})
}
