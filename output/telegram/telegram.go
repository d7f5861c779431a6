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
	"errors"
	"fmt"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/blinklabs-io/pwcheck/event"
	"github.com/blinklabs-io/pwcheck/internal/logging"
	"github.com/blinklabs-io/pwcheck/plugin"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const (
	// Default retry configuration
	defaultMaxRetries     = 3
	defaultInitialBackoff = 1 * time.Second
	defaultMaxBackoff     = 30 * time.Second
	defaultBackoffFactor  = 2.0

	// telegramMaxMessageLength is the Telegram API limit for message text (UTF-16 code units).
	// We use 4096 to stay within the limit; Telegram uses UTF-16 for counting.
	telegramMaxMessageLength = 4096
)

type TelegramOutput struct {
	logger         plugin.Logger
	bot            *bot.Bot
	botToken       string
	serverURL      string
	chatID         int64
	parseMode      models.ParseMode
	disablePreview bool
	onlyMatches    bool
	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	backoffFactor  float64
}

func New(options ...TelegramOptionFunc) (*TelegramOutput, error) {
	t := &TelegramOutput{
		parseMode:      models.ParseModeHTML,
		disablePreview: false,
		maxRetries:     defaultMaxRetries,
		initialBackoff: defaultInitialBackoff,
		maxBackoff:     defaultMaxBackoff,
		backoffFactor:  defaultBackoffFactor,
	}
	for _, option := range options {
		option(t)
	}

	// Validate required configuration
	if t.botToken == "" {
		return nil, errors.New("telegram bot token is required")
	}

	// Authorization is checked in Start
	botOpts := []bot.Option{bot.WithSkipGetMe()}
	if t.serverURL != "" {
		botOpts = append(botOpts, bot.WithServerURL(t.serverURL))
	}
	b, err := bot.New(t.botToken, botOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	t.bot = b

	return t, nil
}

// log returns the plugin logger, or the global logger if unset.
func (t *TelegramOutput) log() plugin.Logger {
	if t.logger != nil {
		return t.logger
	}
	return logging.GetLogger()
}

func (t *TelegramOutput) Start() error {
	logger := t.log()
	logger.Info("starting Telegram output")

	if t.chatID == 0 {
		return errors.New("chat ID is required: set --output-telegram-chat-id or OUTPUT_TELEGRAM_CHAT_ID")
	}

	// Verify bot authorization by getting bot info
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	me, err := t.bot.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("failed to authorize with Telegram: %w", err)
	}
	if me.Username != "" {
		logger.Info("Telegram bot authorized as @" + me.Username)
	} else {
		logger.Info("Telegram bot authorized")
	}
	return nil
}

func (t *TelegramOutput) Stop() error {
	return nil
}

// Report sends the report to the configured chat
func (t *TelegramOutput) Report(ctx context.Context, report event.Report) error {
	if t.onlyMatches && !report.Breached() {
		return nil
	}
	message := formatReportMessage(report, t.parseMode)
	message = truncateMessage(message, telegramMaxMessageLength)
	return t.sendMessageWithRetry(ctx, message)
}

// formatReportMessage formats a report for Telegram. Credential names are
// escaped for the parse mode in use.
func formatReportMessage(report event.Report, parseMode models.ParseMode) string {
	escape := html.EscapeString
	title := "<b>🔐 Password breach check</b>"
	if parseMode != models.ParseModeHTML {
		escape = bot.EscapeMarkdown
		title = "*🔐 Password breach check*"
	}
	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n\n")
	sb.WriteString(escape(report.Summary()))
	for _, name := range report.Matches {
		sb.WriteString("\n• ")
		sb.WriteString(escape(name))
	}
	return sb.String()
}

// truncateMessage ensures text fits within Telegram's message length limit.
func truncateMessage(text string, maxLen int) string {
	if maxLen <= 0 || len(text) <= maxLen {
		return text
	}
	suffix := "… [truncated]"
	keep := maxLen - len(suffix)
	if keep <= 0 {
		return text[:maxLen]
	}
	trunc := text[:keep]
	for len(trunc) > 0 && !utf8.ValidString(trunc) {
		trunc = trunc[:len(trunc)-1]
	}
	return trunc + suffix
}

func (t *TelegramOutput) SendMessage(ctx context.Context, message string) error {
	logger := t.log()

	if t.chatID == 0 {
		return errors.New("no chat ID configured")
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	params := &bot.SendMessageParams{
		ChatID:    t.chatID,
		Text:      message,
		ParseMode: t.parseMode,
	}

	// Set link preview options if preview is disabled
	if t.disablePreview {
		params.LinkPreviewOptions = &models.LinkPreviewOptions{
			IsDisabled: bot.True(),
		}
	}

	_, err := t.bot.SendMessage(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	logger.Debug(fmt.Sprintf("Sent message to chat %d", t.chatID))
	return nil
}

// sendMessageWithRetry wraps SendMessage with retry logic and exponential backoff
func (t *TelegramOutput) sendMessageWithRetry(ctx context.Context, message string) error {
	logger := t.log()
	var lastErr error
	backoff := t.initialBackoff

	for attempt := 0; attempt <= t.maxRetries; attempt++ {
		if attempt > 0 {
			logger.Warn(
				fmt.Sprintf(
					"Telegram delivery failed, retrying (attempt %d/%d) after %v",
					attempt,
					t.maxRetries,
					backoff,
				),
				"chat_id", t.chatID,
				"error", lastErr,
			)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}

			// Calculate next backoff with exponential increase
			backoff = time.Duration(float64(backoff) * t.backoffFactor)
			if backoff > t.maxBackoff {
				backoff = t.maxBackoff
			}
		}

		err := t.SendMessage(ctx, message)
		if err == nil {
			if attempt > 0 {
				logger.Info(
					fmt.Sprintf("Telegram delivery succeeded after %d retries", attempt),
					"chat_id", t.chatID,
				)
			}
			return nil
		}
		lastErr = err
	}

	return fmt.Errorf(
		"telegram delivery to chat %d failed after %d retries: %w",
		t.chatID,
		t.maxRetries,
		lastErr,
	)
}

func (t *TelegramOutput) GetBot() *bot.Bot {
	return t.bot
}

func (t *TelegramOutput) GetChatID() int64 {
	return t.chatID
}
