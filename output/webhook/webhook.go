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

package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/blinklabs-io/pwcheck/event"
	"github.com/blinklabs-io/pwcheck/internal/version"
	"github.com/blinklabs-io/pwcheck/plugin"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	FormatPwcheck = "pwcheck"
	FormatSlack   = "slack"
	FormatDiscord = "discord"

	defaultTimeout = 30 * time.Second
	defaultRetries = 3
)

// StatusError is returned when the webhook answers with a non-2xx status
type StatusError struct {
	Body string
	Code int
}

// type check
var _ error = (*StatusError)(nil)

// Error implements the error interface for *StatusError.
func (err *StatusError) Error() string {
	if err.Body == "" {
		return fmt.Sprintf("webhook returned status %d", err.Code)
	}
	return fmt.Sprintf("webhook returned status %d: %s", err.Code, err.Body)
}

type WebhookOutput struct {
	logger       plugin.Logger
	client       *retryablehttp.Client
	url          string
	username     string
	password     string
	format       string
	timeout      time.Duration
	retries      uint
	retryWaitMin time.Duration
	retryWaitMax time.Duration
}

func New(options ...WebhookOptionFunc) *WebhookOutput {
	w := &WebhookOutput{
		url:     "http://localhost:3000",
		format:  FormatPwcheck,
		timeout: defaultTimeout,
		retries: defaultRetries,
	}
	for _, option := range options {
		option(w)
	}
	return w
}

// Start validates the configuration and sets up the HTTP client
func (w *WebhookOutput) Start() error {
	switch w.format {
	case FormatPwcheck, FormatSlack, FormatDiscord:
	default:
		return fmt.Errorf("unknown webhook format: %s", w.format)
	}
	if w.url == "" {
		return errors.New("webhook url is required")
	}
	client := retryablehttp.NewClient()
	client.HTTPClient.Timeout = w.timeout
	client.RetryMax = int(w.retries) //nolint:gosec
	if w.retryWaitMin > 0 {
		client.RetryWaitMin = w.retryWaitMin
	}
	if w.retryWaitMax > 0 {
		client.RetryWaitMax = w.retryWaitMax
	}
	if w.logger != nil {
		client.Logger = w.logger
	} else {
		client.Logger = nil
	}
	// Return the last response instead of a generic error once retries run out
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	w.client = client
	return nil
}

// Stop the webhook output
func (w *WebhookOutput) Stop() error {
	if w.client != nil {
		w.client.HTTPClient.CloseIdleConnections()
	}
	return nil
}

// Report sends the report to the webhook
func (w *WebhookOutput) Report(ctx context.Context, report event.Report) error {
	if w.client == nil {
		if err := w.Start(); err != nil {
			return err
		}
	}
	data, err := w.payload(report)
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}
	req, err := retryablehttp.NewRequestWithContext(
		ctx,
		http.MethodPost,
		w.url,
		data,
	)
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if w.username != "" || w.password != "" {
		req.SetBasicAuth(w.username, w.password)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending webhook: %w", err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(respBody)),
		}
	}
	if w.logger != nil {
		w.logger.Info(
			"sent report to webhook",
			"url", w.url,
			"status", resp.StatusCode,
			"breached", len(report.Matches),
		)
	}
	return nil
}

func (w *WebhookOutput) payload(report event.Report) ([]byte, error) {
	switch w.format {
	case FormatSlack:
		return json.Marshal(map[string]string{"text": formatMessage(report)})
	case FormatDiscord:
		return json.Marshal(map[string]string{"content": formatMessage(report)})
	default:
		return json.Marshal(event.NewReportEvent(report))
	}
}

// formatMessage renders the report for chat webhooks
func formatMessage(report event.Report) string {
	var sb bytes.Buffer
	sb.WriteString(report.Summary())
	for _, name := range report.Matches {
		sb.WriteString("\n• ")
		sb.WriteString(name)
	}
	return sb.String()
}
