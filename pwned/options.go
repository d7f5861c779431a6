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

package pwned

import (
	"net/http"
	"time"

	"github.com/blinklabs-io/pwcheck/plugin"
)

type ClientOptionFunc func(*Client)

// WithLogger specifies the logger object to use for logging messages
func WithLogger(logger plugin.Logger) ClientOptionFunc {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient specifies the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOptionFunc {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithUserAgent specifies the User-Agent header sent with each request
func WithUserAgent(userAgent string) ClientOptionFunc {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout specifies the timeout for a single request attempt
func WithTimeout(timeout time.Duration) ClientOptionFunc {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithPadding requests padded responses. Padding records have a count of
// zero and are dropped while parsing.
func WithPadding(padding bool) ClientOptionFunc {
	return func(c *Client) {
		c.padding = padding
	}
}

// WithMaxAttempts caps the number of attempts per prefix while rate
// limited. Zero means no cap.
func WithMaxAttempts(maxAttempts uint) ClientOptionFunc {
	return func(c *Client) {
		c.maxAttempts = maxAttempts
	}
}

// WithRateLimit limits the number of requests per second sent by the
// client, across all goroutines using it. Zero means no limit.
func WithRateLimit(requestsPerSecond float64) ClientOptionFunc {
	return func(c *Client) {
		c.rateLimit = requestsPerSecond
	}
}
