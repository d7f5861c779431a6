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
	"time"

	"github.com/blinklabs-io/pwcheck/plugin"
)

type WebhookOptionFunc func(*WebhookOutput)

func WithLogger(logger plugin.Logger) WebhookOptionFunc {
	return func(o *WebhookOutput) {
		o.logger = logger
	}
}

func WithUrl(url string) WebhookOptionFunc {
	return func(o *WebhookOutput) {
		o.url = url
	}
}

func WithBasicAuth(username, password string) WebhookOptionFunc {
	return func(o *WebhookOutput) {
		o.username = username
		o.password = password
	}
}

func WithFormat(format string) WebhookOptionFunc {
	return func(o *WebhookOutput) {
		o.format = format
	}
}

func WithTimeout(timeout time.Duration) WebhookOptionFunc {
	return func(o *WebhookOutput) {
		o.timeout = timeout
	}
}

// WithRetries specifies how often a failed delivery is retried
func WithRetries(retries uint) WebhookOptionFunc {
	return func(o *WebhookOutput) {
		o.retries = retries
	}
}
