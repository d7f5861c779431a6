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

import "github.com/blinklabs-io/pwcheck/plugin"

type NotifyOptionFunc func(*NotifyOutput)

func WithLogger(logger plugin.Logger) NotifyOptionFunc {
	return func(o *NotifyOutput) {
		o.logger = logger
	}
}

func WithTitle(title string) NotifyOptionFunc {
	return func(o *NotifyOutput) {
		o.title = title
	}
}

// WithIcon specifies the path of an icon shown with the notification
func WithIcon(icon string) NotifyOptionFunc {
	return func(o *NotifyOutput) {
		o.icon = icon
	}
}

// WithOnlyMatches suppresses the notification when nothing was found
func WithOnlyMatches(onlyMatch bool) NotifyOptionFunc {
	return func(o *NotifyOutput) {
		o.onlyMatch = onlyMatch
	}
}
