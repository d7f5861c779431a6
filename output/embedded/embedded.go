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

// Package embedded delivers reports to the program embedding pwcheck as a
// library instead of to an external system.
package embedded

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/blinklabs-io/pwcheck/event"
)

type CallbackFunc func(event.Report) error

var ErrStopped = errors.New("embedded output is stopped")

type EmbeddedOutput struct {
	mu           sync.Mutex
	callbackFunc CallbackFunc
	outputChan   chan event.Report
	stopped      bool
}

func New(options ...EmbeddedOptionFunc) *EmbeddedOutput {
	e := &EmbeddedOutput{}
	for _, option := range options {
		option(e)
	}
	return e
}

// Start the embedded output
func (e *EmbeddedOutput) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopped = false
	return nil
}

// Stop the embedded output. The output channel, if any, is closed
func (e *EmbeddedOutput) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return nil
	}
	e.stopped = true
	if e.outputChan != nil {
		close(e.outputChan)
	}
	return nil
}

// Report passes the report to the callback function and then to the output
// channel. Sending on the channel blocks until it is received or ctx is done
func (e *EmbeddedOutput) Report(ctx context.Context, report event.Report) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}
	if e.callbackFunc != nil {
		if err := e.callbackFunc(report); err != nil {
			return fmt.Errorf("callback function error: %w", err)
		}
	}
	if e.outputChan != nil {
		select {
		case e.outputChan <- report:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// OutputChan returns the report channel, or nil if none was configured
func (e *EmbeddedOutput) OutputChan() <-chan event.Report {
	return e.outputChan
}
