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
	"errors"
	"fmt"
	"net/http"

	"github.com/blinklabs-io/pwcheck/digest"
)

var (
	// ErrClientBuild is returned when the range client cannot be set up
	ErrClientBuild = errors.New("cannot build range client")

	// ErrRetryAfterMissing is returned when a 429 response carries no
	// Retry-After header. The client never guesses a backoff.
	ErrRetryAfterMissing = errors.New("no retry-after header in 429 response")
)

// RetryAfterMalformedError is returned when the Retry-After header of a 429
// response is not a whole number of seconds.
type RetryAfterMalformedError struct {
	Err   error
	Value string
}

// type check
var _ error = (*RetryAfterMalformedError)(nil)

// Error implements the error interface for *RetryAfterMalformedError.
func (err *RetryAfterMalformedError) Error() string {
	return fmt.Sprintf("retry-after header %q is not a number", err.Value)
}

// Unwrap returns the underlying parse error.
func (err *RetryAfterMalformedError) Unwrap() error {
	return err.Err
}

// RequestError is returned when a range request could not be sent or no
// response was received.
type RequestError struct {
	Err    error
	Prefix digest.Prefix
}

// type check
var _ error = (*RequestError)(nil)

// Error implements the error interface for *RequestError.
func (err *RequestError) Error() string {
	return fmt.Sprintf("sending request for prefix %s: %s", err.Prefix, err.Err)
}

// Unwrap returns the underlying transport error.
func (err *RequestError) Unwrap() error {
	return err.Err
}

// StatusError is returned for any response status other than 200, and for
// 429 once the configured attempt cap is exhausted.
type StatusError struct {
	Prefix digest.Prefix
	Code   int
}

// type check
var _ error = (*StatusError)(nil)

// Error implements the error interface for *StatusError.
func (err *StatusError) Error() string {
	return fmt.Sprintf(
		"unexpected response status for prefix %s: %d %s",
		err.Prefix,
		err.Code,
		http.StatusText(err.Code),
	)
}

// MalformedResponseError is returned when a range record cannot be parsed.
type MalformedResponseError struct {
	Err    error
	Prefix digest.Prefix
	Record string
	Line   int
}

// type check
var _ error = (*MalformedResponseError)(nil)

// Error implements the error interface for *MalformedResponseError.
func (err *MalformedResponseError) Error() string {
	msg := fmt.Sprintf(
		"response malformed for prefix %s at line %d: %q",
		err.Prefix,
		err.Line,
		err.Record,
	)
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying parse error, if any.
func (err *MalformedResponseError) Unwrap() error {
	return err.Err
}

// ResponseReadError is returned when the response body cannot be read.
type ResponseReadError struct {
	Err    error
	Prefix digest.Prefix
}

// type check
var _ error = (*ResponseReadError)(nil)

// Error implements the error interface for *ResponseReadError.
func (err *ResponseReadError) Error() string {
	return fmt.Sprintf("reading response for prefix %s: %s", err.Prefix, err.Err)
}

// Unwrap returns the underlying read error.
func (err *ResponseReadError) Unwrap() error {
	return err.Err
}
