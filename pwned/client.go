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

// Package pwned implements a client for the Pwned Passwords range API. Only
// the 5 character prefix of a digest is ever sent to the service.
package pwned

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/blinklabs-io/pwcheck/digest"
	"github.com/blinklabs-io/pwcheck/plugin"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

const (
	// DefaultURL is the public Pwned Passwords service
	DefaultURL = "https://api.pwnedpasswords.com"

	headerRetryAfter = "Retry-After"
	headerAddPadding = "Add-Padding"
	headerUserAgent  = "User-Agent"

	// rangeBurst is the token bucket size of the request rate limiter
	rangeBurst = 1
)

// Client queries the range API
type Client struct {
	client      *retryablehttp.Client
	httpClient  *http.Client
	gate        *pauseGate
	baseURL     *url.URL
	logger      plugin.Logger
	userAgent   string
	timeout     time.Duration
	rateLimit   float64
	maxAttempts uint
	padding     bool
}

// New returns a range client for the service at baseURL
func New(baseURL string, options ...ClientOptionFunc) (*Client, error) {
	c := &Client{
		userAgent: "pwcheck",
		timeout:   30 * time.Second,
		gate:      &pauseGate{now: time.Now},
	}
	for _, option := range options {
		option(c)
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing base URL: %w", ErrClientBuild, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf(
			"%w: unsupported base URL scheme %q",
			ErrClientBuild,
			u.Scheme,
		)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: base URL has no host", ErrClientBuild)
	}
	if c.rateLimit < 0 {
		return nil, fmt.Errorf(
			"%w: negative rate limit %v",
			ErrClientBuild,
			c.rateLimit,
		)
	}
	c.baseURL = u

	rc := retryablehttp.NewClient()
	if c.httpClient != nil {
		rc.HTTPClient = c.httpClient
	}
	if c.timeout > 0 {
		rc.HTTPClient.Timeout = c.timeout
	}
	next := rc.HTTPClient.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	transport := &limitedTransport{
		next: next,
		gate: c.gate,
	}
	if c.rateLimit > 0 {
		transport.limiter = rate.NewLimiter(rate.Limit(c.rateLimit), rangeBurst)
	}
	rc.HTTPClient.Transport = transport
	if c.logger != nil {
		rc.Logger = c.logger
	} else {
		rc.Logger = nil
	}
	rc.RetryMax = math.MaxInt
	if c.maxAttempts > 0 {
		rc.RetryMax = int(c.maxAttempts) - 1 //nolint:gosec
	}
	rc.CheckRetry = c.checkRetry
	rc.Backoff = retryAfterBackoff
	rc.ErrorHandler = passthroughErrorHandler
	c.client = rc

	return c, nil
}

// Lookup returns the candidates for prefix. It satisfies the lookup
// interface used by the pipeline.
func (c *Client) Lookup(
	ctx context.Context,
	prefix digest.Prefix,
) (digest.Candidates, error) {
	set, err := c.Range(ctx, prefix)
	if err != nil {
		return nil, err
	}
	return set, nil
}

// Range fetches every breached digest starting with prefix. While the
// service answers 429 the request is repeated after the delay it asks for.
func (c *Client) Range(
	ctx context.Context,
	prefix digest.Prefix,
) (digest.CandidateSet, error) {
	req, err := retryablehttp.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.rangeURL(prefix),
		nil,
	)
	if err != nil {
		return nil, &RequestError{Prefix: prefix, Err: err}
	}
	req.Header.Set(headerUserAgent, c.userAgent)
	if c.padding {
		req.Header.Set(headerAddPadding, "true")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		var malformedErr *RetryAfterMalformedError
		if errors.Is(err, ErrRetryAfterMissing) ||
			errors.As(err, &malformedErr) {
			return nil, fmt.Errorf("prefix %s: %w", prefix, err)
		}
		return nil, &RequestError{Prefix: prefix, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Prefix: prefix, Code: resp.StatusCode}
	}

	return parseRange(prefix, resp.Body, c.padding)
}

func (c *Client) rangeURL(prefix digest.Prefix) string {
	return c.baseURL.JoinPath(
		"range",
		strings.ToUpper(string(prefix)),
	).String()
}

// checkRetry retries only rate limited responses that carry a usable
// Retry-After header. Transport errors are returned as is.
func (c *Client) checkRetry(
	ctx context.Context,
	resp *http.Response,
	err error,
) (bool, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, ctxErr
	}
	if err != nil {
		return false, err
	}
	if resp.StatusCode != http.StatusTooManyRequests {
		return false, nil
	}
	delay, err := RetryAfter(resp.Header)
	if err != nil {
		return false, err
	}
	// Hold back requests from other goroutines as well
	c.gate.pause(delay)
	if c.logger != nil {
		c.logger.Warn(
			"rate limited by range API",
			"url", resp.Request.URL.String(),
			"delay", delay.String(),
		)
	}
	return true, nil
}

// RetryAfter returns the delay mandated by the Retry-After header of a 429
// response plus one second to absorb rounding at the server
func RetryAfter(header http.Header) (time.Duration, error) {
	values := header.Values(headerRetryAfter)
	if len(values) == 0 {
		return 0, ErrRetryAfterMissing
	}
	secs, err := strconv.ParseUint(strings.TrimSpace(values[0]), 10, 32)
	if err != nil {
		return 0, &RetryAfterMalformedError{Value: values[0], Err: err}
	}
	return time.Duration(secs+1) * time.Second, nil
}

func retryAfterBackoff(
	_, _ time.Duration,
	_ int,
	resp *http.Response,
) time.Duration {
	if resp == nil {
		return 0
	}
	// checkRetry has already rejected responses without a valid header
	delay, _ := RetryAfter(resp.Header)
	return delay
}

// passthroughErrorHandler returns errors from checkRetry unchanged. When
// retries are exhausted it hands back the last 429 response so that it is
// reported as a status error.
func passthroughErrorHandler(
	resp *http.Response,
	err error,
	_ int,
) (*http.Response, error) {
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, err
	}
	return resp, nil
}

// parseRange reads SUFFIX:COUNT records and returns the reconstructed full
// digests. Blank lines are skipped. Padding records (count 0) are dropped
// when padding was requested.
func parseRange(
	prefix digest.Prefix,
	body io.Reader,
	padding bool,
) (digest.CandidateSet, error) {
	ret := digest.CandidateSet{}
	scanner := bufio.NewScanner(body)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		suffix, count, ok := strings.Cut(line, ":")
		if !ok {
			return nil, &MalformedResponseError{
				Prefix: prefix,
				Line:   lineNo,
				Record: line,
			}
		}
		if padding {
			n, err := strconv.ParseUint(strings.TrimSpace(count), 10, 64)
			if err != nil {
				return nil, &MalformedResponseError{
					Prefix: prefix,
					Line:   lineNo,
					Record: line,
					Err:    err,
				}
			}
			if n == 0 {
				continue
			}
		}
		d, err := prefix.Join(strings.TrimSpace(suffix))
		if err != nil {
			return nil, &MalformedResponseError{
				Prefix: prefix,
				Line:   lineNo,
				Record: line,
				Err:    err,
			}
		}
		ret.Add(d)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ResponseReadError{Prefix: prefix, Err: err}
	}
	return ret, nil
}

// pauseGate holds back every request of a client until the delay asked for
// by the most recent 429 response has passed
type pauseGate struct {
	mu        sync.Mutex
	notBefore time.Time
	now       func() time.Time
}

// pause extends the gate to at least delay from now
func (g *pauseGate) pause(delay time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	until := g.now().Add(delay)
	if until.After(g.notBefore) {
		g.notBefore = until
	}
}

func (g *pauseGate) until() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.notBefore
}

// wait blocks until the gate is open or ctx is done. The gate may be
// extended while waiting.
func (g *pauseGate) wait(ctx context.Context) error {
	for {
		delay := g.until().Sub(g.now())
		if delay <= 0 {
			return nil
		}
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

// limitedTransport waits for the pause gate and then on the shared token
// bucket, if any, before each request attempt, retries included
type limitedTransport struct {
	next    http.RoundTripper
	gate    *pauseGate
	limiter *rate.Limiter
}

func (t *limitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.gate.wait(req.Context()); err != nil {
		return nil, err
	}
	if t.limiter != nil {
		if err := t.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}
	return t.next.RoundTrip(req)
}
