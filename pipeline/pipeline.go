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

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sort"
	"sync"
	"time"

	"github.com/blinklabs-io/pwcheck/digest"
	"github.com/blinklabs-io/pwcheck/event"
	"github.com/blinklabs-io/pwcheck/plugin"
	"golang.org/x/sync/errgroup"
)

// Lookup returns the breached digests sharing a prefix
type Lookup interface {
	Lookup(ctx context.Context, prefix digest.Prefix) (digest.Candidates, error)
}

// Pipeline reads credentials from an input, checks them against a lookup
// backend and hands the report to the outputs
type Pipeline struct {
	lookup   Lookup
	logger   plugin.Logger
	progress Progress
	backend  string
	workers  int
	now      func() time.Time

	input    plugin.Input
	outputs  []plugin.Output
	doneChan chan struct{}
	stopOnce sync.Once
}

func New(lookup Lookup, options ...PipelineOptionFunc) *Pipeline {
	p := &Pipeline{
		lookup:   lookup,
		workers:  1,
		now:      time.Now,
		doneChan: make(chan struct{}),
	}
	for _, option := range options {
		option(p)
	}
	if p.progress == nil {
		p.progress = NewLogProgress(p.logger, defaultProgressInterval)
	}
	return p
}

func (p *Pipeline) SetInput(input plugin.Input) {
	p.input = input
}

func (p *Pipeline) AddOutput(output plugin.Output) {
	p.outputs = append(p.outputs, output)
}

// Start starts the configured plugins
func (p *Pipeline) Start() error {
	// A stopped pipeline cannot be restarted
	select {
	case <-p.doneChan:
		return errors.New("cannot start a stopped pipeline")
	default:
	}
	if p.input != nil {
		if err := p.input.Start(); err != nil {
			return fmt.Errorf("failed to start input: %w", err)
		}
	}
	for _, output := range p.outputs {
		if err := output.Start(); err != nil {
			return fmt.Errorf("failed to start output: %w", err)
		}
	}
	return nil
}

// Stop shuts down all plugins
// Stop is idempotent and safe to call multiple times
func (p *Pipeline) Stop() error {
	var stopErrors []error

	p.stopOnce.Do(func() {
		close(p.doneChan)

		if p.input != nil {
			if err := p.input.Stop(); err != nil {
				stopErrors = append(stopErrors, fmt.Errorf("failed to stop input: %w", err))
			}
		}
		for _, output := range p.outputs {
			if err := output.Stop(); err != nil {
				stopErrors = append(stopErrors, fmt.Errorf("failed to stop output: %w", err))
			}
		}
	})

	return errors.Join(stopErrors...)
}

// Run starts the plugins, scans the input, delivers the report to every
// output and stops the plugins again. No report is delivered when the scan
// fails.
func (p *Pipeline) Run(ctx context.Context) (event.Report, error) {
	if p.input == nil {
		return event.Report{}, errors.New("no input configured")
	}
	if err := p.Start(); err != nil {
		return event.Report{}, errors.Join(err, p.Stop())
	}
	report, err := p.Scan(ctx, p.input.Credentials(ctx))
	if err == nil {
		err = p.deliver(ctx, report)
	}
	if stopErr := p.Stop(); stopErr != nil {
		err = errors.Join(err, stopErr)
	}
	if err != nil {
		return event.Report{}, err
	}
	return report, nil
}

func (p *Pipeline) deliver(ctx context.Context, report event.Report) error {
	var outputErrors []error
	for _, output := range p.outputs {
		if err := output.Report(ctx, report); err != nil {
			outputErrors = append(outputErrors, fmt.Errorf("failed to deliver report: %w", err))
		}
	}
	return errors.Join(outputErrors...)
}

// Scan indexes every credential by digest, performs one lookup per distinct
// prefix and returns the names whose digest the backend reported. Repeated
// (name, password) pairs are counted once. The first error from the
// credentials or the backend ends the scan.
func (p *Pipeline) Scan(
	ctx context.Context,
	creds iter.Seq2[event.Credential, error],
) (event.Report, error) {
	report := event.Report{
		Backend:   p.backend,
		StartedAt: p.now(),
		Matches:   []string{},
	}

	var (
		index digest.Index
		read  int
	)
	for cred, err := range creds {
		if err != nil {
			return event.Report{}, err
		}
		index.Upsert(digest.Sum(cred.Password), cred.Name)
		read++
		p.progress.CredentialRead(read, false)
	}
	p.progress.CredentialRead(read, true)
	report.CredentialsScanned = index.Credentials()

	buckets := index.Drain()
	matches, err := p.check(ctx, buckets)
	if err != nil {
		return event.Report{}, err
	}
	report.Matches = matches
	report.PrefixesQueried = len(buckets)
	report.FinishedAt = p.now()
	return report, nil
}

// check looks up every bucket, at most p.workers at a time. Matches are
// merged in bucket order regardless of completion order.
func (p *Pipeline) check(
	ctx context.Context,
	buckets []digest.Bucket,
) ([]string, error) {
	results := make([][]string, len(buckets))
	var (
		doneMutex sync.Mutex
		done      int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, bucket := range buckets {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			candidates, err := p.lookup.Lookup(gctx, bucket.Prefix)
			if err != nil {
				return err
			}
			results[i] = bucket.Match(candidates)
			doneMutex.Lock()
			done++
			p.progress.PrefixChecked(done, len(buckets))
			doneMutex.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// The caller's context may have ended before any lookup was started
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set := make(map[string]struct{})
	for _, names := range results {
		for _, name := range names {
			set[name] = struct{}{}
		}
	}
	ret := make([]string, 0, len(set))
	for name := range set {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret, nil
}
