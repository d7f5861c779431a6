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

package breachfilter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/FastFilter/xorfilter"
	"github.com/blinklabs-io/pwcheck/digest"
	"github.com/blinklabs-io/pwcheck/plugin"
)

// Shards between progress messages
const progressShards = 256

// BuildStats describes a finished build
type BuildStats struct {
	Shards  int
	Digests int
}

// Builder turns a corpus dump into a directory of shard filters
type Builder struct {
	logger plugin.Logger
	dir    string
	shard  string
	keys   []uint64
	stats  BuildStats
}

// NewBuilder returns a builder writing shards into dir
func NewBuilder(dir string, opts ...BuilderOptionFunc) *Builder {
	b := &Builder{
		dir: dir,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build reads a dump of "HASH:COUNT" lines sorted by hash and writes one
// filter per shard. Only shards with at least one digest are written.
func (b *Builder) Build(ctx context.Context, r io.Reader) (BuildStats, error) {
	b.shard = ""
	b.keys = b.keys[:0]
	b.stats = BuildStats{}
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return b.stats, fmt.Errorf("creating filter directory: %w", err)
	}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		hash, _, _ := strings.Cut(line, ":")
		d, err := digest.Parse(hash)
		if err != nil {
			return b.stats, &DumpError{Line: lineNo, Err: err}
		}
		shard := Shard(d.Prefix())
		if shard != b.shard {
			if shard < b.shard {
				return b.stats, &DumpError{
					Line: lineNo,
					Err: fmt.Errorf(
						"dump is not sorted: shard %s after %s",
						shard,
						b.shard,
					),
				}
			}
			if err := ctx.Err(); err != nil {
				return b.stats, err
			}
			if err := b.flush(); err != nil {
				return b.stats, err
			}
			b.shard = shard
		}
		b.keys = append(b.keys, Key(d))
	}
	if err := scanner.Err(); err != nil {
		return b.stats, fmt.Errorf("reading dump: %w", err)
	}
	if err := b.flush(); err != nil {
		return b.stats, err
	}
	b.info(
		"finished building filters",
		"shards", b.stats.Shards,
		"digests", b.stats.Digests,
		"dir", b.dir,
	)
	return b.stats, nil
}

// flush writes the filter of the current shard
func (b *Builder) flush() error {
	if len(b.keys) == 0 {
		return nil
	}
	keys := b.keys
	slices.Sort(keys)
	keys = slices.Compact(keys)
	filter, err := xorfilter.PopulateBinaryFuse8(keys)
	if err != nil {
		return fmt.Errorf("building filter for shard %s: %w", b.shard, err)
	}
	if err := b.writeShard(filter); err != nil {
		return fmt.Errorf("writing shard %s: %w", b.shard, err)
	}
	b.stats.Shards++
	b.stats.Digests += len(keys)
	if b.stats.Shards%progressShards == 0 {
		b.info(
			"building filters",
			"shard", b.shard,
			"shards", b.stats.Shards,
			"digests", b.stats.Digests,
		)
	}
	b.keys = b.keys[:0]
	return nil
}

// writeShard writes to a temporary file first so an interrupted build never
// leaves a truncated shard behind
func (b *Builder) writeShard(filter *xorfilter.BinaryFuse8) (err error) {
	tmp, err := os.CreateTemp(b.dir, b.shard+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	w := bufio.NewWriter(tmp)
	if err = WriteFilter(w, filter); err != nil {
		return err
	}
	if err = w.Flush(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), ShardPath(b.dir, b.shard))
}

func (b *Builder) info(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Info(msg, args...)
	}
}

// CheckDir reports whether dir looks like a filter directory
func CheckDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("filter directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("filter directory %s is not a directory", dir)
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*"+shardExt))
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return errors.New("filter directory contains no shards")
	}
	return nil
}
