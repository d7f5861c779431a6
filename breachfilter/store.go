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
	"context"
	"os"
	"sync"

	"github.com/FastFilter/xorfilter"
	"github.com/blinklabs-io/pwcheck/digest"
	"github.com/blinklabs-io/pwcheck/plugin"
)

// Store answers lookups from a directory of shard filters. Prefixes arrive
// in ascending order, so only the most recently used shard is kept.
type Store struct {
	logger plugin.Logger
	dir    string

	mu     sync.Mutex
	shard  string
	filter *xorfilter.BinaryFuse8
	loads  int
}

// NewStore returns a store for the filters in dir
func NewStore(dir string, opts ...StoreOptionFunc) (*Store, error) {
	if err := CheckDir(dir); err != nil {
		return nil, err
	}
	s := &Store{
		dir: dir,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Lookup returns the candidates for prefix
func (s *Store) Lookup(
	ctx context.Context,
	prefix digest.Prefix,
) (digest.Candidates, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	filter, err := s.load(Shard(prefix))
	if err != nil {
		return nil, err
	}
	return candidates{filter: filter, prefix: prefix}, nil
}

// Loads returns the number of shard files read so far
func (s *Store) Loads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads
}

func (s *Store) load(shard string) (*xorfilter.BinaryFuse8, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.filter != nil && s.shard == shard {
		return s.filter, nil
	}
	path := ShardPath(s.dir, shard)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ShardError{Shard: shard, Path: path, Err: err}
	}
	filter, err := DecodeFilter(data)
	if err != nil {
		return nil, &ShardError{Shard: shard, Path: path, Err: err}
	}
	s.shard = shard
	s.filter = filter
	s.loads++
	if s.logger != nil {
		s.logger.Debug(
			"loaded filter shard",
			"shard", shard,
			"bytes", len(data),
		)
	}
	return filter, nil
}
