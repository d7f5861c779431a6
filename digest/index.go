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

package digest

import (
	"sort"
)

// Index groups credential names by digest and digests by prefix, so that
// each distinct prefix is looked up exactly once. The zero value is ready
// to use. Index is not safe for concurrent use.
type Index struct {
	prefixes map[Prefix]map[Digest]map[string]struct{}
	entries  int
}

// Entry is a digest together with the sorted names of the credentials that
// share it
type Entry struct {
	Digest Digest
	Names  []string
}

// Bucket is every entry under a single prefix, sorted by digest
type Bucket struct {
	Prefix  Prefix
	Entries []Entry
}

// Upsert records that the credential called name has digest d. Inserting
// the same pair again has no effect.
func (i *Index) Upsert(d Digest, name string) {
	if i.prefixes == nil {
		i.prefixes = make(map[Prefix]map[Digest]map[string]struct{})
	}
	digests, ok := i.prefixes[d.Prefix()]
	if !ok {
		digests = make(map[Digest]map[string]struct{})
		i.prefixes[d.Prefix()] = digests
	}
	names, ok := digests[d]
	if !ok {
		names = make(map[string]struct{})
		digests[d] = names
	}
	if _, ok := names[name]; ok {
		return
	}
	names[name] = struct{}{}
	i.entries++
}

// Len returns the number of distinct prefixes
func (i *Index) Len() int {
	return len(i.prefixes)
}

// Credentials returns the number of distinct (digest, name) pairs
func (i *Index) Credentials() int {
	return i.entries
}

// Drain returns every bucket in ascending prefix order and empties the
// index
func (i *Index) Drain() []Bucket {
	prefixes := make([]Prefix, 0, len(i.prefixes))
	for p := range i.prefixes {
		prefixes = append(prefixes, p)
	}
	sort.Slice(prefixes, func(a, b int) bool {
		return prefixes[a] < prefixes[b]
	})

	buckets := make([]Bucket, 0, len(prefixes))
	for _, p := range prefixes {
		digests := i.prefixes[p]
		bucket := Bucket{
			Prefix:  p,
			Entries: make([]Entry, 0, len(digests)),
		}
		for d, nameSet := range digests {
			names := make([]string, 0, len(nameSet))
			for name := range nameSet {
				names = append(names, name)
			}
			sort.Strings(names)
			bucket.Entries = append(bucket.Entries, Entry{
				Digest: d,
				Names:  names,
			})
		}
		sort.Slice(bucket.Entries, func(a, b int) bool {
			return bucket.Entries[a].Digest < bucket.Entries[b].Digest
		})
		buckets = append(buckets, bucket)
	}

	i.prefixes = nil
	i.entries = 0
	return buckets
}

// Match returns the names of every entry whose digest is contained in c
func (b Bucket) Match(c Candidates) []string {
	var ret []string
	for _, entry := range b.Entries {
		if c.Contains(entry.Digest) {
			ret = append(ret, entry.Names...)
		}
	}
	return ret
}
