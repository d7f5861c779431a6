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

// Package digest implements password digests and the prefix-partitioned
// index used for k-anonymity range lookups.
package digest

import (
	"crypto/sha1" //nolint:gosec // the breach corpus is keyed by SHA-1
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// Size is the length of a hex encoded digest
	Size = sha1.Size * 2
	// PrefixSize is the length of the prefix sent to the range API
	PrefixSize = 5
	// SuffixSize is the length of the suffix returned by the range API
	SuffixSize = Size - PrefixSize
)

// Digest is a lowercase hex encoded SHA-1 digest of a password
type Digest string

// Prefix is the leading PrefixSize characters of a Digest
type Prefix string

// Sum returns the digest of the raw password bytes
func Sum(password string) Digest {
	sum := sha1.Sum([]byte(password)) //nolint:gosec
	return Digest(hex.EncodeToString(sum[:]))
}

// Parse validates a hex encoded digest in either case and returns it in
// canonical lowercase form
func Parse(s string) (Digest, error) {
	if len(s) != Size {
		return "", fmt.Errorf("invalid digest length %d", len(s))
	}
	s = strings.ToLower(s)
	if !isHex(s) {
		return "", fmt.Errorf("invalid digest %q: not hex", s)
	}
	return Digest(s), nil
}

// ParsePrefix validates a hex encoded prefix in either case and returns it
// in canonical lowercase form
func ParsePrefix(s string) (Prefix, error) {
	if len(s) != PrefixSize {
		return "", fmt.Errorf("invalid prefix length %d", len(s))
	}
	s = strings.ToLower(s)
	if !isHex(s) {
		return "", fmt.Errorf("invalid prefix %q: not hex", s)
	}
	return Prefix(s), nil
}

// Prefix returns the range query key for d
func (d Digest) Prefix() Prefix {
	return Prefix(d[:PrefixSize])
}

// Suffix returns the part of d not covered by its prefix
func (d Digest) Suffix() string {
	return string(d[PrefixSize:])
}

func (d Digest) String() string {
	return string(d)
}

func (p Prefix) String() string {
	return string(p)
}

// Join reconstructs a full digest from a prefix and a suffix returned by
// the range API
func (p Prefix) Join(suffix string) (Digest, error) {
	if len(suffix) != SuffixSize {
		return "", fmt.Errorf(
			"invalid suffix length %d for prefix %s",
			len(suffix),
			p,
		)
	}
	return Parse(string(p) + suffix)
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
