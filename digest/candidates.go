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

// Candidates answers whether a digest is present in the breach corpus for
// one prefix
type Candidates interface {
	Contains(d Digest) bool
}

// CandidateSet is the set of full digests returned for a single prefix
type CandidateSet map[Digest]struct{}

// type check
var _ Candidates = CandidateSet(nil)

func (s CandidateSet) Add(d Digest) {
	s[d] = struct{}{}
}

// Contains implements the Candidates interface for CandidateSet.
func (s CandidateSet) Contains(d Digest) bool {
	_, ok := s[d]
	return ok
}

func (s CandidateSet) Len() int {
	return len(s)
}
