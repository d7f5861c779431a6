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
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/FastFilter/xorfilter"
	"github.com/blinklabs-io/pwcheck/digest"
	"github.com/dgryski/go-metro"
)

const (
	// ShardSize is the number of leading hex characters that select a shard
	ShardSize = 3

	// HashSeed seeds the metro hash of every filter key
	HashSeed = 1337

	shardExt   = ".bin"
	headerSize = 24
	// Number of segments a fuse8 key spans
	fuseArity = 3
)

// ErrCorruptShard is returned when a shard file cannot be decoded
var ErrCorruptShard = errors.New("corrupt filter shard")

// Key returns the filter key of a digest
func Key(d digest.Digest) uint64 {
	return metro.Hash64([]byte(d.String()), HashSeed)
}

// Shard returns the name of the shard holding the digests under prefix
func Shard(prefix digest.Prefix) string {
	return strings.ToUpper(prefix.String()[:ShardSize])
}

// ShardPath returns the file a shard is stored in
func ShardPath(dir string, shard string) string {
	return filepath.Join(dir, shard+shardExt)
}

// WriteFilter encodes a filter as its seed and four segment parameters
// followed by the raw fingerprints, all little endian
func WriteFilter(w io.Writer, filter *xorfilter.BinaryFuse8) error {
	var header [headerSize]byte
	binary.LittleEndian.PutUint64(header[0:8], filter.Seed)
	binary.LittleEndian.PutUint32(header[8:12], filter.SegmentLength)
	binary.LittleEndian.PutUint32(header[12:16], filter.SegmentLengthMask)
	binary.LittleEndian.PutUint32(header[16:20], filter.SegmentCount)
	binary.LittleEndian.PutUint32(header[20:24], filter.SegmentCountLength)
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("writing filter header: %w", err)
	}
	if _, err := w.Write(filter.Fingerprints); err != nil {
		return fmt.Errorf("writing filter fingerprints: %w", err)
	}
	return nil
}

// DecodeFilter is the inverse of WriteFilter. The fingerprints alias data.
func DecodeFilter(data []byte) (*xorfilter.BinaryFuse8, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: short header", ErrCorruptShard)
	}
	filter := &xorfilter.BinaryFuse8{
		Seed:               binary.LittleEndian.Uint64(data[0:8]),
		SegmentLength:      binary.LittleEndian.Uint32(data[8:12]),
		SegmentLengthMask:  binary.LittleEndian.Uint32(data[12:16]),
		SegmentCount:       binary.LittleEndian.Uint32(data[16:20]),
		SegmentCountLength: binary.LittleEndian.Uint32(data[20:24]),
		Fingerprints:       data[headerSize:],
	}
	if filter.SegmentLength == 0 ||
		filter.SegmentLengthMask != filter.SegmentLength-1 {
		return nil, fmt.Errorf("%w: bad segment length", ErrCorruptShard)
	}
	// Contains probes up to two segments past SegmentCountLength
	need := uint64(filter.SegmentCountLength) +
		uint64(fuseArity-1)*uint64(filter.SegmentLength)
	if uint64(len(filter.Fingerprints)) < need {
		return nil, fmt.Errorf(
			"%w: %d fingerprints, expected %d",
			ErrCorruptShard,
			len(filter.Fingerprints),
			need,
		)
	}
	return filter, nil
}

// candidates answers membership for the digests of a single prefix
type candidates struct {
	filter *xorfilter.BinaryFuse8
	prefix digest.Prefix
}

func (c candidates) Contains(d digest.Digest) bool {
	if d.Prefix() != c.prefix {
		return false
	}
	return c.filter.Contains(Key(d))
}
