// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
)

// Algorithm names a hash function.
type Algorithm uint8

const (
	// SHA1 is the BitTorrent v1 info-hash function (20 bytes).
	SHA1 Algorithm = iota + 1

	// SHA256 is the BitTorrent v2 info-hash function (32 bytes).
	SHA256

	// BLAKE3 is unkeyed BLAKE3 with a 32-byte output.
	BLAKE3

	// BLAKE2b is BLAKE2b-256.
	BLAKE2b
)

// Algorithms lists every supported algorithm, in the order help text
// presents them.
var Algorithms = []Algorithm{SHA1, SHA256, BLAKE3, BLAKE2b}

// String returns the algorithm name as accepted by [ParseAlgorithm].
func (algorithm Algorithm) String() string {
	switch algorithm {
	case SHA1:
		return "sha1"
	case SHA256:
		return "sha256"
	case BLAKE3:
		return "blake3"
	case BLAKE2b:
		return "blake2b"
	default:
		return fmt.Sprintf("unknown(%d)", algorithm)
	}
}

// Size returns the digest length in bytes, or 0 for an unknown
// algorithm.
func (algorithm Algorithm) Size() int {
	switch algorithm {
	case SHA1:
		return sha1.Size
	case SHA256, BLAKE3, BLAKE2b:
		return 32
	default:
		return 0
	}
}

// ParseAlgorithm parses an algorithm name.
func ParseAlgorithm(name string) (Algorithm, error) {
	for _, algorithm := range Algorithms {
		if algorithm.String() == name {
			return algorithm, nil
		}
	}
	return 0, fmt.Errorf("unknown digest algorithm %q (expected sha1, sha256, blake3, or blake2b)", name)
}

// New returns a streaming hasher for the algorithm.
func New(algorithm Algorithm) (hash.Hash, error) {
	switch algorithm {
	case SHA1:
		return sha1.New(), nil
	case SHA256:
		return sha256.New(), nil
	case BLAKE3:
		return blake3.New(), nil
	case BLAKE2b:
		return blake2b.New256(nil)
	default:
		return nil, fmt.Errorf("unsupported digest algorithm: %d", algorithm)
	}
}

// Digest is a computed hash along with the algorithm that produced it.
type Digest struct {
	Algorithm Algorithm
	Sum       []byte
}

// String returns the lowercase hex encoding of the digest bytes.
func (digest Digest) String() string {
	return hex.EncodeToString(digest.Sum)
}

// MarshalText implements encoding.TextMarshaler so digests render as
// hex strings in JSON output.
func (digest Digest) MarshalText() ([]byte, error) {
	return []byte(digest.String()), nil
}

// Sum computes the digest of data. It panics on an unknown algorithm;
// callers validate user input with [ParseAlgorithm] first.
func Sum(algorithm Algorithm, data []byte) Digest {
	hasher, err := New(algorithm)
	if err != nil {
		panic("digest: " + err.Error())
	}
	hasher.Write(data)
	return Digest{Algorithm: algorithm, Sum: hasher.Sum(nil)}
}

// SumReader streams reader through the hash function, keeping memory
// usage constant regardless of input size.
func SumReader(algorithm Algorithm, reader io.Reader) (Digest, error) {
	hasher, err := New(algorithm)
	if err != nil {
		return Digest{}, err
	}
	if _, err := io.Copy(hasher, reader); err != nil {
		return Digest{}, fmt.Errorf("hashing: %w", err)
	}
	return Digest{Algorithm: algorithm, Sum: hasher.Sum(nil)}, nil
}

// ParseDigest parses a hex-encoded digest for the given algorithm.
// Returns an error if the string is not valid hex or decodes to the
// wrong length.
func ParseDigest(algorithm Algorithm, hexString string) (Digest, error) {
	size := algorithm.Size()
	if size == 0 {
		return Digest{}, fmt.Errorf("unsupported digest algorithm: %d", algorithm)
	}
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return Digest{}, fmt.Errorf("parsing %s digest: %w", algorithm, err)
	}
	if len(decoded) != size {
		return Digest{}, fmt.Errorf("%s digest is %d bytes, want %d", algorithm, len(decoded), size)
	}
	return Digest{Algorithm: algorithm, Sum: decoded}, nil
}

// Equal reports whether two digests have the same algorithm and bytes.
func Equal(a, b Digest) bool {
	return a.Algorithm == b.Algorithm && string(a.Sum) == string(b.Sum)
}
