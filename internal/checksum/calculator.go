package checksum

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Calculator is an interface for computing content digests.
type Calculator interface {
	// Sum returns the hex-encoded digest of content.
	Sum(content []byte) string
}

// BLAKE3 implements Calculator using BLAKE3-256.
//
// BLAKE3 is a zero-size type and is safe for concurrent use by multiple goroutines.
// Using value semantics (pass by value) eliminates heap allocations.
type BLAKE3 struct{}

// New creates a new BLAKE3 based calculator.
// Returns by value to avoid heap allocation (BLAKE3 is a zero-size type).
func New() BLAKE3 {
	return BLAKE3{}
}

// Sum computes the BLAKE3-256 digest of content.
func (c BLAKE3) Sum(content []byte) string {
	hash := blake3.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// Short abbreviates a hex digest to its first 12 characters for display.
func Short(digest string) string {
	const n = 12
	if len(digest) <= n {
		return digest
	}
	return digest[:n]
}
