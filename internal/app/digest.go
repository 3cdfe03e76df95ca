package app

import (
	"hash"

	"github.com/zeebo/blake3"
)

// NewDigest returns the hash used for the data-only digest.
func NewDigest() hash.Hash {
	return blake3.New()
}
