// Package random seeds pseudo-random generators from crypto/rand.
//
// Callers that need reproducible output inject their own fixed-seed
// generator; production paths draw a fresh high-entropy seed per use.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed draws a high-entropy seed from crypto/rand.
func NewSeed() (int64, error) {
	var raw [8]byte
	if _, err := crand.Read(raw[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.BigEndian.Uint64(raw[:])), nil
}

// NewRand returns a math/rand generator seeded with NewSeed.
func NewRand() (*rand.Rand, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return rand.New(rand.NewSource(seed)), nil
}
