package domain

import (
	"fmt"
	"math/rand"
)

// JoinCodeLength is the number of ASCII digits in a join code.
const JoinCodeLength = 6

// MaxJoinCodeAttempts bounds how many times code allocation retries after
// colliding with an existing table before giving up.
const MaxJoinCodeAttempts = 10

// joinCodeSpace is the number of distinct join codes.
const joinCodeSpace = 1000000

// NewJoinCode draws a uniformly random six-digit join code. Leading zeros
// are preserved so the rendered code is always six characters.
func NewJoinCode(rng *rand.Rand) string {
	return fmt.Sprintf("%06d", rng.Intn(joinCodeSpace))
}

// ValidateJoinCode ensures a code is exactly six ASCII digits.
func ValidateJoinCode(code string) error {
	if len(code) != JoinCodeLength {
		return ErrInvalidJoinCode
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return ErrInvalidJoinCode
		}
	}
	return nil
}
