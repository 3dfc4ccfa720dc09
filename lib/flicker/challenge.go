// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package flicker

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/zeebo/blake3"
)

// ErrEmptyChallenge is returned by [Validate] for an empty challenge.
var ErrEmptyChallenge = errors.New("flicker: empty challenge")

// InvalidChallengeError reports a non-hex character in a challenge.
type InvalidChallengeError struct {
	// Offset is the byte offset of the first invalid character.
	Offset int

	// Character is the offending byte.
	Character byte
}

func (e *InvalidChallengeError) Error() string {
	return fmt.Sprintf("flicker: invalid challenge character %q at offset %d", e.Character, e.Offset)
}

// Validate checks that challenge is a non-empty string of hex digits.
// Surfaces that accept challenges from users call this before
// [Encode]; Encode itself accepts anything.
func Validate(challenge string) error {
	if challenge == "" {
		return ErrEmptyChallenge
	}
	for offset := 0; offset < len(challenge); offset++ {
		character := challenge[offset]
		if !isHexDigit(character) {
			return &InvalidChallengeError{Offset: offset, Character: character}
		}
	}
	return nil
}

func isHexDigit(character byte) bool {
	return (character >= '0' && character <= '9') ||
		(character >= 'A' && character <= 'F') ||
		(character >= 'a' && character <= 'f')
}

// Fingerprint returns a short, stable identifier for a challenge: the
// first 8 bytes of its BLAKE3 digest, hex encoded. Logs carry the
// fingerprint instead of the challenge itself.
func Fingerprint(challenge string) string {
	digest := blake3.Sum256([]byte(challenge))
	return hex.EncodeToString(digest[:8])
}
