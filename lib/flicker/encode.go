// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package flicker

// Preamble is the synchronization identifier prepended to every
// challenge before encoding.
const Preamble = "0FFF"

// nibbleFrames maps a nibble value to its data bars. The bit order is
// reversed relative to conventional binary: bar 1 carries the least
// significant bit, bar 4 the most significant, so 0x1 is 1000 and 0x8
// is 0001. The clock bar is always dark here.
var nibbleFrames = [16]Frame{
	{false, false, false, false, false}, {false, true, false, false, false},
	{false, false, true, false, false}, {false, true, true, false, false},
	{false, false, false, true, false}, {false, true, false, true, false},
	{false, false, true, true, false}, {false, true, true, true, false},
	{false, false, false, false, true}, {false, true, false, false, true},
	{false, false, true, false, true}, {false, true, true, false, true},
	{false, false, false, true, true}, {false, true, false, true, true},
	{false, false, true, true, true}, {false, true, true, true, true},
}

// Nibble decodes one hex digit. Anything that is not a hex digit
// decodes to zero.
func Nibble(character byte) uint8 {
	switch {
	case character >= '0' && character <= '9':
		return character - '0'
	case character >= 'A' && character <= 'F':
		return character - 'A' + 10
	case character >= 'a' && character <= 'f':
		return character - 'a' + 10
	default:
		return 0
	}
}

// NibbleFrame returns the frame carrying value in its data bars, with
// the clock bar dark. Only the low four bits of value are used.
func NibbleFrame(value uint8) Frame {
	return nibbleFrames[value&0x0f]
}

// Encode converts a challenge into its flicker frame sequence, one
// frame per byte of [Preamble]+challenge.
//
// Characters are taken in pairs and swapped: the frame for the second
// character of each pair is placed first. When the prefixed code has
// odd length the last slot has no partner and is left as the zero
// frame.
//
// Every returned frame has its clock bar dark; the [Sequencer] sets
// it at display time.
func Encode(challenge string) []Frame {
	code := Preamble + challenge
	frames := make([]Frame, len(code))
	for index := 0; index+1 < len(code); index += 2 {
		frames[index] = NibbleFrame(Nibble(code[index+1]))
		frames[index+1] = NibbleFrame(Nibble(code[index]))
	}
	return frames
}
