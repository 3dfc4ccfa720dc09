// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package flicker

import (
	"strings"
	"testing"
)

func frameStrings(frames []Frame) []string {
	result := make([]string, len(frames))
	for i, frame := range frames {
		result[i] = frame.String()
	}
	return result
}

func TestNibble(t *testing.T) {
	t.Parallel()
	tests := []struct {
		character byte
		want      uint8
	}{
		{'0', 0}, {'7', 7}, {'9', 9},
		{'A', 10}, {'a', 10}, {'C', 12}, {'f', 15}, {'F', 15},
		{'G', 0}, {'g', 0}, {' ', 0}, {0, 0}, {0xff, 0},
	}
	for _, test := range tests {
		if got := Nibble(test.character); got != test.want {
			t.Errorf("Nibble(%q) = %d, want %d", test.character, got, test.want)
		}
	}
}

func TestNibbleFrameBitOrder(t *testing.T) {
	t.Parallel()
	tests := []struct {
		value uint8
		want  string
	}{
		{0x0, "00000"},
		{0x1, "01000"},
		{0x2, "00100"},
		{0x8, "00001"},
		{0xA, "00101"},
		{0xF, "01111"},
	}
	for _, test := range tests {
		if got := NibbleFrame(test.value).String(); got != test.want {
			t.Errorf("NibbleFrame(%#x) = %s, want %s", test.value, got, test.want)
		}
	}
}

func TestNibbleFrameRoundTripsEveryDigit(t *testing.T) {
	t.Parallel()
	for _, character := range []byte("0123456789ABCDEFabcdef") {
		value := Nibble(character)
		frame := NibbleFrame(value)
		if frame.Clock() {
			t.Errorf("NibbleFrame(%d) has the clock bar lit", value)
		}
		if got := frame.Nibble(); got != value {
			t.Errorf("NibbleFrame(%d).Nibble() = %d", value, got)
		}
		for bit := 0; bit < 4; bit++ {
			want := value&(1<<bit) != 0
			if frame.Bit(bit+1) != want {
				t.Errorf("digit %q: bar %d = %v, want %v", character, bit+1, frame.Bit(bit+1), want)
			}
		}
	}
}

func TestEncodeLength(t *testing.T) {
	t.Parallel()
	for _, challenge := range []string{"1", "12", "1234", "0A1B2C3D4E5F", strings.Repeat("F", 300)} {
		if got, want := len(Encode(challenge)), len(Preamble)+len(challenge); got != want {
			t.Errorf("len(Encode(%d chars)) = %d, want %d", len(challenge), got, want)
		}
	}
}

func TestEncodeChallenge1234(t *testing.T) {
	t.Parallel()
	got := frameStrings(Encode("1234"))
	// "0FFF1234" swapped in pairs: F 0 F F 2 1 4 3.
	want := []string{"01111", "00000", "01111", "01111", "00100", "01000", "00010", "01100"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("Encode(1234) = %v, want %v", got, want)
	}

	frames := Encode("1234")
	if frames[0] != NibbleFrame(Nibble('F')) {
		t.Errorf("frame 0 = %s, want the pattern of 'F'", frames[0])
	}
	if frames[1] != NibbleFrame(Nibble('0')) {
		t.Errorf("frame 1 = %s, want the pattern of '0'", frames[1])
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	t.Parallel()
	first := Encode("1A2B")
	for i := 0; i < 5; i++ {
		again := Encode("1A2B")
		if len(again) != 8 {
			t.Fatalf("len(Encode(1A2B)) = %d, want 8", len(again))
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("call %d: frame %d = %s, want %s", i, j, again[j], first[j])
			}
		}
	}
	want := "01111 00000 01111 01111 00101 01000 01101 00100"
	if got := strings.Join(frameStrings(first), " "); got != want {
		t.Fatalf("Encode(1A2B) = %s, want %s", got, want)
	}
}

func TestEncodeSwapsPairs(t *testing.T) {
	t.Parallel()
	for _, challenge := range []string{"1234", "00", "abcdef0123456789", "9F3C0E"} {
		code := Preamble + challenge
		frames := Encode(challenge)
		for i := 0; i+1 < len(code); i += 2 {
			if frames[i] != NibbleFrame(Nibble(code[i+1])) {
				t.Errorf("%s: frame %d = %s, want pattern of %q", challenge, i, frames[i], code[i+1])
			}
			if frames[i+1] != NibbleFrame(Nibble(code[i])) {
				t.Errorf("%s: frame %d = %s, want pattern of %q", challenge, i+1, frames[i+1], code[i])
			}
		}
	}
}

func TestEncodeOddLengthZeroFillsLastFrame(t *testing.T) {
	t.Parallel()
	frames := Encode("123")
	if len(frames) != 7 {
		t.Fatalf("len(Encode(123)) = %d, want 7", len(frames))
	}
	if frames[6] != (Frame{}) {
		t.Errorf("unpaired last frame = %s, want 00000", frames[6])
	}
	// Pairs before the tail are still swapped: "12" -> 2, 1.
	if frames[4] != NibbleFrame(2) || frames[5] != NibbleFrame(1) {
		t.Errorf("frames 4,5 = %s %s, want 00100 01000", frames[4], frames[5])
	}
}

func TestEncodeInvalidCharactersDecodeAsZero(t *testing.T) {
	t.Parallel()
	frames := Encode("zZ")
	if frames[4] != NibbleFrame(0) || frames[5] != NibbleFrame(0) {
		t.Errorf("invalid characters encoded as %s %s, want zero frames", frames[4], frames[5])
	}
}

func TestEncodeEmptyChallengeIsPreambleOnly(t *testing.T) {
	t.Parallel()
	got := strings.Join(frameStrings(Encode("")), " ")
	if want := "01111 00000 01111 01111"; got != want {
		t.Fatalf("Encode(\"\") = %s, want %s", got, want)
	}
}

func TestFrameAccessors(t *testing.T) {
	t.Parallel()
	frame := NibbleFrame(0x5).WithClock(true)
	if got := frame.String(); got != "11010" {
		t.Fatalf("String() = %s, want 11010", got)
	}
	if !frame.Clock() {
		t.Error("Clock() = false after WithClock(true)")
	}
	if frame.Bit(-1) || frame.Bit(Bars) {
		t.Error("out-of-range bars should be dark")
	}
	if got := frame.Nibble(); got != 5 {
		t.Errorf("Nibble() = %d, want 5", got)
	}
	if NibbleFrame(0x5).Clock() {
		t.Error("WithClock modified the table entry")
	}
}
