// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package flicker

import "strings"

// Bars is the number of bars in one flicker frame: the clock bar
// followed by four data bars.
const Bars = 5

// ClockBar is the index of the clock bar within a [Frame].
const ClockBar = 0

// Frame is one flicker pattern, ordered left to right as drawn:
// the clock bar, then the nibble bits from least to most significant.
// A true bar is drawn lit (white), a false bar dark (black).
type Frame [Bars]bool

// Clock reports whether the clock bar is lit.
func (frame Frame) Clock() bool { return frame[ClockBar] }

// Bit reports whether bar is lit. Out-of-range bars are dark.
func (frame Frame) Bit(bar int) bool {
	if bar < 0 || bar >= Bars {
		return false
	}
	return frame[bar]
}

// WithClock returns a copy of frame with the clock bar set.
func (frame Frame) WithClock(clock bool) Frame {
	frame[ClockBar] = clock
	return frame
}

// Nibble returns the value carried by the four data bars.
func (frame Frame) Nibble() uint8 {
	var value uint8
	for bit := 0; bit < 4; bit++ {
		if frame[bit+1] {
			value |= 1 << bit
		}
	}
	return value
}

// String renders the frame as five characters, '1' for a lit bar and
// '0' for a dark one, clock bar first.
func (frame Frame) String() string {
	var builder strings.Builder
	builder.Grow(Bars)
	for _, lit := range frame {
		if lit {
			builder.WriteByte('1')
		} else {
			builder.WriteByte('0')
		}
	}
	return builder.String()
}
