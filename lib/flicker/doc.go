// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package flicker encodes ChipTAN-optisch challenges into flicker
// frames and sequences those frames onto a timer.
//
// A TAN generator reads five light sensors held against the screen.
// One of the five bars carries a clock; the other four carry one
// nibble of the challenge. [Encode] turns a challenge into the frame
// sequence: it prepends the synchronization preamble "0FFF", maps
// every hex digit through a reversed-bit lookup table (bar 1 is the
// least significant bit), and swaps each pair of nibbles so the
// low-order nibble of every byte is transmitted first.
//
// [Sequencer] is the animation state machine. Every frame is shown
// twice, once with the clock bar lit and once dark, so the sensor sees
// both edges before the data changes. The tick interval can be changed
// while the code is flickering: [Sequencer.Reconfigure] only records
// the new interval, and the next [Sequencer.Tick] reports
// Rescheduled without advancing so the timer owner can restart its
// ticker without skipping a frame.
//
// [Session] owns a Sequencer together with a [clock.Ticker] and a
// [Renderer], running the tick loop on one goroutine. Reconfigure and
// Stop are safe to call from other goroutines; after Stop returns the
// renderer is never called again.
//
// Encoding is total: characters outside [0-9A-Fa-f] decode to nibble
// zero. Challenges are validated by the layer that receives them
// (see [Validate]), not by the encoder.
package flicker
