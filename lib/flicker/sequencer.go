// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package flicker

import "time"

// DefaultInterval is the tick interval used when nothing else is
// configured.
const DefaultInterval = 50 * time.Millisecond

// Tick is the result of one [Sequencer.Tick].
type Tick struct {
	// Frame is the pattern to display, clock bar included.
	Frame Frame

	// Position is the index of Frame's data in the encoded sequence.
	Position int

	// Rescheduled is true when this tick consumed a pending interval
	// change instead of advancing. Frame is then the pattern the next
	// regular tick will show, so redisplaying it does not skip or
	// repeat data. The timer owner must restart its ticker at
	// [Sequencer.Interval] before the next tick.
	Rescheduled bool
}

// Sequencer is the flicker animation state machine. It holds the
// encoded frames, the current position and clock phase, and the tick
// interval.
//
// A Sequencer is not safe for concurrent use. Tick, Reconfigure and the
// accessors must be called from a single goroutine; [Session] provides
// that serialization for goroutine-based callers.
type Sequencer struct {
	frames   []Frame
	position int
	clock    bool
	interval time.Duration
	pending  bool
}

// NewSequencer starts a sequence at the first frame with the clock
// phase lit. The frames are copied. The caller schedules the first
// tick after interval.
func NewSequencer(frames []Frame, interval time.Duration) *Sequencer {
	owned := make([]Frame, len(frames))
	copy(owned, frames)
	return &Sequencer{
		frames:   owned,
		clock:    true,
		interval: interval,
	}
}

// Tick advances the animation by one timer firing and returns what to
// display.
//
// Each frame is shown twice: first with the clock bar lit, then dark.
// The position moves to the next frame (wrapping to zero at the end)
// after the dark display. If a Reconfigure is pending, Tick clears it
// and returns the upcoming pattern with Rescheduled set, leaving
// position and phase untouched.
func (sequencer *Sequencer) Tick() Tick {
	if sequencer.pending {
		sequencer.pending = false
		return Tick{
			Frame:       sequencer.Peek(),
			Position:    sequencer.position,
			Rescheduled: true,
		}
	}

	tick := Tick{
		Frame:    sequencer.Peek(),
		Position: sequencer.position,
	}

	if sequencer.clock {
		sequencer.clock = false
	} else {
		sequencer.clock = true
		sequencer.position++
		if sequencer.position >= len(sequencer.frames) {
			sequencer.position = 0
		}
	}
	return tick
}

// Reconfigure records a new tick interval. It takes effect on the next
// Tick, which reports Rescheduled; position and clock phase are not
// changed.
func (sequencer *Sequencer) Reconfigure(interval time.Duration) {
	sequencer.interval = interval
	sequencer.pending = true
}

// Peek returns the pattern the next regular Tick will display without
// changing any state.
func (sequencer *Sequencer) Peek() Frame {
	var frame Frame
	if len(sequencer.frames) > 0 {
		frame = sequencer.frames[sequencer.position]
	}
	return frame.WithClock(sequencer.clock)
}

// Interval returns the current tick interval.
func (sequencer *Sequencer) Interval() time.Duration { return sequencer.interval }

// Position returns the index of the frame the next regular Tick shows.
func (sequencer *Sequencer) Position() int { return sequencer.position }

// Len returns the number of frames in the sequence.
func (sequencer *Sequencer) Len() int { return len(sequencer.frames) }

// Pending reports whether an interval change is waiting for the next
// Tick.
func (sequencer *Sequencer) Pending() bool { return sequencer.pending }
