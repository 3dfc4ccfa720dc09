// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock is the timer service behind flicker animation.
//
// Code that schedules ticks takes a [Clock] instead of calling the time
// package directly. Production code passes [Real]; tests pass a
// [FakeClock], which stands still until Advance is called and fires
// due tickers deterministically:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	session, _ := flicker.StartSession(flicker.SessionConfig{Clock: fake, ...})
//	fake.Advance(50 * time.Millisecond) // exactly one tick
//
// Tickers support Reset, which the flicker session uses to change the
// tick interval while the animation runs.
package clock
