// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package flickerui shows a flicker code in the terminal. Built on
// bubbletea, the [Model] draws the five bars with lipgloss, marks the
// first and last bar with a triangle, and collects the TAN the user
// reads off the generator.
//
// The model owns a [flicker.Sequencer] and drives it from a single
// chain of tea.Tick messages, so every sequencer event happens inside
// Update. Changing the delay reconfigures the sequencer; the tick
// already in flight redisplays the upcoming frame and schedules the
// chain at the new interval. Restarting the code starts a new chain
// and ticks from the old one are dropped.
//
//	challenge -> flicker.Encode -> [Model] <- bubbletea event loop
//	                                  |
//	                          [terminal output]
package flickerui
