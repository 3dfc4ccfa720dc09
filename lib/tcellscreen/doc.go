// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tcellscreen shows a flicker code on a tcell screen. A
// [Screen] is the [flicker.Renderer] of a [flicker.Session]: the
// session's goroutine calls Draw on every tick, while [Screen.Run]
// handles keyboard input on the caller's goroutine and forwards delay
// changes to the session.
//
// The caller owns the tcell screen: it calls Init before Run and Fini
// afterwards.
package tcellscreen
