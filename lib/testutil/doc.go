// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// [RequireReceive] and [RequireNoReceive] wrap the select-with-timeout
// pattern used when a test waits on a goroutine, such as a flicker
// session drawing after a fake clock advance. They are the only place
// tests use wall-clock timeouts; all animation timing in tests runs on
// clock.Fake.
//
// Helpers call t.Fatalf on failure rather than returning errors.
package testutil
