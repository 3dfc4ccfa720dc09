// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports the build version of the chiptan binary.
//
// [GitCommit], [GitDirty], [BuildTime] and [Version] are injected at
// build time via -ldflags -X, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/chiptan/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// When they are not injected (go install, go run, tests) the VCS
// stamp the Go toolchain embeds in the binary fills in the commit,
// dirty flag and commit time.
package version
