// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads chiptan configuration.
//
// Configuration comes from a single YAML file named by the --config
// flag or, failing that, the CHIPTAN_CONFIG environment variable. When
// neither is set, [Default] is used unchanged. There is no search path.
//
// The file sets the flicker geometry and timing defaults, the location
// of the persisted settings file, the HTTP listen address and the log
// level. ${VAR} and ${VAR:-default} are expanded in paths.
//
// Values saved by the viewer (bar width and delay, see package
// settings) override the file; command-line flags override both.
package config
