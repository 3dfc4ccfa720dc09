// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package flickerhttp serves encoded flicker codes over HTTP, for
// displays that render the bars themselves (a web page, a kiosk).
//
// Endpoints:
//
//	GET /v1/frames/{challenge}  frame document, JSON or CBOR
//	GET /healthz                liveness
//
// The frame document is [framedoc.Document]. Clients that send
// "Accept: application/cbor" receive it in deterministic CBOR. Every
// response carries an X-Request-Id header; a valid UUID supplied by the
// client is echoed, otherwise a new one is generated. Challenges are
// never logged, only their fingerprints.
package flickerhttp
