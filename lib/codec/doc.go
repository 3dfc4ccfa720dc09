// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the shared CBOR configuration.
//
// Frame documents travel as JSON to browsers and humans and as CBOR to
// embedded readers that want a compact, deterministic encoding. The
// encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map
// keys, smallest integer encoding, no indefinite-length items, so the
// same challenge always yields identical bytes.
//
//	data, err := codec.Marshal(document)
//	err = codec.Unmarshal(data, &document)
//
// Types carrying json tags encode with the same field names in CBOR.
package codec
