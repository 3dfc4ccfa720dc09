// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package framedoc describes an encoded challenge as a serializable
// document, shared by "chiptan encode" and the HTTP frame endpoint.
package framedoc

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/bureau-foundation/chiptan/lib/codec"
	"github.com/bureau-foundation/chiptan/lib/flicker"
)

// Document is an encoded challenge. Frames are rendered with
// flicker.Frame.String, clock bar first and always dark.
type Document struct {
	Fingerprint string   `json:"fingerprint"`
	Code        string   `json:"code"`
	Length      int      `json:"length"`
	Frames      []string `json:"frames"`
}

// New encodes challenge and describes the result. The challenge itself
// appears only inside Code, after the preamble.
func New(challenge string) Document {
	frames := flicker.Encode(challenge)
	rendered := make([]string, len(frames))
	for i, frame := range frames {
		rendered[i] = frame.String()
	}
	return Document{
		Fingerprint: flicker.Fingerprint(challenge),
		Code:        flicker.Preamble + challenge,
		Length:      len(frames),
		Frames:      rendered,
	}
}

// Format selects an output encoding.
type Format string

const (
	// FormatText writes one frame per line with its index.
	FormatText Format = "text"
	// FormatJSON writes an indented JSON document.
	FormatJSON Format = "json"
	// FormatCBOR writes deterministic CBOR.
	FormatCBOR Format = "cbor"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatCBOR:
		return FormatCBOR, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json or cbor)", name)
	}
}

// Write encodes document to w in format.
func (document Document) Write(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(document)
	case FormatCBOR:
		data, err := codec.Marshal(document)
		if err != nil {
			return fmt.Errorf("encoding frame document: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatText:
		if _, err := fmt.Fprintf(w, "# %s (%d frames, fingerprint %s)\n", document.Code, document.Length, document.Fingerprint); err != nil {
			return err
		}
		for index, frame := range document.Frames {
			if _, err := fmt.Fprintf(w, "%3d %s\n", index, frame); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
