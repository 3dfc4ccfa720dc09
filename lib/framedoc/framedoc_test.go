// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package framedoc

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/bureau-foundation/chiptan/lib/codec"
)

func TestNew(t *testing.T) {
	t.Parallel()
	document := New("1234")
	if document.Code != "0FFF1234" {
		t.Errorf("Code = %q, want 0FFF1234", document.Code)
	}
	if document.Length != 8 || len(document.Frames) != 8 {
		t.Errorf("Length = %d, frames = %d, want 8", document.Length, len(document.Frames))
	}
	if document.Frames[0] != "01111" || document.Frames[1] != "00000" {
		t.Errorf("first frames = %v, want 01111 00000", document.Frames[:2])
	}
	if len(document.Fingerprint) != 16 {
		t.Errorf("Fingerprint = %q", document.Fingerprint)
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"text", "JSON", "cbor"} {
		if _, err := ParseFormat(name); err != nil {
			t.Errorf("ParseFormat(%q): %v", name, err)
		}
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Error("ParseFormat(yaml) should fail")
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()
	var buffer bytes.Buffer
	if err := New("1A2B").Write(&buffer, FormatJSON); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var decoded Document
	if err := json.Unmarshal(buffer.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded.Code != "0FFF1A2B" || decoded.Frames[4] != "00101" {
		t.Fatalf("decoded %+v", decoded)
	}
}

func TestWriteCBOR(t *testing.T) {
	t.Parallel()
	var buffer bytes.Buffer
	if err := New("1A2B").Write(&buffer, FormatCBOR); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var decoded Document
	if err := codec.Unmarshal(buffer.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not CBOR: %v", err)
	}
	if decoded.Length != 8 || decoded.Frames[6] != "01101" {
		t.Fatalf("decoded %+v", decoded)
	}
}

func TestWriteText(t *testing.T) {
	t.Parallel()
	var buffer bytes.Buffer
	if err := New("12").Write(&buffer, FormatText); err != nil {
		t.Fatalf("Write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want header + 6 frames:\n%s", len(lines), buffer.String())
	}
	if lines[1] != "  0 01111" {
		t.Errorf("first frame line = %q", lines[1])
	}
}
