// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package flickerhttp

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/bureau-foundation/chiptan/lib/codec"
	"github.com/bureau-foundation/chiptan/lib/flicker"
	"github.com/bureau-foundation/chiptan/lib/framedoc"
)

func serve(t *testing.T, handler http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(method, path, nil)
	for name, value := range headers {
		request.Header.Set(name, value)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestFramesJSON(t *testing.T) {
	t.Parallel()
	handler := NewRouter(nil)
	recorder := serve(t, handler, http.MethodGet, "/v1/frames/1234", nil)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", recorder.Code, recorder.Body)
	}
	if got := recorder.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}

	var document framedoc.Document
	if err := json.Unmarshal(recorder.Body.Bytes(), &document); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	want := []string{"01111", "00000", "01111", "01111", "00100", "01000", "00010", "01100"}
	if document.Length != 8 || strings.Join(document.Frames, " ") != strings.Join(want, " ") {
		t.Errorf("document = %+v, want frames %v", document, want)
	}
	if document.Code != "0FFF1234" || document.Fingerprint != flicker.Fingerprint("1234") {
		t.Errorf("document header = %q/%q", document.Code, document.Fingerprint)
	}
}

func TestFramesCBOR(t *testing.T) {
	t.Parallel()
	handler := NewRouter(nil)
	recorder := serve(t, handler, http.MethodGet, "/v1/frames/1A2B", map[string]string{
		"Accept": "application/json;q=0.5, application/cbor",
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", recorder.Code, recorder.Body)
	}
	if got := recorder.Header().Get("Content-Type"); got != codec.ContentType {
		t.Errorf("Content-Type = %q, want %q", got, codec.ContentType)
	}
	var document framedoc.Document
	if err := codec.Unmarshal(recorder.Body.Bytes(), &document); err != nil {
		t.Fatalf("decoding CBOR body: %v", err)
	}
	if document.Length != 8 || document.Frames[4] != "00101" {
		t.Errorf("document = %+v", document)
	}
}

func TestFramesRejectsInvalidChallenge(t *testing.T) {
	t.Parallel()
	handler := NewRouter(nil)
	tests := []struct {
		name string
		path string
	}{
		{"non-hex character", "/v1/frames/12G4"},
		{"too long", "/v1/frames/" + strings.Repeat("A", MaxChallengeLength+1)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			recorder := serve(t, handler, http.MethodGet, test.path, nil)
			if recorder.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", recorder.Code)
			}
			var response errorResponse
			if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
				t.Fatalf("decoding error body: %v", err)
			}
			if response.Error == "" || response.RequestID != recorder.Header().Get(RequestIDHeader) {
				t.Errorf("error response = %+v", response)
			}
		})
	}
}

func TestRequestIDs(t *testing.T) {
	t.Parallel()
	handler := NewRouter(nil)

	recorder := serve(t, handler, http.MethodGet, "/healthz", nil)
	generated := recorder.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(generated); err != nil {
		t.Fatalf("generated request id %q is not a UUID", generated)
	}

	supplied := uuid.NewString()
	recorder = serve(t, handler, http.MethodGet, "/healthz", map[string]string{RequestIDHeader: supplied})
	if got := recorder.Header().Get(RequestIDHeader); got != supplied {
		t.Errorf("request id = %q, want echoed %q", got, supplied)
	}

	recorder = serve(t, handler, http.MethodGet, "/healthz", map[string]string{RequestIDHeader: "not-a-uuid"})
	if got := recorder.Header().Get(RequestIDHeader); got == "not-a-uuid" {
		t.Error("invalid client request id was echoed")
	}

	recorder = serve(t, handler, http.MethodGet, "/nowhere", nil)
	if recorder.Code != http.StatusNotFound || recorder.Header().Get(RequestIDHeader) == "" {
		t.Errorf("unmatched route: status %d, request id %q", recorder.Code, recorder.Header().Get(RequestIDHeader))
	}
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()
	recorder := serve(t, NewRouter(nil), http.MethodPost, "/v1/frames/1234", nil)
	if recorder.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", recorder.Code)
	}
}

func TestChallengeNeverLogged(t *testing.T) {
	t.Parallel()
	var logs bytes.Buffer
	handler := NewRouter(slog.New(slog.NewJSONHandler(&logs, nil)))

	serve(t, handler, http.MethodGet, "/v1/frames/DEADBEEF42", nil)
	serve(t, handler, http.MethodGet, "/v1/frames/DEADBEEFZZ", nil)

	if strings.Contains(logs.String(), "DEADBEEF") {
		t.Errorf("challenge appears in logs:\n%s", logs.String())
	}
	if !strings.Contains(logs.String(), flicker.Fingerprint("DEADBEEF42")) {
		t.Errorf("fingerprint missing from logs:\n%s", logs.String())
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()
	recorder := serve(t, NewRouter(nil), http.MethodGet, "/healthz", nil)
	if recorder.Code != http.StatusOK || !strings.Contains(recorder.Body.String(), `"ok"`) {
		t.Errorf("health = %d %s", recorder.Code, recorder.Body)
	}
}
