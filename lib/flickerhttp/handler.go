// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package flickerhttp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/bureau-foundation/chiptan/lib/codec"
	"github.com/bureau-foundation/chiptan/lib/flicker"
	"github.com/bureau-foundation/chiptan/lib/framedoc"
)

// RequestIDHeader carries the request correlation id.
const RequestIDHeader = "X-Request-Id"

// MaxChallengeLength bounds the challenge accepted in a request path.
const MaxChallengeLength = 1024

type requestIDKey struct{}

// RequestID returns the request id stored by the router's middleware,
// or "" outside a request.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// errorResponse is the JSON body of every non-2xx response.
type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
}

// Handler implements the frame endpoints.
type Handler struct {
	logger *slog.Logger
}

// NewRouter returns the handler for all endpoints. Request ids are
// assigned outside the router so unmatched routes carry one too. A nil
// logger discards.
func NewRouter(logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	handler := &Handler{logger: logger}

	router := mux.NewRouter()
	router.HandleFunc("/v1/frames/{challenge}", handler.HandleFrames).Methods(http.MethodGet)
	router.HandleFunc("/healthz", handler.HandleHealth).Methods(http.MethodGet)
	router.NotFoundHandler = http.HandlerFunc(handler.handleNotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(handler.handleMethodNotAllowed)
	return requestIDMiddleware(router)
}

// requestIDMiddleware assigns the request id and echoes it in the
// response headers.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleFrames encodes the challenge in the path.
func (h *Handler) HandleFrames(w http.ResponseWriter, r *http.Request) {
	challenge := mux.Vars(r)["challenge"]
	requestID := RequestID(r.Context())

	if len(challenge) > MaxChallengeLength {
		h.sendError(w, r, http.StatusBadRequest, "challenge longer than %d characters", MaxChallengeLength)
		return
	}
	if err := flicker.Validate(challenge); err != nil {
		var invalid *flicker.InvalidChallengeError
		if errors.As(err, &invalid) {
			h.logger.Info("rejected challenge",
				"request_id", requestID,
				"offset", invalid.Offset,
			)
		}
		h.sendError(w, r, http.StatusBadRequest, "%v", err)
		return
	}

	document := framedoc.New(challenge)
	format := framedoc.FormatJSON
	if acceptsCBOR(r) {
		format = framedoc.FormatCBOR
	}
	h.logger.Info("serving frames",
		"request_id", requestID,
		"fingerprint", document.Fingerprint,
		"length", document.Length,
		"format", string(format),
	)

	if format == framedoc.FormatCBOR {
		data, err := codec.Marshal(document)
		if err != nil {
			h.sendError(w, r, http.StatusInternalServerError, "encoding frames: %v", err)
			return
		}
		w.Header().Set("Content-Type", codec.ContentType)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil {
			h.logger.Warn("writing CBOR response", "request_id", requestID, "error", err)
		}
		return
	}
	h.writeJSON(w, http.StatusOK, document)
}

func acceptsCBOR(r *http.Request) bool {
	for _, accepted := range r.Header.Values("Accept") {
		for _, mediaRange := range strings.Split(accepted, ",") {
			mediaType, _, _ := strings.Cut(strings.TrimSpace(mediaRange), ";")
			if strings.EqualFold(strings.TrimSpace(mediaType), codec.ContentType) {
				return true
			}
		}
	}
	return false
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.sendError(w, r, http.StatusNotFound, "no route for %s", r.URL.Path)
}

func (h *Handler) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.sendError(w, r, http.StatusMethodNotAllowed, "method %s not allowed", r.Method)
}

func (h *Handler) sendError(w http.ResponseWriter, r *http.Request, status int, format string, args ...any) {
	h.writeJSON(w, status, errorResponse{
		Error:     fmt.Sprintf(format, args...),
		RequestID: RequestID(r.Context()),
	})
}

// writeJSON encodes value as JSON into w. Encoding failures are logged;
// by then the status line is already sent.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		h.logger.Warn("writing JSON response", "error", err, "status", status)
	}
}
