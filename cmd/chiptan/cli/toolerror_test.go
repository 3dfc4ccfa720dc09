// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestToolError_ErrorWithoutHint(t *testing.T) {
	t.Parallel()
	err := Validation("challenge is empty")
	if err.Error() != "challenge is empty" {
		t.Errorf("Error() = %q, want %q", err.Error(), "challenge is empty")
	}
}

func TestToolError_ErrorWithHint(t *testing.T) {
	t.Parallel()
	err := Validation("challenge is empty").
		WithHint("Pass the challenge shown by your bank as an argument.")

	want := "challenge is empty\n\nPass the challenge shown by your bank as an argument."
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestToolError_WithHintReturnsReceiver(t *testing.T) {
	t.Parallel()
	original := Validation("bad input")
	chained := original.WithHint("fix it")
	if original != chained {
		t.Error("WithHint should return the same pointer")
	}
}

func TestToolError_HintSurvivesErrorsAs(t *testing.T) {
	t.Parallel()
	inner := Validation("bad delay").WithHint("use a value between 10 and 1000")
	wrapped := fmt.Errorf("show failed: %w", inner)

	var toolErr *ToolError
	if !errors.As(wrapped, &toolErr) {
		t.Fatal("errors.As should find ToolError in wrapped chain")
	}
	if toolErr.Hint != "use a value between 10 and 1000" {
		t.Errorf("Hint = %q after unwrap", toolErr.Hint)
	}
}

func TestToolError_UnwrapReachesCause(t *testing.T) {
	t.Parallel()
	cause := errors.New("permission denied")
	err := Forbidden("binding port: %w", cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}
}

func TestToolError_EmptyHintNotAppended(t *testing.T) {
	t.Parallel()
	err := Internal("unexpected failure")
	if strings.Contains(err.Error(), "\n\n") {
		t.Error("empty hint should not add blank line to error message")
	}
}

func TestToolError_AllCategories(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      *ToolError
		category ErrorCategory
	}{
		{"Validation", Validation("bad"), CategoryValidation},
		{"NotFound", NotFound("missing"), CategoryNotFound},
		{"Forbidden", Forbidden("denied"), CategoryForbidden},
		{"Conflict", Conflict("duplicate"), CategoryConflict},
		{"Transient", Transient("timeout"), CategoryTransient},
		{"Internal", Internal("bug"), CategoryInternal},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if test.err.Category != test.category {
				t.Errorf("Category = %q, want %q", test.err.Category, test.category)
			}
			hinted := test.err.WithHint("try again")
			if hinted.Hint != "try again" {
				t.Errorf("Hint = %q after WithHint, want %q", hinted.Hint, "try again")
			}
		})
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()
	var err error = &ExitError{Code: 2}
	coder, ok := err.(interface{ ExitCode() int })
	if !ok || coder.ExitCode() != 2 {
		t.Fatalf("ExitError does not report code 2")
	}
	if err.Error() != "exit code 2" {
		t.Errorf("Error() = %q", err.Error())
	}
}
