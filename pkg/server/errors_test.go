package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	cerrors "github.com/chefkoch/chefkoch/pkg/errors"
)

func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		name string
		code cerrors.ErrorCode
		want int
	}{
		{"invalid request", cerrors.ErrCodeInvalidRequest, http.StatusBadRequest},
		{"invalid recipe", cerrors.ErrCodeInvalidRecipe, http.StatusUnprocessableEntity},
		{"not found", cerrors.ErrCodeNotFound, http.StatusNotFound},
		{"method not allowed", cerrors.ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{"rate limit", cerrors.ErrCodeRateLimitExceeded, http.StatusTooManyRequests},
		{"unavailable", cerrors.ErrCodeUnavailable, http.StatusServiceUnavailable},
		{"timeout", cerrors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{"internal", cerrors.ErrCodeInternal, http.StatusInternalServerError},
		{"unknown defaults to internal", cerrors.ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatusFromCode(tt.code); got != tt.want {
				t.Fatalf("HTTPStatusFromCode(%q) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestRetryableFromCode(t *testing.T) {
	tests := []struct {
		code cerrors.ErrorCode
		want bool
	}{
		{cerrors.ErrCodeInvalidRequest, false},
		{cerrors.ErrCodeInvalidRecipe, false},
		{cerrors.ErrCodeNotFound, false},
		{cerrors.ErrCodeMethodNotAllowed, false},
		{cerrors.ErrCodeTimeout, true},
		{cerrors.ErrCodeUnavailable, true},
		{cerrors.ErrCodeRateLimitExceeded, true},
		{cerrors.ErrCodeInternal, true},
		{cerrors.ErrorCode("SOMETHING_ELSE"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := retryableFromCode(tt.code); got != tt.want {
				t.Fatalf("retryableFromCode(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestMergeDetails(t *testing.T) {
	if got := mergeDetails(nil, nil); got != nil {
		t.Fatalf("expected nil, got %#v", got)
	}

	got := mergeDetails(map[string]any{"a": 1, "shared": "old"}, map[string]any{"b": 2, "shared": "new"})
	if got["a"] != 1 || got["b"] != 2 || got["shared"] != "new" {
		t.Fatalf("unexpected merge result %#v", got)
	}
}

func TestWriteError_WritesErrorResponse(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), contextKeyRequestID, "req-123"))
	w := httptest.NewRecorder()

	WriteError(w, req, http.StatusBadRequest, cerrors.ErrCodeInvalidRequest, "bad request", false, map[string]any{"k": "v"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Code != string(cerrors.ErrCodeInvalidRequest) {
		t.Fatalf("expected code %q, got %q", cerrors.ErrCodeInvalidRequest, resp.Code)
	}
	if resp.RequestID != "req-123" {
		t.Fatalf("expected requestId req-123, got %q", resp.RequestID)
	}
	if resp.Retryable {
		t.Fatal("expected retryable=false")
	}
	if resp.Details["k"] != "v" {
		t.Fatalf("expected details to include k=v, got %#v", resp.Details)
	}
}

func TestWriteErrorFromErr_StructuredError(t *testing.T) {
	w := httptest.NewRecorder()
	err := cerrors.WrapWithContext(cerrors.ErrCodeInvalidRecipe, "recipe has a circle",
		errors.New("B -> C -> B"), map[string]any{"node": "B"})

	WriteErrorFromErr(w, httptest.NewRequest(http.MethodPost, "/v1/plan", nil), err, "fallback", map[string]any{"extra": "yes"})

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, w.Code)
	}

	var resp ErrorResponse
	if uerr := json.Unmarshal(w.Body.Bytes(), &resp); uerr != nil {
		t.Fatalf("failed to unmarshal response: %v", uerr)
	}
	if resp.Message != "recipe has a circle" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if resp.Details["node"] != "B" || resp.Details["extra"] != "yes" || resp.Details["error"] != "B -> C -> B" {
		t.Fatalf("unexpected details %#v", resp.Details)
	}
	if resp.RequestID == "" {
		t.Fatal("expected a generated request ID")
	}
}

func TestWriteErrorFromErr_PlainErrorIsInternal(t *testing.T) {
	w := httptest.NewRecorder()

	WriteErrorFromErr(w, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("boom"), "fallback", nil)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Code != string(cerrors.ErrCodeInternal) || resp.Message != "fallback" {
		t.Fatalf("unexpected response %#v", resp)
	}
	if resp.Details["error"] != "boom" {
		t.Fatalf("expected details error=boom, got %#v", resp.Details)
	}
}
