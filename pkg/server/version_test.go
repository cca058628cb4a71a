package server

import (
	"net/http/httptest"
	"testing"
)

func TestNegotiateAPIVersion(t *testing.T) {
	tests := []struct {
		accept string
		want   string
	}{
		{"", "v1"},
		{"application/json", "v1"},
		{"application/vnd.chefkoch.v1+json", "v1"},
		{"application/vnd.chefkoch.v2+json", "v1"},
		{"text/html, application/vnd.chefkoch.v1+json;q=0.9", "v1"},
	}

	for _, tt := range tests {
		t.Run(tt.accept, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tt.accept != "" {
				r.Header.Set("Accept", tt.accept)
			}
			if got := negotiateAPIVersion(r); got != tt.want {
				t.Errorf("negotiateAPIVersion(%q) = %q, want %q", tt.accept, got, tt.want)
			}
		})
	}
}

func TestIsValidAPIVersion(t *testing.T) {
	if !isValidAPIVersion("v1") {
		t.Error("v1 should be valid")
	}
	if isValidAPIVersion("v2") || isValidAPIVersion("") {
		t.Error("only v1 is supported")
	}
}
