package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name      string
		write     func(w http.ResponseWriter)
		status    int
		wantError string
		wantKind  string
	}{
		{
			name:      "plain",
			write:     func(w http.ResponseWriter) { WriteError(w, http.StatusNotFound, "session not found") },
			status:    http.StatusNotFound,
			wantError: "session not found",
		},
		{
			name: "with kind",
			write: func(w http.ResponseWriter) {
				WriteKindError(w, http.StatusUnprocessableEntity, "cannot divide by zero", "division_by_zero")
			},
			status:    http.StatusUnprocessableEntity,
			wantError: "cannot divide by zero",
			wantKind:  "division_by_zero",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tc.write(w)

			if w.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Fatalf("expected Content-Type application/json, got %q", ct)
			}

			var body map[string]string
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decoding response body: %v", err)
			}
			if body["error"] != tc.wantError {
				t.Fatalf("expected error %q, got %q", tc.wantError, body["error"])
			}
			if kind, ok := body["kind"]; ok != (tc.wantKind != "") || kind != tc.wantKind {
				t.Fatalf("expected kind %q, got %q (present %t)", tc.wantKind, kind, ok)
			}
			if _, ok := body["request_id"]; ok {
				t.Fatal("request id belongs in the X-Request-ID header only")
			}
		})
	}
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()

	Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if body := w.Body.String(); body != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", body)
	}
}
