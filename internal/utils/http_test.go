package utils

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name   string
		data   any
		status int
		body   string
	}{
		{name: "session", data: map[string]string{"id": "u-1"}, status: http.StatusOK, body: `{"id":"u-1"}`},
		{name: "prefix", data: struct {
			Prefix string `json:"prefix"`
		}{Prefix: ""}, status: http.StatusOK, body: `{"prefix":""}`},
		{name: "nil", data: nil, status: http.StatusOK, body: `null`},
		{name: "custom status", data: []int{1}, status: http.StatusAccepted, body: `[1]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			n, err := WriteJSON(w, tt.data, tt.status)

			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if n != len(tt.body) {
				t.Errorf("expected %d bytes written, got %d", len(tt.body), n)
			}
			if w.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected Content-Type application/json, got %q", ct)
			}
			if w.Body.String() != tt.body {
				t.Errorf("expected body %s, got %s", tt.body, w.Body.String())
			}
		})
	}
}

func TestWriteJSON_MarshalError(t *testing.T) {
	w := httptest.NewRecorder()

	n, err := WriteJSON(w, math.Inf(1), http.StatusOK)

	if err == nil {
		t.Fatal("expected marshal error")
	}
	if n != 0 {
		t.Errorf("expected 0 bytes, got %d", n)
	}
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
}
