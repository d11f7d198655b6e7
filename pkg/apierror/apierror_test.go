package apierror

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWrite(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fn   func(w http.ResponseWriter)
		code int
		body string
	}{
		{"plain", func(w http.ResponseWriter) { Write(w, http.StatusUnauthorized, "Invalid manager password") }, http.StatusUnauthorized, `{"error":"Invalid manager password"}`},
		{"details", func(w http.ResponseWriter) { WriteDetails(w, http.StatusBadRequest, "Daily API error", "quota exceeded") }, http.StatusBadRequest, `{"error":"Daily API error","details":"quota exceeded"}`},
		{"empty details kept", func(w http.ResponseWriter) { WriteDetails(w, http.StatusBadRequest, "Daily API error", "") }, http.StatusBadRequest, `{"error":"Daily API error","details":""}`},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res := httptest.NewRecorder()
			tc.fn(res)
			if res.Code != tc.code {
				t.Fatalf("expected %d got %d", tc.code, res.Code)
			}
			if ct := res.Header().Get("Content-Type"); ct != "application/json" {
				t.Fatalf("unexpected content type %q", ct)
			}
			if got := strings.TrimSpace(res.Body.String()); got != tc.body {
				t.Fatalf("expected body %s got %s", tc.body, got)
			}
		})
	}
}
