package trace

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateRequestID(t *testing.T) {
	a, b := GenerateRequestID(), GenerateRequestID()
	if !strings.HasPrefix(a, "req_") || len(a) != len("req_")+16 {
		t.Errorf("unexpected id %q", a)
	}
	if a == b {
		t.Error("ids should differ")
	}
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantSame bool
	}{
		{"caller id kept", "abc-123_DEF", true},
		{"invalid chars replaced", "abc 123", false},
		{"too long replaced", strings.Repeat("a", maxIDLength+1), false},
		{"missing generated", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set(RequestIDHeader, tt.header)
			}
			got := RequestID(r)
			if (got == tt.header) != tt.wantSame {
				t.Errorf("RequestID = %q (header %q)", got, tt.header)
			}
			if !tt.wantSame && !strings.HasPrefix(got, "req_") {
				t.Errorf("generated id %q lacks prefix", got)
			}
		})
	}
}

func TestMiddleware(t *testing.T) {
	var inner, again string
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner = GetRequestID(r.Context())
		again = RequestID(r)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if inner == "" || inner != again {
		t.Errorf("context id %q, RequestID %q", inner, again)
	}
	if GetRequestID(context.Background()) != "" {
		t.Error("empty context should have no id")
	}
}
