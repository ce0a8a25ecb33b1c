// Package trace assigns each request an ID that is echoed in the response
// and attached to every log record for that request.
package trace

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"
)

type ContextKey string

const (
	RequestIDKey    ContextKey = "request_id"
	RequestIDHeader            = "X-Request-ID"
	maxIDLength                = 64
)

// GenerateRequestID returns "req_" followed by 16 random hex digits.
func GenerateRequestID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(b)
}

// RequestID returns the ID stored by Middleware, an acceptable ID supplied
// by the caller, or a fresh one.
func RequestID(r *http.Request) string {
	if id := GetRequestID(r.Context()); id != "" {
		return id
	}
	if id := r.Header.Get(RequestIDHeader); validID(id) {
		return id
	}
	return GenerateRequestID()
}

// validID accepts short IDs made of letters, digits, '-' and '_'.
func validID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// Middleware stores the request ID in the context so later middleware and
// handlers see the same value.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := RequestID(r)
		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
	})
}
