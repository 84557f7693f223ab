package httpx

import (
	"context"
	"net/http"

	"freader/internal/platform/crypto"
)

type contextKey string

const (
	claimsKey    contextKey = "claims"
	requestIDKey contextKey = "requestID"
)

// ContextWithClaims stores the verified token claims of the caller.
func ContextWithClaims(ctx context.Context, claims *crypto.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFrom returns the caller's token claims, or nil on public routes.
func ClaimsFrom(r *http.Request) *crypto.Claims {
	if v, ok := r.Context().Value(claimsKey).(*crypto.Claims); ok {
		return v
	}
	return nil
}

// UserIDFrom retrieves the authenticated account ID from the request context.
func UserIDFrom(r *http.Request) string {
	if c := ClaimsFrom(r); c != nil {
		return c.Sub
	}
	return ""
}

// EmailFrom retrieves the authenticated account email from the request context.
func EmailFrom(r *http.Request) string {
	if c := ClaimsFrom(r); c != nil {
		return c.Email
	}
	return ""
}

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}
