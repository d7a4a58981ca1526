// Package httpkit provides tiny HTTP helpers and adapters
package httpkit

import (
	"context"
	"net/http"
	"strings"

	perrs "herdbook/internal/platform/errors"
)

// TokenFunc resolves a bearer token to the owner id it belongs to
type TokenFunc func(ctx context.Context, token string) (ownerID string, err error)

// Port implements middleware.AuthPort by reading Authorization and delegating to a TokenFunc
type Port struct {
	resolve TokenFunc
}

// NewPortFunc builds a Port from a simple resolver function
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{resolve: fn}
}

// Verify extracts the owner id from the Authorization Bearer token
// returns unauthorized when the header is missing, malformed, or the resolver rejects the token
func (p *Port) Verify(r *http.Request) (string, error) {
	authz := r.Header.Get("Authorization")
	// normalize whitespace around the whole header
	s := strings.TrimSpace(authz)
	if s == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	ls := strings.ToLower(s)
	const prefix = "bearer"
	if !strings.HasPrefix(ls, prefix) {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	// slice after "Bearer" (no trailing space required), then trim any spaces before token
	raw := strings.TrimSpace(s[len(prefix):])
	if raw == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}

	if p.resolve == nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}

	oid, err := p.resolve(r.Context(), raw)
	if err != nil {
		// resolvers classify their own failures; a verifier outage must stay
		// retryable instead of reading as a bad token
		if _, ok := perrs.As(err); ok {
			return "", err
		}
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	return oid, nil
}
