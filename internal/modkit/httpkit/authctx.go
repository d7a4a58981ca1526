package httpkit

import (
	"net/http"
	"strings"

	perrs "herdbook/internal/platform/errors"
	pnet "herdbook/internal/platform/net"
)

// Owner returns the verified owner id from the request context
func Owner(r *http.Request) (string, error) {
	oid := pnet.OwnerID(r.Context())
	if oid == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return oid, nil
}

// MustOwner returns the verified owner id or panics
// only use on routes behind the auth middleware
func MustOwner(r *http.Request) string {
	oid, err := Owner(r)
	if err != nil {
		panic(err)
	}
	return oid
}

// JWT returns the raw bearer token from the Authorization header
func JWT(r *http.Request) (string, error) {
	authz := r.Header.Get("Authorization")
	if strings.TrimSpace(authz) == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	// case-insensitive Bearer prefix (don't trim the whole header first)
	const prefix = "bearer "
	if len(authz) < len(prefix) || strings.ToLower(authz[:len(prefix)]) != prefix {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(authz[len(prefix):])
	if raw == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return raw, nil
}

// MustJWT returns the raw bearer token or panics
// only use on routes protected by the auth middleware
func MustJWT(r *http.Request) string {
	raw, err := JWT(r)
	if err != nil {
		panic(err)
	}
	return raw
}
