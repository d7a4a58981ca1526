package middleware

import (
	"net/http"

	pnet "herdbook/internal/platform/net"
)

// AuthPort is the seam the identity verifier adapter implements
type AuthPort interface {
	// Verify returns the owner id for the request or an error
	Verify(r *http.Request) (ownerID string, err error)
}

// Auth rejects requests the port cannot verify and stamps the owner id
// on the context. A nil port passes everything through (useful in tests)
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			oid, err := p.Verify(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithOwner(r.Context(), oid)))
		})
	}
}
