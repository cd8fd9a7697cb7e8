package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/eviction-cares/internal/audit"
)

// ActorHeader names the operator making a request. The value is recorded in
// the audit ledger, not verified.
const ActorHeader = "X-Actor"

// Actor attaches the requesting operator and client address to the request
// context for the audit ledger
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(r.Header.Get(ActorHeader))
		ctx := audit.WithActor(r.Context(), name, clientAddr(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func clientAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
