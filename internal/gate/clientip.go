package gate

import (
	"net/http"
	"strings"
)

// UnknownIdentity is the shared rate-limit bucket for requests that carry no
// forwarded-IP headers. Coalescing unidentifiable clients into one bucket is
// intentionally strict: all anonymous traffic competes for the same budget.
const UnknownIdentity = "unknown"

// ClientIdentity derives the rate-limit key from the request's network
// origin: the first X-Forwarded-For entry, then X-Real-IP, then the shared
// "unknown" bucket. The result is not an authenticated identity.
func ClientIdentity(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return UnknownIdentity
}
