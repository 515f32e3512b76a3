package middleware

import (
	"log/slog"
	"net/http"

	"github.com/bagaswara/porto/internal/gate"
	"github.com/bagaswara/porto/internal/identity"
	pkghttp "github.com/bagaswara/porto/pkg/http"
)

// CSRFProtection validates CSRF tokens on state-changing admin requests.
// The session gate runs before this middleware, so a user is always present
// in the request context here; the token in the X-CSRF-Token header (or the
// CSRF cookie) must have been issued to that user at login.
func CSRFProtection(csrfManager *identity.CSRFTokenManager, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isStateChangingMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			user := gate.GetUserFromContext(r)
			if user == nil {
				pkghttp.WriteForbidden(w, "CSRF validation requires a session")
				return
			}

			csrfToken := r.Header.Get("X-CSRF-Token")
			if csrfToken == "" {
				if cookie, err := r.Cookie(identity.CSRFCookieName); err == nil {
					csrfToken = cookie.Value
				}
			}

			if csrfToken == "" {
				logger.Warn("CSRF token missing in request",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("user_id", user.ID))
				pkghttp.WriteForbidden(w, "CSRF token missing")
				return
			}

			if !csrfManager.ValidateToken(csrfToken, user.ID) {
				logger.Warn("CSRF token validation failed",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("user_id", user.ID))
				pkghttp.WriteForbidden(w, "CSRF token invalid")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// isStateChangingMethod checks if the HTTP method modifies state
func isStateChangingMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
		return true
	default:
		return false
	}
}
