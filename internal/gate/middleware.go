package gate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bagaswara/porto/internal/identity"
)

// contextKey is a custom type for context keys
type contextKey string

// UserContextKey is the key under which the verified user is stored for
// downstream handlers.
const UserContextKey contextKey = "user"

// SessionVerifier resolves a session credential to a user. Any error is
// treated as "no session" by the controller (fail closed).
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*identity.User, error)
}

// ControllerConfig holds the gate decision settings
type ControllerConfig struct {
	AdminRoutePrefix string        // path segment guarding the admin subtree
	VerifyTimeout    time.Duration // bound on the identity service call
}

// Controller intercepts every request and decides whether it may proceed:
// pass through, redirect to login, redirect to the dashboard, or reject with
// 429/403. Non-admin routes always pass with no further checks.
type Controller struct {
	config    ControllerConfig
	limiter   *Limiter
	allowlist *Allowlist
	verifier  SessionVerifier
	logger    *slog.Logger
}

// NewController creates the gate controller. The allowlist may be empty
// (allow all); the verifier and limiter are required.
func NewController(config ControllerConfig, limiter *Limiter, allowlist *Allowlist, verifier SessionVerifier, logger *slog.Logger) *Controller {
	if config.VerifyTimeout <= 0 {
		config.VerifyTimeout = 5 * time.Second
	}
	return &Controller{
		config:    config,
		limiter:   limiter,
		allowlist: allowlist,
		verifier:  verifier,
		logger:    logger,
	}
}

// Middleware returns the request interceptor. Mounted ahead of all routes.
func (c *Controller) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rc := Classify(r.URL.Path, c.config.AdminRoutePrefix)
		if !rc.IsAdminRoute {
			next.ServeHTTP(w, r)
			return
		}

		clientID := ClientIdentity(r)

		// Layered allow-list check, ahead of rate limiting and session
		// logic. An empty list allows everyone.
		if !c.allowlist.IsAllowed(clientID) {
			c.logger.Warn("admin request from disallowed address",
				slog.String("client", clientID),
				slog.String("path", r.URL.Path))
			writeForbidden(w)
			return
		}

		// The login POST is the credential-submitting request: it is rate
		// limited but never session checked. GETs of the login page are not
		// counted, so reloading the form cannot lock anyone out.
		if rc.IsLoginPage && r.Method == http.MethodPost {
			result := c.limiter.Check(clientID)
			if result.Blocked {
				c.logger.Warn("login attempt rate limited",
					slog.String("client", clientID),
					slog.Int("retry_after_seconds", result.RetryAfter))
				writeRateLimited(w, result)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		user := c.verifySession(r)

		if rc.IsLoginPage {
			if user != nil {
				// Already signed in; send them to the dashboard.
				http.Redirect(w, r, "/"+c.config.AdminRoutePrefix, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		if user == nil {
			c.redirectToLogin(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// verifySession asks the identity service about the request's session
// cookie. A service failure is logged and treated as "no session" — the
// gate fails closed, never open.
func (c *Controller) verifySession(r *http.Request) *identity.User {
	token := identity.SessionTokenFromRequest(r)
	if token == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(r.Context(), c.config.VerifyTimeout)
	defer cancel()

	user, err := c.verifier.Verify(ctx, token)
	if err != nil {
		if !errors.Is(err, identity.ErrNoSession) {
			c.logger.Error("session verification failed",
				slog.Any("error", err),
				slog.String("path", r.URL.Path))
		}
		return nil
	}
	return user
}

// redirectToLogin sends the client to the login page, carrying the original
// path so the login flow can return the user to their destination.
func (c *Controller) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	loginURL := url.URL{
		Path:     "/" + c.config.AdminRoutePrefix + "/login",
		RawQuery: url.Values{"redirectTo": {r.URL.Path}}.Encode(),
	}
	http.Redirect(w, r, loginURL.String(), http.StatusSeeOther)
}

// rateLimitedResponse is the 429 body for blocked login attempts
type rateLimitedResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	ResetAt string `json:"resetAt"`
}

func writeRateLimited(w http.ResponseWriter, result Result) {
	minutes := (result.RetryAfter + 59) / 60
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(rateLimitedResponse{
		Error:   "rate_limit_exceeded",
		Message: fmt.Sprintf("Too many login attempts. Try again in %d minute(s).", minutes),
		ResetAt: result.ResetAt.UTC().Format(time.RFC3339),
	})
}

func writeForbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "forbidden",
		"message": "Your address is not allowed to access this area.",
	})
}

// GetUserFromContext extracts the verified user placed by the gate, or nil
// for ungated requests.
func GetUserFromContext(r *http.Request) *identity.User {
	user, ok := r.Context().Value(UserContextKey).(*identity.User)
	if !ok {
		return nil
	}
	return user
}
