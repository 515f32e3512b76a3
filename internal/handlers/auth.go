package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/bagaswara/porto/internal/gate"
	"github.com/bagaswara/porto/internal/identity"
	pkghttp "github.com/bagaswara/porto/pkg/http"
	"github.com/bagaswara/porto/pkg/logger"
)

// AuthHandler handles admin login and logout
type AuthHandler struct {
	identity    identity.Service
	csrfManager *identity.CSRFTokenManager
	timing      *identity.TimingDelay
	cookies     identity.CookieConfig
	sessionTTL  time.Duration
	adminPrefix string
	audit       *logger.AuditLogger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(
	identityService identity.Service,
	csrfManager *identity.CSRFTokenManager,
	timing *identity.TimingDelay,
	cookies identity.CookieConfig,
	sessionTTL time.Duration,
	adminPrefix string,
	audit *logger.AuditLogger,
) *AuthHandler {
	return &AuthHandler{
		identity:    identityService,
		csrfManager: csrfManager,
		timing:      timing,
		cookies:     cookies,
		sessionTTL:  sessionTTL,
		adminPrefix: adminPrefix,
		audit:       audit,
	}
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	User       identity.User `json:"user"`
	RedirectTo string        `json:"redirectTo"`
	CSRFToken  string        `json:"csrf_token"`
}

// Login authenticates the admin and issues the session and CSRF cookies.
// The opaque session token never reaches page JavaScript; it travels only
// in the httpOnly cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	ipAddress := gate.ClientIdentity(r)
	userAgent := r.Header.Get("User-Agent")

	// Track elapsed time so failures can be padded to a uniform duration.
	start := time.Now()

	session, err := h.identity.SignIn(r.Context(), req.Email, req.Password)
	h.timing.WaitFrom(start, err == nil)

	if err != nil {
		h.audit.LogAuthAttempt(logger.AuditEvent{
			EventType:     "admin_login",
			IPAddress:     ipAddress,
			UserAgent:     userAgent,
			Success:       false,
			FailureReason: failureReason(err),
		})

		if errors.Is(err, identity.ErrInvalidCredentials) {
			pkghttp.WriteUnauthorized(w, "Authentication failed")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	maxAge := session.ExpiresIn
	if maxAge <= 0 {
		maxAge = int(h.sessionTTL.Seconds())
	}

	identity.SetSessionCookie(w, session.Token, maxAge, h.cookies)

	csrfToken, err := h.csrfManager.GenerateToken(session.User.ID)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}
	identity.SetCSRFCookie(w, csrfToken, maxAge, h.cookies)

	h.audit.LogAuthAttempt(logger.AuditEvent{
		EventType: "admin_login",
		UserID:    session.User.ID,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		Success:   true,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(LoginResponse{
		User:       session.User,
		RedirectTo: h.sanitizeRedirect(req.RedirectTo),
		CSRFToken:  csrfToken,
	})
}

// Logout invalidates the session and clears both cookies. It always
// succeeds from the client's point of view.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := identity.SessionTokenFromRequest(r)
	if token != "" {
		if err := h.identity.SignOut(r.Context(), token); err != nil {
			// Cookies are cleared regardless; the session will expire
			// on its own.
			h.audit.LogAccountAction("admin_logout_remote_failure", "", gate.ClientIdentity(r), nil)
		}
	}

	if cookie, err := r.Cookie(identity.CSRFCookieName); err == nil {
		h.csrfManager.RevokeToken(cookie.Value)
	}

	identity.ClearSessionCookie(w, h.cookies)
	identity.ClearCSRFCookie(w, h.cookies)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Logged out",
	})
}

// sanitizeRedirect keeps post-login redirects on this site. Anything that
// is not a local absolute path falls back to the admin dashboard.
func (h *AuthHandler) sanitizeRedirect(redirectTo string) string {
	dashboard := "/" + h.adminPrefix
	if redirectTo == "" {
		return dashboard
	}
	if !strings.HasPrefix(redirectTo, "/") || strings.HasPrefix(redirectTo, "//") {
		return dashboard
	}
	return redirectTo
}

func failureReason(err error) string {
	if errors.Is(err, identity.ErrInvalidCredentials) {
		return "invalid_credentials"
	}
	return "identity_service_error"
}
