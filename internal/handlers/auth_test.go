package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bagaswara/porto/internal/identity"
	"github.com/bagaswara/porto/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIdentity struct {
	session    *identity.Session
	signInErr  error
	signOutErr error

	signedOutToken string
}

func (s *stubIdentity) GetSession(ctx context.Context, token string) (*identity.User, error) {
	return nil, identity.ErrNoSession
}

func (s *stubIdentity) SignIn(ctx context.Context, email, password string) (*identity.Session, error) {
	if s.signInErr != nil {
		return nil, s.signInErr
	}
	return s.session, nil
}

func (s *stubIdentity) SignOut(ctx context.Context, token string) error {
	s.signedOutToken = token
	return s.signOutErr
}

func newTestAuthHandler(svc identity.Service) (*AuthHandler, *identity.CSRFTokenManager) {
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	csrf := identity.NewCSRFTokenManager()
	return NewAuthHandler(
		svc,
		csrf,
		identity.NewTimingDelay(identity.TimingConfig{}),
		identity.CookieConfig{SameSite: "lax"},
		24*time.Hour,
		"admin",
		logger.NewAuditLogger(discard),
	), csrf
}

func cookieByName(t *testing.T, resp *http.Response, name string) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLogin_Success(t *testing.T) {
	svc := &stubIdentity{
		session: &identity.Session{
			Token:     "opaque-token",
			ExpiresIn: 3600,
			User:      identity.User{ID: "user-1", Email: "admin@example.com"},
		},
	}
	handler, _ := newTestAuthHandler(svc)

	body := `{"email":"Admin@Example.com","password":"hunter22"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)
	resp := rec.Result()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	sessionCookie := cookieByName(t, resp, identity.SessionCookieName)
	require.NotNil(t, sessionCookie)
	assert.Equal(t, "opaque-token", sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)
	assert.Equal(t, 3600, sessionCookie.MaxAge)

	csrfCookie := cookieByName(t, resp, identity.CSRFCookieName)
	require.NotNil(t, csrfCookie)
	assert.False(t, csrfCookie.HttpOnly)
	assert.NotEmpty(t, csrfCookie.Value)

	assert.Contains(t, rec.Body.String(), `"redirectTo":"/admin"`)
	assert.Contains(t, rec.Body.String(), "admin@example.com")
}

func TestLogin_InvalidCredentials(t *testing.T) {
	handler, _ := newTestAuthHandler(&stubIdentity{signInErr: identity.ErrInvalidCredentials})

	body := `{"email":"admin@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)
	resp := rec.Result()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Nil(t, cookieByName(t, resp, identity.SessionCookieName))
	assert.Contains(t, rec.Body.String(), "Authentication failed")
}

func TestLogin_IdentityServiceDown(t *testing.T) {
	handler, _ := newTestAuthHandler(&stubIdentity{signInErr: context.DeadlineExceeded})

	body := `{"email":"admin@example.com","password":"hunter22"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLogin_ValidationFailures(t *testing.T) {
	handler, _ := newTestAuthHandler(&stubIdentity{})

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"email":`},
		{"missing email", `{"password":"x"}`},
		{"bad email", `{"email":"not-an-email","password":"x"}`},
		{"missing password", `{"email":"admin@example.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.Login(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLogin_RedirectSanitization(t *testing.T) {
	tests := []struct {
		name       string
		redirectTo string
		want       string
	}{
		{"empty defaults to dashboard", "", "/admin"},
		{"local path preserved", "/admin/projects", "/admin/projects"},
		{"absolute url rejected", "https://evil.example", "/admin"},
		{"protocol relative rejected", "//evil.example", "/admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubIdentity{
				session: &identity.Session{
					Token: "tok",
					User:  identity.User{ID: "user-1", Email: "admin@example.com"},
				},
			}
			handler, _ := newTestAuthHandler(svc)

			body := `{"email":"admin@example.com","password":"pw","redirectTo":"` + tt.redirectTo + `"}`
			req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(body))
			rec := httptest.NewRecorder()

			handler.Login(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `"redirectTo":"`+tt.want+`"`)
		})
	}
}

func TestLogin_SessionWithoutExpiryUsesConfiguredTTL(t *testing.T) {
	svc := &stubIdentity{
		session: &identity.Session{
			Token: "tok",
			User:  identity.User{ID: "user-1", Email: "admin@example.com"},
		},
	}
	handler, _ := newTestAuthHandler(svc)

	body := `{"email":"admin@example.com","password":"pw"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	cookie := cookieByName(t, rec.Result(), identity.SessionCookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, int((24 * time.Hour).Seconds()), cookie.MaxAge)
}

func TestLogout_ClearsCookiesAndSignsOut(t *testing.T) {
	svc := &stubIdentity{}
	handler, csrf := newTestAuthHandler(svc)

	csrfToken, err := csrf.GenerateToken("user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	req.AddCookie(&http.Cookie{Name: identity.SessionCookieName, Value: "opaque-token"})
	req.AddCookie(&http.Cookie{Name: identity.CSRFCookieName, Value: csrfToken})
	rec := httptest.NewRecorder()

	handler.Logout(rec, req)
	resp := rec.Result()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "opaque-token", svc.signedOutToken)

	sessionCookie := cookieByName(t, resp, identity.SessionCookieName)
	require.NotNil(t, sessionCookie)
	assert.Equal(t, -1, sessionCookie.MaxAge)

	assert.False(t, csrf.ValidateToken(csrfToken, "user-1"))
}

func TestLogout_WithoutSessionStillSucceeds(t *testing.T) {
	svc := &stubIdentity{}
	handler, _ := newTestAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	rec := httptest.NewRecorder()

	handler.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, svc.signedOutToken)
}
