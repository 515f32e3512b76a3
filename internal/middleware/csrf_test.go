package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bagaswara/porto/internal/gate"
	"github.com/bagaswara/porto/internal/identity"
)

func newCSRFTestHandler(t *testing.T) (http.Handler, *identity.CSRFTokenManager) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := identity.NewCSRFTokenManager()

	handler := CSRFProtection(manager, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	return handler, manager
}

func requestWithUser(method, path, userID string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	user := &identity.User{ID: userID, Email: "admin@example.com"}
	return req.WithContext(context.WithValue(req.Context(), gate.UserContextKey, user))
}

func TestCSRFProtection_GETPassesThrough(t *testing.T) {
	handler, _ := newCSRFTestHandler(t)

	req := httptest.NewRequest("GET", "/admin/projects", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", recorder.Code)
	}
}

func TestCSRFProtection_ValidHeaderToken(t *testing.T) {
	handler, manager := newCSRFTestHandler(t)

	token, err := manager.GenerateToken("user-1")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	req := requestWithUser("POST", "/admin/projects", "user-1")
	req.Header.Set("X-CSRF-Token", token)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", recorder.Code)
	}
}

func TestCSRFProtection_MissingToken(t *testing.T) {
	handler, _ := newCSRFTestHandler(t)

	req := requestWithUser("POST", "/admin/projects", "user-1")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", recorder.Code)
	}
}

func TestCSRFProtection_TokenForDifferentUser(t *testing.T) {
	handler, manager := newCSRFTestHandler(t)

	token, err := manager.GenerateToken("someone-else")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	req := requestWithUser("DELETE", "/admin/projects/1", "user-1")
	req.Header.Set("X-CSRF-Token", token)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", recorder.Code)
	}
}

func TestCSRFProtection_NoUserInContext(t *testing.T) {
	handler, manager := newCSRFTestHandler(t)

	token, err := manager.GenerateToken("user-1")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	req := httptest.NewRequest("POST", "/admin/projects", nil)
	req.Header.Set("X-CSRF-Token", token)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", recorder.Code)
	}
}

func TestCSRFProtection_FallsBackToCookie(t *testing.T) {
	handler, manager := newCSRFTestHandler(t)

	token, err := manager.GenerateToken("user-1")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	req := requestWithUser("PUT", "/admin/skills/1", "user-1")
	req.AddCookie(&http.Cookie{Name: identity.CSRFCookieName, Value: token})
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", recorder.Code)
	}
}
