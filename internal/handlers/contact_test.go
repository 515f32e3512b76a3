package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bagaswara/porto/internal/models"
)

type stubEmailService struct {
	err  error
	sent []models.ContactMessage
}

func (s *stubEmailService) SendContactEmail(ctx context.Context, msg models.ContactMessage) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func newTestContactHandler(email *stubEmailService) *ContactHandler {
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	if email == nil {
		return NewContactHandler(nil, discard)
	}
	return NewContactHandler(email, discard)
}

const validContactBody = `{
	"name": "Jane Visitor",
	"email": "jane@example.com",
	"subject": "Freelance inquiry",
	"message": "I would like to talk about a project."
}`

func TestContactSubmit_Success(t *testing.T) {
	email := &stubEmailService{}
	handler := newTestContactHandler(email)

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(validContactBody))
	rec := httptest.NewRecorder()

	handler.Submit(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Message sent successfully")
	require.Len(t, email.sent, 1)
	assert.Equal(t, "jane@example.com", email.sent[0].Email)
	assert.Equal(t, "Jane Visitor", email.sent[0].Name)
}

func TestContactSubmit_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"name":`},
		{"name too short", `{"name":"J","email":"jane@example.com","subject":"Inquiry about work","message":"A long enough message."}`},
		{"bad email", `{"name":"Jane","email":"nope","subject":"Inquiry about work","message":"A long enough message."}`},
		{"subject too short", `{"name":"Jane","email":"jane@example.com","subject":"Hi","message":"A long enough message."}`},
		{"message too short", `{"name":"Jane","email":"jane@example.com","subject":"Inquiry about work","message":"short"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email := &stubEmailService{}
			handler := newTestContactHandler(email)

			req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.Submit(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, email.sent)
		})
	}
}

func TestContactSubmit_EmailNotConfigured(t *testing.T) {
	handler := newTestContactHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(validContactBody))
	rec := httptest.NewRecorder()

	handler.Submit(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "email_unavailable")
}

func TestContactSubmit_SendFailure(t *testing.T) {
	handler := newTestContactHandler(&stubEmailService{err: errors.New("ses down")})

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(validContactBody))
	rec := httptest.NewRecorder()

	handler.Submit(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to send message")
}
