package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	return NewClient(ClientConfig{
		BaseURL: serverURL,
		APIKey:  "test-api-key",
	})
}

func TestClientGetSession_ValidToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "test-api-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer good-token", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(User{ID: "user-1", Email: "admin@example.com"})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	user, err := client.GetSession(context.Background(), "good-token")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "admin@example.com", user.Email)
}

func TestClientGetSession_RejectedToken(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client := newTestClient(server.URL)
		_, err := client.GetSession(context.Background(), "stale-token")
		assert.ErrorIs(t, err, ErrNoSession, "status %d", status)

		server.Close()
	}
}

func TestClientGetSession_ServerErrorIsNotNoSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.GetSession(context.Background(), "token")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSession)
}

func TestClientGetSession_EmptyTokenSkipsRequest(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.GetSession(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoSession)
	assert.False(t, called)
}

func TestClientSignIn_PasswordGrant(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "admin@example.com", body["email"])
		assert.Equal(t, "hunter22", body["password"])

		json.NewEncoder(w).Encode(Session{
			Token:     "fresh-token",
			ExpiresIn: 3600,
			User:      User{ID: "user-1", Email: "admin@example.com"},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	session, err := client.SignIn(context.Background(), "admin@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", session.Token)
	assert.Equal(t, 3600, session.ExpiresIn)
	assert.Equal(t, "user-1", session.User.ID)
}

func TestClientSignIn_BadCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.SignIn(context.Background(), "admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestClientSignOut(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	require.NoError(t, client.SignOut(context.Background(), "some-token"))
	assert.Equal(t, "/auth/v1/logout", gotPath)
	assert.Equal(t, "Bearer some-token", gotAuth)
}

func TestClientSignOut_AlreadyInvalidTokenIsFine(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	assert.NoError(t, client.SignOut(context.Background(), "stale-token"))
}
