package identity

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// LocalProvider is a self-hosted Service implementation for deployments that
// do not use a hosted identity API. It authenticates a single admin account
// (email plus bcrypt hash from configuration) and keeps issued session
// tokens in memory. Sessions do not survive a restart, same as the attempt
// counters.
type LocalProvider struct {
	adminEmail   string
	passwordHash string
	sessionTTL   time.Duration

	mu       sync.Mutex
	sessions map[string]localSession
	now      func() time.Time
}

// dummyHash is compared when the email does not match so that unknown-email
// and wrong-password failures cost the same bcrypt work.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type localSession struct {
	userID    string
	email     string
	expiresAt time.Time
}

// LocalConfig holds the single-account provider settings
type LocalConfig struct {
	AdminEmail   string
	PasswordHash string        // bcrypt hash, never the plaintext
	SessionTTL   time.Duration // zero defaults to 24h
}

// NewLocalProvider creates a local provider. Both the email and the hash are
// required; a missing value is a startup error, never a silent default.
func NewLocalProvider(cfg LocalConfig) (*LocalProvider, error) {
	if cfg.AdminEmail == "" || cfg.PasswordHash == "" {
		return nil, fmt.Errorf("local identity provider requires admin email and password hash")
	}
	if !strings.HasPrefix(cfg.PasswordHash, "$2") {
		return nil, fmt.Errorf("admin password hash is not a bcrypt hash")
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &LocalProvider{
		adminEmail:   cfg.AdminEmail,
		passwordHash: cfg.PasswordHash,
		sessionTTL:   ttl,
		sessions:     make(map[string]localSession),
		now:          time.Now,
	}, nil
}

// GetSession resolves a token issued by SignIn.
func (p *LocalProvider) GetSession(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	sess, ok := p.sessions[token]
	if !ok {
		return nil, ErrNoSession
	}
	if p.now().After(sess.expiresAt) {
		delete(p.sessions, token)
		return nil, ErrNoSession
	}
	return &User{ID: sess.userID, Email: sess.email}, nil
}

// SignIn validates credentials against the configured admin account and
// issues a random session token.
func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	// Compare the hash even for unknown emails so both failure modes take
	// comparable time.
	hash := p.passwordHash
	emailMatch := subtle.ConstantTimeCompare([]byte(email), []byte(p.adminEmail)) == 1
	if !emailMatch {
		hash = dummyHash
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil || !emailMatch {
		return nil, ErrInvalidCredentials
	}

	token, err := generateSessionToken()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	p.mu.Lock()
	p.sessions[token] = localSession{
		userID:    "admin",
		email:     p.adminEmail,
		expiresAt: p.now().Add(p.sessionTTL),
	}
	p.mu.Unlock()

	return &Session{
		Token:     token,
		ExpiresIn: int(p.sessionTTL.Seconds()),
		User:      User{ID: "admin", Email: p.adminEmail},
	}, nil
}

// SignOut drops the session token.
func (p *LocalProvider) SignOut(ctx context.Context, token string) error {
	p.mu.Lock()
	delete(p.sessions, token)
	p.mu.Unlock()
	return nil
}

// Sweep deletes expired sessions and returns the number removed. The
// background sweeper runs it alongside the attempt store sweep.
func (p *LocalProvider) Sweep(now time.Time) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	removed := 0
	for token, sess := range p.sessions {
		if sess.expiresAt.Before(now) {
			delete(p.sessions, token)
			removed++
		}
	}
	return removed
}

func generateSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
