package gate

import (
	"time"
)

// LimiterConfig holds login rate limiting configuration
type LimiterConfig struct {
	MaxAttempts int           // attempts allowed per identity per window
	Window      time.Duration // rolling window length
}

// DefaultLimiterConfig returns the default login limiter settings
// (5 attempts per 15 minutes).
func DefaultLimiterConfig() LimiterConfig {
	return LimiterConfig{
		MaxAttempts: 5,
		Window:      15 * time.Minute,
	}
}

// Result is the outcome of a limiter check for one login attempt.
type Result struct {
	Blocked    bool
	RetryAfter int // seconds until the window resets; >= 1 when blocked
	ResetAt    time.Time
}

// Limiter translates attempt counts into allow/deny decisions.
type Limiter struct {
	store  *AttemptStore
	config LimiterConfig
	now    func() time.Time
}

// NewLimiter creates a limiter backed by the given attempt store.
func NewLimiter(store *AttemptStore, config LimiterConfig) *Limiter {
	return &Limiter{
		store:  store,
		config: config,
		now:    time.Now,
	}
}

// Check counts the attempt and decides whether it is allowed. The count is
// incremented before the threshold comparison, so the triggering request
// itself is counted: with MaxAttempts=5 the 6th call within a window is the
// first to be blocked.
func (l *Limiter) Check(identity string) Result {
	count := l.store.RecordAttempt(identity)
	if count <= l.config.MaxAttempts {
		return Result{}
	}

	rec, ok := l.store.Peek(identity)
	if !ok {
		// Record swept between the increment and the peek; the window is
		// effectively over, so let the attempt through.
		return Result{}
	}

	retryAfter := int(rec.WindowResetAt.Sub(l.now()).Seconds())
	if retryAfter < 1 {
		retryAfter = 1
	}

	return Result{
		Blocked:    true,
		RetryAfter: retryAfter,
		ResetAt:    rec.WindowResetAt,
	}
}
