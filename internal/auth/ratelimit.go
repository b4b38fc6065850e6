package auth

import (
	"sync"
	"time"
)

// RateLimiter throttles login attempts per IP+username pair over a sliding
// window. The JSON login handler consults it directly; there is no separate
// middleware, because the username only becomes known after the request
// body is bound.
type RateLimiter struct {
	mu       sync.RWMutex
	attempts map[string]*attemptRecord

	maxAttempts     int
	window          time.Duration
	lockout         time.Duration
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
}

type attemptRecord struct {
	count        int
	firstAttempt time.Time
	lockedUntil  time.Time
}

// RateLimitConfig configures the login rate limiter. Zero values fall back
// to the same defaults the config package uses for AUTH_MAX_LOGIN_ATTEMPTS,
// AUTH_RATE_LIMIT_WINDOW, and AUTH_LOCKOUT_DURATION.
type RateLimitConfig struct {
	MaxAttempts     int           // Failed attempts before lockout
	WindowDuration  time.Duration // Sliding window for counting attempts
	LockoutDuration time.Duration // Lockout length once the limit is hit
	CleanupInterval time.Duration // How often expired records are dropped
}

// NewRateLimiter creates a rate limiter and starts its cleanup goroutine.
// Callers must Stop() it when done.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.WindowDuration <= 0 {
		cfg.WindowDuration = 15 * time.Minute
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = 30 * time.Minute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 5 * time.Minute
	}

	rl := &RateLimiter{
		attempts:        make(map[string]*attemptRecord),
		maxAttempts:     cfg.MaxAttempts,
		window:          cfg.WindowDuration,
		lockout:         cfg.LockoutDuration,
		cleanupInterval: cfg.CleanupInterval,
		stopCleanup:     make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop stops the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCleanup)
}

func attemptKey(ip, username string) string {
	return ip + ":" + username
}

// Allow reports whether a login attempt may proceed. When it may not, the
// returned duration says how long until the lockout expires.
func (rl *RateLimiter) Allow(ip, username string) (bool, time.Duration) {
	now := time.Now()

	rl.mu.RLock()
	record, exists := rl.attempts[attemptKey(ip, username)]
	rl.mu.RUnlock()

	if !exists {
		return true, 0
	}

	if !record.lockedUntil.IsZero() && now.Before(record.lockedUntil) {
		return false, record.lockedUntil.Sub(now)
	}

	// An expired window means the counter no longer applies
	if now.Sub(record.firstAttempt) > rl.window {
		return true, 0
	}

	if record.count < rl.maxAttempts {
		return true, 0
	}

	return false, rl.lockout
}

// RecordFailure counts a failed login. The returned bool reports whether
// this failure tripped the lockout.
func (rl *RateLimiter) RecordFailure(ip, username string) (bool, time.Duration) {
	key := attemptKey(ip, username)
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	record, exists := rl.attempts[key]
	if !exists {
		record = &attemptRecord{firstAttempt: now}
		rl.attempts[key] = record
	}

	if now.Sub(record.firstAttempt) > rl.window {
		record.count = 0
		record.firstAttempt = now
		record.lockedUntil = time.Time{}
	}

	record.count++

	if record.count >= rl.maxAttempts {
		record.lockedUntil = now.Add(rl.lockout)
		return true, rl.lockout
	}

	return false, 0
}

// RecordSuccess clears the failure record after a successful login.
func (rl *RateLimiter) RecordSuccess(ip, username string) {
	rl.mu.Lock()
	delete(rl.attempts, attemptKey(ip, username))
	rl.mu.Unlock()
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			return
		}
	}
}

// cleanup drops records whose window and lockout have both lapsed.
func (rl *RateLimiter) cleanup() {
	now := time.Now()
	expiry := rl.window + rl.lockout

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, record := range rl.attempts {
		windowExpired := now.Sub(record.firstAttempt) > expiry
		lockoutExpired := record.lockedUntil.IsZero() || now.After(record.lockedUntil)

		if windowExpired && lockoutExpired {
			delete(rl.attempts, key)
		}
	}
}
