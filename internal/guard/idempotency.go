// Package guard holds the pre-flight checks that sit in front of the study
// event write path and the auth endpoints: request deduplication, rate
// limiting, login lockout and a circuit breaker for the event publisher.
package guard

import (
	"context"
	"sync"

	"github.com/studyforge/platform/internal/domain"
)

// IdempotencyGuard deduplicates study event submissions by idempotency key,
// so a client retrying a session-completion call cannot double-award XP.
type IdempotencyGuard struct {
	mu   sync.Mutex
	seen map[string]bool
}

// NewIdempotencyGuard creates a new in-memory idempotency guard.
func NewIdempotencyGuard() *IdempotencyGuard {
	return &IdempotencyGuard{
		seen: make(map[string]bool),
	}
}

// Check returns whether the given key has already been processed. An empty
// key opts out of deduplication.
func (ig *IdempotencyGuard) Check(_ context.Context, key string) domain.GuardResult {
	if key == "" {
		return domain.GuardResult{Allowed: true}
	}

	ig.mu.Lock()
	defer ig.mu.Unlock()

	if ig.seen[key] {
		return domain.GuardResult{
			Allowed: false,
			Reason:  "duplicate request: idempotency key already processed",
			Guard:   "idempotency",
		}
	}

	ig.seen[key] = true
	return domain.GuardResult{Allowed: true}
}

// Remove deletes a key from the seen set, so a failed recording can be
// retried with the same key.
func (ig *IdempotencyGuard) Remove(key string) {
	ig.mu.Lock()
	defer ig.mu.Unlock()
	delete(ig.seen, key)
}
