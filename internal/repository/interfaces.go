package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/studyforge/platform/internal/domain"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// ProfileRepository is the durable home for progress profiles, one row per
// user. Load and save failures are returned to the caller, never dropped.
type ProfileRepository interface {
	// Find returns a profile, or nil if none exists yet.
	Find(ctx context.Context, db DBTX, userID uuid.UUID) (*domain.Profile, error)

	// GetOrCreate returns the profile, inserting the zeroed default exactly
	// once if none exists. Subsequent calls return the same row.
	GetOrCreate(ctx context.Context, db DBTX, userID uuid.UUID) (*domain.Profile, error)

	// LockForUpdate acquires a row-level lock (SELECT FOR UPDATE) on the
	// profile, creating the default row first if absent. Must be called
	// within a transaction; the lock serializes concurrent recorders.
	LockForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*domain.Profile, error)

	// Update persists a mutated profile snapshot.
	Update(ctx context.Context, db DBTX, profile *domain.Profile) error
}

// AuthUserRepository provides access to auth_users.
type AuthUserRepository interface {
	// FindByEmail returns an auth user by email, or nil if not found.
	FindByEmail(ctx context.Context, db DBTX, email string) (*domain.AuthUser, error)

	// Create inserts a new auth user.
	Create(ctx context.Context, db DBTX, user *domain.AuthUser) error
}

// OutboxRepository provides access to the event_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event (within the same transaction as the
	// profile mutation).
	Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error

	// FetchUnpublished returns unpublished events for the outbox poller.
	FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]domain.OutboxDraft, error)

	// MarkPublished stamps events as delivered so they are not fetched again.
	MarkPublished(ctx context.Context, db DBTX, ids []uuid.UUID) error
}
