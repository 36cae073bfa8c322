package progress

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studyforge/platform/internal/domain"
	"github.com/studyforge/platform/internal/repository"
)

// RecordResult is the per-event summary returned for UI feedback.
type RecordResult struct {
	XPEarned        int64                `json:"xp_earned"`
	CoinsEarned     int64                `json:"coins_earned"`
	LeveledUp       bool                 `json:"leveled_up"`
	Level           int                  `json:"level"`
	CurrentStreak   int                  `json:"current_streak"`
	StreakExtended  bool                 `json:"streak_extended"`
	NewAchievements []domain.Achievement `json:"new_achievements"`
	Profile         domain.ProfileView   `json:"profile"`
}

// Recorder is the sole write path into the profile store. Each Record call
// is one atomic read-modify-write: the profile row is locked FOR UPDATE for
// the duration of the transaction, so concurrent recorders for the same
// user serialize instead of losing updates.
type Recorder struct {
	pool     *pgxpool.Pool
	profiles repository.ProfileRepository
	outbox   repository.OutboxRepository
	logger   *slog.Logger
}

// NewRecorder creates a progress recorder.
func NewRecorder(
	pool *pgxpool.Pool,
	profiles repository.ProfileRepository,
	outbox repository.OutboxRepository,
	logger *slog.Logger,
) *Recorder {
	return &Recorder{pool: pool, profiles: profiles, outbox: outbox, logger: logger}
}

// Record applies one study event to the user's profile.
//
// Callers are responsible for calling Record exactly once per completed
// session; the recorder does not deduplicate logical events across calls.
// Persistence failures are returned, never dropped — the caller can retry
// against a fresh snapshot.
func (r *Recorder) Record(ctx context.Context, userID uuid.UUID, event domain.StudyEvent) (*RecordResult, error) {
	// Reject bad payloads before touching the store.
	if err := event.Validate(); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrPersistence("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	profile, err := r.profiles.LockForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, domain.ErrPersistence("load profile", err)
	}
	if profile == nil {
		return nil, domain.ErrNotFound("profile", userID.String())
	}

	res, err := Apply(*profile, event)
	if err != nil {
		return nil, err
	}

	if err := r.profiles.Update(ctx, tx, &res.Profile); err != nil {
		return nil, domain.ErrPersistence("save profile", err)
	}

	if err := r.insertEvents(ctx, tx, userID, event, profile, res); err != nil {
		return nil, domain.ErrPersistence("insert outbox events", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrPersistence("commit transaction", err)
	}

	r.logger.Info("study event recorded",
		"user_id", userID,
		"kind", event.Kind,
		"xp_earned", res.XPEarned,
		"level", res.Level,
		"leveled_up", res.LeveledUp,
		"new_achievements", len(res.Unlocked),
	)

	newAchievements := res.Unlocked
	if newAchievements == nil {
		newAchievements = []domain.Achievement{}
	}
	return &RecordResult{
		XPEarned:        res.XPEarned,
		CoinsEarned:     res.CoinsEarned,
		LeveledUp:       res.LeveledUp,
		Level:           res.Level,
		CurrentStreak:   res.Profile.CurrentStreak,
		StreakExtended:  res.StreakExtended,
		NewAchievements: newAchievements,
		Profile:         res.Profile.View(),
	}, nil
}

// View returns the read-only progress summary, creating the default profile
// on first access.
func (r *Recorder) View(ctx context.Context, userID uuid.UUID) (*domain.ProfileView, error) {
	profile, err := r.profiles.GetOrCreate(ctx, r.pool, userID)
	if err != nil {
		return nil, domain.ErrPersistence("load profile", err)
	}
	if profile == nil {
		return nil, domain.ErrNotFound("profile", userID.String())
	}
	v := profile.View()
	return &v, nil
}

// Profile returns the raw profile snapshot, creating the default on first
// access.
func (r *Recorder) Profile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	profile, err := r.profiles.GetOrCreate(ctx, r.pool, userID)
	if err != nil {
		return nil, domain.ErrPersistence("load profile", err)
	}
	if profile == nil {
		return nil, domain.ErrNotFound("profile", userID.String())
	}
	return profile, nil
}

func (r *Recorder) insertEvents(
	ctx context.Context,
	db repository.DBTX,
	userID uuid.UUID,
	event domain.StudyEvent,
	before *domain.Profile,
	res ApplyResult,
) error {
	if res.XPEarned > 0 {
		if err := r.outbox.Insert(ctx, db, domain.NewXPAwardedEvent(userID, event.Kind, res.XPEarned, res.Profile.TotalXP)); err != nil {
			return err
		}
	}
	if res.StreakExtended {
		if err := r.outbox.Insert(ctx, db, domain.NewStreakExtendedEvent(userID, res.Profile.CurrentStreak, event.Date)); err != nil {
			return err
		}
	}
	if res.LeveledUp {
		if err := r.outbox.Insert(ctx, db, domain.NewLevelUpEvent(userID, before.Level, res.Level)); err != nil {
			return err
		}
	}
	for _, a := range res.Unlocked {
		if err := r.outbox.Insert(ctx, db, domain.NewAchievementUnlockedEvent(userID, a)); err != nil {
			return err
		}
	}
	return nil
}
