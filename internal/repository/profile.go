package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/studyforge/platform/internal/domain"
)

// PgProfileRepository implements ProfileRepository using pgx.
type PgProfileRepository struct{}

// NewPgProfileRepository creates a new PgProfileRepository.
func NewPgProfileRepository() *PgProfileRepository {
	return &PgProfileRepository{}
}

const profileColumns = `user_id, total_xp, level, coins,
	current_streak, longest_streak, last_activity_date,
	total_questions_correct, total_flashcards_studied, total_study_sets,
	total_quizzes_taken, perfect_quizzes, unlocked_achievements,
	created_at, updated_at`

// Find returns a profile, or nil if none exists.
func (r *PgProfileRepository) Find(ctx context.Context, db DBTX, userID uuid.UUID) (*domain.Profile, error) {
	row := db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM progress_profiles WHERE user_id = $1`, userID)
	return scanProfile(row)
}

// GetOrCreate returns the profile, lazily inserting the zeroed default.
// The insert is idempotent so concurrent first calls still produce exactly
// one row.
func (r *PgProfileRepository) GetOrCreate(ctx context.Context, db DBTX, userID uuid.UUID) (*domain.Profile, error) {
	p, err := r.Find(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	if err := r.createDefault(ctx, db, userID); err != nil {
		return nil, err
	}
	return r.Find(ctx, db, userID)
}

// LockForUpdate acquires a row-level lock on the profile, creating the
// default row first if absent. Must run inside a transaction.
func (r *PgProfileRepository) LockForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*domain.Profile, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM progress_profiles WHERE user_id = $1 FOR UPDATE`, userID)
	p, err := scanProfile(row)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	if err := r.createDefault(ctx, tx, userID); err != nil {
		return nil, err
	}
	row = tx.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM progress_profiles WHERE user_id = $1 FOR UPDATE`, userID)
	return scanProfile(row)
}

// Update persists a mutated profile snapshot.
func (r *PgProfileRepository) Update(ctx context.Context, db DBTX, profile *domain.Profile) error {
	var lastActivity *time.Time
	if profile.LastActivityDate != nil {
		t := profile.LastActivityDate.Time()
		lastActivity = &t
	}

	tag, err := db.Exec(ctx, `
		UPDATE progress_profiles SET
		  total_xp = $2, level = $3, coins = $4,
		  current_streak = $5, longest_streak = $6, last_activity_date = $7,
		  total_questions_correct = $8, total_flashcards_studied = $9,
		  total_study_sets = $10, total_quizzes_taken = $11, perfect_quizzes = $12,
		  unlocked_achievements = $13, updated_at = now()
		WHERE user_id = $1`,
		profile.UserID, profile.TotalXP, profile.Level, profile.Coins,
		profile.CurrentStreak, profile.LongestStreak, lastActivity,
		profile.TotalQuestionsCorrect, profile.TotalFlashcardsStudied,
		profile.TotalStudySets, profile.TotalQuizzesTaken, profile.PerfectQuizzes,
		unlockedToStrings(profile),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("profile", profile.UserID.String())
	}
	return nil
}

func (r *PgProfileRepository) createDefault(ctx context.Context, db DBTX, userID uuid.UUID) error {
	_, err := db.Exec(ctx, `
		INSERT INTO progress_profiles (user_id, level, unlocked_achievements)
		VALUES ($1, 1, '{}')
		ON CONFLICT (user_id) DO NOTHING`, userID)
	return err
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	p := &domain.Profile{}
	var lastActivity *time.Time
	var unlocked []string

	err := row.Scan(
		&p.UserID, &p.TotalXP, &p.Level, &p.Coins,
		&p.CurrentStreak, &p.LongestStreak, &lastActivity,
		&p.TotalQuestionsCorrect, &p.TotalFlashcardsStudied, &p.TotalStudySets,
		&p.TotalQuizzesTaken, &p.PerfectQuizzes, &unlocked,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if lastActivity != nil {
		d := domain.DayOf(*lastActivity)
		p.LastActivityDate = &d
	}
	p.Unlocked = make(map[domain.AchievementType]struct{}, len(unlocked))
	for _, s := range unlocked {
		p.Unlocked[domain.AchievementType(s)] = struct{}{}
	}
	return p, nil
}

// unlockedToStrings serializes the unlocked set in sorted order. Identifiers
// from a retired catalogue entry survive round trips: the set is
// insertion-only.
func unlockedToStrings(p *domain.Profile) []string {
	out := make([]string, 0, len(p.Unlocked))
	for t := range p.Unlocked {
		out = append(out, string(t))
	}
	sort.Strings(out)
	return out
}
