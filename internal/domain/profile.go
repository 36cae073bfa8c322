package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Day is a calendar date with no time component. All streak arithmetic is
// done on UTC calendar days; clients submit their activity date explicitly
// and the server normalizes it here.
type Day struct {
	t time.Time
}

// NewDay constructs a Day from year, month, day.
func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf truncates a time.Time to its UTC calendar date.
func DayOf(t time.Time) Day {
	u := t.UTC()
	return NewDay(u.Year(), u.Month(), u.Day())
}

// ParseDay parses a "YYYY-MM-DD" string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return DayOf(t), nil
}

// AddDays returns the day n calendar days later (or earlier for negative n).
func (d Day) AddDays(n int) Day { return Day{t: d.t.AddDate(0, 0, n)} }

// Next returns the following calendar day.
func (d Day) Next() Day { return d.AddDays(1) }

func (d Day) Equal(o Day) bool  { return d.t.Equal(o.t) }
func (d Day) Before(o Day) bool { return d.t.Before(o.t) }
func (d Day) After(o Day) bool  { return d.t.After(o.t) }

// Time returns the underlying UTC midnight timestamp.
func (d Day) Time() time.Time { return d.t }

func (d Day) String() string { return d.t.Format("2006-01-02") }

// IsZero reports whether the day is the zero value.
func (d Day) IsZero() bool { return d.t.IsZero() }

// Profile is the single per-user aggregate of all progress state.
// It is created lazily on first access with zeroed counters and level 1,
// and mutated only through the progress recorder.
type Profile struct {
	UserID uuid.UUID `json:"user_id"`

	TotalXP int64 `json:"total_xp"`
	Level   int   `json:"level"`
	Coins   int64 `json:"coins"`

	CurrentStreak    int  `json:"current_streak"`
	LongestStreak    int  `json:"longest_streak"`
	LastActivityDate *Day `json:"last_activity_date,omitempty"`

	TotalQuestionsCorrect  int64 `json:"total_questions_correct"`
	TotalFlashcardsStudied int64 `json:"total_flashcards_studied"`
	TotalStudySets         int64 `json:"total_study_sets"`
	TotalQuizzesTaken      int64 `json:"total_quizzes_taken"`
	PerfectQuizzes         int64 `json:"perfect_quizzes"`

	Unlocked map[AchievementType]struct{} `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProfile returns the default profile for a user: all counters zeroed,
// level 1, nothing unlocked.
func NewProfile(userID uuid.UUID) Profile {
	return Profile{
		UserID:   userID,
		Level:    1,
		Unlocked: make(map[AchievementType]struct{}),
	}
}

// HasAchievement reports whether the given achievement is already unlocked.
func (p Profile) HasAchievement(t AchievementType) bool {
	_, ok := p.Unlocked[t]
	return ok
}

// UnlockedList returns the unlocked achievement identifiers in catalogue order.
func (p Profile) UnlockedList() []AchievementType {
	out := make([]AchievementType, 0, len(p.Unlocked))
	for _, a := range Catalogue() {
		if p.HasAchievement(a.Type) {
			out = append(out, a.Type)
		}
	}
	return out
}

// Clone returns a deep copy of the profile. The progress engine operates on
// clones so callers always keep an untouched snapshot.
func (p Profile) Clone() Profile {
	cp := p
	cp.Unlocked = make(map[AchievementType]struct{}, len(p.Unlocked))
	for k := range p.Unlocked {
		cp.Unlocked[k] = struct{}{}
	}
	if p.LastActivityDate != nil {
		d := *p.LastActivityDate
		cp.LastActivityDate = &d
	}
	return cp
}

// View computes the read model consumed by display surfaces, so UI layers
// never duplicate reward-curve math.
func (p Profile) View() ProfileView {
	floor := XPRequiredForLevel(p.Level)
	ceil := XPRequiredForLevel(p.Level + 1)
	span := ceil - floor
	into := p.TotalXP - floor

	progress := 0.0
	if span > 0 {
		progress = float64(into) / float64(span)
	}

	v := ProfileView{
		Level:                  p.Level,
		TotalXP:                p.TotalXP,
		XPIntoLevel:            into,
		XPToNextLevel:          ceil - p.TotalXP,
		LevelProgress:          progress,
		Coins:                  p.Coins,
		CurrentStreak:          p.CurrentStreak,
		LongestStreak:          p.LongestStreak,
		TotalQuestionsCorrect:  p.TotalQuestionsCorrect,
		TotalFlashcardsStudied: p.TotalFlashcardsStudied,
		TotalStudySets:         p.TotalStudySets,
		TotalQuizzesTaken:      p.TotalQuizzesTaken,
		PerfectQuizzes:         p.PerfectQuizzes,
		Unlocked:               p.UnlockedList(),
	}
	if p.LastActivityDate != nil {
		s := p.LastActivityDate.String()
		v.LastActivityDate = &s
	}
	return v
}

// ProfileView is the derived, read-only progress summary.
type ProfileView struct {
	Level                  int               `json:"level"`
	TotalXP                int64             `json:"total_xp"`
	XPIntoLevel            int64             `json:"xp_into_level"`
	XPToNextLevel          int64             `json:"xp_to_next_level"`
	LevelProgress          float64           `json:"level_progress"`
	Coins                  int64             `json:"coins"`
	CurrentStreak          int               `json:"current_streak"`
	LongestStreak          int               `json:"longest_streak"`
	LastActivityDate       *string           `json:"last_activity_date,omitempty"`
	TotalQuestionsCorrect  int64             `json:"total_questions_correct"`
	TotalFlashcardsStudied int64             `json:"total_flashcards_studied"`
	TotalStudySets         int64             `json:"total_study_sets"`
	TotalQuizzesTaken      int64             `json:"total_quizzes_taken"`
	PerfectQuizzes         int64             `json:"perfect_quizzes"`
	Unlocked               []AchievementType `json:"unlocked_achievements"`
}
