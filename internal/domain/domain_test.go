package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "user@example.com", false},
		{"valid with plus", "user+tag@example.com", false},
		{"valid subdomain", "user@mail.example.co.uk", false},
		{"empty", "", true},
		{"no at sign", "userexample.com", true},
		{"no domain", "user@", true},
		{"no tld", "user@example", true},
		{"spaces", "user @example.com", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", d.String())
	assert.Equal(t, time.UTC, d.Time().Location())

	_, err = ParseDay("15/03/2026")
	assert.Error(t, err)
	_, err = ParseDay("")
	assert.Error(t, err)
}

func TestDayOfNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	// 01:30 on March 16th in UTC+9 is still March 15th in UTC.
	d := DayOf(time.Date(2026, 3, 16, 1, 30, 0, 0, loc))
	assert.Equal(t, "2026-03-15", d.String())
}

func TestDayArithmetic(t *testing.T) {
	d := NewDay(2026, time.February, 28)
	assert.Equal(t, "2026-03-01", d.Next().String())
	assert.Equal(t, "2026-02-25", d.AddDays(-3).String())
	assert.True(t, d.Before(d.Next()))
	assert.True(t, d.Next().After(d))
	assert.True(t, d.Equal(NewDay(2026, time.February, 28)))
}

func TestStudyEventValidate(t *testing.T) {
	day := NewDay(2026, time.June, 1)

	tests := []struct {
		name    string
		event   StudyEvent
		wantErr bool
	}{
		{"flashcards ok", NewFlashcardsStudied(day, 10, 5), false},
		{"flashcards zero counts", NewFlashcardsStudied(day, 0, 0), false},
		{"flashcards negative studied", NewFlashcardsStudied(day, -1, 0), true},
		{"flashcards negative mastered", NewFlashcardsStudied(day, 1, -2), true},
		{"questions ok", NewQuestionsAnswered(day, 3), false},
		{"questions negative", NewQuestionsAnswered(day, -3), true},
		{"quiz ok", NewQuizCompleted(day, 10, 8), false},
		{"quiz perfect", NewQuizCompleted(day, 10, 10), false},
		{"quiz correct exceeds total", NewQuizCompleted(day, 5, 6), true},
		{"quiz negative total", NewQuizCompleted(day, -1, 0), true},
		{"set ok", NewStudySetCreated(day), false},
		{"check-in ok", NewDailyActivity(day), false},
		{"missing date", StudyEvent{Kind: EventDailyActivity}, true},
		{"unknown kind", StudyEvent{Kind: "bogus", Date: day}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCatalogueWellFormed(t *testing.T) {
	seen := make(map[AchievementType]bool)
	for _, a := range Catalogue() {
		assert.False(t, seen[a.Type], "duplicate achievement %s", a.Type)
		seen[a.Type] = true
		assert.NotEmpty(t, a.Title, "achievement %s", a.Type)
		assert.Positive(t, a.Requirement, "achievement %s", a.Type)
		assert.Positive(t, a.XPReward, "achievement %s", a.Type)
		assert.Positive(t, a.CoinReward, "achievement %s", a.Type)
	}
}

func TestCatalogueTiersAscending(t *testing.T) {
	categories := []AchievementCategory{
		CategoryQuestions, CategoryFlashcards, CategoryStudySets,
		CategoryPerfectQuizzes, CategoryStreak, CategoryLevel,
	}
	for _, c := range categories {
		tiers := AchievementsByCategory(c)
		require.NotEmpty(t, tiers, "category %s", c)
		for i := 1; i < len(tiers); i++ {
			assert.Greater(t, tiers[i].Requirement, tiers[i-1].Requirement,
				"category %s tier %s", c, tiers[i].Type)
		}
	}
}

func TestAchievementByType(t *testing.T) {
	a, ok := AchievementByType(AchFlashcards25)
	require.True(t, ok)
	assert.Equal(t, CategoryFlashcards, a.Category)
	assert.Equal(t, int64(25), a.Requirement)

	_, ok = AchievementByType("nonexistent")
	assert.False(t, ok)
}

func TestCounterFor(t *testing.T) {
	p := NewProfile(uuid.New())
	p.TotalQuestionsCorrect = 11
	p.TotalFlashcardsStudied = 22
	p.TotalStudySets = 3
	p.PerfectQuizzes = 4
	p.CurrentStreak = 2
	p.LongestStreak = 9
	p.Level = 6

	assert.Equal(t, int64(11), p.CounterFor(CategoryQuestions))
	assert.Equal(t, int64(22), p.CounterFor(CategoryFlashcards))
	assert.Equal(t, int64(3), p.CounterFor(CategoryStudySets))
	assert.Equal(t, int64(4), p.CounterFor(CategoryPerfectQuizzes))
	// Streak achievements reward the best streak ever, not the current run.
	assert.Equal(t, int64(9), p.CounterFor(CategoryStreak))
	assert.Equal(t, int64(6), p.CounterFor(CategoryLevel))
}

func TestProfileClone(t *testing.T) {
	p := NewProfile(uuid.New())
	p.Unlocked[AchSets1] = struct{}{}
	d := NewDay(2026, time.May, 1)
	p.LastActivityDate = &d

	cp := p.Clone()
	cp.Unlocked[AchSets5] = struct{}{}
	*cp.LastActivityDate = d.Next()

	assert.False(t, p.HasAchievement(AchSets5), "clone must not share the unlocked set")
	assert.Equal(t, "2026-05-01", p.LastActivityDate.String(), "clone must not share the date pointer")
}

func TestProfileView(t *testing.T) {
	p := NewProfile(uuid.New())
	p.TotalXP = 150
	p.Level = LevelForXP(p.TotalXP)

	v := p.View()
	assert.Equal(t, 2, v.Level)
	assert.Equal(t, int64(50), v.XPIntoLevel)
	assert.Equal(t, int64(150), v.XPToNextLevel)
	assert.InDelta(t, 0.25, v.LevelProgress, 1e-9)
	assert.NotNil(t, v.Unlocked)
	assert.Nil(t, v.LastActivityDate)
}
