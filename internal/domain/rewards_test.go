package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXPTableValues(t *testing.T) {
	// Mastering a card must pay more than merely studying it.
	assert.Greater(t, XPFlashcardMastered, XPFlashcardStudied)

	for name, xp := range map[string]int64{
		"studied":  XPFlashcardStudied,
		"mastered": XPFlashcardMastered,
		"correct":  XPCorrectAnswer,
		"quiz":     XPQuizCompleted,
		"perfect":  XPPerfectQuizBonus,
		"set":      XPStudySetCreated,
		"checkin":  XPDailyCheckIn,
	} {
		assert.Positive(t, xp, "xp table entry %s", name)
	}
}

func TestStreakMultiplier(t *testing.T) {
	tests := []struct {
		streak int
		want   float64
	}{
		{0, 1.0},
		{1, 1.0},
		{2, 1.0},
		{3, 1.1},
		{6, 1.1},
		{7, 1.25},
		{13, 1.25},
		{14, 1.5},
		{29, 1.5},
		{30, 2.0},
		{365, 2.0}, // capped
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StreakMultiplier(tt.streak), "streak %d", tt.streak)
	}
}

func TestStreakMultiplierNonDecreasing(t *testing.T) {
	prev := 0.0
	for s := 0; s <= 120; s++ {
		m := StreakMultiplier(s)
		assert.GreaterOrEqual(t, m, 1.0, "streak %d", s)
		assert.GreaterOrEqual(t, m, prev, "streak %d", s)
		prev = m
	}
}

func TestApplyStreakMultiplierRounds(t *testing.T) {
	// 25 * 1.1 = 27.5, rounds half away from zero to 28
	assert.Equal(t, int64(28), ApplyStreakMultiplier(25, 3))
	// multiplier 1.0 is an identity
	assert.Equal(t, int64(25), ApplyStreakMultiplier(25, 0))
	assert.Equal(t, int64(0), ApplyStreakMultiplier(0, 30))
}

func TestXPRequiredForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int64
	}{
		{1, 0},
		{2, 100},
		{3, 300},
		{4, 600},
		{5, 1000},
		{10, 4500},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, XPRequiredForLevel(tt.level), "level %d", tt.level)
	}
}

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp   int64
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{299, 2},
		{300, 3},
		{599, 3},
		{600, 4},
		{4500, 10},
		{-5, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForXP(tt.xp), "xp %d", tt.xp)
	}
}

func TestLevelCurveRoundTrip(t *testing.T) {
	// LevelForXP(XPRequiredForLevel(n)) == n for all valid n, and one XP
	// less than the requirement still resolves to n-1.
	for n := 1; n <= 200; n++ {
		req := XPRequiredForLevel(n)
		require.Equal(t, n, LevelForXP(req), "level %d", n)
		if n > 1 {
			require.Equal(t, n-1, LevelForXP(req-1), "level %d", n)
		}
	}
}

func TestLevelCurveStrictlyIncreasing(t *testing.T) {
	for n := 2; n <= 200; n++ {
		assert.Greater(t, XPRequiredForLevel(n), XPRequiredForLevel(n-1), "level %d", n)
	}
}
