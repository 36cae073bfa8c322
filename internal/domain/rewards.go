package domain

import "math"

// XP awarded per unit of study activity. Mastering a card pays more than
// studying it, and a perfect quiz pays a bonus on top of completion.
const (
	XPFlashcardStudied  int64 = 2
	XPFlashcardMastered int64 = 5
	XPCorrectAnswer     int64 = 3
	XPQuizCompleted     int64 = 10
	XPPerfectQuizBonus  int64 = 15
	XPStudySetCreated   int64 = 20
	XPDailyCheckIn      int64 = 10
)

// streakTier is one step of the multiplier curve.
type streakTier struct {
	minStreak  int
	multiplier float64
}

// Multiplier breakpoints: non-decreasing, capped at the last tier.
var streakTiers = []streakTier{
	{30, 2.0},
	{14, 1.5},
	{7, 1.25},
	{3, 1.1},
	{0, 1.0},
}

// StreakMultiplier returns the XP multiplier for the given streak length.
// Always >= 1.0.
func StreakMultiplier(streak int) float64 {
	for _, t := range streakTiers {
		if streak >= t.minStreak {
			return t.multiplier
		}
	}
	return 1.0
}

// ApplyStreakMultiplier scales raw session XP by the streak multiplier,
// rounding half away from zero.
func ApplyStreakMultiplier(rawXP int64, streak int) int64 {
	return int64(math.Round(float64(rawXP) * StreakMultiplier(streak)))
}

// XPRequiredForLevel returns the cumulative XP needed to reach a level.
// The curve is quadratic: 50·(n−1)·n, so level 1 costs 0, level 2 costs 100,
// level 3 costs 300, level 4 costs 600 and so on.
func XPRequiredForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	n := int64(level)
	return 50 * (n - 1) * n
}

// LevelForXP returns the largest level whose cumulative requirement does not
// exceed totalXP. Inverse of XPRequiredForLevel:
// LevelForXP(XPRequiredForLevel(n)) == n for all n >= 1.
func LevelForXP(totalXP int64) int {
	if totalXP <= 0 {
		return 1
	}
	// Closed-form estimate from 50·(n−1)·n <= xp, then correct for float error.
	level := int((1 + math.Sqrt(1+float64(totalXP)/12.5)) / 2)
	if level < 1 {
		level = 1
	}
	for XPRequiredForLevel(level+1) <= totalXP {
		level++
	}
	for level > 1 && XPRequiredForLevel(level) > totalXP {
		level--
	}
	return level
}
