package progress

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyforge/platform/internal/domain"
)

var (
	day1 = domain.NewDay(2026, time.June, 1)
	day2 = domain.NewDay(2026, time.June, 2)
	day5 = domain.NewDay(2026, time.June, 5)
	day6 = domain.NewDay(2026, time.June, 6)
	day9 = domain.NewDay(2026, time.June, 9)
)

func freshProfile() domain.Profile {
	return domain.NewProfile(uuid.New())
}

// profileAt returns a profile whose last activity was on the given day with
// the given streak, so the next day's event advances the streak.
func profileAt(day domain.Day, streak int) domain.Profile {
	p := freshProfile()
	p.CurrentStreak = streak
	p.LongestStreak = streak
	p.LastActivityDate = &day
	return p
}

func TestApplyFlashcardsToFreshProfile(t *testing.T) {
	res, err := Apply(freshProfile(), domain.NewFlashcardsStudied(day1, 10, 5))
	require.NoError(t, err)

	// 10*2 studied + 5*5 mastered, streak of 1 means no multiplier.
	assert.Equal(t, int64(45), res.XPEarned)
	assert.Equal(t, int64(45), res.Profile.TotalXP)
	assert.Equal(t, int64(15), res.Profile.TotalFlashcardsStudied)
	assert.Equal(t, 1, res.Profile.CurrentStreak)
	assert.Equal(t, 1, res.Profile.LongestStreak)
	assert.True(t, res.StreakExtended)
	assert.Equal(t, 1, res.Level)
	assert.False(t, res.LeveledUp)
	assert.Empty(t, res.Unlocked)
	assert.False(t, res.Profile.HasAchievement(domain.AchFlashcards25))
}

func TestApplyCrossesAchievementThreshold(t *testing.T) {
	p := profileAt(day1, 1)
	p.TotalFlashcardsStudied = 20

	res, err := Apply(p, domain.NewFlashcardsStudied(day2, 5, 0))
	require.NoError(t, err)

	assert.Equal(t, int64(25), res.Profile.TotalFlashcardsStudied)
	require.Len(t, res.Unlocked, 1)
	assert.Equal(t, domain.AchFlashcards25, res.Unlocked[0].Type)

	// 5*2 session XP plus the tier reward, coins only from the reward.
	assert.Equal(t, int64(10)+res.Unlocked[0].XPReward, res.XPEarned)
	assert.Equal(t, res.Unlocked[0].CoinReward, res.CoinsEarned)

	// Re-applying the same event must not unlock it again.
	again, err := Apply(res.Profile, domain.NewFlashcardsStudied(day2, 5, 0))
	require.NoError(t, err)
	assert.Empty(t, again.Unlocked)
	assert.Zero(t, again.CoinsEarned)
}

func TestStreakAdvancesOnConsecutiveDay(t *testing.T) {
	p := profileAt(day5, 3)
	p.Unlocked[domain.AchStreak3] = struct{}{}

	res, err := Apply(p, domain.NewDailyActivity(day6))
	require.NoError(t, err)

	assert.Equal(t, 4, res.Profile.CurrentStreak)
	assert.Equal(t, 4, res.Profile.LongestStreak)
	assert.True(t, res.StreakExtended)
	assert.Equal(t, "2026-06-06", res.Profile.LastActivityDate.String())
}

func TestStreakResetsAfterGap(t *testing.T) {
	p := profileAt(day6, 4)
	p.Unlocked[domain.AchStreak3] = struct{}{}

	res, err := Apply(p, domain.NewDailyActivity(day9))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Profile.CurrentStreak)
	assert.Equal(t, 4, res.Profile.LongestStreak, "longest streak survives the reset")
	assert.True(t, res.StreakExtended)
}

func TestSameDayCheckInIsNoOp(t *testing.T) {
	first, err := Apply(freshProfile(), domain.NewDailyActivity(day1))
	require.NoError(t, err)
	assert.Equal(t, int64(domain.XPDailyCheckIn), first.XPEarned)

	second, err := Apply(first.Profile, domain.NewDailyActivity(day1))
	require.NoError(t, err)
	assert.Zero(t, second.XPEarned)
	assert.False(t, second.StreakExtended)
	assert.Equal(t, first.Profile.TotalXP, second.Profile.TotalXP)
	assert.Equal(t, first.Profile.CurrentStreak, second.Profile.CurrentStreak)
}

func TestSameDayStudyStillEarnsXP(t *testing.T) {
	first, err := Apply(freshProfile(), domain.NewFlashcardsStudied(day1, 5, 0))
	require.NoError(t, err)

	second, err := Apply(first.Profile, domain.NewFlashcardsStudied(day1, 5, 0))
	require.NoError(t, err)

	assert.False(t, second.StreakExtended)
	assert.Equal(t, int64(10), second.XPEarned)
	assert.Equal(t, first.Profile.TotalXP+10, second.Profile.TotalXP)
	assert.Equal(t, 1, second.Profile.CurrentStreak)
}

func TestEarlierDateLeavesStreakUntouched(t *testing.T) {
	p := profileAt(day6, 4)
	p.Unlocked[domain.AchStreak3] = struct{}{}

	res, err := Apply(p, domain.NewQuestionsAnswered(day5, 2))
	require.NoError(t, err)

	assert.False(t, res.StreakExtended)
	assert.Equal(t, 4, res.Profile.CurrentStreak)
	assert.Equal(t, "2026-06-06", res.Profile.LastActivityDate.String())
	// XP for the late-arriving session is still credited.
	assert.Positive(t, res.XPEarned)
	assert.Equal(t, int64(2), res.Profile.TotalQuestionsCorrect)
}

func TestStreakMultiplierBoostsSessionXP(t *testing.T) {
	base, err := Apply(freshProfile(), domain.NewQuestionsAnswered(day1, 4))
	require.NoError(t, err)
	assert.Equal(t, int64(12), base.XPEarned)

	// Advancing to a 7-day streak applies the 1.25 multiplier to the same
	// session: round(12 * 1.25) = 15.
	p := profileAt(day5, 6)
	p.Unlocked[domain.AchStreak3] = struct{}{}
	boosted, err := Apply(p, domain.NewQuestionsAnswered(day6, 4))
	require.NoError(t, err)

	assert.Equal(t, 7, boosted.Profile.CurrentStreak)
	sessionXP := boosted.XPEarned
	for _, a := range boosted.Unlocked {
		sessionXP -= a.XPReward
	}
	assert.Equal(t, int64(15), sessionXP)
}

func TestPerfectQuiz(t *testing.T) {
	res, err := Apply(freshProfile(), domain.NewQuizCompleted(day1, 5, 5))
	require.NoError(t, err)

	assert.Equal(t, int64(1), res.Profile.TotalQuizzesTaken)
	assert.Equal(t, int64(1), res.Profile.PerfectQuizzes)
	assert.True(t, res.Profile.HasAchievement(domain.AchPerfect1))

	// Quiz XP plus perfect bonus plus the first-perfect reward.
	reward, _ := domain.AchievementByType(domain.AchPerfect1)
	assert.Equal(t, domain.XPQuizCompleted+domain.XPPerfectQuizBonus+reward.XPReward, res.XPEarned)
}

func TestImperfectQuiz(t *testing.T) {
	res, err := Apply(freshProfile(), domain.NewQuizCompleted(day1, 5, 3))
	require.NoError(t, err)

	assert.Equal(t, int64(1), res.Profile.TotalQuizzesTaken)
	assert.Zero(t, res.Profile.PerfectQuizzes)
	assert.Equal(t, int64(domain.XPQuizCompleted), res.XPEarned)
}

func TestEmptyQuizIsNotPerfect(t *testing.T) {
	res, err := Apply(freshProfile(), domain.NewQuizCompleted(day1, 0, 0))
	require.NoError(t, err)
	assert.Zero(t, res.Profile.PerfectQuizzes)
	assert.Equal(t, int64(1), res.Profile.TotalQuizzesTaken)
}

func TestAchievementRewardCascadesLevelUp(t *testing.T) {
	p := profileAt(day1, 1)
	p.TotalXP = 900
	p.Level = domain.LevelForXP(p.TotalXP)
	p.TotalStudySets = 24
	for _, a := range []domain.AchievementType{domain.AchSets1, domain.AchSets5, domain.AchSets10} {
		p.Unlocked[a] = struct{}{}
	}
	require.Equal(t, 4, p.Level)

	res, err := Apply(p, domain.NewStudySetCreated(day2))
	require.NoError(t, err)

	// Session XP alone leaves the profile at level 4; the sets_25 reward
	// pushes it to level 5, which in turn unlocks the level_5 tier.
	require.Len(t, res.Unlocked, 2)
	assert.Equal(t, domain.AchSets25, res.Unlocked[0].Type)
	assert.Equal(t, domain.AchLevel5, res.Unlocked[1].Type)
	assert.True(t, res.LeveledUp)
	assert.Equal(t, 5, res.Level)
	assert.Equal(t, domain.LevelForXP(res.Profile.TotalXP), res.Profile.Level)
}

func TestStreakAchievementUsesLongestStreak(t *testing.T) {
	p := profileAt(day5, 2)

	res, err := Apply(p, domain.NewDailyActivity(day6))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Profile.CurrentStreak)
	require.Len(t, res.Unlocked, 1)
	assert.Equal(t, domain.AchStreak3, res.Unlocked[0].Type)
}

func TestApplyRejectsInvalidEvents(t *testing.T) {
	tests := []struct {
		name  string
		event domain.StudyEvent
	}{
		{"negative flashcards", domain.NewFlashcardsStudied(day1, -1, 0)},
		{"negative correct", domain.NewQuestionsAnswered(day1, -5)},
		{"correct exceeds total", domain.NewQuizCompleted(day1, 3, 4)},
		{"missing date", domain.StudyEvent{Kind: domain.EventDailyActivity}},
		{"unknown kind", domain.StudyEvent{Kind: "mystery", Date: day1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Apply(freshProfile(), tt.event)
			assert.Error(t, err)
		})
	}
}

func TestApplyNeverMutatesInput(t *testing.T) {
	p := profileAt(day1, 1)
	p.TotalXP = 50
	snapshot := p.Clone()

	res, err := Apply(p, domain.NewQuizCompleted(day2, 5, 5))
	require.NoError(t, err)
	require.NotEqual(t, p.TotalXP, res.Profile.TotalXP)

	assert.Equal(t, snapshot.TotalXP, p.TotalXP)
	assert.Equal(t, snapshot.CurrentStreak, p.CurrentStreak)
	assert.Equal(t, snapshot.LastActivityDate.String(), p.LastActivityDate.String())
	assert.Len(t, p.Unlocked, len(snapshot.Unlocked))
}

// TestInvariantsHoldAcrossEventSequence replays a mixed event stream and
// checks the structural invariants after every step: XP and counters never
// decrease, level always matches the curve, the longest streak bounds the
// current one, and the unlocked set only grows.
func TestInvariantsHoldAcrossEventSequence(t *testing.T) {
	events := []domain.StudyEvent{
		domain.NewFlashcardsStudied(day1, 10, 5),
		domain.NewQuestionsAnswered(day1, 8),
		domain.NewDailyActivity(day1),
		domain.NewQuizCompleted(day2, 10, 10),
		domain.NewStudySetCreated(day2),
		domain.NewQuestionsAnswered(day5, 20),
		domain.NewFlashcardsStudied(day6, 15, 10),
		domain.NewDailyActivity(day9),
		domain.NewQuizCompleted(day9, 5, 3),
	}

	p := freshProfile()
	for i, ev := range events {
		prev := p
		res, err := Apply(p, ev)
		require.NoError(t, err, "event %d", i)
		p = res.Profile

		assert.GreaterOrEqual(t, p.TotalXP, prev.TotalXP, "event %d", i)
		assert.GreaterOrEqual(t, p.Coins, prev.Coins, "event %d", i)
		assert.Equal(t, domain.LevelForXP(p.TotalXP), p.Level, "event %d", i)
		assert.GreaterOrEqual(t, p.LongestStreak, p.CurrentStreak, "event %d", i)
		assert.GreaterOrEqual(t, p.TotalFlashcardsStudied, prev.TotalFlashcardsStudied, "event %d", i)
		assert.GreaterOrEqual(t, p.TotalQuestionsCorrect, prev.TotalQuestionsCorrect, "event %d", i)

		for a := range prev.Unlocked {
			assert.True(t, p.HasAchievement(a), "event %d dropped achievement %s", i, a)
		}
	}
}
