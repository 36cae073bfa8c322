// Package progress converts raw study events into XP, levels, streaks,
// coins and achievement unlocks.
//
// The package is split the same way the data flows: Apply is a pure
// function over profile snapshots, Recorder is the transactional write
// path that serializes read-modify-write cycles against the profile store.
package progress

import (
	"github.com/studyforge/platform/internal/domain"
)

// ApplyResult summarizes the effect of a single study event on a profile.
type ApplyResult struct {
	// Profile is the new snapshot. The input profile is never mutated.
	Profile domain.Profile

	// XPEarned is the total XP credited by this event: session XP after the
	// streak multiplier, plus any achievement XP rewards.
	XPEarned    int64
	CoinsEarned int64

	LeveledUp bool
	Level     int

	StreakExtended bool

	// Unlocked lists achievements newly unlocked by this event, in
	// catalogue order.
	Unlocked []domain.Achievement
}

// Apply computes the effect of one study event on a profile snapshot.
//
// It is pure: no side effects, no retained references. The returned profile
// always satisfies level == LevelForXP(totalXP) and longestStreak >=
// currentStreak, and re-applying an event to the updated profile never
// unlocks the same achievement twice.
func Apply(profile domain.Profile, event domain.StudyEvent) (ApplyResult, error) {
	if err := event.Validate(); err != nil {
		return ApplyResult{}, domain.ErrValidation(err.Error())
	}

	next := profile.Clone()
	if next.Unlocked == nil {
		next.Unlocked = make(map[domain.AchievementType]struct{})
	}

	// Every study event counts as daily activity for its date.
	extended := advanceStreak(&next, event.Date)

	// Out-of-order check-ins are a no-op, not an error.
	if event.Kind == domain.EventDailyActivity && !extended {
		return ApplyResult{Profile: next, Level: next.Level}, nil
	}

	rawXP := sessionXP(event, extended)
	finalXP := domain.ApplyStreakMultiplier(rawXP, next.CurrentStreak)
	next.TotalXP += finalXP

	switch event.Kind {
	case domain.EventFlashcardsStudied:
		next.TotalFlashcardsStudied += int64(event.Studied) + int64(event.Mastered)
	case domain.EventQuestionsAnswered:
		next.TotalQuestionsCorrect += int64(event.Correct)
	case domain.EventQuizCompleted:
		next.TotalQuizzesTaken++
		if event.Total > 0 && event.Correct == event.Total {
			next.PerfectQuizzes++
		}
	case domain.EventStudySetCreated:
		next.TotalStudySets++
	}

	next.Level = domain.LevelForXP(next.TotalXP)

	unlocked, rewardXP, rewardCoins := evaluateAchievements(&next)

	return ApplyResult{
		Profile:        next,
		XPEarned:       finalXP + rewardXP,
		CoinsEarned:    rewardCoins,
		LeveledUp:      next.Level > profile.Level,
		Level:          next.Level,
		StreakExtended: extended,
		Unlocked:       unlocked,
	}, nil
}

// sessionXP computes the raw, pre-multiplier XP for an event. The daily
// check-in only pays on a day the streak actually advanced, so a second
// check-in on the same day cannot double-award.
func sessionXP(e domain.StudyEvent, streakAdvanced bool) int64 {
	switch e.Kind {
	case domain.EventFlashcardsStudied:
		return int64(e.Studied)*domain.XPFlashcardStudied + int64(e.Mastered)*domain.XPFlashcardMastered
	case domain.EventQuestionsAnswered:
		return int64(e.Correct) * domain.XPCorrectAnswer
	case domain.EventQuizCompleted:
		xp := domain.XPQuizCompleted
		if e.Total > 0 && e.Correct == e.Total {
			xp += domain.XPPerfectQuizBonus
		}
		return xp
	case domain.EventStudySetCreated:
		return domain.XPStudySetCreated
	case domain.EventDailyActivity:
		if streakAdvanced {
			return domain.XPDailyCheckIn
		}
	}
	return 0
}

// advanceStreak runs the daily streak state machine for the given activity
// date and reports whether the streak advanced. Same-day repeats and dates
// earlier than the last recorded activity leave the profile untouched.
func advanceStreak(p *domain.Profile, day domain.Day) bool {
	last := p.LastActivityDate
	switch {
	case last == nil:
		// First ever activity: today is day one.
		p.CurrentStreak = 1
	case day.Equal(*last), day.Before(*last):
		return false
	case day.Equal(last.Next()):
		p.CurrentStreak++
	default:
		// Gap of more than one day: streak resets, today counts as day one.
		p.CurrentStreak = 1
	}

	d := day
	p.LastActivityDate = &d
	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}
	return true
}

// evaluateAchievements unlocks every catalogue entry whose requirement the
// profile now meets, crediting XP and coin rewards onto the snapshot.
// Rewards can cascade a level-up, which in turn can satisfy a level-tier
// requirement, so evaluation repeats until a fixed point.
func evaluateAchievements(p *domain.Profile) (unlocked []domain.Achievement, xp, coins int64) {
	for {
		newly := false
		for _, a := range domain.Catalogue() {
			if p.HasAchievement(a.Type) {
				continue
			}
			if p.CounterFor(a.Category) < a.Requirement {
				continue
			}
			p.Unlocked[a.Type] = struct{}{}
			p.TotalXP += a.XPReward
			p.Coins += a.CoinReward
			xp += a.XPReward
			coins += a.CoinReward
			unlocked = append(unlocked, a)
			newly = true
		}
		p.Level = domain.LevelForXP(p.TotalXP)
		if !newly {
			return unlocked, xp, coins
		}
	}
}
