package domain

// AchievementType identifies a single unlockable milestone. The set is
// closed: every value is declared here and listed in the catalogue.
type AchievementType string

const (
	AchQuestions10   AchievementType = "questions_10"
	AchQuestions50   AchievementType = "questions_50"
	AchQuestions100  AchievementType = "questions_100"
	AchQuestions500  AchievementType = "questions_500"
	AchQuestions1000 AchievementType = "questions_1000"

	AchFlashcards25   AchievementType = "flashcards_25"
	AchFlashcards100  AchievementType = "flashcards_100"
	AchFlashcards250  AchievementType = "flashcards_250"
	AchFlashcards1000 AchievementType = "flashcards_1000"

	AchSets1  AchievementType = "sets_1"
	AchSets5  AchievementType = "sets_5"
	AchSets10 AchievementType = "sets_10"
	AchSets25 AchievementType = "sets_25"

	AchPerfect1  AchievementType = "perfect_1"
	AchPerfect10 AchievementType = "perfect_10"
	AchPerfect25 AchievementType = "perfect_25"

	AchStreak3   AchievementType = "streak_3"
	AchStreak7   AchievementType = "streak_7"
	AchStreak14  AchievementType = "streak_14"
	AchStreak30  AchievementType = "streak_30"
	AchStreak100 AchievementType = "streak_100"

	AchLevel5  AchievementType = "level_5"
	AchLevel10 AchievementType = "level_10"
	AchLevel25 AchievementType = "level_25"
	AchLevel50 AchievementType = "level_50"
)

// AchievementCategory groups achievements by the lifetime counter they track.
type AchievementCategory string

const (
	CategoryQuestions      AchievementCategory = "questions"
	CategoryFlashcards     AchievementCategory = "flashcards"
	CategoryStudySets      AchievementCategory = "study_sets"
	CategoryPerfectQuizzes AchievementCategory = "perfect_quizzes"
	CategoryStreak         AchievementCategory = "streak"
	CategoryLevel          AchievementCategory = "level"
)

// Achievement describes one entry of the static catalogue.
type Achievement struct {
	Type        AchievementType     `json:"type"`
	Category    AchievementCategory `json:"category"`
	Title       string              `json:"title"`
	Requirement int64               `json:"requirement"`
	XPReward    int64               `json:"xp_reward"`
	CoinReward  int64               `json:"coin_reward"`
}

// catalogue lists every achievement, grouped by category with strictly
// ascending requirements within each group.
var catalogue = []Achievement{
	{AchQuestions10, CategoryQuestions, "First Steps", 10, 25, 10},
	{AchQuestions50, CategoryQuestions, "Getting Serious", 50, 50, 25},
	{AchQuestions100, CategoryQuestions, "Century Club", 100, 100, 50},
	{AchQuestions500, CategoryQuestions, "Quiz Veteran", 500, 250, 100},
	{AchQuestions1000, CategoryQuestions, "Knowledge Machine", 1000, 500, 250},

	{AchFlashcards25, CategoryFlashcards, "Card Shark", 25, 25, 10},
	{AchFlashcards100, CategoryFlashcards, "Deck Runner", 100, 75, 30},
	{AchFlashcards250, CategoryFlashcards, "Memory Bank", 250, 150, 75},
	{AchFlashcards1000, CategoryFlashcards, "Total Recall", 1000, 400, 200},

	{AchSets1, CategoryStudySets, "Creator", 1, 20, 5},
	{AchSets5, CategoryStudySets, "Curator", 5, 50, 25},
	{AchSets10, CategoryStudySets, "Librarian", 10, 100, 50},
	{AchSets25, CategoryStudySets, "Archivist", 25, 250, 125},

	{AchPerfect1, CategoryPerfectQuizzes, "Flawless", 1, 30, 15},
	{AchPerfect10, CategoryPerfectQuizzes, "Perfectionist", 10, 150, 75},
	{AchPerfect25, CategoryPerfectQuizzes, "Untouchable", 25, 350, 175},

	{AchStreak3, CategoryStreak, "Warming Up", 3, 30, 15},
	{AchStreak7, CategoryStreak, "One Week Strong", 7, 75, 35},
	{AchStreak14, CategoryStreak, "Fortnight Focus", 14, 150, 75},
	{AchStreak30, CategoryStreak, "Monthly Master", 30, 350, 150},
	{AchStreak100, CategoryStreak, "Unstoppable", 100, 1000, 500},

	{AchLevel5, CategoryLevel, "Rising Star", 5, 50, 25},
	{AchLevel10, CategoryLevel, "Dedicated", 10, 125, 60},
	{AchLevel25, CategoryLevel, "Scholar", 25, 300, 150},
	{AchLevel50, CategoryLevel, "Grandmaster", 50, 750, 400},
}

var catalogueByType = func() map[AchievementType]Achievement {
	m := make(map[AchievementType]Achievement, len(catalogue))
	for _, a := range catalogue {
		m[a.Type] = a
	}
	return m
}()

// Catalogue returns the full achievement catalogue in definition order.
func Catalogue() []Achievement { return catalogue }

// AchievementByType looks up a catalogue entry by identifier.
func AchievementByType(t AchievementType) (Achievement, bool) {
	a, ok := catalogueByType[t]
	return a, ok
}

// AchievementsByCategory returns the ascending requirement tiers for one category.
func AchievementsByCategory(c AchievementCategory) []Achievement {
	var out []Achievement
	for _, a := range catalogue {
		if a.Category == c {
			out = append(out, a)
		}
	}
	return out
}

// CounterFor returns the profile counter an achievement category is measured
// against.
func (p Profile) CounterFor(c AchievementCategory) int64 {
	switch c {
	case CategoryQuestions:
		return p.TotalQuestionsCorrect
	case CategoryFlashcards:
		return p.TotalFlashcardsStudied
	case CategoryStudySets:
		return p.TotalStudySets
	case CategoryPerfectQuizzes:
		return p.PerfectQuizzes
	case CategoryStreak:
		return int64(p.LongestStreak)
	case CategoryLevel:
		return int64(p.Level)
	}
	return 0
}
