package domain

import "fmt"

// EventKind enumerates the study event types the progress engine accepts.
type EventKind string

const (
	EventFlashcardsStudied EventKind = "flashcards_studied"
	EventQuestionsAnswered EventKind = "questions_answered"
	EventQuizCompleted     EventKind = "quiz_completed"
	EventStudySetCreated   EventKind = "study_set_created"
	EventDailyActivity     EventKind = "daily_activity"
)

// StudyEvent is a discrete notification from a session-completion handler.
// It carries only primitive counts and the calendar date the activity
// happened on; the unused fields for a given kind are zero.
type StudyEvent struct {
	Kind EventKind `json:"kind"`
	Date Day       `json:"date"`

	// Flashcards
	Studied  int `json:"studied,omitempty"`
	Mastered int `json:"mastered,omitempty"`

	// Questions / quizzes
	Correct int `json:"correct,omitempty"`
	Total   int `json:"total,omitempty"`
}

// NewFlashcardsStudied builds a flashcard session event.
func NewFlashcardsStudied(date Day, studied, mastered int) StudyEvent {
	return StudyEvent{Kind: EventFlashcardsStudied, Date: date, Studied: studied, Mastered: mastered}
}

// NewQuestionsAnswered builds a correct-answers event.
func NewQuestionsAnswered(date Day, correct int) StudyEvent {
	return StudyEvent{Kind: EventQuestionsAnswered, Date: date, Correct: correct}
}

// NewQuizCompleted builds a quiz completion event.
func NewQuizCompleted(date Day, total, correct int) StudyEvent {
	return StudyEvent{Kind: EventQuizCompleted, Date: date, Total: total, Correct: correct}
}

// NewStudySetCreated builds a study set creation event.
func NewStudySetCreated(date Day) StudyEvent {
	return StudyEvent{Kind: EventStudySetCreated, Date: date}
}

// NewDailyActivity builds a bare daily check-in event.
func NewDailyActivity(date Day) StudyEvent {
	return StudyEvent{Kind: EventDailyActivity, Date: date}
}

// Validate rejects payloads that would corrupt counters: negative counts,
// more correct answers than questions, or a missing activity date.
func (e StudyEvent) Validate() error {
	if e.Date.IsZero() {
		return fmt.Errorf("activity date is required")
	}

	switch e.Kind {
	case EventFlashcardsStudied:
		if e.Studied < 0 || e.Mastered < 0 {
			return fmt.Errorf("flashcard counts must be non-negative, got studied=%d mastered=%d", e.Studied, e.Mastered)
		}
	case EventQuestionsAnswered:
		if e.Correct < 0 {
			return fmt.Errorf("correct count must be non-negative, got %d", e.Correct)
		}
	case EventQuizCompleted:
		if e.Total < 0 || e.Correct < 0 {
			return fmt.Errorf("quiz counts must be non-negative, got total=%d correct=%d", e.Total, e.Correct)
		}
		if e.Correct > e.Total {
			return fmt.Errorf("correct count %d exceeds total questions %d", e.Correct, e.Total)
		}
	case EventStudySetCreated, EventDailyActivity:
		// date-only events
	default:
		return fmt.Errorf("unknown event kind: %s", e.Kind)
	}
	return nil
}
