package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/studyforge/platform/internal/auth"
	"github.com/studyforge/platform/internal/domain"
	"github.com/studyforge/platform/internal/guard"
	"github.com/studyforge/platform/internal/progress"
)

// ProgressRecorder is the slice of the progress recorder the handlers use.
type ProgressRecorder interface {
	Record(ctx context.Context, userID uuid.UUID, event domain.StudyEvent) (*progress.RecordResult, error)
	View(ctx context.Context, userID uuid.UUID) (*domain.ProfileView, error)
	Profile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
}

// StudyHandler accepts study event notifications from session-completion
// handlers and feeds them to the progress recorder.
type StudyHandler struct {
	recorder ProgressRecorder
	idem     *guard.IdempotencyGuard
	limiter  *guard.RateLimiter
}

// NewStudyHandler creates a new StudyHandler.
func NewStudyHandler(recorder ProgressRecorder, idem *guard.IdempotencyGuard, limiter *guard.RateLimiter) *StudyHandler {
	return &StudyHandler{recorder: recorder, idem: idem, limiter: limiter}
}

// eventDate resolves the activity date for a request: the explicit
// "date" field when present, otherwise today in UTC.
func eventDate(raw string) (domain.Day, error) {
	if raw == "" {
		return domain.DayOf(time.Now()), nil
	}
	return domain.ParseDay(raw)
}

func (h *StudyHandler) record(w http.ResponseWriter, r *http.Request, event domain.StudyEvent) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		RespondError(w, domain.ErrUnauthorized(err.Error()))
		return
	}

	if res := h.limiter.Check(r.Context(), userID.String()); !res.Allowed {
		RespondError(w, domain.ErrRateLimited(res.Reason))
		return
	}

	// Clients may send an Idempotency-Key per completed session so retries
	// cannot double-award XP.
	idemKey := r.Header.Get("Idempotency-Key")
	if res := h.idem.Check(r.Context(), idemKey); !res.Allowed {
		RespondError(w, domain.ErrConflict(res.Reason))
		return
	}

	result, err := h.recorder.Record(r.Context(), userID, event)
	if err != nil {
		h.idem.Remove(idemKey)
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, result)
}

// FlashcardsStudied handles POST /study/flashcards.
func (h *StudyHandler) FlashcardsStudied(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Studied  int    `json:"studied"`
		Mastered int    `json:"mastered"`
		Date     string `json:"date"`
	}
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}
	day, err := eventDate(input.Date)
	if err != nil {
		RespondError(w, domain.ErrValidation(err.Error()))
		return
	}

	h.record(w, r, domain.NewFlashcardsStudied(day, input.Studied, input.Mastered))
}

// QuestionsAnswered handles POST /study/answers.
func (h *StudyHandler) QuestionsAnswered(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Correct int    `json:"correct"`
		Date    string `json:"date"`
	}
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}
	day, err := eventDate(input.Date)
	if err != nil {
		RespondError(w, domain.ErrValidation(err.Error()))
		return
	}

	h.record(w, r, domain.NewQuestionsAnswered(day, input.Correct))
}

// QuizCompleted handles POST /study/quizzes.
func (h *StudyHandler) QuizCompleted(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Total   int    `json:"total"`
		Correct int    `json:"correct"`
		Date    string `json:"date"`
	}
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}
	day, err := eventDate(input.Date)
	if err != nil {
		RespondError(w, domain.ErrValidation(err.Error()))
		return
	}

	h.record(w, r, domain.NewQuizCompleted(day, input.Total, input.Correct))
}

// StudySetCreated handles POST /study/sets.
func (h *StudyHandler) StudySetCreated(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, domain.NewStudySetCreated(domain.DayOf(time.Now())))
}

// DailyActivity handles POST /study/activity — a bare daily check-in.
func (h *StudyHandler) DailyActivity(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Date string `json:"date"`
	}
	// Body is optional: an empty body means "today".
	_ = DecodeJSON(r, &input)

	day, err := eventDate(input.Date)
	if err != nil {
		RespondError(w, domain.ErrValidation(err.Error()))
		return
	}

	h.record(w, r, domain.NewDailyActivity(day))
}
