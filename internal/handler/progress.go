package handler

import (
	"net/http"

	"github.com/studyforge/platform/internal/auth"
	"github.com/studyforge/platform/internal/domain"
)

// ProgressHandler serves the read-only progress queries consumed by display
// surfaces.
type ProgressHandler struct {
	recorder ProgressRecorder
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(recorder ProgressRecorder) *ProgressHandler {
	return &ProgressHandler{recorder: recorder}
}

// GetMe handles GET /progress/me.
func (h *ProgressHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		RespondError(w, domain.ErrUnauthorized(err.Error()))
		return
	}

	view, err := h.recorder.View(r.Context(), userID)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, view)
}

type achievementStatus struct {
	domain.Achievement
	Unlocked bool `json:"unlocked"`
}

type achievementCategoryGroup struct {
	Category     domain.AchievementCategory `json:"category"`
	Achievements []achievementStatus        `json:"achievements"`
}

// ListAchievements handles GET /progress/achievements — the full catalogue
// grouped by category, with per-entry unlocked flags.
func (h *ProgressHandler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		RespondError(w, domain.ErrUnauthorized(err.Error()))
		return
	}

	profile, err := h.recorder.Profile(r.Context(), userID)
	if err != nil {
		RespondError(w, err)
		return
	}

	categories := []domain.AchievementCategory{
		domain.CategoryQuestions,
		domain.CategoryFlashcards,
		domain.CategoryStudySets,
		domain.CategoryPerfectQuizzes,
		domain.CategoryStreak,
		domain.CategoryLevel,
	}

	groups := make([]achievementCategoryGroup, 0, len(categories))
	for _, c := range categories {
		tiers := domain.AchievementsByCategory(c)
		statuses := make([]achievementStatus, 0, len(tiers))
		for _, a := range tiers {
			statuses = append(statuses, achievementStatus{
				Achievement: a,
				Unlocked:    profile.HasAchievement(a.Type),
			})
		}
		groups = append(groups, achievementCategoryGroup{Category: c, Achievements: statuses})
	}

	RespondJSON(w, http.StatusOK, groups)
}
