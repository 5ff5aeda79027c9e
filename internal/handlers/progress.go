package handlers

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/ideaprism/mafia-growth-academy/internal/models"
	"github.com/ideaprism/mafia-growth-academy/internal/services"
)

type ProgressHandler struct {
	progressService services.ProgressServiceInterface
}

func NewProgressHandler(progressService services.ProgressServiceInterface) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

type ProgressResponse struct {
	Progress models.UserProgress `json:"progress"`
}

type PercentageResponse struct {
	Percentages models.CategoryPercentages `json:"percentages"`
}

type MonthlyStatsResponse struct {
	Stats models.MonthlyStats `json:"stats"`
}

type CategoryRankingResponse struct {
	Category models.ChallengeCategory      `json:"category"`
	Ranking  []models.CategoryRankingEntry `json:"ranking"`
}

type OverallRankingResponse struct {
	Ranking []models.OverallRankingEntry `json:"ranking"`
}

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// monthParam reads an optional ?month=YYYY-MM. Empty means "current
// month", resolved by the aggregator at call time.
func monthParam(r *http.Request) (string, bool) {
	month := r.URL.Query().Get("month")
	if month == "" {
		return "", true
	}
	return month, monthPattern.MatchString(month)
}

func (h *ProgressHandler) UserProgress(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	userID, err := uuid.Parse(r.PathValue("userId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	month, ok := monthParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid month; expected YYYY-MM")
		return
	}

	writeJSON(w, http.StatusOK, ProgressResponse{
		Progress: h.progressService.UserProgress(r.Context(), userID, month),
	})
}

func (h *ProgressHandler) UserProgressPercentage(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	userID, err := uuid.Parse(r.PathValue("userId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	month, ok := monthParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid month; expected YYYY-MM")
		return
	}

	writeJSON(w, http.StatusOK, PercentageResponse{
		Percentages: h.progressService.UserProgressPercentage(r.Context(), userID, month),
	})
}

func (h *ProgressHandler) MonthlyStats(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	month, ok := monthParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid month; expected YYYY-MM")
		return
	}

	writeJSON(w, http.StatusOK, MonthlyStatsResponse{
		Stats: h.progressService.MonthlyStats(r.Context(), month),
	})
}

func (h *ProgressHandler) CategoryRanking(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	category := models.ChallengeCategory(r.PathValue("category"))
	if !models.IsValidCategory(category) {
		writeError(w, http.StatusBadRequest, "Invalid category")
		return
	}
	month, ok := monthParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid month; expected YYYY-MM")
		return
	}

	writeJSON(w, http.StatusOK, CategoryRankingResponse{
		Category: category,
		Ranking:  h.progressService.RankingByCategory(r.Context(), category, month),
	})
}

func (h *ProgressHandler) OverallRanking(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	month, ok := monthParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid month; expected YYYY-MM")
		return
	}

	writeJSON(w, http.StatusOK, OverallRankingResponse{
		Ranking: h.progressService.OverallRanking(r.Context(), month),
	})
}
