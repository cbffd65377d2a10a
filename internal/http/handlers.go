package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"pext/internal/api"
	"pext/internal/core"
	"pext/internal/log"
	"pext/internal/services"
)

type (
	cashExpenseRequest struct {
		Amount      string `json:"amount"`
		Category    string `json:"category"`
		Description string `json:"description,omitempty"`
		Date        string `json:"date,omitempty"`
		Currency    string `json:"currency,omitempty"`
	}

	savingGoalRequest struct {
		Category      string  `json:"category"`
		TargetAmount  float64 `json:"targetAmount"`
		CurrentAmount float64 `json:"currentAmount,omitempty"`
		GoalType      string  `json:"goalType"`
		Deadline      string  `json:"deadline,omitempty"`
	}

	savingGoalResponse struct {
		core.SavingGoal
		Progress      int `json:"progress"`
		DaysRemaining int `json:"daysRemaining"`
	}

	reportRequest struct {
		Kind string `json:"kind"`
	}

	reportResponse struct {
		Kind     string `json:"kind"`
		Filename string `json:"filename"`
	}
)

func (s *Server) handleListCashExpenses(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing or invalid userId")
		return
	}

	expenses, err := s.cash.List(owner)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "List cash expenses failed",
			log.FieldOwnerID, owner, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to list cash expenses")
		return
	}
	if expenses == nil {
		expenses = []core.CashExpense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleCreateCashExpense(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing or invalid userId")
		return
	}

	var req cashExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft := core.CashExpenseDraft{
		Amount:      sanitizeInput(req.Amount),
		Category:    sanitizeInput(req.Category),
		Description: sanitizeInput(req.Description),
		Currency:    sanitizeInput(req.Currency),
	}
	if req.Date != "" {
		d, err := parseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date, want RFC 3339 or YYYY-MM-DD")
			return
		}
		draft.Date = d
	}

	e, err := s.cash.Create(r.Context(), owner, draft)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Create cash expense failed",
			log.FieldOwnerID, owner, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to save cash expense")
		return
	}

	s.summaryCache.Remove(summaryKey(owner))
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleDeleteCashExpense(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing or invalid userId")
		return
	}
	id := r.PathValue("id")

	removed, err := s.cash.Delete(r.Context(), owner, id)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Delete cash expense failed",
			log.FieldOwnerID, owner, log.FieldExpenseID, id, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to delete cash expense")
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "cash expense not found")
		return
	}

	s.summaryCache.Remove(summaryKey(owner))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListSavingGoals(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing or invalid userId")
		return
	}

	goals, err := s.goals.List(owner)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "List saving goals failed",
			log.FieldOwnerID, owner, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to list saving goals")
		return
	}

	out := make([]savingGoalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, goalResponse(g))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateSavingGoal(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing or invalid userId")
		return
	}

	var req savingGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft := core.SavingGoalDraft{
		Category:      sanitizeInput(req.Category),
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		GoalType:      core.GoalType(req.GoalType),
	}
	if req.Deadline != "" {
		d, err := parseDate(req.Deadline)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid deadline, want RFC 3339 or YYYY-MM-DD")
			return
		}
		draft.Deadline = d
	}

	g, err := s.goals.Create(r.Context(), owner, draft)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Create saving goal failed",
			log.FieldOwnerID, owner, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to save saving goal")
		return
	}
	writeJSON(w, http.StatusCreated, goalResponse(g))
}

func (s *Server) handleDeleteSavingGoal(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing or invalid userId")
		return
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	removed, err := s.goals.Delete(r.Context(), owner, id)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Delete saving goal failed",
			log.FieldOwnerID, owner, log.FieldGoalID, id, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to delete saving goal")
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "saving goal not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, core.SuggestedCategories)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing or invalid userId")
		return
	}

	u, err := s.dashboard.Profile(r.Context(), owner)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Profile fetch failed",
			log.FieldOwnerID, owner, log.FieldError, err)
		writeError(w, http.StatusBadGateway, "failed to fetch profile")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing or invalid userId")
		return
	}

	cards, err := s.dashboard.Cards(r.Context(), owner)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Cards fetch failed",
			log.FieldOwnerID, owner, log.FieldError, err)
		writeError(w, http.StatusBadGateway, "failed to fetch cards")
		return
	}
	if cards == nil {
		cards = []api.Card{}
	}
	writeJSON(w, http.StatusOK, cards)
}

func (s *Server) handleLoans(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing or invalid userId")
		return
	}

	loans, err := s.dashboard.Loans(r.Context(), owner)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Loans fetch failed",
			log.FieldOwnerID, owner, log.FieldError, err)
		writeError(w, http.StatusBadGateway, "failed to fetch loans")
		return
	}
	if loans == nil {
		loans = []api.Loan{}
	}
	writeJSON(w, http.StatusOK, loans)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing or invalid userId")
		return
	}

	if sum, ok := s.summaryCache.Get(summaryKey(owner)); ok {
		writeJSON(w, http.StatusOK, sum)
		return
	}

	sum, err := s.dashboard.Dashboard(r.Context(), owner)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Dashboard computation failed",
			log.FieldOwnerID, owner, log.FieldError, err)
		writeError(w, http.StatusBadGateway, "failed to assemble dashboard")
		return
	}

	s.summaryCache.Put(summaryKey(owner), sum)
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing or invalid userId")
		return
	}

	data, err := s.dashboard.Charts(r.Context(), owner, granularity(r))
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Analytics computation failed",
			log.FieldOwnerID, owner, log.FieldError, err)
		writeError(w, http.StatusBadGateway, "failed to assemble analytics")
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleRequestReport(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing or invalid userId")
		return
	}

	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	filename, err := s.cash.RequestReport(r.Context(), owner, req.Kind)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, reportResponse{Kind: req.Kind, Filename: filename})
}

func (s *Server) handleDownloadReport(w http.ResponseWriter, r *http.Request) {
	filename := filepath.Base(r.PathValue("filename"))
	path := filepath.Join(s.reportDir, filename)

	if _, err := os.Stat(path); err != nil {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	http.ServeFile(w, r, path)
}

func summaryKey(owner int64) string {
	return "dashboard:" + strconv.FormatInt(owner, 10)
}

func goalResponse(g core.SavingGoal) savingGoalResponse {
	return savingGoalResponse{
		SavingGoal:    g,
		Progress:      services.GoalProgress(g),
		DaysRemaining: g.DaysRemaining(time.Now()),
	}
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

func isValidationError(err error) bool {
	return errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrEmptyCategory) ||
		errors.Is(err, core.ErrDescriptionTooLong) ||
		errors.Is(err, core.ErrInvalidGoalType) ||
		errors.Is(err, core.ErrTargetNotPositive) ||
		errors.Is(err, core.ErrNegativeCurrent) ||
		errors.Is(err, core.ErrCurrentExceedsTarget)
}
