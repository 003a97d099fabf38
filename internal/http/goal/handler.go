package goal

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/granahq/grana/internal/goal"
	"github.com/granahq/grana/internal/transaction"
)

type Handler struct {
	svc *goal.Service
}

func NewHandler(svc *goal.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{accountType}", h.get)
	r.Put("/{accountType}", h.set)
}

type goalsPayload struct {
	ExpenseLimit int64 `json:"expense_limit"`
	IncomeGoal   int64 `json:"income_goal"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	accountType := transaction.AccountType(chi.URLParam(r, "accountType"))
	if !accountType.Valid() {
		http.Error(w, "invalid account type", http.StatusBadRequest)
		return
	}

	g, err := h.svc.Get(accountType)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(goalsPayload{
		ExpenseLimit: g.ExpenseLimit,
		IncomeGoal:   g.IncomeGoal,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	accountType := transaction.AccountType(chi.URLParam(r, "accountType"))
	if !accountType.Valid() {
		http.Error(w, "invalid account type", http.StatusBadRequest)
		return
	}

	var req goalsPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.Set(accountType, goal.Goals{
		ExpenseLimit: req.ExpenseLimit,
		IncomeGoal:   req.IncomeGoal,
	}); err != nil {
		if errors.Is(err, goal.ErrInvalidGoal) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
