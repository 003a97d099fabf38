package report

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/granahq/grana/internal/auth"
	"github.com/granahq/grana/internal/report"
	"github.com/granahq/grana/internal/transaction"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/export", h.export)
}

// export streams the PDF for the requested account scope. The report is
// rendered into memory first so a render failure does not leave a half
// written response behind.
func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	accountType := transaction.AccountType(r.URL.Query().Get("account_type"))

	var buf bytes.Buffer

	filename, err := h.svc.Export(r.Context(), userID, accountType, &buf)
	if err != nil {
		if errors.Is(err, transaction.ErrInvalidAccount) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))

	_, _ = w.Write(buf.Bytes())
}
