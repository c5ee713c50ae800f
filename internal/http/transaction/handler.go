package transaction

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/zentracker/internal/daterange"
	"github.com/MrJamesThe3rd/zentracker/internal/export"
	"github.com/MrJamesThe3rd/zentracker/internal/http/query"
	"github.com/MrJamesThe3rd/zentracker/internal/report"
	"github.com/MrJamesThe3rd/zentracker/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
	now func() time.Time
}

// NewHandler builds the handler. now supplies "today" for date presets and
// the default transaction date.
func NewHandler(svc *transaction.Service, now func() time.Time) *Handler {
	return &Handler{svc: svc, now: now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Delete("/", h.clear)
	r.Get("/export", h.export)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

type createTransactionRequest struct {
	Amount      json.Number      `json:"amount"`
	Type        transaction.Type `json:"type"`
	Category    string           `json:"category"`
	SubCategory string           `json:"subCategory"`
	Date        string           `json:"date"`
	Note        string           `json:"note"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	amount, err := transaction.ParseAmount(req.Amount.String())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date := req.Date
	if date == "" {
		date = h.now().Format(time.DateOnly)
	}

	tx, err := h.svc.Create(r.Context(), transaction.CreateParams{
		Amount:      amount,
		Type:        req.Type,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Date:        date,
		Note:        req.Note,
	})
	if err != nil {
		if errors.Is(err, transaction.ErrInvalid) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		slog.Error("failed to create transaction", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusCreated, toResponse(*tx))
}

type listResponse struct {
	Transactions []transactionResponse `json:"transactions"`
	Count        int                   `json:"count"`
	Filtered     bool                  `json:"filtered"`
	Range        daterange.Range       `json:"range"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	search, rng, err := query.Filter(r, h.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs := report.SortByDateDesc(transaction.Filter(h.svc.All(), search, rng))

	writeJSON(w, http.StatusOK, listResponse{
		Transactions: toResponseList(txs),
		Count:        len(txs),
		Filtered:     transaction.IsFiltered(search, rng),
		Range:        rng,
	})
}

// export streams the filtered list as CSV, newest first.
func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	search, rng, err := query.Filter(r, h.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs := report.SortByDateDesc(transaction.Filter(h.svc.All(), search, rng))
	name := export.FileName(h.now().Format(time.DateOnly))

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))

	if err := export.WriteCSV(w, txs); err != nil {
		slog.Error("failed to export transactions", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(id)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toResponse(*tx))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		slog.Error("failed to delete transaction", "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		http.Error(w, "clearing all transactions requires confirm=true", http.StatusBadRequest)
		return
	}

	if err := h.svc.Clear(r.Context()); err != nil {
		slog.Error("failed to clear transactions", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
