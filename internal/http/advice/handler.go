package advice

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/zentracker/internal/advice"
	"github.com/MrJamesThe3rd/zentracker/internal/transaction"
)

type Handler struct {
	coach *advice.Coach
	txs   *transaction.Service
	wait  time.Duration
}

// NewHandler builds the handler. A refresh waits up to wait for the result
// before answering with the in-flight snapshot.
func NewHandler(coach *advice.Coach, txs *transaction.Service, wait time.Duration) *Handler {
	return &Handler{coach: coach, txs: txs, wait: wait}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Post("/refresh", h.refresh)
}

func (h *Handler) get(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.coach.Snapshot())
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	err := h.coach.Refresh(h.txs.All())

	switch {
	case errors.Is(err, advice.ErrInFlight):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case errors.Is(err, advice.ErrNotEnoughData):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	case err != nil:
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.wait)
	defer cancel()

	if err := h.coach.Wait(ctx); err != nil {
		writeJSON(w, http.StatusAccepted, h.coach.Snapshot())
		return
	}

	writeJSON(w, http.StatusOK, h.coach.Snapshot())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
