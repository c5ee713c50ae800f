package settings

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/zentracker/internal/profile"
	"github.com/MrJamesThe3rd/zentracker/internal/theme"
	"github.com/MrJamesThe3rd/zentracker/internal/transaction"
)

// Handler serves the settings screen: profile, theme and the start-fresh reset.
type Handler struct {
	profiles *profile.Store
	themes   *theme.Store
	txs      *transaction.Service
}

func NewHandler(profiles *profile.Store, themes *theme.Store, txs *transaction.Service) *Handler {
	return &Handler{profiles: profiles, themes: themes, txs: txs}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/profile", h.getProfile)
	r.Put("/profile", h.putProfile)
	r.Get("/theme", h.getTheme)
	r.Put("/theme", h.putTheme)
	r.Post("/theme/toggle", h.toggleTheme)
	r.Post("/reset", h.reset)
}

func (h *Handler) getProfile(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.profiles.Get())
}

func (h *Handler) putProfile(w http.ResponseWriter, r *http.Request) {
	var p profile.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.profiles.Save(r.Context(), p); err != nil {
		slog.Error("failed to save profile", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, h.profiles.Get())
}

type themeBody struct {
	Theme theme.Theme `json:"theme"`
}

func (h *Handler) getTheme(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, themeBody{Theme: h.themes.Get()})
}

func (h *Handler) putTheme(w http.ResponseWriter, r *http.Request) {
	var req themeBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.themes.Set(r.Context(), req.Theme); err != nil {
		if errors.Is(err, theme.ErrUnknown) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		slog.Error("failed to save theme", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, themeBody{Theme: h.themes.Get()})
}

func (h *Handler) toggleTheme(w http.ResponseWriter, r *http.Request) {
	t, err := h.themes.Toggle(r.Context())
	if err != nil {
		slog.Error("failed to toggle theme", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, themeBody{Theme: t})
}

type resetRequest struct {
	Confirm bool `json:"confirm"`
}

// reset removes the persisted transactions and reloads from storage.
func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !req.Confirm {
		http.Error(w, "reset requires confirm=true", http.StatusBadRequest)
		return
	}

	if err := h.txs.Purge(r.Context()); err != nil {
		slog.Error("failed to purge transactions", "error", err)
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
