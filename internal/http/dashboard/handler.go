package dashboard

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/zentracker/internal/daterange"
	"github.com/MrJamesThe3rd/zentracker/internal/http/query"
	"github.com/MrJamesThe3rd/zentracker/internal/report"
	"github.com/MrJamesThe3rd/zentracker/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
	now func() time.Time
}

func NewHandler(svc *transaction.Service, now func() time.Time) *Handler {
	return &Handler{svc: svc, now: now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
}

type displayTotals struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Balance string `json:"balance"`
}

type dashboardResponse struct {
	Totals    report.Totals   `json:"totals"`
	Display   displayTotals   `json:"display"`
	Labels    report.Labels   `json:"labels"`
	Breakdown []report.Slice  `json:"breakdown"`
	Trend     []report.Point  `json:"trend"`
	Count     int             `json:"count"`
	Filtered  bool            `json:"filtered"`
	Range     daterange.Range `json:"range"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	search, rng, err := query.Filter(r, h.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs := transaction.Filter(h.svc.All(), search, rng)
	totals := report.ComputeTotals(txs)

	resp := dashboardResponse{
		Totals: totals,
		Display: displayTotals{
			Income:  report.FormatAmount(totals.Income),
			Expense: report.FormatAmount(totals.Expense),
			Balance: report.FormatAmount(totals.Balance),
		},
		Labels:    report.PeriodLabels(rng.Label),
		Breakdown: report.SortByValue(report.Breakdown(txs)),
		Trend:     report.RecentSeries(txs, report.TrendSize),
		Count:     len(txs),
		Filtered:  transaction.IsFiltered(search, rng),
		Range:     rng,
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
