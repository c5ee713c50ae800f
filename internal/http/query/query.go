// Package query decodes the view parameters shared by the list and dashboard
// endpoints.
package query

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MrJamesThe3rd/zentracker/internal/daterange"
)

var ErrInvalid = errors.New("invalid query")

// Filter reads the search term (q) and the date range (preset, start, end).
// Bare start/end without a preset imply Custom; nothing at all means All Time.
func Filter(r *http.Request, today time.Time) (string, daterange.Range, error) {
	q := r.URL.Query()

	preset := q.Get("preset")
	start, end := q.Get("start"), q.Get("end")

	if preset == "" {
		if start == "" && end == "" {
			return q.Get("q"), daterange.All(), nil
		}

		preset = string(daterange.PresetCustom)
	}

	p, err := daterange.ParsePreset(preset)
	if err != nil {
		return "", daterange.Range{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	var current daterange.Range

	if p == daterange.PresetCustom {
		current, err = daterange.Custom(start, end)
		if err != nil {
			return "", daterange.Range{}, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}

	return q.Get("q"), daterange.Resolve(p, today, current), nil
}
