package transaction

import (
	"strings"

	"github.com/MrJamesThe3rd/zentracker/internal/daterange"
)

// Filter returns the transactions matching both the search term and the date
// range. A blank term matches everything; any other term is matched as typed,
// surrounding spaces included. The input is never modified.
func Filter(txs []Transaction, search string, r daterange.Range) []Transaction {
	term := strings.ToLower(search)
	if strings.TrimSpace(search) == "" {
		term = ""
	}

	out := make([]Transaction, 0, len(txs))

	for _, t := range txs {
		if term != "" && !matchesTerm(t, term) {
			continue
		}

		if !inRange(t, r) {
			continue
		}

		out = append(out, t)
	}

	return out
}

// IsFiltered reports whether search or r narrows the view.
func IsFiltered(search string, r daterange.Range) bool {
	return strings.TrimSpace(search) != "" || !r.IsAll()
}

func matchesTerm(t Transaction, term string) bool {
	if strings.Contains(strings.ToLower(t.Category), term) {
		return true
	}

	if t.SubCategory != "" && strings.Contains(strings.ToLower(t.SubCategory), term) {
		return true
	}

	return strings.Contains(strings.ToLower(t.Note), term)
}

// Dates are YYYY-MM-DD so string comparison is chronological.
func inRange(t Transaction, r daterange.Range) bool {
	if r.Start != "" && t.Date < r.Start {
		return false
	}

	if r.End != "" && t.Date > r.End {
		return false
	}

	return true
}
