package report

import "github.com/MrJamesThe3rd/zentracker/internal/daterange"

// Labels are the headings of the three summary cards.
type Labels struct {
	Balance  string `json:"balance"`
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
}

// PeriodLabels names the summary cards after the selected period.
func PeriodLabels(p daterange.Preset) Labels {
	prefix := string(p)
	if p == daterange.PresetAllTime || p == "" {
		prefix = "Total"
	}

	return Labels{
		Balance:  prefix + " Balance",
		Income:   prefix + " Income",
		Expenses: prefix + " Expenses",
	}
}
