package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/zentracker/internal/daterange"
	"github.com/MrJamesThe3rd/zentracker/internal/transaction"
)

// Filter is the search term and period shared by the dashboard and the list.
type Filter struct {
	Search string
	Range  daterange.Range
}

func NewFilter() *Filter {
	return &Filter{Range: daterange.All()}
}

func (f *Filter) Apply(txs []transaction.Transaction) []transaction.Transaction {
	return transaction.Filter(txs, f.Search, f.Range)
}

func (f *Filter) IsFiltered() bool {
	return transaction.IsFiltered(f.Search, f.Range)
}

type filterMode int

const (
	filterIdle filterMode = iota
	filterSearching
	filterPicking
)

// FilterBar edits a shared Filter: "/" types a search term, "p" picks a period.
type FilterBar struct {
	filter *Filter
	styles *Styles

	mode   filterMode
	search textinput.Model
	picker TimeframePicker
}

func NewFilterBar(filter *Filter, styles *Styles, now func() time.Time) FilterBar {
	ti := textinput.New()
	ti.Placeholder = "category, sub-category or note"
	ti.Prompt = "Search: "
	ti.CharLimit = 64
	ti.Width = 40

	picker := NewTimeframePicker(styles, now)
	picker.SetRange(filter.Range)

	return FilterBar{filter: filter, styles: styles, search: ti, picker: picker}
}

// Active reports whether the bar currently owns keyboard input.
func (b FilterBar) Active() bool {
	return b.mode != filterIdle
}

// Update returns handled=true when msg was consumed by the bar.
func (b FilterBar) Update(msg tea.Msg) (FilterBar, tea.Cmd, bool) {
	if sel, ok := msg.(TimeframeSelectedMsg); ok {
		b.filter.Range = sel.Range
		b.mode = filterIdle

		return b, nil, true
	}

	keyMsg, isKey := msg.(tea.KeyMsg)

	switch b.mode {
	case filterIdle:
		if !isKey {
			return b, nil, false
		}

		switch keyMsg.String() {
		case "/":
			b.mode = filterSearching
			b.search.SetValue(b.filter.Search)
			b.search.CursorEnd()

			return b, b.search.Focus(), true
		case "p":
			b.mode = filterPicking
			b.picker.SetRange(b.filter.Range)

			return b, nil, true
		case "x":
			b.filter.Search = ""
			b.filter.Range = daterange.All()

			return b, nil, true
		}

		return b, nil, false

	case filterSearching:
		if isKey {
			switch keyMsg.Type {
			case tea.KeyEnter:
				b.mode = filterIdle
				b.search.Blur()

				return b, nil, true
			case tea.KeyEsc:
				b.mode = filterIdle
				b.filter.Search = ""
				b.search.Blur()

				return b, nil, true
			}
		}

		var cmd tea.Cmd
		b.search, cmd = b.search.Update(msg)
		b.filter.Search = b.search.Value()

		return b, cmd, true

	case filterPicking:
		if isKey && keyMsg.Type == tea.KeyEsc && b.picker.IsSelecting() {
			b.mode = filterIdle
			return b, nil, true
		}

		var cmd tea.Cmd
		b.picker, cmd = b.picker.Update(msg)

		return b, cmd, true
	}

	return b, nil, false
}

func (b FilterBar) View() string {
	switch b.mode {
	case filterSearching:
		return b.search.View()
	case filterPicking:
		return b.styles.Panel.Render(b.picker.View())
	}

	search := b.filter.Search
	if search == "" {
		search = "none"
	}

	period := string(b.filter.Range.Label)
	if b.filter.Range.Label == daterange.PresetCustom {
		period = fmt.Sprintf("%s (%s … %s)", period, orDash(b.filter.Range.Start), orDash(b.filter.Range.End))
	}

	line := fmt.Sprintf("[/] Search: %s | [p] Period: %s",
		b.styles.Accent.Render(search),
		b.styles.Accent.Render(period),
	)

	if b.filter.IsFiltered() {
		line += b.styles.Muted.Render("  (filtered, x to reset)")
	}

	return line
}

func orDash(s string) string {
	if s == "" {
		return "…"
	}

	return s
}
