package view

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/zentracker/internal/theme"
)

// Styles holds the palette for the current theme. Views share one *Styles so
// a theme switch is picked up everywhere on the next render.
type Styles struct {
	Theme theme.Theme

	Title    lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Income   lipgloss.Style
	Expense  lipgloss.Style
	Error    lipgloss.Style
	Panel    lipgloss.Style
	Selected lipgloss.Style

	BorderColor lipgloss.Color
}

func NewStyles(t theme.Theme) *Styles {
	s := &Styles{}
	s.Apply(t)

	return s
}

// Apply rebuilds the palette in place.
func (s *Styles) Apply(t theme.Theme) {
	var (
		fg, muted, accent, border lipgloss.Color
		income, expense           lipgloss.Color
	)

	if t == theme.Dark {
		fg, muted, accent, border = "252", "244", "141", "238"
		income, expense = "78", "203"
	} else {
		fg, muted, accent, border = "235", "245", "63", "250"
		income, expense = "28", "160"
	}

	*s = Styles{
		Theme:       t,
		Title:       lipgloss.NewStyle().Bold(true).Foreground(fg),
		Muted:       lipgloss.NewStyle().Foreground(muted),
		Accent:      lipgloss.NewStyle().Foreground(accent),
		Income:      lipgloss.NewStyle().Foreground(income),
		Expense:     lipgloss.NewStyle().Foreground(expense),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Panel:       lipgloss.NewStyle().Padding(0, 1).BorderStyle(lipgloss.RoundedBorder()).BorderForeground(border),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(accent),
		BorderColor: border,
	}
}

// FormTheme returns the huh theme matching the palette.
func (s *Styles) FormTheme() *huh.Theme {
	if s.Theme == theme.Dark {
		return huh.ThemeDracula()
	}

	return huh.ThemeBase()
}
