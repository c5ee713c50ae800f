package view

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/zentracker/internal/daterange"
	"github.com/MrJamesThe3rd/zentracker/internal/theme"
)

func fixedNow() time.Time {
	return time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)
}

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)

	return cmd()
}

func TestTimeframePicker_LastMonth(t *testing.T) {
	p := NewTimeframePicker(NewStyles(theme.Light), fixedNow)

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})

	msg, ok := runCmd(t, cmd).(TimeframeSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, daterange.Range{Start: "2023-12-01", End: "2023-12-31", Label: daterange.PresetLastMonth}, msg.Range)
	assert.Equal(t, msg.Range, p.Range())
}

func TestTimeframePicker_Custom(t *testing.T) {
	p := NewTimeframePicker(NewStyles(theme.Light), fixedNow)

	for range len(daterange.Presets) - 1 {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, p.IsSelecting())

	p.startInput.SetValue("2024-01-01")
	p.endInput.SetValue("bad")

	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Error(t, p.err)

	p.endInput.SetValue("")

	p, cmd = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg, ok := runCmd(t, cmd).(TimeframeSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, daterange.Range{Start: "2024-01-01", Label: daterange.PresetCustom}, msg.Range)
	assert.True(t, p.IsSelecting())
}

func TestFilterBar_SearchAndReset(t *testing.T) {
	styles := NewStyles(theme.Dark)
	filter := NewFilter()
	bar := NewFilterBar(filter, styles, fixedNow)

	bar, _, handled := bar.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	require.True(t, handled)
	assert.True(t, bar.Active())

	bar, _, _ = bar.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("rent")})
	assert.Equal(t, "rent", filter.Search)
	assert.True(t, filter.IsFiltered())

	bar, _, _ = bar.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, bar.Active())

	bar, _, _ = bar.Update(TimeframeSelectedMsg{Range: daterange.Range{Start: "2024-01-01", Label: daterange.PresetThisMonth}})
	assert.Equal(t, daterange.PresetThisMonth, filter.Range.Label)

	_, _, handled = bar.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.True(t, handled)
	assert.False(t, filter.IsFiltered())
}

func TestStyles_Apply(t *testing.T) {
	s := NewStyles(theme.Light)
	shared := s

	s.Apply(theme.Dark)

	assert.Equal(t, theme.Dark, shared.Theme)
	assert.NotNil(t, shared.FormTheme())
}
