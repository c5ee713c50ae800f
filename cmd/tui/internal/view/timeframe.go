package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/zentracker/internal/daterange"
)

// TimeframeSelectedMsg is emitted when the user has picked a date range.
type TimeframeSelectedMsg struct {
	Range daterange.Range
}

type timeframeState int

const (
	timeframeStateSelect timeframeState = iota
	timeframeStateCustom
)

// TimeframePicker selects one of the date-range presets, or a custom range.
type TimeframePicker struct {
	styles *Styles
	now    func() time.Time

	state    timeframeState
	selected int
	current  daterange.Range

	startInput textinput.Model
	endInput   textinput.Model
	focusIndex int

	err error
}

func NewTimeframePicker(styles *Styles, now func() time.Time) TimeframePicker {
	si := textinput.New()
	si.Placeholder = "YYYY-MM-DD"
	si.CharLimit = 10
	si.Width = 12
	si.Prompt = "Start Date: "

	ei := textinput.New()
	ei.Placeholder = "YYYY-MM-DD"
	ei.CharLimit = 10
	ei.Width = 12
	ei.Prompt = "End Date:   "

	return TimeframePicker{
		styles:     styles,
		now:        now,
		current:    daterange.All(),
		startInput: si,
		endInput:   ei,
	}
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case timeframeStateSelect:
			return m.updateSelect(keyMsg)
		case timeframeStateCustom:
			if next, cmd, handled := m.updateCustom(keyMsg); handled {
				return next, cmd
			}
		}
	}

	if m.state == timeframeStateCustom {
		return m.updateInputs(msg)
	}

	return m, nil
}

func (m TimeframePicker) updateSelect(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > 0 {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < len(daterange.Presets)-1 {
			m.selected++
		}
	case tea.KeyEnter:
		preset := daterange.Presets[m.selected]

		if preset == daterange.PresetCustom {
			m.state = timeframeStateCustom
			m.startInput.SetValue(m.current.Start)
			m.endInput.SetValue(m.current.End)
			m.startInput.Focus()
			m.focusIndex = 0

			return m, textinput.Blink
		}

		m.current = daterange.Resolve(preset, m.now(), m.current)

		return m, m.selectedCmd()
	}

	return m, nil
}

func (m TimeframePicker) updateCustom(msg tea.KeyMsg) (TimeframePicker, tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focusIndex = (m.focusIndex + 1) % 2
		m.startInput.Blur()
		m.endInput.Blur()

		if m.focusIndex == 0 {
			m.startInput.Focus()
		} else {
			m.endInput.Focus()
		}

		return m, textinput.Blink, true

	case "enter":
		rng, err := daterange.Custom(m.startInput.Value(), m.endInput.Value())
		if err != nil {
			m.err = err
			return m, nil, true
		}

		m.err = nil
		m.state = timeframeStateSelect
		m.current = daterange.Resolve(daterange.PresetCustom, m.now(), rng)

		return m, m.selectedCmd(), true

	case "esc":
		m.state = timeframeStateSelect
		m.err = nil

		return m, nil, true
	}

	return m, nil, false
}

func (m TimeframePicker) updateInputs(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	var cmds []tea.Cmd
	var c tea.Cmd

	m.startInput, c = m.startInput.Update(msg)
	cmds = append(cmds, c)
	m.endInput, c = m.endInput.Update(msg)
	cmds = append(cmds, c)

	return m, tea.Batch(cmds...)
}

func (m TimeframePicker) selectedCmd() tea.Cmd {
	rng := m.current

	return func() tea.Msg {
		return TimeframeSelectedMsg{Range: rng}
	}
}

func (m TimeframePicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = m.styles.Error.Render(fmt.Sprintf("\n\nError: %v", m.err))
	}

	if m.state == timeframeStateCustom {
		return fmt.Sprintf(
			"Enter Custom Range (either bound may be empty):\n\n%s\n%s\n\n(Enter to confirm, Tab to switch, Esc to back)%s",
			m.startInput.View(),
			m.endInput.View(),
			errStr,
		)
	}

	s := "Select Timeframe:\n\n"
	for i, p := range daterange.Presets {
		cursor := " "
		if m.selected == i {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, p)
	}

	s += "\n(Enter to select, Esc to back)"

	return s + errStr
}

// IsSelecting returns true if the picker is in the selection state (not custom input).
func (m TimeframePicker) IsSelecting() bool {
	return m.state == timeframeStateSelect
}

// Range is the last selected range.
func (m TimeframePicker) Range() daterange.Range {
	return m.current
}

// SetRange positions the picker on rng, e.g. when another screen changed it.
func (m *TimeframePicker) SetRange(rng daterange.Range) {
	m.current = rng
	m.state = timeframeStateSelect
	m.err = nil

	for i, p := range daterange.Presets {
		if p == rng.Label {
			m.selected = i
		}
	}
}
