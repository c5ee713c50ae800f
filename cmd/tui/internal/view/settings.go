package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/zentracker/internal/profile"
	"github.com/MrJamesThe3rd/zentracker/internal/theme"
	"github.com/MrJamesThe3rd/zentracker/internal/transaction"
)

type settingsState int

const (
	settingsStateMenu settingsState = iota
	settingsStateProfile
	settingsStateConfirmPurge
)

// ThemeChangedMsg is emitted after the theme was toggled and persisted.
type ThemeChangedMsg struct {
	Theme theme.Theme
}

type SettingsModel struct {
	profiles  *profile.Store
	themes    *theme.Store
	txService *transaction.Service
	styles    *Styles

	state   settingsState
	form    *huh.Form
	draft   *profile.Profile
	confirm *confirmField
	status  string
}

func NewSettingsModel(profiles *profile.Store, themes *theme.Store, txSvc *transaction.Service, styles *Styles) SettingsModel {
	return SettingsModel{
		profiles:  profiles,
		themes:    themes,
		txService: txSvc,
		styles:    styles,
	}
}

func (m SettingsModel) Title() string { return "Settings" }

func (m SettingsModel) ShortHelp() string {
	if m.state != settingsStateMenu {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | e: edit profile | t: toggle theme | f: start fresh"
}

func (m SettingsModel) Init() tea.Cmd {
	return nil
}

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(settingsSaveMsg); ok {
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		return m, nil
	}

	if m.state != settingsStateMenu {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "e":
		p := m.profiles.Get()
		m.draft = &p
		m.form = newProfileForm(m.draft, m.styles)
		m.state = settingsStateProfile

		return m, m.form.Init()
	case "t":
		return m, m.toggleThemeCmd()
	case "f":
		m.confirm = &confirmField{}
		m.form = newConfirmForm(m.confirm,
			"Start fresh?",
			"All stored transactions are removed permanently.",
			m.styles)
		m.state = settingsStateConfirmPurge

		return m, m.form.Init()
	}

	return m, nil
}

func (m SettingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = settingsStateMenu
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		m.state = settingsStateMenu
		m.form = nil

		return m, nil
	case huh.StateCompleted:
	default:
		return m, cmd
	}

	state := m.state
	m.state = settingsStateMenu
	m.form = nil

	switch state {
	case settingsStateProfile:
		return m, m.saveProfileCmd(*m.draft)
	case settingsStateConfirmPurge:
		if m.confirm.Yes {
			return m, m.purgeCmd()
		}
	}

	return m, nil
}

func (m SettingsModel) View() string {
	p := m.profiles.Get()

	row := func(label, value string) string {
		if value == "" {
			value = m.styles.Muted.Render("not set")
		}

		return fmt.Sprintf("%-8s %s", label, value)
	}

	profileView := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Profile"),
		"",
		row("Name", p.Name),
		row("Gender", p.Gender),
		row("Age", p.Age),
		row("City", p.City),
		row("State", p.State),
		row("Phone", p.Phone),
	)

	prefs := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Preferences"),
		"",
		row("Theme", string(m.themes.Get())),
		row("Records", fmt.Sprintf("%d transactions", m.txService.Len())),
	)

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Panel.Width(40).Render(profileView),
		m.styles.Panel.Width(36).Render(prefs),
	)

	if m.form != nil {
		title := "Edit Profile"
		if m.state == settingsStateConfirmPurge {
			title = "Confirm"
		}

		content = lipgloss.JoinVertical(lipgloss.Left,
			content,
			m.styles.Panel.Padding(1, 2).Width(56).Render(m.styles.Title.Render(title)+"\n\n"+m.form.View()),
		)
	}

	if m.status != "" {
		content = m.styles.Muted.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func newProfileForm(p *profile.Profile, styles *Styles) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&p.Name),
			huh.NewSelect[string]().
				Title("Gender").
				Options(
					huh.NewOption("Prefer not to say", ""),
					huh.NewOption("Female", "Female"),
					huh.NewOption("Male", "Male"),
					huh.NewOption("Other", "Other"),
				).
				Value(&p.Gender),
			huh.NewInput().Title("Age").Value(&p.Age),
		),
		huh.NewGroup(
			huh.NewInput().Title("City").Value(&p.City),
			huh.NewInput().Title("State").Value(&p.State),
			huh.NewInput().Title("Phone").Value(&p.Phone),
		),
	).WithWidth(50).WithShowHelp(false).WithTheme(styles.FormTheme())
}

// Messages

type settingsSaveMsg struct {
	status string
	err    error
}

func (m SettingsModel) saveProfileCmd(p profile.Profile) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.profiles.Save(ctx, p); err != nil {
			return settingsSaveMsg{err: err}
		}

		return settingsSaveMsg{status: "Profile saved."}
	}
}

func (m SettingsModel) toggleThemeCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		t, err := m.themes.Toggle(ctx)
		if err != nil {
			return settingsSaveMsg{err: err}
		}

		return ThemeChangedMsg{Theme: t}
	}
}

func (m SettingsModel) purgeCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.txService.Purge(ctx); err != nil {
			return settingsSaveMsg{err: err}
		}

		return settingsSaveMsg{status: "Stored transactions removed."}
	}
}
