package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/zentracker/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/zentracker/internal/advice"
	"github.com/MrJamesThe3rd/zentracker/internal/advice/gemini"
	"github.com/MrJamesThe3rd/zentracker/internal/config"
	"github.com/MrJamesThe3rd/zentracker/internal/kv"
	"github.com/MrJamesThe3rd/zentracker/internal/profile"
	"github.com/MrJamesThe3rd/zentracker/internal/storage"
	"github.com/MrJamesThe3rd/zentracker/internal/theme"
	"github.com/MrJamesThe3rd/zentracker/internal/transaction"
	txStore "github.com/MrJamesThe3rd/zentracker/internal/transaction/store"
)

type model struct {
	txService *transaction.Service
	coach     *advice.Coach
	profiles  *profile.Store
	themes    *theme.Store
	styles    *view.Styles
	filter    *view.Filter

	currentView View
	status      string

	dashboardView view.DashboardModel
	listView      view.ListModel
	settingsView  view.SettingsModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewList      View = 2
	ViewSettings  View = 3
)

type services struct {
	slots     kv.Store
	txService *transaction.Service
	coach     *advice.Coach
	profiles  *profile.Store
	themes    *theme.Store
}

func newServices(ctx context.Context) (*services, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	// The terminal belongs to the UI; logs go to a file instead.
	if cfg.App.LogFile != "" {
		if _, err := tea.LogToFile(cfg.App.LogFile, "zentracker"); err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
	}

	slots, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	advisor, err := gemini.NewAdvisor(ctx, gemini.Config{APIKey: cfg.Gemini.APIKey, Model: cfg.Gemini.Model})
	if err != nil {
		_ = slots.Close()
		return nil, fmt.Errorf("creating advisor: %w", err)
	}

	return &services{
		slots:     slots,
		txService: transaction.NewService(txStore.New(slots)),
		coach:     advice.NewCoach(advice.NewService(advisor, cfg.Gemini.Timeout, cfg.Gemini.SampleSize)),
		profiles:  profile.NewStore(slots),
		themes:    theme.NewStore(slots),
	}, nil
}

func initialModel(svc *services) model {
	styles := view.NewStyles(svc.themes.Get())
	filter := view.NewFilter()

	return model{
		txService:     svc.txService,
		coach:         svc.coach,
		profiles:      svc.profiles,
		themes:        svc.themes,
		styles:        styles,
		filter:        filter,
		currentView:   ViewMenu,
		dashboardView: view.NewDashboardModel(svc.txService, svc.coach, svc.profiles, styles, filter, time.Now),
		listView:      view.NewListModel(svc.txService, styles, filter, time.Now),
		settingsView:  view.NewSettingsModel(svc.profiles, svc.themes, svc.txService, styles),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewList
				return m, m.listView.Init()
			case "3":
				m.currentView = ViewSettings
				return m, m.settingsView.Init()
			case "t":
				return m, m.toggleThemeCmd()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	case view.ThemeChangedMsg:
		m.styles.Apply(msg.Theme)
		m.status = fmt.Sprintf("Switched to %s theme.", msg.Theme)

		return m, nil
	case themeErrMsg:
		m.status = fmt.Sprintf("Error: %v", msg.err)
		return m, nil
	case view.AdviceMsg:
		// The dashboard reads the coach on every render; nothing to store.
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewSettings:
		var newModel tea.Model
		newModel, cmd = m.settingsView.Update(msg)
		m.settingsView = newModel.(view.SettingsModel)
	}

	return m, cmd
}

func (m model) View() string {
	var v view.View

	switch m.currentView {
	case ViewMenu:
		menu := m.styles.Title.Render("Zen Tracker") + "\n\n" +
			"1. Dashboard\n" +
			"2. Transactions\n" +
			"3. Settings\n\n" +
			"t. Toggle theme (" + string(m.themes.Get()) + ")\n" +
			"q. Quit"

		if m.status != "" {
			menu += "\n\n" + m.styles.Muted.Render(m.status)
		}

		return lipgloss.NewStyle().Padding(2).Render(menu)
	case ViewDashboard:
		v = m.dashboardView
	case ViewList:
		v = m.listView
	case ViewSettings:
		v = m.settingsView
	default:
		return "Unknown View"
	}

	return v.View() + "\n" + m.styles.Muted.Render(" "+v.Title()+" · "+v.ShortHelp())
}

type themeErrMsg struct{ err error }

func (m model) toggleThemeCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := view.DbCtx()
		defer cancel()

		t, err := m.themes.Toggle(ctx)
		if err != nil {
			return themeErrMsg{err: err}
		}

		return view.ThemeChangedMsg{Theme: t}
	}
}

func main() {
	ctx := context.Background()

	svc, err := newServices(ctx)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer svc.slots.Close()
	defer svc.coach.Close()

	svc.txService.Subscribe(svc.coach.Observe)
	svc.txService.Load(ctx)
	svc.profiles.Load(ctx)
	svc.themes.Load(ctx)

	p := tea.NewProgram(initialModel(svc), tea.WithAltScreen())

	// Registered after Load: Send blocks until the program runs.
	svc.coach.OnUpdate(func(advice.Snapshot) {
		p.Send(view.AdviceMsg{})
	})

	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
