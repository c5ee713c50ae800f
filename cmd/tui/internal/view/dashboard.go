package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/zentracker/internal/advice"
	"github.com/MrJamesThe3rd/zentracker/internal/profile"
	"github.com/MrJamesThe3rd/zentracker/internal/report"
	"github.com/MrJamesThe3rd/zentracker/internal/transaction"
)

const barWidth = 24

// AdviceMsg signals that the coach state changed and the dashboard should
// be redrawn.
type AdviceMsg struct{}

type DashboardModel struct {
	txService *transaction.Service
	coach     *advice.Coach
	profiles  *profile.Store
	styles    *Styles
	filter    *Filter

	bar    FilterBar
	status string
}

func NewDashboardModel(
	txSvc *transaction.Service,
	coach *advice.Coach,
	profiles *profile.Store,
	styles *Styles,
	filter *Filter,
	now func() time.Time,
) DashboardModel {
	return DashboardModel{
		txService: txSvc,
		coach:     coach,
		profiles:  profiles,
		styles:    styles,
		filter:    filter,
		bar:       NewFilterBar(filter, styles, now),
	}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	if m.bar.Active() {
		return "Enter: apply | Esc: cancel"
	}

	return "Esc: back | /: search | p: period | x: reset filter | r: refresh advice"
}

func (m DashboardModel) Init() tea.Cmd {
	return nil
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(AdviceMsg); ok {
		return m, nil
	}

	var (
		cmd     tea.Cmd
		handled bool
	)

	m.bar, cmd, handled = m.bar.Update(msg)
	if handled {
		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			err := m.coach.Refresh(m.txService.All())

			switch {
			case errors.Is(err, advice.ErrInFlight):
				m.status = "Advice is already on its way."
			case errors.Is(err, advice.ErrNotEnoughData):
				m.status = fmt.Sprintf("Add at least %d transactions to get advice.", advice.MinTransactions)
			case err != nil:
				m.status = fmt.Sprintf("Error: %v", err)
			default:
				m.status = ""
			}

			return m, nil
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	txs := m.filter.Apply(m.txService.All())
	totals := report.ComputeTotals(txs)
	labels := report.PeriodLabels(m.filter.Range.Label)

	greeting := "Welcome back"
	if name := m.profiles.Get().Name; name != "" {
		greeting = "Hello, " + name
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Zen Tracker")+"  "+m.styles.Muted.Render(greeting),
		m.bar.View(),
	)

	balanceStyle := m.styles.Income
	if totals.Balance.IsNegative() {
		balanceStyle = m.styles.Expense
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.card(labels.Balance, balanceStyle.Render(report.FormatAmount(totals.Balance))),
		m.card(labels.Income, m.styles.Income.Render(report.FormatAmount(totals.Income))),
		m.card(labels.Expenses, m.styles.Expense.Render(report.FormatAmount(totals.Expense))),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Panel.Width(48).Render(m.breakdownView(txs, totals.Expense)),
		m.styles.Panel.Width(40).Render(m.trendView(txs)),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		cards,
		body,
		m.styles.Panel.Width(90).Render(m.adviceView()),
	)

	if m.status != "" {
		content = m.styles.Muted.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m DashboardModel) card(label, value string) string {
	return m.styles.Panel.Width(28).Render(m.styles.Muted.Render(label) + "\n" + value)
}

func (m DashboardModel) breakdownView(txs []transaction.Transaction, total decimal.Decimal) string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Spending by category") + "\n\n")

	parts := report.SortByValue(report.Breakdown(txs))
	if len(parts) == 0 {
		b.WriteString(m.styles.Muted.Render("No expenses in this period."))
		return b.String()
	}

	for _, s := range parts {
		share := decimal.Zero
		if total.IsPositive() {
			share = s.Amount.Div(total)
		}

		n := int(share.Mul(decimal.NewFromInt(barWidth)).Round(0).IntPart())

		fmt.Fprintf(&b, "%-18s %s %s\n",
			truncate(s.Label, 18),
			m.styles.Accent.Render(strings.Repeat("█", n))+strings.Repeat(" ", barWidth-n),
			report.FormatAmount(s.Amount),
		)
	}

	return b.String()
}

func (m DashboardModel) trendView(txs []transaction.Transaction) string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Recent activity") + "\n\n")

	points := report.RecentSeries(txs, report.TrendSize)
	if len(points) == 0 {
		b.WriteString(m.styles.Muted.Render("Nothing recorded yet."))
		return b.String()
	}

	for _, p := range points {
		style := m.styles.Income
		sign := "+"

		if p.Type == transaction.TypeExpense {
			style = m.styles.Expense
			sign = "-"
		}

		fmt.Fprintf(&b, "%s  %s\n", p.Label, style.Render(sign+report.FormatAmount(p.Value.Abs())))
	}

	return b.String()
}

func (m DashboardModel) adviceView() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Financial coach") + "\n\n")

	snap := m.coach.Snapshot()

	switch snap.State {
	case advice.StateInFlight:
		b.WriteString(m.styles.Muted.Render("Thinking about your spending..."))
		return b.String()
	case advice.StateNotRequested:
		if m.txService.Len() < advice.MinTransactions {
			b.WriteString(m.styles.Muted.Render(fmt.Sprintf(
				"Add at least %d transactions to unlock personalized insights.", advice.MinTransactions)))
		} else {
			b.WriteString(m.styles.Muted.Render("Press r for insights."))
		}

		return b.String()
	}

	for _, in := range snap.Insights {
		icon := m.styles.Accent.Render("●")

		switch in.Sentiment {
		case advice.SentimentPositive:
			icon = m.styles.Income.Render("▲")
		case advice.SentimentNegative:
			icon = m.styles.Expense.Render("▼")
		}

		fmt.Fprintf(&b, "%s %s\n  %s\n  %s\n\n",
			icon,
			m.styles.Title.Render(in.Title),
			in.Description,
			m.styles.Accent.Render("→ "+in.Suggestion),
		)
	}

	return strings.TrimRight(b.String(), "\n")
}
