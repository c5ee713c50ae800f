package view

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/zentracker/internal/export"
	"github.com/MrJamesThe3rd/zentracker/internal/report"
	"github.com/MrJamesThe3rd/zentracker/internal/transaction"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateAdd
	listStateConfirmDelete
	listStateConfirmClear
)

type ListModel struct {
	txService *transaction.Service
	styles    *Styles
	filter    *Filter

	state listState
	bar   FilterBar
	table table.Model
	txs   []transaction.Transaction

	form    *huh.Form
	fields  *addFields
	confirm *confirmField
	target  uuid.UUID

	status string
}

func NewListModel(txSvc *transaction.Service, styles *Styles, filter *Filter, now func() time.Time) ListModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 8},
		{Title: "Amount", Width: 16},
		{Title: "Category", Width: 28},
		{Title: "Note", Width: 32},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	m := ListModel{
		txService: txSvc,
		styles:    styles,
		filter:    filter,
		bar:       NewFilterBar(filter, styles, now),
		table:     t,
	}
	m.refreshTable()

	return m
}

func (m ListModel) Title() string { return "Transactions" }

func (m ListModel) ShortHelp() string {
	switch {
	case m.state != listStateBrowse:
		return "Navigate form | Esc: cancel"
	case m.bar.Active():
		return "Enter: apply | Esc: cancel"
	}

	return "Esc: back | a: add expense | i: add income | d: delete | c: clear all | s: save csv | /: search | p: period"
}

func (m ListModel) Init() tea.Cmd {
	return nil
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listSaveMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-12, 5))
		return m, nil
	}

	var cmd tea.Cmd

	switch m.state {
	case listStateBrowse:
		m, cmd = m.updateBrowse(msg)
	default:
		m, cmd = m.updateForm(msg)
	}

	m.refreshTable()

	return m, cmd
}

func (m ListModel) updateBrowse(msg tea.Msg) (ListModel, tea.Cmd) {
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
		case "a":
			return m.startAdd(transaction.TypeExpense)
		case "i":
			return m.startAdd(transaction.TypeIncome)
		case "d":
			return m.startDelete()
		case "s":
			return m, m.exportCmd()
		case "c":
			if m.txService.Len() == 0 {
				return m, nil
			}

			m.confirm = &confirmField{}
			m.form = newConfirmForm(m.confirm,
				"Clear all transactions?",
				fmt.Sprintf("This removes all %d transactions.", m.txService.Len()),
				m.styles)
			m.state = listStateConfirmClear
			m.table.Blur()

			return m, m.form.Init()
		}
	}

	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) startAdd(typ transaction.Type) (ListModel, tea.Cmd) {
	m.fields = newAddFields(typ)
	m.form = newAddForm(m.fields, m.styles)
	m.state = listStateAdd
	m.status = ""
	m.table.Blur()

	return m, m.form.Init()
}

func (m ListModel) startDelete() (ListModel, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return m, nil
	}

	tx := m.txs[idx]
	m.target = tx.ID
	m.confirm = &confirmField{}
	m.form = newConfirmForm(m.confirm,
		"Delete this transaction?",
		fmt.Sprintf("%s  %s  %s", tx.Date, report.FormatSigned(tx), tx.Label()),
		m.styles)
	m.state = listStateConfirmDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m ListModel) updateForm(msg tea.Msg) (ListModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.closeForm(), nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		return m.closeForm(), nil
	case huh.StateCompleted:
	default:
		return m, cmd
	}

	state := m.state
	m = m.closeForm()

	switch state {
	case listStateAdd:
		return m, m.createCmd(m.fields)
	case listStateConfirmDelete:
		if m.confirm.Yes {
			return m, m.deleteCmd(m.target)
		}
	case listStateConfirmClear:
		if m.confirm.Yes {
			return m, m.clearCmd()
		}
	}

	return m, nil
}

func (m ListModel) closeForm() ListModel {
	m.state = listStateBrowse
	m.form = nil
	m.table.Focus()

	return m
}

func (m ListModel) View() string {
	header := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(fmt.Sprintf("Transactions (%d)", len(m.txs))),
		m.bar.View(),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.styles.BorderColor).
		Render(m.table.View())

	if len(m.txs) == 0 {
		msg := "No transactions yet. Press a to add an expense or i to add income."
		if m.filter.IsFiltered() {
			msg = "No transactions match the current filter."
		}

		tableView = m.styles.Muted.Render(msg)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state != listStateBrowse && m.form != nil {
		title := "Add Transaction"
		if m.state != listStateAdd {
			title = "Confirm"
		}

		panel := m.styles.Panel.
			Padding(1, 2).
			Width(56).
			Render(fmt.Sprintf("%s\n\n%s", m.styles.Title.Render(title), m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = m.styles.Muted.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ListModel) refreshTable() {
	m.txs = report.SortByDateDesc(m.filter.Apply(m.txService.All()))

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.styles.BorderColor).
		BorderBottom(true).
		Bold(false)
	s.Selected = m.styles.Selected
	m.table.SetStyles(s)

	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		rows = append(rows, table.Row{
			tx.Date,
			string(tx.Type),
			report.FormatSigned(tx),
			truncate(categoryLabel(tx), 28),
			truncate(tx.Note, 32),
		})
	}

	m.table.SetRows(rows)

	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func categoryLabel(tx transaction.Transaction) string {
	if tx.SubCategory == "" {
		return tx.Category
	}

	return tx.SubCategory + " · " + tx.Category
}

// Messages

type listSaveMsg struct {
	status string
	err    error
}

func (m ListModel) createCmd(f *addFields) tea.Cmd {
	return func() tea.Msg {
		params, err := f.params()
		if err != nil {
			return listSaveMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		tx, err := m.txService.Create(ctx, params)
		if err != nil {
			return listSaveMsg{err: err}
		}

		return listSaveMsg{status: fmt.Sprintf("Added %s %s.", report.FormatSigned(*tx), tx.Label())}
	}
}

func (m ListModel) deleteCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.txService.Delete(ctx, id); err != nil {
			return listSaveMsg{err: err}
		}

		return listSaveMsg{status: "Deleted."}
	}
}

func (m ListModel) clearCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.txService.Clear(ctx); err != nil {
			return listSaveMsg{err: err}
		}

		return listSaveMsg{status: "All transactions cleared."}
	}
}

// exportCmd writes the rows currently shown to a CSV file in the working
// directory.
func (m ListModel) exportCmd() tea.Cmd {
	txs := m.txs
	name := export.FileName(today())

	return func() tea.Msg {
		f, err := os.Create(name)
		if err != nil {
			return listSaveMsg{err: fmt.Errorf("creating %s: %w", name, err)}
		}

		if err := export.WriteCSV(f, txs); err != nil {
			_ = f.Close()
			return listSaveMsg{err: err}
		}

		if err := f.Close(); err != nil {
			return listSaveMsg{err: fmt.Errorf("closing %s: %w", name, err)}
		}

		return listSaveMsg{status: fmt.Sprintf("Saved %d transactions to %s.", len(txs), name)}
	}
}
