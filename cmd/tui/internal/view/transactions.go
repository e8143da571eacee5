package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/networth/internal/transaction"
)

type txState int

const (
	txStateBrowse txState = iota
	txStateEdit
)

var (
	typeFilters = []*transaction.Type{nil, new(transaction.TypeIncome), new(transaction.TypeExpense)}
	sortOrders  = []transaction.Sort{
		transaction.SortDateDesc,
		transaction.SortDateAsc,
		transaction.SortAmountDesc,
		transaction.SortAmountAsc,
	}
)

type TransactionsModel struct {
	CommonModel
	txService *transaction.Service

	state txState
	table table.Model
	txs   []*transaction.Transaction
	form  *huh.Form

	typeIdx int
	sortIdx int
	filter  transaction.ListFilter

	loading bool
	err     error
	status  string

	formNote string
}

func NewTransactionsModel(txSvc *transaction.Service) TransactionsModel {
	t := newTable([]table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 8},
		{Title: "Amount", Width: 12},
		{Title: "Account", Width: 16},
		{Title: "Category", Width: 16},
		{Title: "Description", Width: 30},
		{Title: "Note", Width: 24},
	})

	return TransactionsModel{
		txService: txSvc,
		table:     t,
		loading:   true,
	}
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	if m.state == txStateEdit {
		return "Enter: save | Esc: cancel"
	}

	return "Esc: back | e: edit note | x: delete | t: type | s: sort | r: refresh"
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTxsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.txs = msg.txs
		m.refreshTable()

		return m, nil

	case txSavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.state = txStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case txStateBrowse:
		return m.updateBrowse(msg)
	case txStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m TransactionsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "e":
			return m.enterEditMode()
		case "x":
			if tx := m.selected(); tx != nil {
				return m, m.deleteCmd(tx)
			}

			return m, nil
		case "t":
			m.typeIdx = (m.typeIdx + 1) % len(typeFilters)
			m.filter.Type = typeFilters[m.typeIdx]

			return m, m.loadCmd()
		case "s":
			m.sortIdx = (m.sortIdx + 1) % len(sortOrders)
			m.filter.Sort = sortOrders[m.sortIdx]

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TransactionsModel) selected() *transaction.Transaction {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	return m.txs[idx]
}

func (m TransactionsModel) enterEditMode() (tea.Model, tea.Cmd) {
	tx := m.selected()
	if tx == nil {
		return m, nil
	}

	m.formNote = ""
	if tx.Note != nil {
		m.formNote = *tx.Note
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Key("note").
				Title("Note").
				Description("Leave empty to clear").
				Value(&m.formNote),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = txStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m TransactionsModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = txStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveNoteCmd()
}

func (m TransactionsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	typeLabel := "All"
	if t := typeFilters[m.typeIdx]; t != nil {
		typeLabel = string(*t)
	}

	header := fmt.Sprintf(
		"Filter: [t] Type: %s | [s] Sort: %s",
		activeStyle(typeLabel),
		activeStyle(string(sortOrders[m.sortIdx])),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxed(m.table.View()),
	)

	if m.state == txStateEdit && m.form != nil {
		desc := ""
		if tx := m.selected(); tx != nil {
			desc = tx.Description
		}

		content = lipgloss.JoinHorizontal(lipgloss.Top, content,
			panel("Edit Note", fmt.Sprintf("%s\n\n%s", desc, m.form.View())))
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *TransactionsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))

	for _, tx := range m.txs {
		note := ""
		if tx.Note != nil {
			note = *tx.Note
		}

		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			string(tx.Type),
			FormatAmount(tx.Amount),
			tx.AccountName,
			tx.CategoryName,
			tx.Description,
			note,
		})
	}

	m.table.SetRows(rows)
}

type loadTxsMsg struct {
	txs []*transaction.Transaction
	err error
}

type txSavedMsg struct {
	status string
	err    error
}

func (m TransactionsModel) loadCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.txService.List(ctx, filter)

		return loadTxsMsg{txs: txs, err: err}
	}
}

func (m TransactionsModel) saveNoteCmd() tea.Cmd {
	tx := m.selected()
	if tx == nil {
		return nil
	}

	id, note := tx.ID, m.form.GetString("note")

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.txService.UpdateNote(ctx, id, note)

		return txSavedMsg{status: "Note saved.", err: err}
	}
}

func (m TransactionsModel) deleteCmd(tx *transaction.Transaction) tea.Cmd {
	id := tx.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return txSavedMsg{status: "Transaction deleted.", err: m.txService.Delete(ctx, id)}
	}
}
