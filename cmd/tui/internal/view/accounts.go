package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/networth/internal/account"
)

type AccountsModel struct {
	CommonModel
	service *account.Service

	table    table.Model
	accounts []*account.Account
	form     *huh.Form

	loading bool
	err     error
	status  string
}

func NewAccountsModel(svc *account.Service) AccountsModel {
	return AccountsModel{
		service: svc,
		table: newTable([]table.Column{
			{Title: "Name", Width: 24},
			{Title: "Type", Width: 14},
			{Title: "Nature", Width: 10},
			{Title: "Archived", Width: 9},
			{Title: "Transactions", Width: 12},
		}),
		loading: true,
	}
}

func (m AccountsModel) Title() string { return "Accounts" }

func (m AccountsModel) ShortHelp() string {
	if m.form != nil {
		return "Enter: next/save | Esc: cancel"
	}

	return "Esc: back | n: new | a: archive/restore | x: delete | r: refresh"
}

func (m AccountsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m AccountsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadAccountsMsg:
		m.loading = false
		m.err = msg.err
		m.accounts = msg.accounts
		m.refreshTable()

		return m, nil

	case accountSavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		case "n":
			return m.openForm()
		case "a":
			if a := m.selected(); a != nil {
				return m, m.toggleArchiveCmd(a)
			}
		case "x":
			if a := m.selected(); a != nil {
				return m, m.deleteCmd(a)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m AccountsModel) selected() *account.Account {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.accounts) {
		return nil
	}

	return m.accounts[idx]
}

func (m AccountsModel) openForm() (tea.Model, tea.Cmd) {
	types := make([]huh.Option[string], len(account.Types))
	for i, t := range account.Types {
		types[i] = huh.NewOption(string(t), string(t))
	}

	natures := make([]huh.Option[string], len(account.Natures))
	for i, n := range account.Natures {
		natures[i] = huh.NewOption(string(n), string(n))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}

					return nil
				}),
			huh.NewSelect[string]().Key("type").Title("Type").Options(types...),
			huh.NewSelect[string]().Key("nature").Title("Nature").Options(natures...),
		),
	).WithWidth(45).WithShowHelp(false)

	m.table.Blur()

	return m, m.form.Init()
}

func (m AccountsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
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

	nature := account.Nature(m.form.GetString("nature"))
	params := account.CreateParams{
		Name:   m.form.GetString("name"),
		Type:   account.Type(m.form.GetString("type")),
		Nature: &nature,
	}

	return m, func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.service.Create(ctx, params)

		return accountSavedMsg{status: "Account created.", err: err}
	}
}

func (m AccountsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading accounts...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := boxed(m.table.View())

	if m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel("New Account", m.form.View()))
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *AccountsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.accounts))

	for _, a := range m.accounts {
		archived := ""
		if a.IsArchived {
			archived = "yes"
		}

		rows = append(rows, table.Row{
			a.Name,
			string(a.Type),
			string(a.Nature),
			archived,
			strconv.Itoa(a.TransactionCount),
		})
	}

	m.table.SetRows(rows)
}

type loadAccountsMsg struct {
	accounts []*account.Account
	err      error
}

type accountSavedMsg struct {
	status string
	err    error
}

func (m AccountsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		accounts, err := m.service.List(ctx)

		return loadAccountsMsg{accounts: accounts, err: err}
	}
}

func (m AccountsModel) toggleArchiveCmd(a *account.Account) tea.Cmd {
	id, archived := a.ID, !a.IsArchived

	status := "Account archived."
	if !archived {
		status = "Account restored."
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.service.Update(ctx, id, account.UpdateParams{IsArchived: &archived})

		return accountSavedMsg{status: status, err: err}
	}
}

func (m AccountsModel) deleteCmd(a *account.Account) tea.Cmd {
	id, name := a.ID, a.Name

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return accountSavedMsg{
			status: fmt.Sprintf("Deleted %s and its transactions.", name),
			err:    m.service.Delete(ctx, id),
		}
	}
}
