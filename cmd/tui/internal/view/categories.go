package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/networth/internal/category"
)

type CategoriesModel struct {
	CommonModel
	service *category.Service

	table      table.Model
	categories []*category.Category
	form       *huh.Form

	loading bool
	err     error
	status  string
}

func NewCategoriesModel(svc *category.Service) CategoriesModel {
	return CategoriesModel{
		service: svc,
		table: newTable([]table.Column{
			{Title: "Name", Width: 28},
			{Title: "Type", Width: 10},
			{Title: "Created", Width: 12},
		}),
		loading: true,
	}
}

func (m CategoriesModel) Title() string { return "Categories" }

func (m CategoriesModel) ShortHelp() string {
	if m.form != nil {
		return "Enter: next/save | Esc: cancel"
	}

	return "Esc: back | n: new | x: delete | r: refresh"
}

func (m CategoriesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m CategoriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCategoriesMsg:
		m.loading = false
		m.err = msg.err
		m.categories = msg.categories
		m.refreshTable()

		return m, nil

	case categorySavedMsg:
		m.status = msg.status

		var linked *category.LinkedTransactionsError

		switch {
		case errors.As(msg.err, &linked):
			m.status = errorStyle(linked.Error())
		case msg.err != nil:
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
		case "x":
			if c := m.selected(); c != nil {
				return m, m.deleteCmd(c)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CategoriesModel) selected() *category.Category {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.categories) {
		return nil
	}

	return m.categories[idx]
}

func (m CategoriesModel) openForm() (tea.Model, tea.Cmd) {
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
			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", string(category.TypeExpense)),
					huh.NewOption("Income", string(category.TypeIncome)),
				),
		),
	).WithWidth(45).WithShowHelp(false)

	m.table.Blur()

	return m, m.form.Init()
}

func (m CategoriesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	params := category.CreateParams{
		Name: m.form.GetString("name"),
		Type: category.Type(m.form.GetString("type")),
	}

	return m, func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.service.Create(ctx, params)

		return categorySavedMsg{status: "Category created.", err: err}
	}
}

func (m CategoriesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading categories...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := boxed(m.table.View())

	if m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel("New Category", m.form.View()))
	}

	if m.status != "" {
		content = m.status + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *CategoriesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.categories))
	for _, c := range m.categories {
		rows = append(rows, table.Row{c.Name, string(c.Type), FormatDate(c.CreatedAt)})
	}

	m.table.SetRows(rows)
}

type loadCategoriesMsg struct {
	categories []*category.Category
	err        error
}

type categorySavedMsg struct {
	status string
	err    error
}

func (m CategoriesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		categories, err := m.service.List(ctx, category.ListFilter{})

		return loadCategoriesMsg{categories: categories, err: err}
	}
}

func (m CategoriesModel) deleteCmd(c *category.Category) tea.Cmd {
	id := c.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return categorySavedMsg{status: "Category deleted.", err: m.service.Delete(ctx, id)}
	}
}
