package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/networth/internal/dashboard"
)

type DashboardModel struct {
	CommonModel
	service *dashboard.Service

	report   *dashboard.Report
	balances table.Model
	loading  bool
	err      error
}

func NewDashboardModel(svc *dashboard.Service) DashboardModel {
	return DashboardModel{
		service: svc,
		balances: newTable([]table.Column{
			{Title: "Account", Width: 24},
			{Title: "Type", Width: 14},
			{Title: "Nature", Width: 10},
			{Title: "Balance", Width: 16},
		}),
		loading: true,
	}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadReportMsg:
		m.loading = false
		m.err = msg.err
		m.report = msg.report

		if msg.report != nil {
			rows := make([]table.Row, 0, len(msg.report.AccountBalances))
			for _, b := range msg.report.AccountBalances {
				rows = append(rows, table.Row{
					b.Name,
					string(b.Type),
					string(b.Nature),
					FormatMoney(msg.report.Currency, b.Balance),
				})
			}

			m.balances.SetRows(rows)
		}

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.balances, cmd = m.balances.Update(msg)

	return m, cmd
}

func (m DashboardModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	if m.loading {
		return style.Render("Loading dashboard...")
	}

	if m.err != nil {
		return style.Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	r := m.report
	line := func(label string, v decimal.Decimal) string {
		return fmt.Sprintf("%-18s %s", label, activeStyle(FormatMoney(r.Currency, v)))
	}

	totals := strings.Join([]string{
		line("Net worth", r.TotalNetWorth),
		line("Income (month)", r.MonthlyIncome),
		line("Expenses (month)", r.MonthlyExpense),
		line("Net cash flow", r.NetCashFlow),
	}, "\n")

	var history strings.Builder

	history.WriteString("Net worth history\n\n")

	for _, h := range r.NetWorthHistory {
		fmt.Fprintf(&history, "%s  %s\n", h.Month, FormatMoney(r.Currency, h.NetWorth))
	}

	if len(r.NetWorthHistory) == 0 {
		history.WriteString(lipgloss.NewStyle().Faint(true).Render("No transactions yet."))
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(totals),
		lipgloss.JoinHorizontal(lipgloss.Top,
			boxed(m.balances.View()),
			lipgloss.NewStyle().PaddingLeft(2).Render(history.String()),
		),
	))
}

type loadReportMsg struct {
	report *dashboard.Report
	err    error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		report, err := m.service.Summary(ctx)

		return loadReportMsg{report: report, err: err}
	}
}
