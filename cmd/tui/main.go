package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/networth/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/networth/internal/account"
	accountStore "github.com/MrJamesThe3rd/networth/internal/account/store"
	"github.com/MrJamesThe3rd/networth/internal/category"
	categoryStore "github.com/MrJamesThe3rd/networth/internal/category/store"
	"github.com/MrJamesThe3rd/networth/internal/config"
	"github.com/MrJamesThe3rd/networth/internal/dashboard"
	dashboardStore "github.com/MrJamesThe3rd/networth/internal/dashboard/store"
	"github.com/MrJamesThe3rd/networth/internal/database"
	"github.com/MrJamesThe3rd/networth/internal/importer"
	"github.com/MrJamesThe3rd/networth/internal/rule"
	ruleStore "github.com/MrJamesThe3rd/networth/internal/rule/store"
	"github.com/MrJamesThe3rd/networth/internal/setting"
	settingStore "github.com/MrJamesThe3rd/networth/internal/setting/store"
	"github.com/MrJamesThe3rd/networth/internal/transaction"
	txStore "github.com/MrJamesThe3rd/networth/internal/transaction/store"
)

type services struct {
	accounts     *account.Service
	categories   *category.Service
	transactions *transaction.Service
	settings     *setting.Service
	dashboard    *dashboard.Service
	importer     *importer.Service
}

type model struct {
	svc services

	currentView View
	active      tea.Model
}

type View int

const (
	ViewMenu View = iota
	ViewDashboard
	ViewTransactions
	ViewAccounts
	ViewCategories
	ViewImport
	ViewSettings
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), database.Options{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	settingSvc := setting.NewService(settingStore.New(db), cfg.App.DefaultCurrency)

	return model{
		svc: services{
			accounts:     account.NewService(accountStore.New(db)),
			categories:   category.NewService(categoryStore.New(db)),
			transactions: transaction.NewService(txStore.New(db)),
			settings:     settingSvc,
			dashboard:    dashboard.NewService(dashboardStore.New(db), settingSvc),
			importer:     importer.NewService(rule.NewService(ruleStore.New(db))),
		},
		currentView: ViewMenu,
	}
}

// open builds a fresh screen so every visit reloads its data.
func (m model) open(v View) tea.Model {
	switch v {
	case ViewDashboard:
		return view.NewDashboardModel(m.svc.dashboard)
	case ViewTransactions:
		return view.NewTransactionsModel(m.svc.transactions)
	case ViewAccounts:
		return view.NewAccountsModel(m.svc.accounts)
	case ViewCategories:
		return view.NewCategoriesModel(m.svc.categories)
	case ViewImport:
		return view.NewImportModel(m.svc.transactions, m.svc.importer, m.svc.accounts, m.svc.categories)
	case ViewSettings:
		return view.NewSettingsModel(m.svc.settings)
	}

	return nil
}

var menuKeys = map[string]View{
	"1": ViewDashboard,
	"2": ViewTransactions,
	"3": ViewAccounts,
	"4": ViewCategories,
	"5": ViewImport,
	"6": ViewSettings,
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			if msg.String() == "q" {
				return m, tea.Quit
			}

			if v, ok := menuKeys[msg.String()]; ok {
				m.currentView = v
				m.active = m.open(v)

				return m, m.active.Init()
			}

			return m, nil
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		m.active = nil

		return m, nil
	}

	if m.active == nil {
		return m, nil
	}

	var cmd tea.Cmd
	m.active, cmd = m.active.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.currentView == ViewMenu || m.active == nil {
		return lipgloss.NewStyle().Padding(2).Render(
			"Net Worth\n\n" +
				"1. Dashboard\n" +
				"2. Transactions\n" +
				"3. Accounts\n" +
				"4. Categories\n" +
				"5. Import Statement\n" +
				"6. Settings\n\n" +
				"q. Quit",
		)
	}

	content := m.active.View()

	if h, ok := m.active.(interface{ ShortHelp() string }); ok {
		content += "\n" + lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(h.ShortHelp())
	}

	return content
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
