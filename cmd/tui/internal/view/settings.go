package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/networth/internal/setting"
)

type SettingsModel struct {
	CommonModel
	service *setting.Service

	form   *huh.Form
	status string
	err    error
}

func NewSettingsModel(svc *setting.Service) SettingsModel {
	return SettingsModel{service: svc}
}

func (m SettingsModel) Title() string     { return "Settings" }
func (m SettingsModel) ShortHelp() string { return "Enter: save | Esc: back" }

func (m SettingsModel) Init() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		s, err := m.service.Get(ctx)

		return loadSettingsMsg{settings: s, err: err}
	}
}

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadSettingsMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.form = newSettingsForm(msg.settings.Currency)

		return m, m.form.Init()

	case settingsSavedMsg:
		if msg.err != nil {
			m.status = errorStyle(fmt.Sprintf("Error: %v", msg.err))
			m.form = newSettingsForm(msg.currency)

			return m, m.form.Init()
		}

		m.status = fmt.Sprintf("Currency set to %s.", msg.currency)
		m.form = newSettingsForm(msg.currency)

		return m, m.form.Init()

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	currency := m.form.GetString("currency")

	return m, func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		s, err := m.service.Update(ctx, setting.UpdateParams{Currency: currency})
		if err != nil {
			return settingsSavedMsg{currency: currency, err: err}
		}

		return settingsSavedMsg{currency: s.Currency}
	}
}

func newSettingsForm(currency string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("currency").
				Title("Display currency").
				Description("Label only, amounts are never converted").
				Value(&currency).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("currency cannot be empty")
					}

					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m SettingsModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	if m.err != nil {
		return style.Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	if m.form == nil {
		return style.Render("Loading settings...")
	}

	content := panel("Settings", m.form.View())
	if m.status != "" {
		content = m.status + "\n" + content
	}

	return style.Render(content)
}

type loadSettingsMsg struct {
	settings *setting.Settings
	err      error
}

type settingsSavedMsg struct {
	currency string
	err      error
}
