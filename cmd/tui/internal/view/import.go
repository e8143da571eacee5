package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/networth/internal/account"
	"github.com/MrJamesThe3rd/networth/internal/category"
	"github.com/MrJamesThe3rd/networth/internal/importer"
	"github.com/MrJamesThe3rd/networth/internal/transaction"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateBankSelect importState = iota
	importStateTarget
	importStateFilePick
	importStateImporting
	importStateConflicts
	importStateResult
)

type ImportModel struct {
	CommonModel
	txService       *transaction.Service
	importService   *importer.Service
	accountService  *account.Service
	categoryService *category.Service

	state        importState
	filePicker   filepicker.Model
	selectedBank importer.Bank
	bankOptions  []importer.Bank
	bankCursor   int
	targetForm   *huh.Form
	target       importer.Target

	fresh        []*transaction.Transaction
	conflicts    []transaction.Conflict
	conflictList list.Model
	selected     map[int]bool

	status string
	err    error
}

func NewImportModel(
	txSvc *transaction.Service,
	impSvc *importer.Service,
	accountSvc *account.Service,
	categorySvc *category.Service,
) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		txService:       txSvc,
		importService:   impSvc,
		accountService:  accountSvc,
		categoryService: categorySvc,
		filePicker:      fp,
		bankOptions:     []importer.Bank{importer.BankCGD, importer.BankGeneric},
		selected:        make(map[int]bool),
	}
}

func (m ImportModel) Title() string { return "Import Statement" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStateConflicts:
		return "Space: toggle | a: all | n: none | Enter: confirm | Esc: cancel"
	case importStateTarget:
		return "Enter: next | Esc: back"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return nil
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		switch m.state {
		case importStateBankSelect:
			return m.updateBankSelect(msg)
		case importStateConflicts:
			return m.updateConflicts(msg)
		}

	case targetOptionsMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.targetForm = newTargetForm(msg)
		m.state = importStateTarget

		return m, m.targetForm.Init()

	case importResultMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		if len(msg.result.Conflicts) == 0 {
			m.state = importStateResult
			m.status = fmt.Sprintf("Imported %d transactions.", len(msg.result.Imported))

			return m, nil
		}

		m.fresh = msg.result.New
		m.conflicts = msg.result.Conflicts
		m.selected = make(map[int]bool)
		m.state = importStateConflicts

		items := make([]list.Item, len(m.conflicts))
		for i, c := range m.conflicts {
			items[i] = conflictItem{conflict: c, index: i}
		}

		delegate := conflictDelegate{selected: &m.selected}
		m.conflictList = list.New(items, delegate, 80, 20)
		m.conflictList.Title = "Possible Duplicates"
		m.conflictList.SetShowStatusBar(false)
		m.conflictList.SetFilteringEnabled(false)
		m.conflictList.SetShowHelp(false)

		return m, nil

	case confirmResultMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d transactions.", msg.count)

		return m, nil
	}

	if m.state == importStateTarget {
		return m.updateTarget(msg)
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) updateTarget(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.targetForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.targetForm = f
	}

	if m.targetForm.State != huh.StateCompleted {
		return m, cmd
	}

	m.target = importer.Target{
		AccountID:         uuid.MustParse(m.targetForm.GetString("account")),
		IncomeCategoryID:  uuid.MustParse(m.targetForm.GetString("income")),
		ExpenseCategoryID: uuid.MustParse(m.targetForm.GetString("expense")),
	}
	m.state = importStateFilePick

	return m, m.filePicker.Init()
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateTarget, importStateFilePick:
		m.state = importStateBankSelect
		m.targetForm = nil

		return m, nil
	case importStateResult:
		m.state = importStateBankSelect
		m.err = nil
		m.status = ""

		return m, nil
	case importStateConflicts:
		m.state = importStateBankSelect
		m.conflicts = nil
		m.fresh = nil
		m.selected = make(map[int]bool)

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateBankSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.bankCursor > 0 {
			m.bankCursor--
		}
	case tea.KeyDown:
		if m.bankCursor < len(m.bankOptions)-1 {
			m.bankCursor++
		}
	case tea.KeyEnter:
		m.selectedBank = m.bankOptions[m.bankCursor]
		return m, m.loadTargetOptionsCmd()
	}

	return m, nil
}

func (m ImportModel) updateConflicts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		idx := m.conflictList.Index()
		m.selected[idx] = !m.selected[idx]

		return m, nil
	case "a":
		for i := range m.conflicts {
			m.selected[i] = true
		}

		return m, nil
	case "n":
		for i := range m.conflicts {
			m.selected[i] = false
		}

		return m, nil
	case "enter":
		return m, m.confirmCmd()
	}

	var cmd tea.Cmd
	m.conflictList, cmd = m.conflictList.Update(msg)

	return m, cmd
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateBankSelect:
		return m.viewBankSelect()
	case importStateTarget:
		return lipgloss.NewStyle().Padding(1).Render(panel("Import into", m.targetForm.View()))
	case importStateFilePick:
		return m.viewFilePick()
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateConflicts:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%d new rows. Select duplicates to import anyway.\n\n%s",
				len(m.fresh), m.conflictList.View()),
		)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewBankSelect() string {
	s := "Select Bank:\n\n"

	for i, bank := range m.bankOptions {
		cursor := " "
		if i == m.bankCursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, string(bank))
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func (m ImportModel) viewFilePick() string {
	return lipgloss.NewStyle().Padding(1).Render(
		fmt.Sprintf("Select file to import (%s):\n\n%s", m.selectedBank, m.filePicker.View()),
	)
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(errorStyle(m.status) + "\n\n(Esc to go back)")
	}

	return style.Render(
		lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(m.status) +
			"\n\n(Esc to go back)",
	)
}

// Messages

type targetOptionsMsg struct {
	accounts   []*account.Account
	categories []*category.Category
	err        error
}

type importResultMsg struct {
	result *transaction.ImportResult
	err    error
}

type confirmResultMsg struct {
	count int
	err   error
}

func (m ImportModel) loadTargetOptionsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		accounts, err := m.accountService.List(ctx)
		if err != nil {
			return targetOptionsMsg{err: err}
		}

		categories, err := m.categoryService.List(ctx, category.ListFilter{})
		if err != nil {
			return targetOptionsMsg{err: err}
		}

		return targetOptionsMsg{accounts: accounts, categories: categories}
	}
}

func newTargetForm(opts targetOptionsMsg) *huh.Form {
	var accounts, income, expense []huh.Option[string]

	for _, a := range opts.accounts {
		if !a.IsArchived {
			accounts = append(accounts, huh.NewOption(a.Name, a.ID.String()))
		}
	}

	for _, c := range opts.categories {
		opt := huh.NewOption(c.Name, c.ID.String())
		if c.Type == category.TypeIncome {
			income = append(income, opt)
		} else {
			expense = append(expense, opt)
		}
	}

	required := func(kind string) func(string) error {
		return func(s string) error {
			if s == "" {
				return fmt.Errorf("create an %s first", kind)
			}

			return nil
		}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Key("account").Title("Account").
				Options(accounts...).Validate(required("account")),
			huh.NewSelect[string]().Key("income").Title("Default income category").
				Options(income...).Validate(required("income category")),
			huh.NewSelect[string]().Key("expense").Title("Default expense category").
				Options(expense...).Validate(required("expense category")),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	bank, target := m.selectedBank, m.target

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		params, err := m.importService.Import(ctx, bank, f, target)
		if err != nil {
			return importResultMsg{err: err}
		}

		result, err := m.txService.ImportBatch(ctx, params)
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{result: result}
	}
}

func (m ImportModel) confirmCmd() tea.Cmd {
	fresh := m.fresh
	conflicts := m.conflicts
	selected := m.selected

	return func() tea.Msg {
		allParams := make([]transaction.CreateParams, 0, len(fresh)+len(conflicts))
		for _, tx := range fresh {
			allParams = append(allParams, paramsOf(tx))
		}

		for i, c := range conflicts {
			if !selected[i] {
				continue
			}

			allParams = append(allParams, paramsOf(c.Incoming))
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		txs, err := m.txService.CreateBatch(ctx, allParams)
		if err != nil {
			return confirmResultMsg{err: err}
		}

		return confirmResultMsg{count: len(txs)}
	}
}

func paramsOf(tx *transaction.Transaction) transaction.CreateParams {
	date := tx.Date

	return transaction.CreateParams{
		AccountID:   tx.AccountID.String(),
		CategoryID:  tx.CategoryID.String(),
		Amount:      tx.Amount,
		Type:        tx.Type,
		Description: tx.Description,
		Note:        tx.Note,
		Date:        &date,
	}
}

// Conflict list item

type conflictItem struct {
	conflict transaction.Conflict
	index    int
}

func (i conflictItem) Title() string       { return "" }
func (i conflictItem) Description() string { return "" }
func (i conflictItem) FilterValue() string { return "" }

// Conflict list delegate

type conflictDelegate struct {
	selected *map[int]bool
}

func (d conflictDelegate) Height() int                             { return 3 }
func (d conflictDelegate) Spacing() int                            { return 0 }
func (d conflictDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d conflictDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(conflictItem)
	if !ok {
		return
	}

	checkbox := "[ ]"
	if (*d.selected)[item.index] {
		checkbox = "[x]"
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	incoming := item.conflict.Incoming
	existing := item.conflict.Existing

	line1 := fmt.Sprintf("%s%s %s  %s %s  %s",
		cursor, checkbox,
		FormatDate(incoming.Date),
		incoming.Type,
		FormatAmount(incoming.Amount),
		incoming.Description,
	)

	line2 := fmt.Sprintf("      Existing: %s  %s  %s [%s]",
		FormatDate(existing.Date),
		FormatAmount(existing.Amount),
		existing.Description,
		existing.CategoryName,
	)

	fmt.Fprintf(w, "%s\n%s\n", line1, line2)
}
