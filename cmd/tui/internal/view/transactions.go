package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/granahq/grana/internal/cache"
	"github.com/granahq/grana/internal/category"
	"github.com/granahq/grana/internal/dateutil"
	"github.com/granahq/grana/internal/finance"
	"github.com/granahq/grana/internal/money"
	"github.com/granahq/grana/internal/transaction"
)

type txState int

const (
	txStateBrowse txState = iota
	txStateSearch
	txStateForm
	txStateConfirmDelete
)

// typeFilters cycles All -> Income -> Expense.
var typeFilters = []transaction.Type{"", transaction.TypeIncome, transaction.TypeExpense}

type TransactionsModel struct {
	CommonModel
	txCache    *cache.Collection[*transaction.Transaction]
	txService  *transaction.Service
	catService *category.Service

	session Session
	state   txState

	table  table.Model
	search textinput.Model
	form   *huh.Form

	txs      []*transaction.Transaction
	visible  []*transaction.Transaction
	cats     []*category.Category
	editing  *transaction.Transaction
	deleting *transaction.Transaction

	typeFilterIdx  int
	categoryFilter *uuid.UUID

	loading bool
	err     error
	status  string

	formTitle    string
	formDesc     string
	formAmount   string
	formType     transaction.Type
	formDate     string
	formCategory string
}

func NewTransactionsModel(
	txCache *cache.Collection[*transaction.Transaction],
	txSvc *transaction.Service,
	catSvc *category.Service,
	session Session,
) TransactionsModel {
	columns := []table.Column{
		{Title: "Data", Width: 12},
		{Title: "Título", Width: 28},
		{Title: "Categoria", Width: 16},
		{Title: "Tipo", Width: 9},
		{Title: "Valor", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	search := textinput.New()
	search.Placeholder = "buscar por título ou descrição"
	search.CharLimit = 64

	return TransactionsModel{
		txCache:    txCache,
		txService:  txSvc,
		catService: catSvc,
		session:    session,
		table:      t,
		search:     search,
		loading:    true,
	}
}

func (m TransactionsModel) Title() string { return "Transações" }

func (m TransactionsModel) ShortHelp() string {
	switch m.state {
	case txStateForm:
		return "Navigate form | Esc: cancel"
	case txStateSearch:
		return "Enter: apply | Esc: clear"
	case txStateConfirmDelete:
		return "y: delete | n: cancel"
	}

	return "Esc: back | a: add | e: edit | x: delete | /: search | f: type | c: category | r: refresh"
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.loadCmd()
}

// Messages

type txListLoadedMsg struct {
	scope cache.Key
	txs   []*transaction.Transaction
	cats  []*category.Category
	err   error
}

type txMutatedMsg struct {
	err error
}

func (m TransactionsModel) scopeKey() cache.Key {
	return cache.Key{UserID: m.session.UserID, AccountType: m.session.AccountType}
}

func (m TransactionsModel) loadCmd() tea.Cmd {
	session := m.session
	key := m.scopeKey()

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.txCache.Get(ctx, key, func(ctx context.Context) ([]*transaction.Transaction, error) {
			return m.txService.List(ctx, transaction.ListFilter{
				UserID:      session.UserID,
				AccountType: session.AccountType,
			})
		})
		if err != nil {
			return txListLoadedMsg{scope: key, err: err}
		}

		cats, err := m.catService.List(ctx, session.UserID, session.AccountType)
		if err != nil {
			return txListLoadedMsg{scope: key, err: err}
		}

		return txListLoadedMsg{scope: key, txs: txs, cats: cats}
	}
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case txListLoadedMsg:
		if msg.scope != m.scopeKey() {
			return m, nil
		}

		m.loading = false

		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.txs = msg.txs
		m.cats = msg.cats
		m.refreshTable()

		return m, nil

	case txMutatedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = "Saved."
		}

		m.state = txStateBrowse
		m.form = nil
		m.editing = nil
		m.deleting = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case txStateBrowse:
		return m.updateBrowse(msg)
	case txStateSearch:
		return m.updateSearch(msg)
	case txStateForm:
		return m.updateForm(msg)
	case txStateConfirmDelete:
		return m.updateConfirmDelete(msg)
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
			m.txCache.Invalidate(m.scopeKey())

			return m, m.loadCmd()
		case "a":
			return m.enterForm(nil)
		case "e":
			if tx := m.selectedTx(); tx != nil {
				return m.enterForm(tx)
			}

			return m, nil
		case "x":
			if tx := m.selectedTx(); tx != nil {
				m.deleting = tx
				m.state = txStateConfirmDelete
			}

			return m, nil
		case "/":
			m.state = txStateSearch
			m.table.Blur()

			return m, m.search.Focus()
		case "f":
			m.typeFilterIdx = (m.typeFilterIdx + 1) % len(typeFilters)
			m.refreshTable()

			return m, nil
		case "c":
			m.cycleCategoryFilter()
			m.refreshTable()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TransactionsModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			m.state = txStateBrowse
			m.search.Blur()
			m.table.Focus()
			m.refreshTable()

			return m, nil
		case tea.KeyEsc:
			m.search.SetValue("")
			m.state = txStateBrowse
			m.search.Blur()
			m.table.Focus()
			m.refreshTable()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	return m, cmd
}

func (m TransactionsModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		return m, m.deleteCmd()
	case "n", "esc":
		m.deleting = nil
		m.state = txStateBrowse
	}

	return m, nil
}

// enterForm opens the add or edit form. A nil tx means add.
func (m TransactionsModel) enterForm(tx *transaction.Transaction) (tea.Model, tea.Cmd) {
	m.editing = tx

	if tx != nil {
		m.formTitle = tx.Title
		m.formDesc = tx.Description
		m.formAmount = money.FormatAmount(tx.Amount)
		m.formType = tx.Type
		m.formDate = dateutil.FormatBrazilian(tx.Date)
		m.formCategory = ""

		if tx.CategoryID != nil {
			m.formCategory = tx.CategoryID.String()
		}
	} else {
		m.formTitle = ""
		m.formDesc = ""
		m.formAmount = ""
		m.formType = transaction.TypeExpense
		m.formDate = dateutil.FormatBrazilian(time.Now())
		m.formCategory = ""
	}

	catOptions := []huh.Option[string]{huh.NewOption("Sem categoria", "")}
	for _, c := range m.cats {
		catOptions = append(catOptions, huh.NewOption(c.Name, c.ID.String()))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Título").
				Value(&m.formTitle).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("título é obrigatório")
					}
					return nil
				}),

			huh.NewInput().
				Key("description").
				Title("Descrição (opcional)").
				Value(&m.formDesc),

			huh.NewInput().
				Key("amount").
				Title("Valor").
				Placeholder("1234,56").
				Value(&m.formAmount).
				Validate(func(s string) error {
					if _, err := money.ParseDecimalToCents(s); err != nil {
						return fmt.Errorf("valor inválido")
					}
					return nil
				}),

			huh.NewSelect[transaction.Type]().
				Key("type").
				Title("Tipo").
				Options(
					huh.NewOption("Despesa", transaction.TypeExpense),
					huh.NewOption("Receita", transaction.TypeIncome),
				).
				Value(&m.formType),

			huh.NewInput().
				Key("date").
				Title("Data").
				Placeholder("31/01/2026").
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := dateutil.ParseBrazilian(s); err != nil {
						return fmt.Errorf("use o formato DD/MM/AAAA")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("category").
				Title("Categoria").
				Options(catOptions...).
				Value(&m.formCategory),
		),
	).WithWidth(48).WithShowHelp(false)

	m.state = txStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m TransactionsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = txStateBrowse
			m.form = nil
			m.editing = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m TransactionsModel) saveCmd() tea.Cmd {
	session := m.session
	editing := m.editing
	key := m.scopeKey()

	amount, _ := money.ParseDecimalToCents(m.formAmount)
	date, _ := dateutil.ParseBrazilian(m.formDate)

	var categoryID *uuid.UUID
	if m.formCategory != "" {
		if id, err := uuid.Parse(m.formCategory); err == nil {
			categoryID = &id
		}
	}

	title := m.formTitle
	desc := m.formDesc
	txType := m.formType

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var err error

		if editing != nil {
			_, err = m.txService.Update(ctx, session.UserID, editing.ID, transaction.UpdateParams{
				Title:       &title,
				Description: &desc,
				Amount:      &amount,
				Type:        &txType,
				Date:        &date,
				CategoryID:  &categoryID,
			})
		} else {
			_, err = m.txService.Create(ctx, session.UserID, transaction.CreateParams{
				Title:       title,
				Description: desc,
				Amount:      amount,
				Type:        txType,
				AccountType: session.AccountType,
				Date:        date,
				CategoryID:  categoryID,
			})
		}

		if err == nil {
			m.txCache.Invalidate(key)
		}

		return txMutatedMsg{err: err}
	}
}

func (m TransactionsModel) deleteCmd() tea.Cmd {
	session := m.session
	tx := m.deleting
	key := m.scopeKey()

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		err := m.txService.Delete(ctx, session.UserID, tx.ID)
		if err == nil {
			m.txCache.Invalidate(key)
		}

		return txMutatedMsg{err: err}
	}
}

func (m TransactionsModel) selectedTx() *transaction.Transaction {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return nil
	}

	return m.visible[idx]
}

func (m *TransactionsModel) cycleCategoryFilter() {
	if len(m.cats) == 0 {
		m.categoryFilter = nil
		return
	}

	if m.categoryFilter == nil {
		m.categoryFilter = &m.cats[0].ID
		return
	}

	for i, c := range m.cats {
		if c.ID == *m.categoryFilter {
			if i+1 < len(m.cats) {
				m.categoryFilter = &m.cats[i+1].ID
			} else {
				m.categoryFilter = nil
			}

			return
		}
	}

	m.categoryFilter = nil
}

func (m *TransactionsModel) refreshTable() {
	filter := finance.Filter{
		Search:     m.search.Value(),
		Type:       typeFilters[m.typeFilterIdx],
		CategoryID: m.categoryFilter,
	}

	m.visible = filter.Apply(m.txs)

	rows := make([]table.Row, 0, len(m.visible))

	for _, tx := range m.visible {
		categoryName := "-"
		if tx.Category != nil {
			categoryName = tx.Category.Name
		}

		kind := "Receita"
		amount := "+" + money.FormatBRL(tx.Amount)

		if tx.Type == transaction.TypeExpense {
			kind = "Despesa"
			amount = "-" + money.FormatBRL(tx.Amount)
		}

		rows = append(rows, table.Row{
			dateutil.FormatBrazilian(tx.Date),
			tx.Title,
			categoryName,
			kind,
			amount,
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

func (m TransactionsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	typeLabels := []string{"Todas", "Receitas", "Despesas"}

	categoryLabel := "Todas"
	if m.categoryFilter != nil {
		for _, c := range m.cats {
			if c.ID == *m.categoryFilter {
				categoryLabel = c.Name
			}
		}
	}

	header := fmt.Sprintf(
		"%s | [f] Tipo: %s | [c] Categoria: %s | [/] Busca: %s",
		scopeLabel(m.session.AccountType),
		activeStyle(typeLabels[m.typeFilterIdx]),
		activeStyle(categoryLabel),
		activeStyle(searchLabel(m.search.Value())),
	)

	if m.state == txStateSearch {
		header += "\n" + m.search.View()
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	switch {
	case m.state == txStateForm && m.form != nil:
		formTitle := "Nova Transação"
		if m.editing != nil {
			formTitle = "Editar Transação"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(52).
			Render(formTitle + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)

	case m.state == txStateConfirmDelete && m.deleting != nil:
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("203")).
			Render(fmt.Sprintf("Excluir %q?\n\n[y] sim   [n] não", m.deleting.Title))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func searchLabel(s string) string {
	if s == "" {
		return "-"
	}

	return s
}
