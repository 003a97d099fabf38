package view

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/granahq/grana/internal/cache"
	"github.com/granahq/grana/internal/finance"
	"github.com/granahq/grana/internal/goal"
	"github.com/granahq/grana/internal/money"
	"github.com/granahq/grana/internal/transaction"
)

type planningState int

const (
	planningStateView planningState = iota
	planningStateEdit
)

// PlanningModel shows the monthly goals next to the actual totals and lets
// the user adjust the targets.
type PlanningModel struct {
	CommonModel
	txCache     *cache.Collection[*transaction.Transaction]
	txService   *transaction.Service
	goalService *goal.Service

	session Session
	state   planningState

	form    *huh.Form
	goals   goal.Goals
	summary finance.Summary

	loading bool
	err     error
	status  string

	formIncome  string
	formExpense string
}

func NewPlanningModel(
	txCache *cache.Collection[*transaction.Transaction],
	txSvc *transaction.Service,
	goalSvc *goal.Service,
	session Session,
) PlanningModel {
	return PlanningModel{
		txCache:     txCache,
		txService:   txSvc,
		goalService: goalSvc,
		session:     session,
		loading:     true,
	}
}

func (m PlanningModel) Title() string { return "Planejamento" }

func (m PlanningModel) ShortHelp() string {
	if m.state == planningStateEdit {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | e: edit goals | r: refresh"
}

func (m PlanningModel) Init() tea.Cmd {
	return m.loadCmd()
}

type planningLoadedMsg struct {
	scope   cache.Key
	goals   goal.Goals
	summary finance.Summary
	err     error
}

type goalsSavedMsg struct {
	goals goal.Goals
	err   error
}

func (m PlanningModel) loadCmd() tea.Cmd {
	session := m.session
	key := cache.Key{UserID: session.UserID, AccountType: session.AccountType}

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
			return planningLoadedMsg{scope: key, err: err}
		}

		goals, err := m.goalService.Get(session.AccountType)
		if err != nil {
			return planningLoadedMsg{scope: key, err: err}
		}

		return planningLoadedMsg{scope: key, goals: goals, summary: finance.Summarize(txs)}
	}
}

func (m PlanningModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case planningLoadedMsg:
		if msg.scope != (cache.Key{UserID: m.session.UserID, AccountType: m.session.AccountType}) {
			return m, nil
		}

		m.loading = false
		m.err = msg.err
		m.goals = msg.goals
		m.summary = msg.summary

		return m, nil

	case goalsSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.goals = msg.goals
			m.status = "Metas salvas."
		}

		m.state = planningStateView
		m.form = nil

		return m, nil
	}

	if m.state == planningStateEdit {
		return m.updateEdit(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "e":
			return m.enterEdit()
		}
	}

	return m, nil
}

func (m PlanningModel) enterEdit() (tea.Model, tea.Cmd) {
	m.formIncome = money.FormatAmount(m.goals.IncomeGoal)
	m.formExpense = money.FormatAmount(m.goals.ExpenseLimit)

	amountValidate := func(s string) error {
		if _, err := money.ParseDecimalToCents(s); err != nil {
			return fmt.Errorf("valor inválido")
		}
		return nil
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("income").
				Title("Meta de receita mensal").
				Value(&m.formIncome).
				Validate(amountValidate),

			huh.NewInput().
				Key("expense").
				Title("Limite de despesa mensal").
				Value(&m.formExpense).
				Validate(amountValidate),
		),
	).WithWidth(44).WithShowHelp(false)

	m.state = planningStateEdit

	return m, m.form.Init()
}

func (m PlanningModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = planningStateView
			m.form = nil

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

func (m PlanningModel) saveCmd() tea.Cmd {
	accountType := m.session.AccountType

	income, _ := money.ParseDecimalToCents(m.formIncome)
	expense, _ := money.ParseDecimalToCents(m.formExpense)

	goals := goal.Goals{IncomeGoal: income, ExpenseLimit: expense}

	return func() tea.Msg {
		return goalsSavedMsg{goals: goals, err: m.goalService.Set(accountType, goals)}
	}
}

func (m PlanningModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading planning...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	incomePct, expensePct := m.goals.Progress(m.summary.TotalIncome, m.summary.TotalExpense)

	content := lipgloss.NewStyle().Bold(true).Render("Planejamento — "+scopeLabel(m.session.AccountType)) + "\n\n" +
		fmt.Sprintf("Meta de receita:    %s\n", money.FormatBRL(m.goals.IncomeGoal)) +
		fmt.Sprintf("Realizado:          %s  %s\n\n", money.FormatBRL(m.summary.TotalIncome), progressBar(incomePct)) +
		fmt.Sprintf("Limite de despesas: %s\n", money.FormatBRL(m.goals.ExpenseLimit)) +
		fmt.Sprintf("Gasto:              %s  %s\n", money.FormatBRL(m.summary.TotalExpense), progressBar(expensePct))

	if expensePct >= 100 {
		content += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render("Limite de despesas atingido!")
	}

	if m.state == planningStateEdit && m.form != nil {
		content += "\n\n" + m.form.View()
	}

	if m.status != "" {
		content += "\n" + faintStyle.Render(m.status)
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}
