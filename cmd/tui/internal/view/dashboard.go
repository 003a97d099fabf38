package view

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/granahq/grana/internal/cache"
	"github.com/granahq/grana/internal/dateutil"
	"github.com/granahq/grana/internal/finance"
	"github.com/granahq/grana/internal/goal"
	"github.com/granahq/grana/internal/money"
	"github.com/granahq/grana/internal/transaction"
)

var (
	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			Width(26)

	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

type DashboardModel struct {
	CommonModel
	txCache     *cache.Collection[*transaction.Transaction]
	txService   *transaction.Service
	goalService *goal.Service

	session Session
	loading bool
	err     error

	txs   []*transaction.Transaction
	goals goal.Goals
}

func NewDashboardModel(
	txCache *cache.Collection[*transaction.Transaction],
	txSvc *transaction.Service,
	goalSvc *goal.Service,
	session Session,
) DashboardModel {
	return DashboardModel{
		txCache:     txCache,
		txService:   txSvc,
		goalService: goalSvc,
		session:     session,
		loading:     true,
	}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

type dashboardLoadedMsg struct {
	scope cache.Key
	txs   []*transaction.Transaction
	goals goal.Goals
	err   error
}

func (m DashboardModel) loadCmd() tea.Cmd {
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
			return dashboardLoadedMsg{scope: key, err: err}
		}

		goals, err := m.goalService.Get(session.AccountType)
		if err != nil {
			return dashboardLoadedMsg{scope: key, err: err}
		}

		return dashboardLoadedMsg{scope: key, txs: txs, goals: goals}
	}
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		// A response for a scope the user already left is stale; drop it.
		if msg.scope != (cache.Key{UserID: m.session.UserID, AccountType: m.session.AccountType}) {
			return m, nil
		}

		m.loading = false
		m.err = msg.err
		m.txs = msg.txs
		m.goals = msg.goals

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			m.txCache.Invalidate(cache.Key{UserID: m.session.UserID, AccountType: m.session.AccountType})

			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	summary := finance.Summarize(m.txs)

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		cardStyle.Render("Receitas\n"+incomeStyle.Render(money.FormatBRL(summary.TotalIncome))),
		cardStyle.Render("Despesas\n"+expenseStyle.Render(money.FormatBRL(summary.TotalExpense))),
		cardStyle.Render("Saldo\n"+balanceStyled(summary.Balance)),
	)

	content := lipgloss.NewStyle().Bold(true).Render("Dashboard — "+scopeLabel(m.session.AccountType)) + "\n\n" +
		cards + "\n\n" +
		m.goalsView(summary) + "\n\n" +
		m.recentView()

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

func (m DashboardModel) goalsView(summary finance.Summary) string {
	incomePct, expensePct := m.goals.Progress(summary.TotalIncome, summary.TotalExpense)

	return lipgloss.NewStyle().Bold(true).Render("Metas do mês") + "\n" +
		fmt.Sprintf("  Receita: %s de %s  %s\n",
			money.FormatBRL(summary.TotalIncome), money.FormatBRL(m.goals.IncomeGoal), progressBar(incomePct)) +
		fmt.Sprintf("  Despesa: %s de %s  %s",
			money.FormatBRL(summary.TotalExpense), money.FormatBRL(m.goals.ExpenseLimit), progressBar(expensePct))
}

func (m DashboardModel) recentView() string {
	recent := finance.Recent(m.txs, finance.RecentLimit)
	if len(recent) == 0 {
		return faintStyle.Render("Nenhuma transação ainda.")
	}

	out := lipgloss.NewStyle().Bold(true).Render("Últimas transações") + "\n"

	for _, tx := range recent {
		amount := incomeStyle.Render("+" + money.FormatBRL(tx.Amount))
		if tx.Type == transaction.TypeExpense {
			amount = expenseStyle.Render("-" + money.FormatBRL(tx.Amount))
		}

		out += fmt.Sprintf("  %s  %-30s %s\n", dateutil.FormatBrazilian(tx.Date), tx.Title, amount)
	}

	return out
}

func balanceStyled(balance int64) string {
	if balance < 0 {
		return expenseStyle.Render(money.FormatBRL(balance))
	}

	return incomeStyle.Render(money.FormatBRL(balance))
}

func progressBar(pct float64) string {
	const width = 20

	filled := int(pct / 100 * width)
	if filled > width {
		filled = width
	}

	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}

	return fmt.Sprintf("%s %3.0f%%", bar, pct)
}

func scopeLabel(accountType transaction.AccountType) string {
	if accountType == transaction.AccountBusiness {
		return "Empresarial"
	}

	return "Pessoal"
}
