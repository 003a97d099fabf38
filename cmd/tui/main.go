package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/granahq/grana/cmd/tui/internal/view"
	"github.com/granahq/grana/internal/auth"
	authStore "github.com/granahq/grana/internal/auth/store"
	"github.com/granahq/grana/internal/cache"
	"github.com/granahq/grana/internal/category"
	catStore "github.com/granahq/grana/internal/category/store"
	"github.com/granahq/grana/internal/config"
	"github.com/granahq/grana/internal/database"
	"github.com/granahq/grana/internal/goal"
	"github.com/granahq/grana/internal/profile"
	profileStore "github.com/granahq/grana/internal/profile/store"
	"github.com/granahq/grana/internal/report"
	"github.com/granahq/grana/internal/transaction"
	txStore "github.com/granahq/grana/internal/transaction/store"
)

type View int

const (
	ViewLogin View = iota
	ViewMenu
	ViewDashboard
	ViewTransactions
	ViewCategories
	ViewPlanning
	ViewReport
	ViewProfile
)

type model struct {
	authService    *auth.Service
	txService      *transaction.Service
	catService     *category.Service
	profileService *profile.Service
	goalService    *goal.Service
	reportService  *report.Service

	// txCache holds one listing per (user, account scope); mutations in any
	// view invalidate it so the others reload.
	txCache *cache.Collection[*transaction.Transaction]

	session     view.Session
	currentView View

	loginView        view.LoginModel
	dashboardView    view.DashboardModel
	transactionsView view.TransactionsModel
	categoriesView   view.CategoriesModel
	planningView     view.PlanningModel
	reportView       view.ReportModel
	profileView      view.ProfileModel
}

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	authSvc := auth.NewService(authStore.New(db), cfg.Auth.Secret, cfg.Auth.TokenTTL)
	txSvc := transaction.NewService(txStore.New(db))
	catSvc := category.NewService(catStore.New(db))
	profileSvc := profile.NewService(profileStore.New(db))
	goalSvc := goal.NewService(goal.NewStore(cfg.Goals.File))
	reportSvc := report.NewService(txSvc)

	return model{
		authService:    authSvc,
		txService:      txSvc,
		catService:     catSvc,
		profileService: profileSvc,
		goalService:    goalSvc,
		reportService:  reportSvc,
		txCache:        cache.NewCollection[*transaction.Transaction](),
		session:        view.Session{AccountType: transaction.AccountPersonal},
		currentView:    ViewLogin,
		loginView:      view.NewLoginModel(authSvc),
	}
}

func (m model) Init() tea.Cmd {
	return m.loginView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case view.SignedInMsg:
		m.session.UserID = msg.UserID
		m.currentView = ViewMenu

		return m, nil

	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "t":
				// Scope switch: in-flight responses for the old scope are
				// dropped by the views; cached listings stay keyed per scope.
				if m.session.AccountType == transaction.AccountPersonal {
					m.session.AccountType = transaction.AccountBusiness
				} else {
					m.session.AccountType = transaction.AccountPersonal
				}

				return m, nil
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.txCache, m.txService, m.goalService, m.session)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.txCache, m.txService, m.catService, m.session)

				return m, m.transactionsView.Init()
			case "3":
				m.currentView = ViewCategories
				m.categoriesView = view.NewCategoriesModel(m.catService, m.session)

				return m, m.categoriesView.Init()
			case "4":
				m.currentView = ViewPlanning
				m.planningView = view.NewPlanningModel(m.txCache, m.txService, m.goalService, m.session)

				return m, m.planningView.Init()
			case "5":
				m.currentView = ViewReport
				m.reportView = view.NewReportModel(m.reportService, m.session)

				return m, m.reportView.Init()
			case "6":
				m.currentView = ViewProfile
				m.profileView = view.NewProfileModel(m.profileService, m.session)

				return m, m.profileView.Init()
			}
		}
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewCategories:
		var newModel tea.Model
		newModel, cmd = m.categoriesView.Update(msg)
		m.categoriesView = newModel.(view.CategoriesModel)
	case ViewPlanning:
		var newModel tea.Model
		newModel, cmd = m.planningView.Update(msg)
		m.planningView = newModel.(view.PlanningModel)
	case ViewReport:
		var newModel tea.Model
		newModel, cmd = m.reportView.Update(msg)
		m.reportView = newModel.(view.ReportModel)
	case ViewProfile:
		var newModel tea.Model
		newModel, cmd = m.profileView.Update(msg)
		m.profileView = newModel.(view.ProfileModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewMenu:
		scope := "Pessoal"
		if m.session.AccountType == transaction.AccountBusiness {
			scope = "Empresarial"
		}

		return lipgloss.NewStyle().Padding(2).Render(
			"Grana — Conta " + scope + "\n\n" +
				"1. Dashboard\n" +
				"2. Transações\n" +
				"3. Categorias\n" +
				"4. Planejamento\n" +
				"5. Relatório PDF\n" +
				"6. Perfil\n\n" +
				"t. Alternar conta (pessoal/empresarial)\n" +
				"q. Sair",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewCategories:
		return m.categoriesView.View()
	case ViewPlanning:
		return m.planningView.View()
	case ViewReport:
		return m.reportView.View()
	case ViewProfile:
		return m.profileView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
