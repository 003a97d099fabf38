package view

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/granahq/grana/internal/auth"
)

type loginMode int

const (
	loginModeSignIn loginMode = iota
	loginModeSignUp
)

type LoginModel struct {
	CommonModel
	authService *auth.Service

	mode    loginMode
	form    *huh.Form
	pending bool
	status  string

	formEmail    string
	formName     string
	formPassword string
}

func NewLoginModel(authSvc *auth.Service) LoginModel {
	m := LoginModel{authService: authSvc}
	m.form = m.buildForm()

	return m
}

func (m LoginModel) Title() string { return "Sign In" }

func (m LoginModel) ShortHelp() string {
	return "Tab: next field | Enter: submit | Ctrl+N: toggle sign up | Ctrl+C: quit"
}

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m *LoginModel) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Key("email").
			Title("Email").
			Value(&m.formEmail).
			Validate(func(s string) error {
				if !strings.Contains(s, "@") {
					return fmt.Errorf("enter a valid email")
				}
				return nil
			}),
	}

	if m.mode == loginModeSignUp {
		fields = append(fields, huh.NewInput().
			Key("name").
			Title("Full name").
			Value(&m.formName))
	}

	fields = append(fields, huh.NewInput().
		Key("password").
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&m.formPassword))

	return huh.NewForm(huh.NewGroup(fields...)).WithWidth(44).WithShowHelp(false)
}

type authResultMsg struct {
	signedIn SignedInMsg
	err      error
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		m.pending = false

		if msg.err != nil {
			switch {
			case errors.Is(msg.err, auth.ErrInvalidCredentials):
				m.status = "Invalid email or password."
			case errors.Is(msg.err, auth.ErrEmailTaken):
				m.status = "That email is already registered."
			case errors.Is(msg.err, auth.ErrWeakPassword):
				m.status = "Password must have at least 6 characters."
			default:
				m.status = fmt.Sprintf("Error: %v", msg.err)
			}

			m.form = m.buildForm()

			return m, m.form.Init()
		}

		return m, func() tea.Msg { return msg.signedIn }

	case tea.KeyMsg:
		if msg.String() == "ctrl+n" && !m.pending {
			if m.mode == loginModeSignIn {
				m.mode = loginModeSignUp
			} else {
				m.mode = loginModeSignIn
			}

			m.status = ""
			m.form = m.buildForm()

			return m, m.form.Init()
		}
	}

	if m.pending {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.pending = true
	m.status = ""

	return m, m.submitCmd()
}

func (m LoginModel) submitCmd() tea.Cmd {
	mode := m.mode
	email := m.formEmail
	name := m.formName
	password := m.formPassword

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var (
			u   *auth.User
			err error
		)

		if mode == loginModeSignUp {
			u, _, err = m.authService.SignUp(ctx, email, name, password)
		} else {
			u, _, err = m.authService.SignIn(ctx, email, password)
		}

		if err != nil {
			return authResultMsg{err: err}
		}

		return authResultMsg{signedIn: SignedInMsg{UserID: u.ID}}
	}
}

func (m LoginModel) View() string {
	title := "Grana — Sign In"
	if m.mode == loginModeSignUp {
		title = "Grana — Create Account"
	}

	content := lipgloss.NewStyle().Bold(true).Render(title) + "\n\n"

	if m.pending {
		content += "Signing in...\n"
	} else {
		content += m.form.View()
	}

	if m.status != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render(m.status)
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}
