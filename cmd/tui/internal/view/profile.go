package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/granahq/grana/internal/profile"
)

type ProfileModel struct {
	CommonModel
	profileService *profile.Service

	session Session

	form    *huh.Form
	p       *profile.Profile
	editing bool
	loading bool
	err     error
	status  string

	formName  string
	formEmail string
}

func NewProfileModel(profileSvc *profile.Service, session Session) ProfileModel {
	return ProfileModel{
		profileService: profileSvc,
		session:        session,
		loading:        true,
	}
}

func (m ProfileModel) Title() string { return "Perfil" }

func (m ProfileModel) ShortHelp() string {
	if m.editing {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | e: edit"
}

func (m ProfileModel) Init() tea.Cmd {
	return m.loadCmd()
}

type profileLoadedMsg struct {
	p   *profile.Profile
	err error
}

type profileSavedMsg struct {
	p   *profile.Profile
	err error
}

func (m ProfileModel) loadCmd() tea.Cmd {
	userID := m.session.UserID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		p, err := m.profileService.Get(ctx, userID)

		return profileLoadedMsg{p: p, err: err}
	}
}

func (m ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		m.loading = false
		m.p = msg.p
		m.err = msg.err

		return m, nil

	case profileSavedMsg:
		m.editing = false
		m.form = nil

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.p = msg.p
			m.status = "Perfil atualizado."
		}

		return m, nil
	}

	if m.editing {
		return m.updateEdit(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "e":
			if m.p != nil {
				return m.enterEdit()
			}
		}
	}

	return m, nil
}

func (m ProfileModel) enterEdit() (tea.Model, tea.Cmd) {
	m.formName = m.p.FullName
	m.formEmail = m.p.Email

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Nome completo").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("nome é obrigatório")
					}
					return nil
				}),

			huh.NewInput().
				Key("email").
				Title("Email").
				Value(&m.formEmail).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return fmt.Errorf("email inválido")
					}
					return nil
				}),
		),
	).WithWidth(44).WithShowHelp(false)

	m.editing = true

	return m, m.form.Init()
}

func (m ProfileModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.editing = false
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

	userID := m.session.UserID
	name := m.formName
	email := m.formEmail

	return m, func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		p, err := m.profileService.Update(ctx, userID, profile.UpdateParams{
			FullName: &name,
			Email:    &email,
		})

		return profileSavedMsg{p: p, err: err}
	}
}

func (m ProfileModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading profile...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := lipgloss.NewStyle().Bold(true).Render("Perfil") + "\n\n" +
		fmt.Sprintf("Nome:  %s\n", m.p.FullName) +
		fmt.Sprintf("Email: %s\n", m.p.Email)

	if m.editing && m.form != nil {
		content += "\n" + m.form.View()
	}

	if m.status != "" {
		content += "\n" + faintStyle.Render(m.status)
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}
