package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/granahq/grana/internal/category"
)

type catState int

const (
	catStateBrowse catState = iota
	catStateForm
	catStateConfirmDelete
)

type CategoriesModel struct {
	CommonModel
	catService *category.Service

	session Session
	state   catState

	table table.Model
	form  *huh.Form

	cats     []*category.Category
	editing  *category.Category
	deleting *category.Category

	loading bool
	err     error
	status  string

	formName  string
	formColor string
}

func NewCategoriesModel(catSvc *category.Service, session Session) CategoriesModel {
	columns := []table.Column{
		{Title: "Nome", Width: 28},
		{Title: "Cor", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
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

	return CategoriesModel{
		catService: catSvc,
		session:    session,
		table:      t,
		loading:    true,
	}
}

func (m CategoriesModel) Title() string { return "Categorias" }

func (m CategoriesModel) ShortHelp() string {
	switch m.state {
	case catStateForm:
		return "Navigate form | Esc: cancel"
	case catStateConfirmDelete:
		return "y: delete | n: cancel"
	}

	return "Esc: back | a: add | e: edit | x: delete | r: refresh"
}

func (m CategoriesModel) Init() tea.Cmd {
	return m.loadCmd()
}

type catListLoadedMsg struct {
	cats []*category.Category
	err  error
}

type catMutatedMsg struct {
	err error
}

func (m CategoriesModel) loadCmd() tea.Cmd {
	session := m.session

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		cats, err := m.catService.List(ctx, session.UserID, session.AccountType)

		return catListLoadedMsg{cats: cats, err: err}
	}
}

func (m CategoriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case catListLoadedMsg:
		m.loading = false

		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.cats = msg.cats
		m.refreshTable()

		return m, nil

	case catMutatedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = "Saved."
		}

		m.state = catStateBrowse
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
	case catStateBrowse:
		return m.updateBrowse(msg)
	case catStateForm:
		return m.updateForm(msg)
	case catStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m, nil
}

func (m CategoriesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m.enterForm(nil)
		case "e":
			if c := m.selected(); c != nil {
				return m.enterForm(c)
			}

			return m, nil
		case "x":
			if c := m.selected(); c != nil {
				m.deleting = c
				m.state = catStateConfirmDelete
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CategoriesModel) enterForm(c *category.Category) (tea.Model, tea.Cmd) {
	m.editing = c

	if c != nil {
		m.formName = c.Name
		m.formColor = c.Color
	} else {
		m.formName = ""
		m.formColor = "#3b82f6"
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Nome").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("nome é obrigatório")
					}
					return nil
				}),

			huh.NewInput().
				Key("color").
				Title("Cor").
				Placeholder("#3b82f6").
				Value(&m.formColor),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = catStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m CategoriesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = catStateBrowse
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

func (m CategoriesModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		return m, m.deleteCmd()
	case "n", "esc":
		m.deleting = nil
		m.state = catStateBrowse
	}

	return m, nil
}

func (m CategoriesModel) saveCmd() tea.Cmd {
	session := m.session
	editing := m.editing
	name := m.formName
	color := m.formColor

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var err error

		if editing != nil {
			_, err = m.catService.Update(ctx, session.UserID, editing.ID, category.UpdateParams{
				Name:  &name,
				Color: &color,
			})
		} else {
			_, err = m.catService.Create(ctx, session.UserID, category.CreateParams{
				Name:  name,
				Color: color,
				Type:  session.AccountType,
			})
		}

		return catMutatedMsg{err: err}
	}
}

func (m CategoriesModel) deleteCmd() tea.Cmd {
	session := m.session
	c := m.deleting

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return catMutatedMsg{err: m.catService.Delete(ctx, session.UserID, c.ID)}
	}
}

func (m CategoriesModel) selected() *category.Category {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.cats) {
		return nil
	}

	return m.cats[idx]
}

func (m *CategoriesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.cats))

	for _, c := range m.cats {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("██ ") + c.Color
		rows = append(rows, table.Row{c.Name, swatch})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

func (m CategoriesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading categories...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := lipgloss.NewStyle().Bold(true).Render("Categorias — " + scopeLabel(m.session.AccountType))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	switch {
	case m.state == catStateForm && m.form != nil:
		formTitle := "Nova Categoria"
		if m.editing != nil {
			formTitle = "Editar Categoria"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(44).
			Render(formTitle + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)

	case m.state == catStateConfirmDelete && m.deleting != nil:
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("203")).
			Render(fmt.Sprintf("Excluir %q?\nTransações existentes ficam sem categoria.\n\n[y] sim   [n] não", m.deleting.Name))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
