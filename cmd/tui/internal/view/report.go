package view

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/granahq/grana/internal/report"
)

type ReportModel struct {
	CommonModel
	reportService *report.Service

	session Session

	exporting bool
	done      bool
	path      string
	err       error
}

func NewReportModel(reportSvc *report.Service, session Session) ReportModel {
	return ReportModel{
		reportService: reportSvc,
		session:       session,
	}
}

func (m ReportModel) Title() string     { return "Relatório" }
func (m ReportModel) ShortHelp() string { return "Enter: export PDF | Esc: back" }

func (m ReportModel) Init() tea.Cmd {
	return nil
}

type reportDoneMsg struct {
	path string
	err  error
}

func (m ReportModel) exportCmd() tea.Cmd {
	session := m.session

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		f, err := os.CreateTemp("", "grana-*.pdf")
		if err != nil {
			return reportDoneMsg{err: err}
		}

		filename, err := m.reportService.Export(ctx, session.UserID, session.AccountType, f)
		if err != nil {
			f.Close()
			os.Remove(f.Name())

			return reportDoneMsg{err: err}
		}

		if err := f.Close(); err != nil {
			return reportDoneMsg{err: err}
		}

		// Give the temp file its proper download name.
		path := filepath.Join(filepath.Dir(f.Name()), filename)
		if err := os.Rename(f.Name(), path); err != nil {
			return reportDoneMsg{err: err}
		}

		return reportDoneMsg{path: path}
	}
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reportDoneMsg:
		m.exporting = false
		m.done = msg.err == nil
		m.path = msg.path
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyEnter:
			if !m.exporting {
				m.exporting = true
				m.done = false
				m.err = nil

				return m, m.exportCmd()
			}
		}
	}

	return m, nil
}

func (m ReportModel) View() string {
	content := lipgloss.NewStyle().Bold(true).Render("Relatório — "+scopeLabel(m.session.AccountType)) + "\n\n" +
		"Gera um PDF com o resumo financeiro, as últimas transações\ne os gráficos de despesas.\n\n"

	switch {
	case m.exporting:
		content += "Gerando relatório..."
	case m.err != nil:
		content += lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render(fmt.Sprintf("Erro: %v", m.err))
	case m.done:
		content += "Relatório salvo em:\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render(m.path)
	default:
		content += faintStyle.Render("Pressione Enter para exportar.")
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}
