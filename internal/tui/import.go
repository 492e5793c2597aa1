package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/bart6114/trainy/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ImportModel is the import screen model
type ImportModel struct {
	importService *service.ImportService
	running       bool
	result        *service.ImportResult
	err           error
	done          bool
}

// NewImportModel creates a new import model
func NewImportModel(is *service.ImportService) ImportModel {
	return ImportModel{
		importService: is,
	}
}

// Init initializes the import screen
func (m ImportModel) Init() tea.Cmd {
	return nil
}

// ImportDoneMsg is sent when an import run finishes
type ImportDoneMsg struct {
	Result *service.ImportResult
	Err    error
}

// Update handles messages
func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ImportDoneMsg:
		m.running = false
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		return m, func() tea.Msg { return ImportCompleteMsg{} }

	case tea.KeyMsg:
		if !m.running {
			switch msg.String() {
			case "enter", "i":
				m.running = true
				m.done = false
				m.err = nil
				m.result = nil
				return m, m.runImport
			}
		}
	}
	return m, nil
}

func (m ImportModel) runImport() tea.Msg {
	ctx := context.Background()

	// Pass nil for progress - no real-time updates here, the channel
	// would block if the buffer fills up
	result, err := m.importService.ImportAll(ctx, nil)

	return ImportDoneMsg{Result: result, Err: err}
}

// View renders the import screen
func (m ImportModel) View() string {
	var sections []string

	title := cardTitleStyle.Render("Import FIT Files")
	sections = append(sections, title)

	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err)))
		sections = append(sections, "\n"+statusStyle.Render("  Press 'i' or Enter to retry"))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if m.done && !m.running {
		sections = append(sections, successStyle.Render("\n  Import complete!"))
		sections = append(sections, m.renderSummary())
		sections = append(sections, "\n"+statusStyle.Render("  Press '1' to go to dashboard"))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if m.running {
		sections = append(sections, m.renderProgress())
	} else {
		sections = append(sections, m.renderStartPrompt())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ImportModel) renderStartPrompt() string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, "  This will scan the export folder and recompute everything:")
	lines = append(lines, "")
	lines = append(lines, "  1. Import new FIT files")
	lines = append(lines, "  2. Compute per-activity metrics")
	lines = append(lines, "  3. Rebuild the training load series")
	lines = append(lines, "")
	lines = append(lines, statusStyle.Render("  Press 'i' or Enter to start"))

	return strings.Join(lines, "\n")
}

func (m ImportModel) renderProgress() string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, "  Importing...")
	lines = append(lines, "")
	lines = append(lines, statusStyle.Render("  This may take a moment..."))

	return strings.Join(lines, "\n")
}

func (m ImportModel) renderSummary() string {
	if m.result == nil {
		return ""
	}

	var lines []string
	r := m.result
	lines = append(lines, "")

	if r.FilesImported > 0 {
		lines = append(lines, successStyle.Render(fmt.Sprintf("  %d files imported", r.FilesImported)))
	} else {
		lines = append(lines, statusStyle.Render("  No new files"))
	}

	if r.FilesSkipped > 0 {
		lines = append(lines, statusStyle.Render(fmt.Sprintf("  %d already imported", r.FilesSkipped)))
	}

	if r.MetricsComputed > 0 {
		lines = append(lines, successStyle.Render(fmt.Sprintf("  %d metrics computed", r.MetricsComputed)))
	}

	if r.DaysComputed > 0 {
		lines = append(lines, successStyle.Render(fmt.Sprintf("  %d days of training load", r.DaysComputed)))
	}

	if len(r.Errors) > 0 {
		lines = append(lines, "")
		lines = append(lines, warningStyle.Render(fmt.Sprintf("  %d errors occurred", len(r.Errors))))
	}

	return strings.Join(lines, "\n")
}
