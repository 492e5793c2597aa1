package tui

import (
	"fmt"

	"github.com/bart6114/trainy/internal/analysis"
	"github.com/bart6114/trainy/internal/service"
	"github.com/bart6114/trainy/internal/store"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DetailModel is the activity detail screen model
type DetailModel struct {
	queryService *service.QueryService
	activityID   int64
	detail       *service.ActivityWithMetrics
	viewport     viewport.Model
	loading      bool
	err          error
	width        int
	height       int
	ready        bool
}

// NewDetailModel creates a new activity detail model
func NewDetailModel(qs *service.QueryService, activityID int64, width, height int) DetailModel {
	m := DetailModel{
		queryService: qs,
		activityID:   activityID,
		loading:      true,
		width:        width,
		height:       height,
	}

	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-6) // Reserve space for header/footer
		m.ready = true
	}

	return m
}

// Init initializes the detail screen
func (m DetailModel) Init() tea.Cmd {
	return m.loadDetail
}

type detailLoadedMsg struct {
	detail *service.ActivityWithMetrics
	err    error
}

func (m DetailModel) loadDetail() tea.Msg {
	detail, err := m.queryService.GetActivityDetail(m.activityID)
	if err != nil {
		return detailLoadedMsg{err: err}
	}
	return detailLoadedMsg{detail: detail}
}

// Update handles messages
func (m DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case detailLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.detail = msg.detail
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		if m.detail != nil {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadDetail
		}
	}

	// Handle viewport scrolling
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail screen
func (m DetailModel) View() string {
	if m.loading {
		return "\n  Loading activity..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	footer := statusStyle.Render("  esc: back to list  j/k or arrows: scroll  r: refresh")

	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m DetailModel) renderContent() string {
	if m.detail == nil {
		return "No data"
	}

	var sections []string

	sections = append(sections, m.renderSummary())

	if m.detail.Metrics != nil {
		sections = append(sections, m.renderMetrics())

		if hasPeakPowers(m.detail.Metrics) {
			sections = append(sections, m.renderPeakPowers())
		}
		if hasRowingEfforts(m.detail.Metrics) {
			sections = append(sections, m.renderRowingEfforts())
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DetailModel) renderSummary() string {
	a := m.detail.Activity
	title := cardTitleStyle.Render(a.Title)

	lines := []string{
		RenderMetric("Date", a.StartTime.Format("Mon Jan 2, 2006 15:04"), ""),
		RenderMetric("Kind", a.Kind, ""),
		RenderMetric("Duration", formatDuration(int(a.DurationSeconds)), ""),
	}

	if a.DistanceMeters != nil {
		lines = append(lines, RenderMetric("Distance", fmt.Sprintf("%.2f km", *a.DistanceMeters/1000), ""))
	}
	if a.AvgHR != nil {
		lines = append(lines, RenderMetric("Avg HR", fmt.Sprintf("%.0f bpm", *a.AvgHR), ""))
	}
	if a.AvgPower != nil {
		lines = append(lines, RenderMetric("Avg Power", fmt.Sprintf("%.0f W", *a.AvgPower), ""))
	}
	if a.NormalizedPower != nil {
		lines = append(lines, RenderMetric("Norm Power", fmt.Sprintf("%.0f W", *a.NormalizedPower), ""))
	}
	if a.Calories != nil {
		lines = append(lines, RenderMetric("Calories", fmt.Sprintf("%d", *a.Calories), ""))
	} else if m.detail.EstimatedCalories != nil {
		lines = append(lines, RenderMetric("Calories", fmt.Sprintf("%d", *m.detail.EstimatedCalories), "estimated"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DetailModel) renderMetrics() string {
	met := m.detail.Metrics
	title := cardTitleStyle.Render("Training Stress")

	lines := []string{
		RenderMetric("TSS", fmt.Sprintf("%.1f", met.TSS), "via "+met.TSSMethod),
		RenderMetric("Intensity Factor", fmt.Sprintf("%.3f", met.IntensityFactor), ""),
	}

	if met.EfficiencyFactor != nil {
		lines = append(lines, RenderMetric("Efficiency Factor", fmt.Sprintf("%.2f", *met.EfficiencyFactor), ""))
	}
	if met.VariabilityIndex != nil {
		lines = append(lines, RenderMetric("Variability Index", fmt.Sprintf("%.2f", *met.VariabilityIndex), analysis.VariabilityStatus(met.VariabilityIndex)))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DetailModel) renderPeakPowers() string {
	met := m.detail.Metrics
	title := cardTitleStyle.Render("Peak Powers")

	var lines []string
	peaks := []struct {
		label string
		watts *float64
	}{
		{"5 sec", met.PeakPower5s},
		{"1 min", met.PeakPower1Min},
		{"4 min", met.PeakPower4Min},
		{"5 min", met.PeakPower5Min},
		{"20 min", met.PeakPower20Min},
		{"30 min", met.PeakPower30Min},
		{"60 min", met.PeakPower60Min},
	}
	for _, p := range peaks {
		if p.watts != nil {
			lines = append(lines, RenderMetric(p.label, fmt.Sprintf("%.0f W", *p.watts), ""))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DetailModel) renderRowingEfforts() string {
	met := m.detail.Metrics
	title := cardTitleStyle.Render("Best Efforts")

	var lines []string
	times := []struct {
		label   string
		seconds *float64
	}{
		{"500m", met.Rowing500mTime},
		{"1k", met.Rowing1kTime},
		{"2k", met.Rowing2kTime},
		{"5k", met.Rowing5kTime},
		{"10k", met.Rowing10kTime},
	}
	for _, e := range times {
		if e.seconds != nil {
			lines = append(lines, RenderMetric(e.label, formatSplitTime(*e.seconds), ""))
		}
	}

	distances := []struct {
		label  string
		meters *float64
	}{
		{"1 min", met.Rowing1MinDistance},
		{"4 min", met.Rowing4MinDistance},
		{"10 min", met.Rowing10MinDistance},
		{"20 min", met.Rowing20MinDistance},
		{"30 min", met.Rowing30MinDistance},
		{"60 min", met.Rowing60MinDistance},
	}
	for _, e := range distances {
		if e.meters != nil {
			lines = append(lines, RenderMetric(e.label, fmt.Sprintf("%.0f m", *e.meters), ""))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func hasPeakPowers(m *store.ActivityMetrics) bool {
	return m.PeakPower5s != nil || m.PeakPower1Min != nil ||
		m.PeakPower5Min != nil || m.PeakPower20Min != nil
}

func hasRowingEfforts(m *store.ActivityMetrics) bool {
	return m.Rowing500mTime != nil || m.Rowing1MinDistance != nil
}

// formatSplitTime renders seconds as m:ss.s, the convention for erg splits
func formatSplitTime(seconds float64) string {
	mins := int(seconds) / 60
	secs := seconds - float64(mins*60)
	return fmt.Sprintf("%d:%04.1f", mins, secs)
}
