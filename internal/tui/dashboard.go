package tui

import (
	"fmt"

	"github.com/bart6114/trainy/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// DashboardModel is the dashboard screen model
type DashboardModel struct {
	queryService *service.QueryService
	data         *service.DashboardData
	loading      bool
	err          error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(qs *service.QueryService) DashboardModel {
	return DashboardModel{
		queryService: qs,
		loading:      true,
	}
}

// Init initializes the dashboard
func (m DashboardModel) Init() tea.Cmd {
	return m.loadData
}

func (m DashboardModel) loadData() tea.Msg {
	data, err := m.queryService.GetDashboardData()
	if err != nil {
		return dashboardDataMsg{err: err}
	}
	return dashboardDataMsg{data: data}
}

type dashboardDataMsg struct {
	data *service.DashboardData
	err  error
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		m.data = msg.data
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadData
		}
	}
	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.loading {
		return "\n  Loading dashboard..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if m.data == nil || m.data.Current == nil {
		return "\n  No data yet. Press '3' to import FIT files."
	}

	var sections []string

	// Top row: training load and risk indicators side by side
	loadCard := m.renderLoadCard()
	riskCard := m.renderRiskCard()
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, loadCard, "  ", riskCard)
	sections = append(sections, topRow)

	if len(m.data.LoadHistory) > 2 {
		sections = append(sections, m.renderChart())
	}

	if m.data.PowerCurve.EFTP != nil {
		sections = append(sections, m.renderPowerCard())
	}

	if len(m.data.PlannedForecast) > 0 {
		sections = append(sections, m.renderPlannerCard())
	}

	sections = append(sections, m.renderRecentActivities())

	help := statusStyle.Render("Press 'r' to refresh, '2' for activities, '3' to import")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderLoadCard() string {
	title := cardTitleStyle.Render("Training Load")

	d := m.data.Current
	mutedStyle := lipgloss.NewStyle().Foreground(mutedColor)

	lines := []string{
		RenderMetric("Fitness (CTL)", fmt.Sprintf("%.1f", d.CTL), ""),
		RenderMetric("Fatigue (ATL)", fmt.Sprintf("%.1f", d.ATL), ""),
		RenderMetric("Form (TSB)", fmt.Sprintf("%.1f", d.TSB), ""),
		RenderMetric("7-day TSS", fmt.Sprintf("%.0f", d.TSS7Day), ""),
		RenderMetric("30-day TSS", fmt.Sprintf("%.0f", d.TSS30Day), ""),
		"",
		mutedStyle.Render(m.data.FormDescription),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(40).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderRiskCard() string {
	title := cardTitleStyle.Render("Injury Risk")

	d := m.data.Current

	acwr := "-"
	if d.ACWR != nil {
		acwr = fmt.Sprintf("%.2f", *d.ACWR)
	}
	monotony := "-"
	if d.Monotony != nil {
		monotony = fmt.Sprintf("%.2f", *d.Monotony)
	}
	strain := "-"
	if d.Strain != nil {
		strain = fmt.Sprintf("%.0f", *d.Strain)
	}

	mutedStyle := lipgloss.NewStyle().Foreground(mutedColor)

	lines := []string{
		RenderMetric("ACWR", acwr, ""),
		RenderMetric("Monotony", monotony, ""),
		RenderMetric("Strain", strain, ""),
		"",
		mutedStyle.Render(m.data.ACWRDescription),
		mutedStyle.Render(m.data.MonotonyStatus),
		mutedStyle.Render(m.data.StrainStatus),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(40).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderChart() string {
	title := cardTitleStyle.Render("Fitness & Fatigue - Last 90 Days")

	ctl := make([]float64, len(m.data.LoadHistory))
	atl := make([]float64, len(m.data.LoadHistory))
	for i, d := range m.data.LoadHistory {
		ctl[i] = d.CTL
		atl[i] = d.ATL
	}

	graph := asciigraph.PlotMany([][]float64{ctl, atl},
		asciigraph.Height(8),
		asciigraph.Width(70),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
	)

	legend := statusStyle.Render("CTL (blue)  ATL (red)")

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph, legend))
}

func (m DashboardModel) renderPowerCard() string {
	title := cardTitleStyle.Render("Power")

	lines := []string{
		RenderMetric("eFTP", fmt.Sprintf("%d W", *m.data.PowerCurve.EFTP), ""),
	}

	if m.data.WattsPerKg != nil {
		lines = append(lines, RenderMetric("W/kg", fmt.Sprintf("%.2f", *m.data.WattsPerKg), ""))
	}
	if m.data.PowerCurve.WPrime != nil {
		lines = append(lines, RenderMetric("W'", fmt.Sprintf("%.1f kJ", float64(*m.data.PowerCurve.WPrime)/1000), ""))
	}
	lines = append(lines, RenderMetric("Model", m.data.PowerCurve.Method.String(), ""))

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(40).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderPlannerCard() string {
	title := cardTitleStyle.Render("If You Train Today (1h)")

	var lines []string
	for _, p := range m.data.PlannedForecast {
		lines = append(lines, RenderMetric(p.WorkoutType,
			fmt.Sprintf("%.0f TSS", p.TSS),
			fmt.Sprintf("~%d kcal", p.Calories)))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(40).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderRecentActivities() string {
	title := cardTitleStyle.Render("Recent Activities")

	if len(m.data.RecentActivities) == 0 {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "No activities yet"))
	}

	header := tableHeaderStyle.Render(fmt.Sprintf("%-10s  %-22s  %-6s  %8s  %6s  %6s",
		"Date", "Title", "Kind", "Duration", "TSS", "IF"))

	var rows []string
	rows = append(rows, header)

	for i, am := range m.data.RecentActivities {
		if i >= 5 {
			break
		}

		a := am.Activity

		tss := "-"
		intensity := "-"
		if am.Metrics != nil {
			tss = fmt.Sprintf("%.0f", am.Metrics.TSS)
			intensity = fmt.Sprintf("%.2f", am.Metrics.IntensityFactor)
		}

		row := tableRowStyle.Render(fmt.Sprintf("%-10s  %-22s  %-6s  %8s  %6s  %6s",
			a.StartTime.Format("Jan 02"),
			truncateTitle(a.Title, 22),
			a.Kind,
			formatDuration(int(a.DurationSeconds)),
			tss,
			intensity,
		))
		rows = append(rows, row)
	}

	table := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, table))
}

func formatDuration(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

func truncateTitle(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
