package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sslstats "github.com/wippyai/ssl-stats"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	tableStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type dashboardModel struct {
	stats    *sslstats.SessionStats
	err      error
	table    table.Model
	interval time.Duration
}

type snapshotMsg struct {
	err  error
	snap sslstats.Snapshot
}

func newDashboardModel(stats *sslstats.SessionStats, interval time.Duration) *dashboardModel {
	columns := []table.Column{
		{Title: "Counter", Width: 24},
		{Title: "Value", Width: 12},
	}
	tbl := table.New(
		table.WithColumns(columns),
		table.WithHeight(sslstats.NumCounters),
		table.WithFocused(true),
	)
	return &dashboardModel{
		stats:    stats,
		table:    tbl,
		interval: interval,
	}
}

func (m *dashboardModel) Init() tea.Cmd {
	return m.sample
}

func (m *dashboardModel) sample() tea.Msg {
	snap, err := m.stats.Snapshot()
	return snapshotMsg{snap: snap, err: err}
}

func (m *dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

	case snapshotMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		rows := make([]table.Row, 0, sslstats.NumCounters)
		for _, kind := range sslstats.Counters() {
			rows = append(rows, table.Row{
				kind.String(),
				strconv.FormatUint(msg.snap.Get(kind), 10),
			})
		}
		m.table.SetRows(rows)
		return m, tea.Tick(m.interval, func(time.Time) tea.Msg {
			return m.sample()
		})
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *dashboardModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("TLS session-cache statistics"))
	b.WriteString("\n\n")
	b.WriteString(tableStyle.Render(m.table.View()))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("q: quit"))
	b.WriteString("\n")
	return b.String()
}

func runDashboard(stats *sslstats.SessionStats, interval time.Duration) error {
	m := newDashboardModel(stats, interval)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return m.err
}
