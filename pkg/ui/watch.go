// Package ui provides the Bubble Tea watch dashboard.
package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fd1az/aptos-arbitrage/business/arbitrage/domain"
	marketdomain "github.com/fd1az/aptos-arbitrage/business/market/domain"
)

// RefreshResult is one poll of the market and the enumerator.
type RefreshResult struct {
	Snapshot marketdomain.Snapshot
	Report   domain.OpportunityReport
	Err      error
}

// Refresher produces a fresh RefreshResult; the dashboard owns the cadence.
type Refresher func(ctx context.Context) RefreshResult

// refreshMsg carries a completed poll into the update loop.
type refreshMsg RefreshResult

// tickMsg schedules the next poll.
type tickMsg time.Time

// Model is the watch dashboard model.
type Model struct {
	refresher Refresher
	interval  time.Duration
	keys      KeyMap

	prices table.Model
	opps   table.Model

	last       RefreshResult
	lastUpdate time.Time
	paused     bool
	quitting   bool
	width      int
}

// NewWatch creates the dashboard polling at the given interval.
func NewWatch(refresher Refresher, interval time.Duration) Model {
	if interval <= 0 {
		interval = 10 * time.Second
	}

	prices := table.New(
		table.WithColumns([]table.Column{
			{Title: "Token", Width: 8},
			{Title: "Price USD", Width: 12},
			{Title: "24h %", Width: 8},
		}),
		table.WithHeight(4),
	)
	opps := table.New(
		table.WithColumns([]table.Column{
			{Title: "Route", Width: 24},
			{Title: "Venues", Width: 26},
			{Title: "Net USD", Width: 10},
			{Title: "Margin %", Width: 10},
			{Title: "Risk", Width: 10},
			{Title: "Verdict", Width: 10},
		}),
		table.WithHeight(domain.MaxReportedOpportunities+1),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(ColorPrimary)
	styles.Selected = lipgloss.NewStyle()
	prices.SetStyles(styles)
	opps.SetStyles(styles)

	return Model{
		refresher: refresher,
		interval:  interval,
		keys:      DefaultKeyMap(),
		prices:    prices,
		opps:      opps,
	}
}

// Init starts the first poll immediately.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.tickCmd())
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.interval)
		defer cancel()
		return refreshMsg(m.refresher(ctx))
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			return m, m.refreshCmd()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		if m.paused {
			return m, m.tickCmd()
		}
		return m, tea.Batch(m.refreshCmd(), m.tickCmd())

	case refreshMsg:
		m.last = RefreshResult(msg)
		m.lastUpdate = time.Now()
		m.prices.SetRows(priceRows(m.last.Snapshot))
		m.opps.SetRows(opportunityRows(m.last.Report))
		return m, nil
	}

	return m, nil
}

func priceRows(snap marketdomain.Snapshot) []table.Row {
	rows := make([]table.Row, 0, len(domain.SupportedTokens))
	for _, token := range domain.SupportedTokens {
		quote, ok := snap.Quotes[token]
		if !ok {
			continue
		}
		rows = append(rows, table.Row{
			token,
			quote.PriceUSD.StringFixed(4),
			quote.Change24hPct.StringFixed(2),
		})
	}
	return rows
}

func opportunityRows(report domain.OpportunityReport) []table.Row {
	rows := make([]table.Row, 0, len(report.Top))
	for _, opp := range report.Top {
		rows = append(rows, table.Row{
			fmt.Sprintf("%s -> %s", opp.Route.FromPair, opp.Route.ToPair),
			fmt.Sprintf("%s -> %s", opp.Route.FromDEX, opp.Route.ToDEX),
			opp.Result.NetUSD.StringFixed(2),
			opp.Result.MarginPct.StringFixed(3),
			string(opp.Result.Risk),
			string(opp.Result.Recommendation),
		})
	}
	return rows
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	title := TitleStyle.Render("Aptos Arbitrage Watch")

	status := MutedValue.Render("waiting for first refresh...")
	if !m.lastUpdate.IsZero() {
		snap := m.last.Snapshot
		line := fmt.Sprintf("prices: %s  gas: %s (%d octas)  updated: %s",
			snap.PriceSource, snap.GasSource, snap.GasUnitPriceOctas,
			m.lastUpdate.Format("15:04:05"))
		switch snap.PriceSource {
		case marketdomain.SourceLive:
			status = PositiveValue.Render(line)
		case marketdomain.SourceCached:
			status = WarningValue.Render(line)
		default:
			status = NegativeValue.Render(line)
		}
	}
	if m.paused {
		status += "  " + WarningValue.Render("[paused]")
	}
	if m.last.Err != nil {
		status += "\n" + NegativeValue.Render("error: "+m.last.Err.Error())
	}

	summary := MutedValue.Render("no opportunities yet")
	if m.last.Report.PairsChecked > 0 {
		summary = fmt.Sprintf("checked %d routes, %d profitable, best margin %s%%",
			m.last.Report.PairsChecked, m.last.Report.ProfitableCount,
			m.last.Report.BestMarginPct.StringFixed(3))
	} else if m.last.Report.Message != "" {
		summary = WarningValue.Render(m.last.Report.Message)
	}

	help := HelpStyle.Render("q quit  p pause  r refresh")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		HeaderStyle.Render("Prices"),
		BoxStyle.Render(m.prices.View()),
		HeaderStyle.Render("Opportunities"),
		BoxStyle.Render(m.opps.View()),
		summary,
		status,
		help,
	)
}

// Run drives the dashboard until the user quits or ctx ends.
func Run(ctx context.Context, refresher Refresher, interval time.Duration) error {
	program := tea.NewProgram(NewWatch(refresher, interval), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
