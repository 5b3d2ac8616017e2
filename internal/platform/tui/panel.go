package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stacks-roll/internal/game"
	"github.com/vovakirdan/stacks-roll/internal/leaderboard"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 2)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)
)

// leaderboardTable builds the Top Rollers table for the given rows.
func leaderboardTable(entries []leaderboard.Entry) table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 12},
		{Title: "Distance", Width: 10},
		{Title: "Score", Width: 10},
	}

	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			leaderboard.FormatRank(e),
			e.Name,
			leaderboard.FormatDistance(e.Distance),
			leaderboard.FormatEntryScore(e),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	// No cursor on a read-only board
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return t
}

// idleView renders the title screen.
func (m Model) idleView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("STACKS ROLL"))
	b.WriteString("\n\n")
	b.WriteString(statStyle.Render("Steer the ball with the mouse or arrow keys."))
	b.WriteString("\n")
	b.WriteString(statStyle.Render("Grab coins and gems, dodge pillars, bars and spikes."))
	b.WriteString("\n\n")
	b.WriteString(headingStyle.Render("Top Rollers"))
	b.WriteString("\n")
	b.WriteString(leaderboardTable(m.board(0)).View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return panelStyle.Render(b.String())
}

// gameOverView renders the results of the finished run.
func (m Model) gameOverView() string {
	snap := m.game.Snapshot()
	var b strings.Builder

	b.WriteString(titleStyle.Render("GAME OVER"))
	b.WriteString("\n\n")
	b.WriteString(statStyle.Render(fmt.Sprintf("Score     %s", leaderboard.FormatScore(snap.Score))))
	b.WriteString("\n")
	b.WriteString(statStyle.Render(fmt.Sprintf("Distance  %s", leaderboard.FormatDistance(snap.Distance))))
	b.WriteString("\n")
	b.WriteString(statStyle.Render(fmt.Sprintf("Coins     %d", snap.CoinsCollected)))
	b.WriteString("\n")
	if m.converted {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(fmt.Sprintf("You converted your score to %.4f STX.", snap.STX())))
		b.WriteString("\n")
	}
	if m.runID != "" {
		b.WriteString(helpStyle.Render("run " + m.runID))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(headingStyle.Render("Top Rollers"))
	b.WriteString("\n")
	b.WriteString(leaderboardTable(m.board(snap.Distance)).View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return panelStyle.Render(b.String())
}

// countdownText is drawn over the board before a run starts.
func countdownText(snap game.Snapshot) string {
	return fmt.Sprintf("  %d  ", snap.Countdown)
}
