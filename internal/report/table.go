// Package report renders the account summary for humans. Machine output
// stays CSV; this is the styled table behind the -format table flag.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tallyhq/tally/internal/ledger"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	lockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#FF6B6B"}).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1)
)

const rowFormat = "%-8s %14s %14s %14s %8s"

// Render formats the summary rows as a bordered terminal table, one line
// per account, locked accounts highlighted.
func Render(rows []ledger.AccountSummary) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, headerStyle.Render(
		fmt.Sprintf(rowFormat, "client", "available", "held", "total", "locked")))

	for _, row := range rows {
		line := fmt.Sprintf(rowFormat,
			fmt.Sprintf("%d", row.Client),
			row.Available.String(),
			row.Held.String(),
			row.Total.String(),
			fmt.Sprintf("%t", row.Locked))
		if row.Locked {
			line = lockedStyle.Render(line)
		}
		lines = append(lines, line)
	}

	return boxStyle.Render(strings.Join(lines, "\n"))
}
