package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/pocket/internal/rps"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})

	scoreStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "240", Dark: "240"}).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "208", Dark: "208"})
)

// outcomeColors maps round outcomes to their accent color.
// Win=green, loss=red, draw=yellow.
var outcomeColors = map[rps.Outcome]lipgloss.AdaptiveColor{
	rps.PlayerWins:   {Light: "2", Dark: "10"},
	rps.ComputerWins: {Light: "1", Dark: "9"},
	rps.Draw:         {Light: "3", Dark: "11"},
}

// OutcomeBadge returns the styled outcome message for a round.
func OutcomeBadge(o rps.Outcome) string {
	color, ok := outcomeColors[o]
	if !ok {
		return dimStyle.Render(o.Message())
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(color).
		Render(o.Message())
}
