package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"ledger-cli/internal/model"
)

// The board must stay readable on light and dark terminals; chrome colors
// are adaptive, while stage/continent/tag accents come from the model's
// display metadata and render on both.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted    lipgloss.TerminalColor = ac("240", "245")
	colorAccent   lipgloss.TerminalColor = ac("94", "179") // weathered gold
	colorDanger   lipgloss.TerminalColor = ac("124", "203")
	colorOK       lipgloss.TerminalColor = ac("28", "78")
	colorBorder   lipgloss.TerminalColor = ac("250", "240")
	colorSelected lipgloss.TerminalColor = ac("232", "255")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	subStyle   = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	helpStyle  = lipgloss.NewStyle().Foreground(colorMuted)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	cardSelStyle = cardStyle.
			BorderForeground(colorSelected).
			Bold(true)
	cardDragStyle = cardStyle.
			BorderForeground(colorAccent).
			Faint(true)

	laneStyle = lipgloss.NewStyle().Foreground(colorMuted).Bold(true)

	statusSavedStyle  = lipgloss.NewStyle().Foreground(colorOK)
	statusSavingStyle = lipgloss.NewStyle().Foreground(colorAccent)
	statusErrorStyle  = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)
)

func stageHeaderStyle(stage model.Stage) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(model.InfoForStage(stage).Color))
}

func regionStyle(region model.Region) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(model.InfoForRegion(region).Color))
}

func tagStyle(tag string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(model.TagColor(tag)))
}

// hasDarkBackground is queried once; glamour style selection follows it.
var hasDarkBackground = termenv.HasDarkBackground()

func glamourStyle() string {
	if hasDarkBackground {
		return "dark"
	}
	return "light"
}
