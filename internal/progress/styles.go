package progress

import "github.com/charmbracelet/lipgloss"

var (
	filledColor = lipgloss.Color("#32cd32")
	sweepColor  = lipgloss.Color("#adff2f")

	filledCell = lipgloss.NewStyle().
			Foreground(filledColor).
			Background(filledColor)

	sweepCell = lipgloss.NewStyle().
			Foreground(sweepColor).
			Background(sweepColor)

	labelText = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff"))

	labelOnFilled = labelText.Background(filledColor)
	labelOnSweep  = labelText.Background(sweepColor)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ccff"))

	logStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	metricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)
)
