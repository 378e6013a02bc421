package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/transitkiosk/abfahrt/internal/board"
)

// Palette for the kiosk display.
var (
	ColorWhite  = lipgloss.Color("#FFFFFF")
	ColorGray   = lipgloss.Color("#888888")
	ColorDim    = lipgloss.Color("#444444")
	ColorGreen  = lipgloss.Color("#4CAF50")
	ColorBlue   = lipgloss.Color("#2196F3")
	ColorOrange = lipgloss.Color("#FFA726")
	ColorRed    = lipgloss.Color("#FF5555")
	ColorNavy   = lipgloss.Color("#1C2541")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			Background(ColorNavy).
			Padding(0, 1)

	clockStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	columnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorGray)

	timeCellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorGreen)

	imminentCellStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorOrange)

	destinationStyle = lipgloss.NewStyle().
				Foreground(ColorWhite)

	platformStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	statusStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorRed)

	helpStyle = lipgloss.NewStyle().
			Foreground(ColorDim)
)

// Per-category presentation is data, not branching: the renderer looks
// up color and icon by category.
var categoryColors = map[board.Category]lipgloss.Color{
	board.CategoryBus:     ColorBlue,
	board.CategoryTram:    ColorGreen,
	board.CategoryTrain:   ColorOrange,
	board.CategoryUnknown: ColorGray,
}

var categoryIcons = map[board.Category]string{
	board.CategoryBus:     "🚌",
	board.CategoryTram:    "🚊",
	board.CategoryTrain:   "🚆",
	board.CategoryUnknown: "🚏",
}

func lineBadgeStyle(c board.Category) lipgloss.Style {
	color, ok := categoryColors[c]
	if !ok {
		color = ColorGray
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color)
}
