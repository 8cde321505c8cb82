package colors

import "github.com/charmbracelet/lipgloss"

var (
	White     = lipgloss.Color("#ffffff")
	LightGray = lipgloss.Color("#c0c0c0")
	Gray      = lipgloss.Color("#8a8a8a")

	Red    = lipgloss.Color("#ff0000")
	Orange = lipgloss.Color("#ff8700")

	Blue  = lipgloss.Color("#5D95FF")
	Green = lipgloss.Color("#afff5f")
)
