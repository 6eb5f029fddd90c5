package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/taskrank/internal/task"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("237"))

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().Width(14).Foreground(lipgloss.Color("244"))

	dialogPadY = 1
	dialogPadX = 2

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(dialogPadY, dialogPadX)

	// Weight colors match the CLI table.
	weightStyles = map[task.Weight]lipgloss.Style{
		task.High: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		task.Med:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		task.Low:  lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}
)
