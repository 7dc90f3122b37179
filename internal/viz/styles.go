package viz

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(11)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	trackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Padding(0, 1)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

func statusStyle(th Theme, isErr bool) lipgloss.Style {
	if isErr {
		return lipgloss.NewStyle().Foreground(th.Error).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(th.Muted)
}

func focusStyle(th Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(th.Accent).Bold(true)
}
