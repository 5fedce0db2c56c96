package surface

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	userLabel      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Render("You")
	assistantLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Render("AI")
	userBodyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	aiBodyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).PaddingLeft(1)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	modalStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("212"))
	// el fondo se atenua en gris: SGR 2 no combina bien con colores previos
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	titleStyle     = lipgloss.NewStyle().Bold(true)
	bulletStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
)
