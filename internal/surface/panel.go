package surface

import (
	tea "github.com/charmbracelet/bubbletea"

	"portfolio-assistant/internal/session"
)

// Panel es la superficie inline: la vista de chat dentro de un borde.
type Panel struct {
	view chatView
}

func NewPanel(sess *session.Session, subject string) Panel {
	return Panel{view: newChatView(sess, subject)}
}

func (p Panel) Init() tea.Cmd {
	return p.view.Init()
}

func (p Panel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		p.SetSize(size.Width, size.Height)
		return p, nil
	}
	var cmd tea.Cmd
	p.view, cmd = p.view.Update(msg)
	return p, cmd
}

func (p *Panel) SetSize(width, height int) {
	frameW, frameH := panelStyle.GetFrameSize()
	p.view.SetSize(width-frameW, height-frameH)
}

func (p Panel) View() string {
	return panelStyle.Render(p.view.View())
}

// Close destruye la sesion del panel.
func (p Panel) Close() {
	p.view.close()
}
