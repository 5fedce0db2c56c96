package surface

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"portfolio-assistant/internal/session"
)

// modalClosedMsg avisa al host que el modal pidio cerrarse.
type modalClosedMsg struct{}

// Modal es la superficie overlay. Cerrarlo destruye su sesion.
type Modal struct {
	view   chatView
	width  int
	height int
}

func NewModal(sess *session.Session, subject string) Modal {
	return Modal{view: newChatView(sess, subject)}
}

func (m Modal) Init() tea.Cmd {
	return m.view.Init()
}

func (m Modal) Update(msg tea.Msg) (Modal, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, keys.Close) {
		return m, func() tea.Msg { return modalClosedMsg{} }
	}
	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

// SetSize recibe el tamaño de pantalla; el modal ocupa una fraccion centrada.
func (m *Modal) SetSize(width, height int) {
	m.width, m.height = width, height
	frameW, frameH := modalStyle.GetFrameSize()
	m.view.SetSize(width*3/4-frameW, height*3/4-frameH)
}

func (m Modal) View() string {
	return modalStyle.Render(m.view.View())
}

// Overlay compone el modal centrado sobre el fondo atenuado.
func (m Modal) Overlay(background string) string {
	return overlay(background, m.View(), m.width, m.height)
}

func (m Modal) Close() {
	m.view.close()
}

func overlay(background, modal string, width, height int) string {
	bgLines := strings.Split(background, "\n")
	modalLines := strings.Split(modal, "\n")

	modalWidth := lipgloss.Width(modal)
	modalHeight := len(modalLines)
	startX := max((width-modalWidth)/2, 0)
	startY := max((height-modalHeight)/2, 0)
	rows := max(height, len(bgLines))

	out := make([]string, 0, rows)
	for y := 0; y < rows; y++ {
		bg := ""
		if y < len(bgLines) {
			bg = ansi.Strip(bgLines[y])
		}
		row := y - startY
		if row < 0 || row >= modalHeight {
			out = append(out, dimStyle.Render(bg))
			continue
		}
		out = append(out, compositeRow(bg, modalLines[row], startX, modalWidth))
	}
	return strings.Join(out, "\n")
}

// compositeRow arma fondo-izquierdo + linea del modal + fondo-derecho. bg ya viene sin ANSI.
func compositeRow(bg, line string, startX, modalWidth int) string {
	var b strings.Builder
	bgWidth := ansi.StringWidth(bg)

	if startX > 0 {
		left := ansi.Truncate(bg, startX, "")
		b.WriteString(dimStyle.Render(left))
		if w := ansi.StringWidth(left); w < startX {
			b.WriteString(strings.Repeat(" ", startX-w))
		}
	}
	b.WriteString(line)
	if pad := modalWidth - ansi.StringWidth(line); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	if right := startX + modalWidth; bgWidth > right {
		b.WriteString(dimStyle.Render(ansi.Cut(bg, right, bgWidth)))
	}
	return b.String()
}
