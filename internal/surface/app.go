package surface

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"portfolio-assistant/internal/session"
)

// SessionFactory crea una sesion nueva por superficie.
type SessionFactory func() *session.Session

// App aloja el panel inline y abre/cierra el modal sobre el.
type App struct {
	newSession SessionFactory
	subject    string
	panel      Panel
	modal      *Modal
	width      int
	height     int
}

func NewApp(newSession SessionFactory, subject string) *App {
	return &App{
		newSession: newSession,
		subject:    subject,
		panel:      NewPanel(newSession(), subject),
	}
}

func (a *App) Init() tea.Cmd {
	return a.panel.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.panel.SetSize(msg.Width, msg.Height)
		if a.modal != nil {
			a.modal.SetSize(msg.Width, msg.Height)
		}
		return a, nil

	case modalClosedMsg:
		a.closeModal()
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return a, tea.Quit
		}
		if a.modal == nil && key.Matches(msg, keys.OpenModal) {
			return a, a.openModal()
		}
		// las teclas van solo a la superficie con foco
		if a.modal != nil {
			return a, a.updateModal(msg)
		}
		var cmd tea.Cmd
		a.panel, cmd = a.updatePanel(msg)
		return a, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.panel, cmd = a.updatePanel(msg)
	cmds = append(cmds, cmd)
	if a.modal != nil {
		cmds = append(cmds, a.updateModal(msg))
	}
	return a, tea.Batch(cmds...)
}

func (a *App) updatePanel(msg tea.Msg) (Panel, tea.Cmd) {
	model, cmd := a.panel.Update(msg)
	return model.(Panel), cmd
}

func (a *App) updateModal(msg tea.Msg) tea.Cmd {
	next, cmd := a.modal.Update(msg)
	a.modal = &next
	return cmd
}

func (a *App) openModal() tea.Cmd {
	m := NewModal(a.newSession(), a.subject)
	m.SetSize(a.width, a.height)
	a.modal = &m
	return m.Init()
}

func (a *App) closeModal() {
	if a.modal == nil {
		return
	}
	a.modal.Close()
	a.modal = nil
}

func (a *App) View() string {
	if a.modal == nil {
		return a.panel.View()
	}
	return a.modal.Overlay(a.panel.View())
}

// ModalOpen indica si el overlay esta visible.
func (a *App) ModalOpen() bool {
	return a.modal != nil
}

// Close destruye todas las sesiones. Se llama al salir del programa.
func (a *App) Close() {
	a.closeModal()
	a.panel.Close()
}
