package surface

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"portfolio-assistant/internal/chatclient"
	"portfolio-assistant/internal/domain"
	"portfolio-assistant/internal/session"
)

const PanelTitle = "Portfolio AI"

// DefaultSuggestions son las preguntas de arranque del estado vacio.
var DefaultSuggestions = []string{
	"Is he a good fit for a Next.js role?",
	"Tell me about his AI integration experience",
}

// snapshotMsg lleva un snapshot de una sesion concreta al loop de Bubble Tea.
type snapshotMsg struct {
	source *session.Session
	snap   session.Snapshot
}

// chatView es la vista compartida por Panel y Modal. Cada instancia tiene su propia sesion.
type chatView struct {
	session     *session.Session
	updates     chan session.Snapshot
	unsubscribe func()

	subject     string
	suggestions []string
	suggestIdx  int

	input    textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	spinning bool

	snap   session.Snapshot
	width  int
	height int
}

func newChatView(sess *session.Session, subject string) chatView {
	ta := textarea.New()
	ta.Placeholder = "Ask about skills or paste a job description..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	ta.SetHeight(3)
	ta.KeyMap.InsertNewline = keys.Newline
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	v := chatView{
		session:     sess,
		updates:     make(chan session.Snapshot, 1),
		subject:     subject,
		suggestions: DefaultSuggestions,
		suggestIdx:  -1,
		input:       ta,
		viewport:    viewport.New(60, 10),
		spinner:     sp,
		snap:        sess.Snapshot(),
	}
	updates := v.updates
	// buzon de un slot: siempre queda el ultimo snapshot y el stream nunca se bloquea
	v.unsubscribe = sess.Subscribe(func(snap session.Snapshot) {
		for {
			select {
			case updates <- snap:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	v.refresh()
	return v
}

func (v chatView) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, v.waitForSnapshot())
}

func (v chatView) waitForSnapshot() tea.Cmd {
	updates, source := v.updates, v.session
	return func() tea.Msg {
		snap, ok := <-updates
		if !ok {
			return nil
		}
		return snapshotMsg{source: source, snap: snap}
	}
}

// close desmonta la vista: aborta el intercambio y libera la goroutine de espera.
func (v chatView) close() {
	v.unsubscribe()
	v.session.Close()
	close(v.updates)
}

func (v *chatView) SetSize(width, height int) {
	v.width, v.height = width, height
	v.input.SetWidth(max(width, 10))
	// header + estado + input
	vpHeight := height - 2 - v.input.Height() - 1
	v.viewport.Width = max(width, 10)
	v.viewport.Height = max(vpHeight, 3)
	v.refresh()
}

func (v chatView) Update(msg tea.Msg) (chatView, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		if msg.source != v.session {
			return v, nil
		}
		if msg.snap.Version >= v.snap.Version {
			v.snap = msg.snap
			v.refresh()
		}
		cmd := tea.Batch(v.waitForSnapshot(), v.startSpinner())
		return v, cmd

	case spinner.TickMsg:
		if !v.session.Status().Busy() {
			v.spinning = false
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v chatView) handleKey(msg tea.KeyMsg) (chatView, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Submit):
		if v.session.Submit(v.input.Value()) {
			v.input.Reset()
			v.suggestIdx = -1
			cmd := v.startSpinner()
			return v, cmd
		}
		return v, nil

	case key.Matches(msg, keys.Suggest):
		if len(v.suggestions) == 0 {
			return v, nil
		}
		v.suggestIdx = (v.suggestIdx + 1) % len(v.suggestions)
		v.input.SetValue(v.suggestions[v.suggestIdx])
		v.session.SetDraft(v.input.Value())
		return v, nil

	case key.Matches(msg, keys.Cancel):
		v.session.Cancel()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	v.session.SetDraft(v.input.Value())
	return v, cmd
}

func (v *chatView) startSpinner() tea.Cmd {
	if v.spinning || !v.session.Status().Busy() {
		return nil
	}
	v.spinning = true
	return v.spinner.Tick
}

// refresh re-renderiza el transcript y baja al final en cada cambio.
func (v *chatView) refresh() {
	v.viewport.SetContent(v.renderTranscript())
	v.viewport.GotoBottom()
}

func (v chatView) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(PanelTitle))
	b.WriteString("\n")
	b.WriteString(v.viewport.View())
	b.WriteString("\n")
	b.WriteString(v.statusLine())
	b.WriteString("\n")
	b.WriteString(v.input.View())
	return b.String()
}

func (v chatView) statusLine() string {
	switch v.snap.Status {
	case session.StatusSubmitted, session.StatusStreaming:
		return v.spinner.View() + mutedStyle.Render(" Thinking...")
	case session.StatusError:
		return errorStyle.Render(errorLine(v.snap.Err))
	}
	return mutedStyle.Render(fmt.Sprintf("%s send · %s newline · %s suggestion",
		keys.Submit.Help().Key, keys.Newline.Help().Key, keys.Suggest.Help().Key))
}

func errorLine(err error) string {
	var remote *chatclient.RemoteError
	if errors.As(err, &remote) && remote.Text != "" {
		return remote.Text + " Try again."
	}
	return "Something went wrong. Try again."
}

func (v chatView) renderTranscript() string {
	width := v.viewport.Width
	if len(v.snap.Messages) == 0 && !v.snap.Status.Busy() {
		return v.renderEmpty(width)
	}

	blocks := make([]string, 0, len(v.snap.Messages))
	for _, m := range v.snap.Messages {
		blocks = append(blocks, renderMessage(m, width))
	}
	return strings.Join(blocks, "\n\n")
}

func renderMessage(m domain.Message, width int) string {
	text := m.Text()
	if m.Role == domain.RoleUser {
		return userLabel + "\n" + userBodyStyle.Width(width).Render(text)
	}
	if m.Streaming {
		text += "▌"
	}
	return assistantLabel + "\n" + aiBodyStyle.Width(width).Render(text)
}

func (v chatView) renderEmpty(width int) string {
	title := "Is this candidate a good fit?"
	if v.subject != "" {
		title = fmt.Sprintf("Is %s a good fit?", v.subject)
	}
	lines := []string{
		titleStyle.Render(title),
		mutedStyle.Width(width).Render("Ask about specific skills or paste job description."),
		"",
	}
	for _, s := range v.suggestions {
		lines = append(lines, bulletStyle.Render("• ")+s)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
