package surface

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"portfolio-assistant/internal/chatclient"
	"portfolio-assistant/internal/domain"
	"portfolio-assistant/internal/session"
)

type fakeTransport struct {
	deltas []string
	err    error
}

func (f fakeTransport) Stream(_ context.Context, _ []domain.Message, onDelta func(string)) error {
	for _, d := range f.deltas {
		onDelta(d)
	}
	return f.err
}

func newTestView(t *testing.T, tr session.Transport) chatView {
	t.Helper()
	v := newChatView(session.New(tr, nil), "Ada")
	v.SetSize(80, 24)
	t.Cleanup(v.close)
	return v
}

func typeText(v chatView, text string) chatView {
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return v
}

// pump entrega snapshots del buzon hasta que la sesion termina el intercambio.
func pump(t *testing.T, v chatView) chatView {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case snap := <-v.updates:
			v, _ = v.Update(snapshotMsg{source: v.session, snap: snap})
			if !snap.Status.Busy() {
				return v
			}
		case <-timeout:
			t.Fatalf("session did not settle, status %s", v.session.Status())
		}
	}
}

func TestChatViewEmptyState(t *testing.T) {
	v := newTestView(t, fakeTransport{})
	out := v.View()
	for _, want := range []string{PanelTitle, "Is Ada a good fit?", "Ask about specific skills", DefaultSuggestions[0]} {
		if !strings.Contains(out, want) {
			t.Fatalf("empty state missing %q:\n%s", want, out)
		}
	}
}

func TestChatViewSubmitStreamsReply(t *testing.T) {
	v := newTestView(t, fakeTransport{deltas: []string{"He has ", "five years of Go."}})

	v = typeText(v, "Backend skills?")
	if v.session.Draft() != "Backend skills?" {
		t.Fatalf("draft not synced, got %q", v.session.Draft())
	}

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if v.input.Value() != "" {
		t.Fatalf("input should be cleared after submit")
	}
	v = pump(t, v)

	if v.snap.Status != session.StatusReady {
		t.Fatalf("expected ready, got %s", v.snap.Status)
	}
	out := v.View()
	if !strings.Contains(out, "Backend skills?") || !strings.Contains(out, "He has five years of Go.") {
		t.Fatalf("transcript missing turns:\n%s", out)
	}
	if !v.viewport.AtBottom() {
		t.Fatalf("viewport should follow the latest message")
	}
}

func TestChatViewIgnoresBlankSubmit(t *testing.T) {
	v := newTestView(t, fakeTransport{})
	v = typeText(v, "   ")
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if v.session.Status() != session.StatusIdle || len(v.session.Snapshot().Messages) != 0 {
		t.Fatalf("blank submit must be ignored")
	}
}

func TestChatViewNewlineKeys(t *testing.T) {
	cases := map[string]tea.KeyMsg{
		"alt+enter": {Type: tea.KeyEnter, Alt: true},
		"ctrl+j":    {Type: tea.KeyCtrlJ},
	}
	for name, msg := range cases {
		t.Run(name, func(t *testing.T) {
			v := newTestView(t, fakeTransport{})
			v = typeText(v, "line one")
			v, _ = v.Update(msg)
			v = typeText(v, "line two")
			if v.input.Value() != "line one\nline two" {
				t.Fatalf("unexpected input %q", v.input.Value())
			}
			if v.session.Status() != session.StatusIdle {
				t.Fatalf("newline must not submit")
			}
		})
	}
}

func TestChatViewSuggestionsCycle(t *testing.T) {
	v := newTestView(t, fakeTransport{})
	for i := 0; i < len(DefaultSuggestions)+1; i++ {
		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
		want := DefaultSuggestions[i%len(DefaultSuggestions)]
		if v.input.Value() != want || v.session.Draft() != want {
			t.Fatalf("tab %d: expected %q, got %q", i, want, v.input.Value())
		}
	}
	if len(v.session.Snapshot().Messages) != 0 {
		t.Fatalf("suggestions must not submit")
	}
}

func TestChatViewShowsErrorAndKeepsUserTurn(t *testing.T) {
	v := newTestView(t, fakeTransport{
		deltas: []string{"partial"},
		err:    &chatclient.RemoteError{Text: "The assistant took too long to respond."},
	})
	v = typeText(v, "Tell me about his AI integration experience")
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = pump(t, v)

	out := v.View()
	if !strings.Contains(out, "took too long") {
		t.Fatalf("error line missing:\n%s", out)
	}
	if strings.Contains(out, "partial") {
		t.Fatalf("partial assistant text must not be shown after failure")
	}
	if !strings.Contains(out, "AI integration experience") {
		t.Fatalf("user turn should remain visible")
	}
}

func TestModalEscRequestsClose(t *testing.T) {
	m := NewModal(session.New(fakeTransport{}, nil), "")
	defer m.Close()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("esc should produce a close command")
	}
	if _, ok := cmd().(modalClosedMsg); !ok {
		t.Fatalf("expected modalClosedMsg")
	}
}

func TestAppModalUsesFreshSession(t *testing.T) {
	var created []*session.Session
	factory := func() *session.Session {
		s := session.New(fakeTransport{deltas: []string{"ok"}}, nil)
		created = append(created, s)
		return s
	}
	app := NewApp(factory, "Ada")
	defer app.Close()
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	if !app.ModalOpen() || len(created) != 2 {
		t.Fatalf("ctrl+o should open a modal with its own session, created %d", len(created))
	}

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})
	if created[1].Draft() != "hi" || created[0].Draft() != "" {
		t.Fatalf("keys should go to the modal only: panel %q modal %q", created[0].Draft(), created[1].Draft())
	}
	if !strings.Contains(app.View(), PanelTitle) {
		t.Fatalf("overlay should render the modal")
	}

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app.Update(cmd())
	if app.ModalOpen() {
		t.Fatalf("esc should close the modal")
	}
	if created[1].Submit("after close") {
		t.Fatalf("closing the modal must destroy its session")
	}

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	if len(created) != 3 {
		t.Fatalf("reopening should create a new session")
	}
	if created[2].Draft() != "" {
		t.Fatalf("new modal session should start empty")
	}
}

func TestOverlayCentersModal(t *testing.T) {
	bg := strings.Repeat("a", 10) + "\n" + strings.Repeat("b", 10) + "\n" + strings.Repeat("c", 10)
	out := overlay(bg, "XX", 10, 3)
	lines := strings.Split(ansi.Strip(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(lines))
	}
	if lines[0] != "aaaaaaaaaa" || lines[1] != "bbbbXXbbbb" || lines[2] != "cccccccccc" {
		t.Fatalf("unexpected composite %q", lines)
	}
}
