package session

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"portfolio-assistant/internal/domain"
)

// Status es la fase del ciclo envio/recepcion.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusSubmitted Status = "submitted"
	StatusStreaming Status = "streaming"
	StatusReady     Status = "ready"
	StatusError     Status = "error"
)

// Busy indica que hay un intercambio en curso.
func (s Status) Busy() bool {
	return s == StatusSubmitted || s == StatusStreaming
}

// Transport abre un intercambio con el gateway. onDelta se invoca en orden de produccion;
// el retorno nil significa completado.
type Transport interface {
	Stream(ctx context.Context, messages []domain.Message, onDelta func(string)) error
}

// Snapshot es una vista inmutable del estado, segura para compartir con la UI.
type Snapshot struct {
	Messages []domain.Message
	Status   Status
	Draft    string
	Err      error
	Version  uint64
}

// Session es dueña de una conversacion. Una instancia por superficie.
//
// Los suscriptores reciben snapshots en el orden de las mutaciones y no deben
// llamar a la Session de forma sincronica desde el callback.
type Session struct {
	transport Transport
	logger    *zap.Logger
	newID     func() string

	mu       sync.Mutex
	messages []domain.Message
	status   Status
	draft    string
	err      error
	version  uint64
	exchange uint64
	cancel   context.CancelFunc
	closed   bool
	subs     map[int]func(Snapshot)
	nextSub  int

	notifyMu sync.Mutex
	wg       sync.WaitGroup
}

func New(transport Transport, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		transport: transport,
		logger:    logger,
		newID:     uuid.NewString,
		status:    StatusIdle,
		subs:      make(map[int]func(Snapshot)),
	}
}

// Submit agrega el turno user y arranca el intercambio. Devuelve false sin tocar el
// estado si el texto esta vacio, si hay un intercambio en curso o si la sesion esta cerrada.
func (s *Session) Submit(text string) bool {
	text = strings.TrimSpace(text)

	s.mu.Lock()
	if text == "" || s.closed || s.status.Busy() {
		s.mu.Unlock()
		return false
	}

	s.messages = append(s.messages, domain.Message{
		ID:    s.newID(),
		Role:  domain.RoleUser,
		Parts: []domain.Part{domain.TextPart(text)},
	})
	s.draft = ""
	s.err = nil
	s.status = StatusSubmitted
	s.exchange++
	id := s.exchange

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	history := cloneMessages(s.messages)
	s.wg.Add(1)
	s.publishLocked()

	s.logger.Debug("exchange submitted", zap.Uint64("exchange", id), zap.Int("messages", len(history)))
	go s.run(ctx, id, history)
	return true
}

func (s *Session) run(ctx context.Context, id uint64, history []domain.Message) {
	defer s.wg.Done()
	err := s.transport.Stream(ctx, history, func(delta string) {
		s.applyDelta(id, delta)
	})
	s.finish(id, err)
}

func (s *Session) applyDelta(id uint64, delta string) {
	s.mu.Lock()
	if s.closed || s.exchange != id {
		s.mu.Unlock()
		return
	}
	if s.status == StatusSubmitted {
		s.messages = append(s.messages, domain.Message{
			ID:        s.newID(),
			Role:      domain.RoleAssistant,
			Parts:     []domain.Part{domain.TextPart("")},
			Streaming: true,
		})
		s.status = StatusStreaming
	}
	last := &s.messages[len(s.messages)-1]
	last.Parts[0].Text += delta
	s.publishLocked()
}

func (s *Session) finish(id uint64, err error) {
	s.mu.Lock()
	if s.closed || s.exchange != id {
		s.mu.Unlock()
		return
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	if err != nil {
		if s.status == StatusStreaming {
			s.messages = s.messages[:len(s.messages)-1]
		}
		s.status = StatusError
		s.err = err
		s.logger.Warn("exchange failed", zap.Uint64("exchange", id), zap.Error(err))
		s.publishLocked()
		return
	}

	if s.status == StatusSubmitted {
		s.messages = append(s.messages, domain.Message{
			ID:    s.newID(),
			Role:  domain.RoleAssistant,
			Parts: []domain.Part{domain.TextPart("")},
		})
	}
	s.messages[len(s.messages)-1].Streaming = false
	s.status = StatusReady
	s.logger.Debug("exchange finished", zap.Uint64("exchange", id))
	s.publishLocked()
}

// Cancel libera la conexion en curso. El texto parcial queda congelado y la sesion
// vuelve a aceptar envios.
func (s *Session) Cancel() bool {
	s.mu.Lock()
	if s.closed || !s.status.Busy() {
		s.mu.Unlock()
		return false
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	// los deltas tardios del intercambio cancelado se ignoran
	s.exchange++
	if s.status == StatusStreaming {
		s.messages[len(s.messages)-1].Streaming = false
	}
	s.status = StatusReady
	s.publishLocked()
	return true
}

// Close aborta el intercambio, descarta suscriptores y espera a la goroutine.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.exchange++
	s.subs = nil
	s.mu.Unlock()

	s.wg.Wait()
}

// Subscribe registra fn para cada cambio. El unsubscribe es idempotente.
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}
	}
	key := s.nextSub
	s.nextSub++
	s.subs[key] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, key)
	}
}

func (s *Session) SetDraft(text string) {
	s.mu.Lock()
	if s.closed || s.draft == text {
		s.mu.Unlock()
		return
	}
	s.draft = text
	s.publishLocked()
}

func (s *Session) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Messages: cloneMessages(s.messages),
		Status:   s.status,
		Draft:    s.draft,
		Err:      s.err,
		Version:  s.version,
	}
}

// publishLocked se llama con mu tomado y lo libera. notifyMu se toma antes de soltar
// mu para que los snapshots lleguen en el orden de las mutaciones.
func (s *Session) publishLocked() {
	s.version++
	snap := s.snapshotLocked()
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func cloneMessages(msgs []domain.Message) []domain.Message {
	out := make([]domain.Message, len(msgs))
	for i, m := range msgs {
		out[i] = m.Clone()
	}
	return out
}
