package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Tipos de evento del stream de chat.
const (
	EventStart     = "start"
	EventTextDelta = "text-delta"
	EventFinish    = "finish"
	EventError     = "error"
)

// StreamEvent es el payload JSON de cada evento SSE.
type StreamEvent struct {
	Type      string `json:"type"`
	MessageID string `json:"messageId,omitempty"`
	Delta     string `json:"delta,omitempty"`
	ErrorText string `json:"errorText,omitempty"`
}

// eventStream implementa service.StreamSink sobre SSE, con flush por evento.
type eventStream struct {
	c      *gin.Context
	opened bool
}

func newEventStream(c *gin.Context) *eventStream {
	return &eventStream{c: c}
}

func (s *eventStream) open() {
	if s.opened {
		return
	}
	s.opened = true
	h := s.c.Writer.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	s.c.Status(http.StatusOK)
}

func (s *eventStream) send(ev StreamEvent) error {
	if err := s.c.Request.Context().Err(); err != nil {
		return err
	}
	s.open()
	s.c.SSEvent(ev.Type, ev)
	s.c.Writer.Flush()
	return nil
}

func (s *eventStream) Start(messageID string) error {
	return s.send(StreamEvent{Type: EventStart, MessageID: messageID})
}

func (s *eventStream) Delta(text string) error {
	return s.send(StreamEvent{Type: EventTextDelta, Delta: text})
}

func (s *eventStream) Finish() {
	_ = s.send(StreamEvent{Type: EventFinish})
}

func (s *eventStream) Fail(text string) {
	_ = s.send(StreamEvent{Type: EventError, ErrorText: text})
}
