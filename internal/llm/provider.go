package llm

import (
	"context"
	"errors"
)

// ChatMessage es el mensaje agnostico del proveedor.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest agrupa instrucciones, conversacion y temperatura de una llamada.
type ChatRequest struct {
	System      string
	Messages    []ChatMessage
	Temperature float64
}

// DeltaFunc recibe cada fragmento de texto en el orden en que lo produce el proveedor.
// Devolver error aborta el stream.
type DeltaFunc func(delta string) error

// LLMClient define la interfaz para generar respuestas en streaming.
type LLMClient interface {
	StreamChat(ctx context.Context, req ChatRequest, onDelta DeltaFunc) error
}

var ErrStreamTruncated = errors.New("llm stream ended before completion")
