package chatclient

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"portfolio-assistant/internal/domain"
	"portfolio-assistant/internal/knowledge"
)

var ErrStreamTruncated = errors.New("chat stream ended without a terminal event")

// RemoteError es el evento error enviado por el servidor.
type RemoteError struct {
	Text string
}

func (e *RemoteError) Error() string {
	return "chat error: " + e.Text
}

// StatusError es una respuesta no-200 antes de abrir el stream.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("chat http error: status=%d", e.Code)
	}
	return fmt.Sprintf("chat http error: status=%d: %s", e.Code, e.Message)
}

// Client implementa session.Transport contra POST /api/chat.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// New crea el cliente. Sin httpClient usa uno sin timeout total: el corte lo decide el ctx.
func New(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), client: httpClient, logger: logger}
}

// Portfolio descarga el documento de conocimiento que sirve GET /api/portfolio.
func (c *Client) Portfolio(ctx context.Context) (knowledge.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/portfolio", nil)
	if err != nil {
		return knowledge.Document{}, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return knowledge.Document{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return knowledge.Document{}, statusError(resp)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		return knowledge.Document{}, fmt.Errorf("read portfolio: %w", err)
	}
	return knowledge.NewDocument(raw)
}

type chatRequest struct {
	Messages []domain.Message `json:"messages"`
}

type streamEvent struct {
	Type      string `json:"type"`
	MessageID string `json:"messageId"`
	Delta     string `json:"delta"`
	ErrorText string `json:"errorText"`
}

func (c *Client) Stream(ctx context.Context, messages []domain.Message, onDelta func(string)) error {
	body, err := json.Marshal(chatRequest{Messages: messages})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	return c.readEvents(ctx, resp.Body, onDelta)
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 16*1024))
	var payload struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
		msg = payload.Error
	}
	return &StatusError{Code: resp.StatusCode, Message: msg}
}

// readEvents consume lineas "data:" hasta finish o error.
func (c *Client) readEvents(ctx context.Context, body io.Reader, onDelta func(string)) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" {
			continue
		}

		var ev streamEvent
		if err := json.Unmarshal([]byte(data), &ev); err != nil {
			return fmt.Errorf("unmarshal event: %w", err)
		}
		switch ev.Type {
		case "start":
			c.logger.Debug("chat stream started", zap.String("message_id", ev.MessageID))
		case "text-delta":
			onDelta(ev.Delta)
		case "finish":
			return nil
		case "error":
			return &RemoteError{Text: ev.ErrorText}
		default:
			c.logger.Debug("ignoring chat event", zap.String("type", ev.Type))
		}
	}
	if err := scanner.Err(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("read stream: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return ErrStreamTruncated
}
