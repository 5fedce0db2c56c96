package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func sseServer(t *testing.T, status int, lines []string, capture *chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		if capture != nil {
			if err := json.NewDecoder(r.Body).Decode(capture); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(status)
		for _, l := range lines {
			fmt.Fprintf(w, "%s\n\n", l)
			w.(http.Flusher).Flush()
		}
	}))
}

func deltaLine(content string) string {
	return fmt.Sprintf(`data: {"choices":[{"delta":{"content":%q},"finish_reason":null}]}`, content)
}

func TestHTTPClientStreamChat(t *testing.T) {
	var captured chatRequest
	srv := sseServer(t, http.StatusOK, []string{
		`: keep-alive`,
		deltaLine("Yes, "),
		deltaLine("his experience includes Go."),
		`data: {"choices":[{"delta":{},"finish_reason":"stop"}]}`,
		`data: [DONE]`,
	}, &captured)
	defer srv.Close()

	c := NewHTTPClient(srv.URL+"/", "test-key", "gpt-5-mini", nil)
	var got []string
	err := c.StreamChat(context.Background(), ChatRequest{
		System:      "rules",
		Messages:    []ChatMessage{{Role: "user", Content: "fit?"}},
		Temperature: 0.3,
	}, func(d string) error {
		got = append(got, d)
		return nil
	})
	if err != nil {
		t.Fatalf("StreamChat: %v", err)
	}
	if strings.Join(got, "") != "Yes, his experience includes Go." || len(got) != 2 {
		t.Fatalf("unexpected deltas %#v", got)
	}

	if !captured.Stream || captured.Model != "gpt-5-mini" {
		t.Fatalf("unexpected request %+v", captured)
	}
	if captured.Temperature == nil || *captured.Temperature != 0.3 {
		t.Fatalf("expected temperature 0.3, got %v", captured.Temperature)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" || captured.Messages[0].Content != "rules" {
		t.Fatalf("system prompt not prepended: %+v", captured.Messages)
	}
}

func TestHTTPClientStreamChatFailures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		lines  []string
		check  func(error) bool
	}{
		{
			name:   "http error status",
			status: http.StatusInternalServerError,
			lines:  []string{`{"error":"boom"}`},
			check:  func(err error) bool { return err != nil && strings.Contains(err.Error(), "status=500") },
		},
		{
			name:   "error chunk",
			status: http.StatusOK,
			lines:  []string{deltaLine("a"), `data: {"error":{"message":"overloaded"}}`},
			check:  func(err error) bool { return err != nil && strings.Contains(err.Error(), "overloaded") },
		},
		{
			name:   "truncated body",
			status: http.StatusOK,
			lines:  []string{deltaLine("partial")},
			check:  func(err error) bool { return errors.Is(err, ErrStreamTruncated) },
		},
		{
			name:   "finish reason without done",
			status: http.StatusOK,
			lines:  []string{deltaLine("a"), `data: {"choices":[{"delta":{},"finish_reason":"stop"}]}`},
			check:  func(err error) bool { return err == nil },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := sseServer(t, tc.status, tc.lines, nil)
			defer srv.Close()

			c := NewHTTPClient(srv.URL, "test-key", "m", nil)
			err := c.StreamChat(context.Background(), ChatRequest{Messages: []ChatMessage{{Role: "user", Content: "x"}}}, func(string) error { return nil })
			if !tc.check(err) {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestHTTPClientDeltaCallbackAborts(t *testing.T) {
	srv := sseServer(t, http.StatusOK, []string{deltaLine("a"), deltaLine("b"), `data: [DONE]`}, nil)
	defer srv.Close()

	stop := errors.New("stop")
	c := NewHTTPClient(srv.URL, "test-key", "m", nil)
	calls := 0
	err := c.StreamChat(context.Background(), ChatRequest{}, func(string) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Fatalf("expected abort after first delta, err=%v calls=%d", err, calls)
	}
}

func TestMockClient(t *testing.T) {
	t.Run("emits deltas in order", func(t *testing.T) {
		m := &MockClient{Deltas: []string{"a", "b", ""}}
		var sb strings.Builder
		if err := m.StreamChat(context.Background(), ChatRequest{System: "s"}, func(d string) error {
			sb.WriteString(d)
			return nil
		}); err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if sb.String() != "ab" {
			t.Fatalf("got %q", sb.String())
		}
		if reqs := m.Requests(); len(reqs) != 1 || reqs[0].System != "s" {
			t.Fatalf("request not recorded: %+v", reqs)
		}
	})

	t.Run("fails after n deltas", func(t *testing.T) {
		boom := errors.New("boom")
		m := &MockClient{Deltas: []string{"a", "b", "c"}, Err: boom, FailAfter: 1}
		var got []string
		err := m.StreamChat(context.Background(), ChatRequest{}, func(d string) error {
			got = append(got, d)
			return nil
		})
		if !errors.Is(err, boom) || len(got) != 1 {
			t.Fatalf("err=%v got=%v", err, got)
		}
	})

	t.Run("honors cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		m := &MockClient{Deltas: []string{"a"}}
		if err := m.StreamChat(ctx, ChatRequest{}, func(string) error { return nil }); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})
}

func TestToGeminiContentsMapsRoles(t *testing.T) {
	contents := toGeminiContents([]ChatMessage{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
	})
	if len(contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(contents))
	}
	if contents[0].Role != "user" || contents[1].Role != "model" {
		t.Fatalf("unexpected roles %q %q", contents[0].Role, contents[1].Role)
	}
	if contents[1].Parts[0].Text != "hello" {
		t.Fatalf("unexpected text %q", contents[1].Parts[0].Text)
	}
}
