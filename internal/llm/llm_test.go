package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAIClient_Complete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("unexpected auth header %q", got)
		}

		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if payload["model"] != "gpt-test" {
			t.Errorf("unexpected model %v", payload["model"])
		}
		if msgs, ok := payload["messages"].([]any); !ok || len(msgs) != 2 {
			t.Errorf("expected system and user messages, got %v", payload["messages"])
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}],"usage":{"prompt_tokens":12,"completion_tokens":3}}`)
	}))
	defer server.Close()

	client := NewOpenAIClient(OpenAIConfig{Endpoint: server.URL, Model: "gpt-test", APIKey: "secret"})

	out, err := client.Complete(context.Background(), Request{System: "sys", Prompt: "hi", MaxTokens: 100})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if out.Text != `{"ok":true}` {
		t.Fatalf("unexpected text %q", out.Text)
	}
	if out.InputTokens != 12 || out.OutputTokens != 3 {
		t.Fatalf("unexpected usage: %+v", out)
	}
}

func TestOpenAIClient_ErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewOpenAIClient(OpenAIConfig{Endpoint: server.URL, Model: "gpt-test", APIKey: "secret"})

	_, err := client.Complete(context.Background(), Request{Prompt: "hi"})
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestOpenAIClient_Misconfigured(t *testing.T) {
	t.Parallel()

	_, err := NewOpenAIClient(OpenAIConfig{}).Complete(context.Background(), Request{Prompt: "hi"})
	if err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestAnthropicClient_Complete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/v1/messages") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-test",
			"content": [{"type": "text", "text": "{\"score\":"}, {"type": "text", "text": "1}"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 20, "output_tokens": 4}
		}`)
	}))
	defer server.Close()

	client := NewAnthropicClient(AnthropicConfig{BaseURL: server.URL, Model: "claude-test", APIKey: "secret"})
	if client.Model() != "claude-test" {
		t.Fatalf("unexpected model %q", client.Model())
	}

	out, err := client.Complete(context.Background(), Request{System: "sys", Prompt: "hi"})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if out.Text != `{"score":1}` {
		t.Fatalf("unexpected text %q", out.Text)
	}
	if out.InputTokens != 20 || out.OutputTokens != 4 {
		t.Fatalf("unexpected usage: %+v", out)
	}
}
