package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCompletionClient_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Temperature != 0.9 {
			t.Errorf("temperature = %v, want 0.9", req.Temperature)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("messages = %+v", req.Messages)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "  The answer.  "}},
			},
		})
	}))
	defer srv.Close()

	client := NewCompletionClient("key", "gpt-4o-mini", srv.URL)
	got, err := client.Complete(context.Background(), "prompt", AnswerTemperature)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "The answer." {
		t.Errorf("answer = %q, want trimmed text", got)
	}
}

func TestCompletionClient_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	client := NewCompletionClient("key", "", srv.URL)
	if _, err := client.Complete(context.Background(), "prompt", AnswerTemperature); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
