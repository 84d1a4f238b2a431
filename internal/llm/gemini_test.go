package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: server.URL},
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return &GeminiProvider{client: client, model: "gemini-3-flash-preview"}
}

func TestGeminiProvider_StructuredOutput(t *testing.T) {
	var gotBody map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-3-flash-preview:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": `{"cards":[{"question":"What is ATP?","answer":"Energy currency"}]}`}},
				},
				"finishReason": "STOP",
			}},
			"usageMetadata": map[string]any{
				"promptTokenCount":     30,
				"candidatesTokenCount": 12,
				"totalTokenCount":      42,
			},
		})
	}

	p := newTestGeminiProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:   "You are an expert educator.",
		Messages: []Message{{Role: RoleUser, Content: "Extract flashcards"}},
		Schema:   cardsSchema(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.TotalTokens != 42 || resp.Usage.InputTokens != 30 {
		t.Fatalf("unexpected usage: %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}
	if _, ok := gotBody["systemInstruction"]; !ok {
		t.Fatalf("system instruction not sent: %v", gotBody)
	}
}

func TestGeminiProvider_RateLimit(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 429, "message": "quota", "status": "RESOURCE_EXHAUSTED"},
		})
	}

	_, err := newTestGeminiProvider(t, handler).Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "x"}},
	})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
	}
}

func TestGeminiModelAliases(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-3-flash-preview"},
		{"gemini-pro", "gemini-3-pro-preview"},
		{"gemini-2.5-flash", "gemini-2.5-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, geminiModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	schema := buildGeminiSchema(cardsSchema().Definition)

	if schema.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT, got %s", schema.Type)
	}
	if len(schema.Required) != 1 || schema.Required[0] != "cards" {
		t.Fatalf("expected required [cards], got %v", schema.Required)
	}
	cards := schema.Properties["cards"]
	if cards == nil || cards.Type != genai.TypeArray {
		t.Fatalf("expected cards ARRAY, got %+v", cards)
	}
	item := cards.Items
	if item == nil || item.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT items, got %+v", item)
	}
	if item.Properties["question"].Type != genai.TypeString {
		t.Fatalf("expected STRING question, got %s", item.Properties["question"].Type)
	}
	if len(item.Required) != 2 {
		t.Fatalf("expected 2 required item fields, got %v", item.Required)
	}
	if len(schema.Properties["level"].Enum) != 2 {
		t.Fatalf("expected 2 enum values, got %v", schema.Properties["level"].Enum)
	}
}

func TestStringList(t *testing.T) {
	if got := stringList([]any{"a", 1, "b"}); len(got) != 2 {
		t.Fatalf("expected non-strings dropped, got %v", got)
	}
	if got := stringList([]string{"x"}); len(got) != 1 {
		t.Fatalf("expected []string passed through, got %v", got)
	}
	if got := stringList(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
