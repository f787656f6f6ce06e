// --- mcquiz-server/explain/explain_test.go ---
package explain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mcquiz-server/models"
)

func sampleQuestion() *models.Question {
	return &models.Question{
		Question:       "2+2?",
		Options:        map[string]string{"A": "3", "B": "4"},
		CorrectOptions: []string{"B"},
	}
}

func TestExplainWithoutCredentialDegrades(t *testing.T) {
	for _, key := range []string{"", PlaceholderAPIKey} {
		c := NewClient("http://localhost:0", key, "gpt-4o-mini", time.Second)
		got := c.Explain(context.Background(), sampleQuestion())
		if got != MissingKeyText {
			t.Errorf("Explain with key %q = %q, want the instructional text", key, got)
		}
	}
}

func TestExplainSuccess(t *testing.T) {
	var gotAuth string
	var gotReq chatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("request path = %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "B is right because 2+2=4."}},
			},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL, "sk-test", "gpt-4o-mini", time.Second)
	got := c.Explain(context.Background(), sampleQuestion())
	if got != "B is right because 2+2=4." {
		t.Errorf("Explain = %q", got)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization header = %q", gotAuth)
	}
	if gotReq.Model != "gpt-4o-mini" {
		t.Errorf("request model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 1 || !strings.Contains(gotReq.Messages[0].Content, "2+2?") {
		t.Errorf("prompt missing question text: %+v", gotReq.Messages)
	}
}

func TestExplainServerErrorBecomesText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limit"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := NewClient(server.URL, "sk-test", "gpt-4o-mini", time.Second)
	got := c.Explain(context.Background(), sampleQuestion())
	if !strings.HasPrefix(got, "Error getting explanation:") {
		t.Errorf("Explain on API error = %q, want descriptive error text", got)
	}
}

func TestExplainUnreachableHostBecomesText(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "sk-test", "gpt-4o-mini", 200*time.Millisecond)
	got := c.Explain(context.Background(), sampleQuestion())
	if !strings.HasPrefix(got, "Error getting explanation:") {
		t.Errorf("Explain on transport error = %q, want descriptive error text", got)
	}
}

func TestExplainEmptyChoicesBecomesText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	c := NewClient(server.URL, "sk-test", "gpt-4o-mini", time.Second)
	got := c.Explain(context.Background(), sampleQuestion())
	if !strings.HasPrefix(got, "Error getting explanation:") {
		t.Errorf("Explain on empty choices = %q, want descriptive error text", got)
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(sampleQuestion())

	for _, want := range []string{
		"Question: 2+2?",
		"1. A: 3",
		"2. B: 4",
		"Correct answers: B: 4",
		"Incorrect answers: A: 3",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
