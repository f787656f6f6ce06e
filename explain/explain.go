// --- mcquiz-server/explain/explain.go ---
package explain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"mcquiz-server/models"
	"mcquiz-server/utils"
)

// PlaceholderAPIKey is the sentinel a fresh install ships with. A key that
// is empty or still the placeholder means "degrade, don't call out".
const PlaceholderAPIKey = "your-api-key"

// MissingKeyText is returned instead of calling the API when no credential
// is configured. It is display text, not an error.
const MissingKeyText = "Please set your OpenAI API key to get explanations."

// Client asks an OpenAI-compatible chat-completions endpoint to justify a
// question's correct and incorrect options. Explain is a total function: it
// always returns text the UI can show, never an error.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewClient builds an explanation client. baseURL is the API root, e.g.
// "https://api.openai.com/v1".
func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
	}
}

type chatCompletionRequest struct {
	Model    string                  `json:"model"`
	Messages []chatCompletionMessage `json:"messages"`
	Stream   bool                    `json:"stream"`
}

type chatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatCompletionMessage `json:"message"`
	} `json:"choices"`
}

// Explain produces explanation text for the question. Missing credential
// degrades to MissingKeyText; any request failure is converted into a
// descriptive string result.
func (c *Client) Explain(ctx context.Context, q *models.Question) string {
	if c.apiKey == "" || c.apiKey == PlaceholderAPIKey {
		return MissingKeyText
	}

	text, err := c.complete(ctx, BuildPrompt(q))
	if err != nil {
		log.Printf("Error getting explanation from LLM: %v", err)
		return fmt.Sprintf("Error getting explanation: %v", err)
	}
	return text
}

// BuildPrompt renders the explanation request: the question, an enumerated
// option list, and the correct and incorrect options with their texts.
func BuildPrompt(q *models.Question) string {
	var optionLines []string
	var correctFull []string
	var incorrectFull []string

	for i, key := range utils.SortedKeys(q.Options) {
		optionLines = append(optionLines, fmt.Sprintf("%d. %s: %s", i+1, key, q.Options[key]))
		if utils.ContainsString(q.CorrectOptions, key) {
			correctFull = append(correctFull, fmt.Sprintf("%s: %s", key, q.Options[key]))
		} else {
			incorrectFull = append(incorrectFull, fmt.Sprintf("%s: %s", key, q.Options[key]))
		}
	}

	return fmt.Sprintf(`Question: %s

Options:
%s

Correct answers: %s

Incorrect answers: %s

Please explain why the correct answers are right and why the incorrect answers are wrong.`,
		q.Question,
		strings.Join(optionLines, "\n"),
		strings.Join(correctFull, ", "),
		strings.Join(incorrectFull, ", "))
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	request := chatCompletionRequest{
		Model: c.model,
		Messages: []chatCompletionMessage{
			{Role: "user", Content: prompt},
		},
		Stream: false,
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("LLM API error (status %d): %s", resp.StatusCode, string(body))
	}

	var response chatCompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("LLM API returned no choices")
	}
	return response.Choices[0].Message.Content, nil
}
