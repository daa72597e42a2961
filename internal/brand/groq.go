package brand

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// groqEndpoint is Groq's OpenAI-compatible chat completion endpoint.
const groqEndpoint = "https://api.groq.com/openai/v1/chat/completions"

// defaultGroqModel is a fast, inexpensive model; brand extraction needs no
// more than that.
const defaultGroqModel = "llama-3.1-8b-instant"

// GroqClassifier calls Groq's chat completion API for brand extraction.
type GroqClassifier struct {
	apiKey string
	model  string
	client *http.Client

	// endpoint is overridable for tests.
	endpoint string
}

// NewGroqClassifier creates a Groq-backed classifier. An empty model selects
// the default.
func NewGroqClassifier(apiKey, model string) *GroqClassifier {
	if model == "" {
		model = defaultGroqModel
	}
	return &GroqClassifier{
		apiKey:   apiKey,
		model:    model,
		client:   &http.Client{},
		endpoint: groqEndpoint,
	}
}

// Provider implements Classifier.
func (g *GroqClassifier) Provider() string { return "groq" }

type groqRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Classify implements Classifier. Cancellation and deadline come from ctx;
// the caller owns the timeout.
func (g *GroqClassifier) Classify(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(groqRequest{
		Model:       g.model,
		Messages:    []groqMessage{{Role: "user", Content: prompt}},
		Temperature: 0.1,
		MaxTokens:   20,
	})
	if err != nil {
		return "", fmt.Errorf("encode groq request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build groq request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Read a little of the body for the log line; the tier treats any
		// non-200 as a miss either way.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return "", fmt.Errorf("groq returned %d: %s", resp.StatusCode, snippet)
	}

	var parsed groqResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode groq response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("groq response has no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
