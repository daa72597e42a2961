package brand

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// defaultGeminiModel is sufficient for single-token extraction.
const defaultGeminiModel = "gemini-2.0-flash"

// GeminiClassifier calls the Gemini API for brand extraction.
type GeminiClassifier struct {
	client *genai.Client
	model  string
}

// NewGeminiClassifier creates a Gemini-backed classifier. The client is
// created eagerly so credential problems surface at startup rather than per
// record.
func NewGeminiClassifier(ctx context.Context, apiKey, model string) (*GeminiClassifier, error) {
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiClassifier{client: client, model: model}, nil
}

// Provider implements Classifier.
func (g *GeminiClassifier) Provider() string { return "gemini" }

// Classify implements Classifier.
func (g *GeminiClassifier) Classify(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.1),
		MaxOutputTokens: 20,
	})
	if err != nil {
		return "", fmt.Errorf("gemini call: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from gemini")
	}

	return text, nil
}
