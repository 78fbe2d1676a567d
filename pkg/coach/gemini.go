package coach

import (
	"context"
	"errors"
	"time"

	"google.golang.org/genai"
)

// Gemini is a Generator backed by the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini returns a Gemini generator, or nil when key is empty.
func NewGemini(ctx context.Context, key, model string) (*Gemini, error) {
	if key == "" {
		return nil, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &Gemini{client: client, model: model}, nil
}

// Generate implements Generator.
func (g *Gemini) Generate(ctx context.Context, system, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.8),
		MaxOutputTokens:   256,
	})
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini: no text in response")
	}
	return text, nil
}

// Open returns a Coach backed by Gemini, or one that always answers with
// Placeholder when key is empty.
func Open(ctx context.Context, key, model, style string, timeout time.Duration) (*Coach, error) {
	g, err := NewGemini(ctx, key, model)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return New(nil, style, timeout), nil
	}
	return New(g, style, timeout), nil
}
