package translate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ybarda/heshbon/internal/logging"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiTranslator implements Translator against the Google Gemini API.
type GeminiTranslator struct {
	model   *genai.GenerativeModel
	client  *genai.Client
	timeout time.Duration
	log     logging.Logger
}

// NewGeminiTranslator creates a Gemini-backed translator.
func NewGeminiTranslator(ctx context.Context, apiKey, modelName string, timeout time.Duration, logger logging.Logger) (*GeminiTranslator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &GeminiTranslator{
		model:   client.GenerativeModel(modelName),
		client:  client,
		timeout: timeout,
		log:     logger,
	}, nil
}

// Close releases the underlying API client.
func (t *GeminiTranslator) Close() error {
	return t.client.Close()
}

// Translate renders a Hebrew bank description in English, preserving
// account numbers, names and transaction types.
func (t *GeminiTranslator) Translate(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	prompt := fmt.Sprintf(`You are a translator. Translate Hebrew bank transaction descriptions to clear English. Keep it concise and preserve important details like account numbers, names, and transaction types. Return only the translation, no explanations.

Translate this Hebrew bank transaction description to English: %s`, text)

	resp, err := t.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}

	return strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])), nil
}
