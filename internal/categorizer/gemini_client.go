package categorizer

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"ybarda/heshbon/internal/logging"
	"ybarda/heshbon/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// categoryScavengePattern pulls a category name out of a response that was
// supposed to be JSON but is not.
var categoryScavengePattern = regexp.MustCompile(`(?i)category["\s:]+["']?([^"'\n]+)["']?`)

// GeminiClient implements AIClient against the Google Gemini API.
type GeminiClient struct {
	model   *genai.GenerativeModel
	client  *genai.Client
	timeout time.Duration
	log     logging.Logger
}

// NewGeminiClient creates a Gemini-backed classifier. modelName and timeout
// come from configuration.
func NewGeminiClient(ctx context.Context, apiKey, modelName string, timeout time.Duration, logger logging.Logger) (*GeminiClient, error) {
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
	return &GeminiClient{
		model:   client.GenerativeModel(modelName),
		client:  client,
		timeout: timeout,
		log:     logger,
	}, nil
}

// Close releases the underlying API client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// Categorize sends one transaction to Gemini and parses the structured
// response. Any transport or parse failure is returned as an error; the
// engine downgrades it to the local tiers.
func (c *GeminiClient) Categorize(ctx context.Context, req Request) (models.CategoryResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.model.GenerateContent(ctx, genai.Text(c.buildPrompt(req)))
	if err != nil {
		return models.CategoryResult{}, fmt.Errorf("Gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return models.CategoryResult{}, fmt.Errorf("no response from Gemini API")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	return ParseClassifierResponse(responseText)
}

func (c *GeminiClient) buildPrompt(req Request) string {
	var details strings.Builder
	fmt.Fprintf(&details, "Description: %s\n", req.Description)
	if req.Merchant != "" {
		fmt.Fprintf(&details, "Merchant: %s\n", req.Merchant)
	}
	if !req.Amount.IsZero() {
		fmt.Fprintf(&details, "Amount: %s ILS\n", req.Amount.String())
	}
	if req.AccountType != "" {
		fmt.Fprintf(&details, "Account: %s\n", req.AccountType)
	}

	return fmt.Sprintf(`You are a financial categorization assistant. Categorize the transaction below into exactly one of these categories:
%s

Transaction:
%s
Respond with JSON: {"category": "Category Name", "confidence": 0.0-1.0, "reasoning": "brief explanation"}`,
		strings.Join(Categories, ", "), details.String())
}

// ParseClassifierResponse decodes the model output. Valid JSON wins; a
// malformed payload is scavenged with a regex for the category name before
// giving up.
func ParseClassifierResponse(responseText string) (models.CategoryResult, error) {
	text := strings.TrimSpace(responseText)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var result models.CategoryResult
	if err := json.Unmarshal([]byte(text), &result); err == nil && result.Category != "" {
		return result, nil
	}

	if match := categoryScavengePattern.FindStringSubmatch(text); match != nil {
		return models.CategoryResult{
			Category:   strings.TrimSpace(match[1]),
			Confidence: 0.7,
			Reasoning:  "AI categorization",
		}, nil
	}

	return models.CategoryResult{}, fmt.Errorf("unparseable classifier response")
}
