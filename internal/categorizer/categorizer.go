// Package categorizer assigns a category, confidence and reasoning to each
// transaction. Local rule tiers always produce an answer; an optional remote
// classifier is consulted first when configured and silently falls back to
// the tiers on any failure.
package categorizer

import (
	"context"
	"strings"

	"ybarda/heshbon/internal/logging"
	"ybarda/heshbon/internal/models"

	"github.com/shopspring/decimal"
)

// Categories is the full taxonomy the engine and the remote classifier
// operate on.
var Categories = []string{
	"Food & Dining",
	"Transportation",
	"Shopping",
	"Bills & Utilities",
	"Rent",
	"Child Care",
	"Credit Card Payment",
	"Bank Fees",
	"Savings Withdrawal",
	"Healthcare",
	"Entertainment",
	"Education",
	"Travel",
	"Salary",
	"Investment Returns",
	"Other",
}

// CategoryOther is the tier-3 default.
const CategoryOther = "Other"

// Request carries the transaction facts relevant to categorization.
type Request struct {
	Description string
	Merchant    string
	Amount      decimal.Decimal
	AccountType string
}

// Engine runs the tiered categorization. Construct one per import run and
// pass it down explicitly; there is no package-level instance.
type Engine struct {
	ai         AIClient
	recipients []models.RecipientRule
	keywords   []models.KeywordGroup
	log        logging.Logger
}

// New builds an engine. ai may be nil to run rule tiers only. recipients is
// the externally supplied ordered rule table; keywords falls back to the
// built-in bilingual table when nil.
func New(ai AIClient, recipients []models.RecipientRule, keywords []models.KeywordGroup, logger logging.Logger) *Engine {
	if keywords == nil {
		keywords = DefaultKeywordGroups()
	}
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &Engine{
		ai:         ai,
		recipients: recipients,
		keywords:   keywords,
		log:        logger,
	}
}

// Categorize never fails: the remote classifier is advisory and every local
// tier has a deterministic answer, ending at the default category.
func (e *Engine) Categorize(ctx context.Context, req Request) models.CategoryResult {
	if e.ai != nil {
		if result, err := e.ai.Categorize(ctx, req); err == nil {
			if validated, ok := validate(result); ok {
				e.log.Debug("remote classification accepted",
					logging.Field{Key: logging.FieldCategory, Value: validated.Category},
					logging.Field{Key: logging.FieldConfidence, Value: validated.Confidence})
				return validated
			}
			e.log.Debug("remote classification rejected by validation")
		} else {
			e.log.WithError(err).Debug("remote classification failed, using rule tiers")
		}
	}
	return e.categorizeByRules(req)
}

func (e *Engine) categorizeByRules(req Request) models.CategoryResult {
	if result, ok := matchBrandOverride(req.Description); ok {
		return result
	}

	combined := strings.ToLower(strings.TrimSpace(req.Description + " " + req.Merchant))

	if result, ok := e.matchRecipient(combined); ok {
		return result
	}

	if result, ok := e.matchKeywords(combined); ok {
		return result
	}

	return models.CategoryResult{
		Category:   CategoryOther,
		Confidence: 0.5,
		Reasoning:  "No matching keywords found",
	}
}

// validate structurally checks a remote result. An empty category invalidates
// the whole result; an out-of-range confidence is replaced, not rejected.
func validate(result models.CategoryResult) (models.CategoryResult, bool) {
	result.Category = strings.TrimSpace(result.Category)
	if result.Category == "" {
		return models.CategoryResult{}, false
	}
	if result.Confidence <= 0 || result.Confidence > 1 {
		result.Confidence = 0.8
	}
	if result.Reasoning == "" {
		result.Reasoning = "AI-powered categorization"
	}
	return result, true
}
