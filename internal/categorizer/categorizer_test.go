package categorizer

import (
	"context"
	"errors"
	"testing"

	"ybarda/heshbon/internal/logging"
	"ybarda/heshbon/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAIClient struct {
	result models.CategoryResult
	err    error
	calls  int
}

func (s *stubAIClient) Categorize(ctx context.Context, req Request) (models.CategoryResult, error) {
	s.calls++
	return s.result, s.err
}

func testRecipientRules() []models.RecipientRule {
	return []models.RecipientRule{
		{Category: "Rent", Confidence: 0.95, AnyOf: []string{"גואנה", "סאיבה"}, Reasoning: "Landlord transfer"},
		{Category: "Child Care", Confidence: 0.95, AnyOf: []string{"שמרית", "פרץ"}},
		{Category: "Child Care", Confidence: 0.95, AllOf: []string{"ינאי", "שבת"}, Reasoning: "Pocket money"},
		{Category: "Bills & Utilities", Confidence: 0.95, AnyOf: []string{"ועד", "צייטלין"}},
		{Category: "Bills & Utilities", Confidence: 0.95, AllOf: []string{"ינאי", "טייכמן"}},
		{Category: "Transportation", Confidence: 0.95, AnyOf: []string{"מנחם", "חניה"}},
		{Category: "Child Care", Confidence: 0.9, AnyOf: []string{"ינאי"}},
	}
}

func newTestEngine(ai AIClient) *Engine {
	return New(ai, testRecipientRules(), nil, &logging.MockLogger{})
}

func TestCategorize_BrandOverride(t *testing.T) {
	engine := newTestEngine(nil)

	tests := []string{
		"מקס איט פיננסים",
		"העברה אל: מקס",
		"MAX IT FINANCE",
	}
	for _, desc := range tests {
		result := engine.Categorize(context.Background(), Request{Description: desc})
		assert.Equal(t, "Credit Card Payment", result.Category, "description %q", desc)
		assert.Equal(t, 0.9, result.Confidence)
	}
}

func TestCategorize_BrandOverrideBeatsRecipientRules(t *testing.T) {
	engine := newTestEngine(nil)

	// The transfer matcher would capture a recipient here, but the brand
	// override must win first.
	result := engine.Categorize(context.Background(), Request{Description: "העברה אל: מקס איט"})
	assert.Equal(t, "Credit Card Payment", result.Category)
	assert.Equal(t, 0.9, result.Confidence)
}

func TestCategorize_RecipientRules(t *testing.T) {
	engine := newTestEngine(nil)

	tests := []struct {
		name     string
		desc     string
		category string
		conf     float64
	}{
		{name: "rent transfer", desc: "העברה אל: גואנה סאיבה 12345", category: "Rent", conf: 0.95},
		{name: "childcare transfer", desc: "העברה ל שמרית פרץ", category: "Child Care", conf: 0.95},
		{name: "pocket money all-of rule", desc: "העברה אל: ינאי שבת 88", category: "Child Care", conf: 0.95},
		{name: "building committee", desc: "העברה אל: ועד צייטלין 3", category: "Bills & Utilities", conf: 0.95},
		{name: "specific rule beats catch-all", desc: "העברה אל: ינאי טייכמן 5", category: "Bills & Utilities", conf: 0.95},
		{name: "catch-all first name", desc: "העברה אל: ינאי כהן 5", category: "Child Care", conf: 0.9},
		{name: "transfer from", desc: "העברה מאת: גואנה", category: "Rent", conf: 0.95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.Categorize(context.Background(), Request{Description: tt.desc})
			assert.Equal(t, tt.category, result.Category)
			assert.Equal(t, tt.conf, result.Confidence)
		})
	}
}

func TestCategorize_TransferWithUnknownRecipient(t *testing.T) {
	engine := newTestEngine(nil)

	// Recipient extracted but no rule matches and no keyword applies.
	result := engine.Categorize(context.Background(), Request{Description: "העברה אל: פלוני אלמוני 9"})
	assert.Equal(t, CategoryOther, result.Category)
	assert.Equal(t, 0.5, result.Confidence)
}

func TestCategorize_Keywords(t *testing.T) {
	engine := newTestEngine(nil)

	tests := []struct {
		desc     string
		merchant string
		category string
	}{
		{desc: "תשלום", merchant: "סופר מזון", category: "Food & Dining"},
		{desc: "דלק פז", category: "Transportation"},
		{desc: "העברת משכורת", category: "Salary"},
		{desc: "עמלת ערוץ ישיר", category: "Bank Fees"},
		{desc: "NETFLIX.COM", category: "Entertainment"},
		{desc: "הפניקס חברה לביטוח", category: "Savings Withdrawal"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			result := engine.Categorize(context.Background(), Request{Description: tt.desc, Merchant: tt.merchant})
			assert.Equal(t, tt.category, result.Category)
			assert.Equal(t, 0.7, result.Confidence)
		})
	}
}

func TestCategorize_KeywordOrderFirstMatchWins(t *testing.T) {
	engine := newTestEngine(nil)

	// "חניה" appears in the Transportation group, which precedes any later
	// group that could also match.
	result := engine.Categorize(context.Background(), Request{Description: "תשלום חניה חודשי"})
	assert.Equal(t, "Transportation", result.Category)
}

func TestCategorize_Default(t *testing.T) {
	engine := newTestEngine(nil)

	result := engine.Categorize(context.Background(), Request{Description: "something inscrutable"})
	assert.Equal(t, CategoryOther, result.Category)
	assert.Equal(t, 0.5, result.Confidence)
	assert.NotEmpty(t, result.Reasoning)
}

func TestCategorize_RemoteAccepted(t *testing.T) {
	ai := &stubAIClient{result: models.CategoryResult{Category: "Healthcare", Confidence: 0.85, Reasoning: "pharmacy"}}
	engine := newTestEngine(ai)

	result := engine.Categorize(context.Background(), Request{Description: "דלק פז"})
	assert.Equal(t, 1, ai.calls)
	// Remote answer overrides what the keyword tier would have said.
	assert.Equal(t, "Healthcare", result.Category)
	assert.Equal(t, 0.85, result.Confidence)
}

func TestCategorize_RemoteFailureFallsBackIdentically(t *testing.T) {
	failing := &stubAIClient{err: errors.New("boom")}
	withAI := newTestEngine(failing)
	withoutAI := newTestEngine(nil)

	requests := []Request{
		{Description: "העברה אל: גואנה סאיבה 12345"},
		{Description: "מקס איט"},
		{Description: "דלק פז"},
		{Description: "inscrutable"},
	}
	for _, req := range requests {
		assert.Equal(t,
			withoutAI.Categorize(context.Background(), req),
			withAI.Categorize(context.Background(), req),
			"description %q", req.Description)
	}
}

func TestCategorize_RemoteInvalidResultFallsBack(t *testing.T) {
	ai := &stubAIClient{result: models.CategoryResult{Category: "", Confidence: 0.9}}
	engine := newTestEngine(ai)

	result := engine.Categorize(context.Background(), Request{Description: "דלק פז"})
	assert.Equal(t, "Transportation", result.Category)
}

func TestCategorize_RemoteConfidenceRepaired(t *testing.T) {
	ai := &stubAIClient{result: models.CategoryResult{Category: "Travel", Confidence: 7.5}}
	engine := newTestEngine(ai)

	result := engine.Categorize(context.Background(), Request{Description: "whatever"})
	assert.Equal(t, "Travel", result.Category)
	assert.Equal(t, 0.8, result.Confidence)
	assert.NotEmpty(t, result.Reasoning)
}

func TestParseClassifierResponse(t *testing.T) {
	t.Run("valid json", func(t *testing.T) {
		result, err := ParseClassifierResponse(`{"category": "Rent", "confidence": 0.92, "reasoning": "landlord"}`)
		require.NoError(t, err)
		assert.Equal(t, "Rent", result.Category)
		assert.Equal(t, 0.92, result.Confidence)
	})

	t.Run("fenced json", func(t *testing.T) {
		result, err := ParseClassifierResponse("```json\n{\"category\": \"Salary\", \"confidence\": 0.9, \"reasoning\": \"payroll\"}\n```")
		require.NoError(t, err)
		assert.Equal(t, "Salary", result.Category)
	})

	t.Run("scavenged from prose", func(t *testing.T) {
		result, err := ParseClassifierResponse(`The category: "Food & Dining" seems right because of the restaurant name.`)
		require.NoError(t, err)
		assert.Equal(t, "Food & Dining", result.Category)
		assert.Equal(t, 0.7, result.Confidence)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseClassifierResponse("no structure here at all")
		assert.Error(t, err)
	})
}

func TestRuleMatches(t *testing.T) {
	assert.True(t, ruleMatches("ינאי שבת", models.RecipientRule{AllOf: []string{"ינאי", "שבת"}}))
	assert.False(t, ruleMatches("ינאי כהן", models.RecipientRule{AllOf: []string{"ינאי", "שבת"}}))
	assert.True(t, ruleMatches("גואנה משהו", models.RecipientRule{AnyOf: []string{"גואנה", "סאיבה"}}))
	assert.False(t, ruleMatches("אחר", models.RecipientRule{AnyOf: []string{"גואנה"}}))
	assert.False(t, ruleMatches("כל דבר", models.RecipientRule{}))
	assert.True(t, ruleMatches("ינאי שבת הקטן", models.RecipientRule{AllOf: []string{"ינאי"}, AnyOf: []string{"שבת", "קטן"}}))
}
