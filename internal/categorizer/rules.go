package categorizer

import (
	"regexp"
	"strings"

	"ybarda/heshbon/internal/models"
)

// brandKeywords cover the Hebrew and transliterated spellings of the Max
// card brand. Transfers involving the card issuer are by far the most
// common pattern in these ledgers and the transfer matcher misreads them,
// so the override runs before everything else.
var brandKeywords = []string{"מקס איט", "מקס", "max"}

// transferPattern captures the recipient of a Hebrew transfer description:
// the prepositional forms of "transfer to/from" followed by a name of
// Hebrew letters and spaces, terminated by a digit or end of string.
var transferPattern = regexp.MustCompile(`העברה\s+(?:אל|ל|מאת)[:\s]+([א-ת\s]+?)(?:[0-9]|$)`)

func matchBrandOverride(description string) (models.CategoryResult, bool) {
	lower := strings.ToLower(description)
	for _, keyword := range brandKeywords {
		if strings.Contains(lower, keyword) {
			return models.CategoryResult{
				Category:   "Credit Card Payment",
				Confidence: 0.9,
				Reasoning:  "Max credit card transaction (brand override)",
			}, true
		}
	}
	return models.CategoryResult{}, false
}

// matchRecipient extracts a transfer recipient and tests it against the
// ordered rule table. Order is load-bearing: multi-token rules must come
// before broader single-token ones, so a narrow match is never shadowed.
func (e *Engine) matchRecipient(combined string) (models.CategoryResult, bool) {
	match := transferPattern.FindStringSubmatch(combined)
	if match == nil {
		return models.CategoryResult{}, false
	}
	recipient := strings.TrimSpace(match[1])
	if recipient == "" {
		return models.CategoryResult{}, false
	}

	for _, rule := range e.recipients {
		if ruleMatches(recipient, rule) {
			reasoning := rule.Reasoning
			if reasoning == "" {
				reasoning = "Transfer recipient rule"
			}
			return models.CategoryResult{
				Category:   rule.Category,
				Confidence: rule.Confidence,
				Reasoning:  reasoning,
			}, true
		}
	}
	return models.CategoryResult{}, false
}

// ruleMatches requires every AllOf token and at least one AnyOf token, for
// whichever sets are present. A rule with neither never matches.
func ruleMatches(recipient string, rule models.RecipientRule) bool {
	if len(rule.AllOf) == 0 && len(rule.AnyOf) == 0 {
		return false
	}
	for _, token := range rule.AllOf {
		if !strings.Contains(recipient, token) {
			return false
		}
	}
	if len(rule.AnyOf) == 0 {
		return true
	}
	for _, token := range rule.AnyOf {
		if strings.Contains(recipient, token) {
			return true
		}
	}
	return false
}

func (e *Engine) matchKeywords(combined string) (models.CategoryResult, bool) {
	for _, group := range e.keywords {
		for _, keyword := range group.Keywords {
			if strings.Contains(combined, keyword) {
				return models.CategoryResult{
					Category:   group.Category,
					Confidence: 0.7,
					Reasoning:  "Keyword-based categorization",
				}, true
			}
		}
	}
	return models.CategoryResult{}, false
}

// DefaultKeywordGroups is the built-in bilingual keyword table, scanned in
// order with first match winning.
func DefaultKeywordGroups() []models.KeywordGroup {
	return []models.KeywordGroup{
		{Category: "Food & Dining", Keywords: []string{"restaurant", "cafe", "food", "grocery", "supermarket", "מסעדה", "מזון", "קפה"}},
		{Category: "Transportation", Keywords: []string{"gas", "fuel", "taxi", "uber", "parking", "דלק", "חניה", "תחבורה"}},
		{Category: "Shopping", Keywords: []string{"store", "shop", "purchase", "buy", "קנייה", "חנות"}},
		{Category: "Bills & Utilities", Keywords: []string{"electric", "water", "internet", "phone", "utility", "חשבון", "חשמל", "מים", "דירה"}},
		{Category: "Rent", Keywords: []string{"rent", "lease", "שכירות"}},
		{Category: "Child Care", Keywords: []string{"childcare", "babysitter", "nanny", "daycare", "גן", "מטפלת", "הוראת קבע"}},
		{Category: "Credit Card Payment", Keywords: []string{"max", "credit card", "מקס איט", "card payment", "מקס איט פיננ"}},
		{Category: "Bank Fees", Keywords: []string{"fee", "commission", "עמל", "bank fee", "עמלה"}},
		{Category: "Savings Withdrawal", Keywords: []string{"phoenix", "savings withdrawal", "הפניקס", "withdrawal", "הפניקס חברה"}},
		{Category: "Healthcare", Keywords: []string{"doctor", "pharmacy", "medicine", "medical", "רופא", "תרופה", "בית מרקחת"}},
		{Category: "Entertainment", Keywords: []string{"movie", "cinema", "netflix", "streaming", "entertainment"}},
		{Category: "Education", Keywords: []string{"course", "education", "school", "learning", "חינוך"}},
		{Category: "Travel", Keywords: []string{"flight", "hotel", "travel", "vacation", "נסיעה"}},
		{Category: "Salary", Keywords: []string{"salary", "wage", "paycheck", "משכורת", "העברת משכורת"}},
		{Category: "Investment Returns", Keywords: []string{"dividend", "interest", "return", "yield"}},
	}
}
