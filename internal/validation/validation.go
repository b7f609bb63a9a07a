// Package validation checks normalized batches before they leave the
// pipeline. Adapters drop bad rows on the way in; these checks guard the
// invariants the rest of the system relies on.
package validation

import (
	"fmt"
	"regexp"

	"ybarda/heshbon/internal/categorizer"
	"ybarda/heshbon/internal/models"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidateTransaction checks one normalized transaction.
func ValidateTransaction(tx models.Transaction) error {
	if !isoDatePattern.MatchString(tx.Date) {
		return fmt.Errorf("date %q is not in YYYY-MM-DD form", tx.Date)
	}
	if tx.Amount.IsNegative() {
		return fmt.Errorf("normalized amount must be non-negative, got %s", tx.Amount.String())
	}
	switch tx.Type {
	case models.TypeIncome, models.TypeExpense, models.TypeInvestment:
	default:
		return fmt.Errorf("unknown transaction type %q", tx.Type)
	}
	if tx.ImportID == "" {
		return fmt.Errorf("missing import key")
	}
	if tx.Confidence < 0 || tx.Confidence > 1 {
		return fmt.Errorf("confidence %v out of range", tx.Confidence)
	}
	if tx.Category != "" && !knownCategory(tx.Category) {
		return fmt.Errorf("unknown category %q", tx.Category)
	}
	return nil
}

// ValidateBatch checks every row and reports the first failure with its
// position.
func ValidateBatch(transactions []models.Transaction) error {
	for i, tx := range transactions {
		if err := ValidateTransaction(tx); err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
	}
	return nil
}

func knownCategory(name string) bool {
	for _, c := range categorizer.Categories {
		if c == name {
			return true
		}
	}
	return false
}
