// Package models defines the core data structures shared by the import
// pipeline: sources, transactions, batch metadata and categorization results.
package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Source identifies the export format a raw import came from.
type Source string

const (
	// SourceLedgerFlat is the bank ledger exported as a flat CSV file.
	SourceLedgerFlat Source = "ledger_flat"
	// SourceLedgerHTML is the bank ledger exported as .xls which is really an HTML table.
	SourceLedgerHTML Source = "ledger_html"
	// SourceCardCSV is the credit-card statement CSV.
	SourceCardCSV Source = "card_csv"
	// SourceSavingsCSV is the savings-account statement CSV.
	SourceSavingsCSV Source = "savings_csv"
	// SourceVestingCSV is the equity-vesting portfolio CSV (rows are grants, not transactions).
	SourceVestingCSV Source = "vesting_csv"
	// SourceGenericCSV is the catch-all date/description/amount CSV.
	SourceGenericCSV Source = "generic_csv"
)

// FileType is an optional hint about the physical format of the raw input.
type FileType string

const (
	FileTypeCSV     FileType = "csv"
	FileTypeXLS     FileType = "xls"
	FileTypeXLSHTML FileType = "xls_html"
)

// TransactionType tags a stored transaction. Amounts are always kept as
// non-negative magnitudes once a batch leaves the pipeline; the type carries
// the polarity.
type TransactionType string

const (
	TypeIncome     TransactionType = "income"
	TypeExpense    TransactionType = "expense"
	TypeInvestment TransactionType = "investment"
)

// RawImport is the immutable input to an import run.
type RawImport struct {
	Source   Source
	RawText  string
	FileType FileType
}

// Transaction is a single normalized ledger entry. Adapters create it with a
// signed internal amount; the ingestion service converts the sign to Type and
// stores the magnitude before the batch is handed to persistence.
type Transaction struct {
	Date        string          `csv:"Date" yaml:"date"`
	Description string          `csv:"Description" yaml:"description"`
	Merchant    string          `csv:"Merchant" yaml:"merchant,omitempty"`
	Amount      decimal.Decimal `csv:"Amount" yaml:"amount"`
	Type        TransactionType `csv:"Type" yaml:"type,omitempty"`
	Reference   string          `csv:"Reference" yaml:"reference,omitempty"`
	ImportID    string          `csv:"ImportID" yaml:"import_id"`
	Category    string          `csv:"Category" yaml:"category,omitempty"`
	Confidence  float64         `csv:"Confidence" yaml:"confidence,omitempty"`
	Notes       string          `csv:"Notes" yaml:"notes,omitempty"`
}

// ImportMetadata carries account-level facts that are only discoverable from
// the whole file, never from a single row.
type ImportMetadata struct {
	LatestBalance       *decimal.Decimal
	TotalEstimatedValue decimal.Decimal
	TotalSellableShares decimal.Decimal
	GrantCount          int
}

// CategoryResult is the outcome of categorizing one transaction.
type CategoryResult struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// RecipientRule maps a transfer recipient to a category. Rules are evaluated
// in slice order and order is load-bearing: multi-token rules must come before
// broader single-token ones.
type RecipientRule struct {
	Category   string   `yaml:"category"`
	Confidence float64  `yaml:"confidence"`
	AnyOf      []string `yaml:"any_of,omitempty"`
	AllOf      []string `yaml:"all_of,omitempty"`
	Reasoning  string   `yaml:"reasoning,omitempty"`
}

// KeywordGroup maps a category to the keywords that imply it. Groups are
// scanned in slice order, first match wins.
type KeywordGroup struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// ParseSource validates a source tag from user input.
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceLedgerFlat, SourceLedgerHTML, SourceCardCSV,
		SourceSavingsCSV, SourceVestingCSV, SourceGenericCSV:
		return Source(s), nil
	}
	return "", fmt.Errorf("unknown source tag %q", s)
}
