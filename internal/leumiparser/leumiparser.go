// Package leumiparser parses Leumi bank ledger exports. The bank ships two
// shapes under the same download button: a flat CSV and an ".xls" file that
// is actually an HTML table.
package leumiparser

import (
	"strings"

	"ybarda/heshbon/internal/common"
	"ybarda/heshbon/internal/currencyutils"
	"ybarda/heshbon/internal/dateutils"
	"ybarda/heshbon/internal/htmltable"
	"ybarda/heshbon/internal/importid"
	"ybarda/heshbon/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// SourcePrefix keys the dedup identity for this adapter.
const SourcePrefix = "leumi"

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
		common.SetLogger(logger)
	}
}

// Parse dispatches on the actual content shape: HTML-table exports route
// through the table extractor, everything else is treated as flat CSV.
func Parse(raw string) ([]models.Transaction, *models.ImportMetadata, error) {
	if htmltable.Detect(raw) {
		return ParseHTML(raw)
	}
	txs, err := ParseCSV(raw)
	return txs, nil, err
}

// ParseCSV parses the flat ledger export: positional {date, description,
// amount} columns with an optional reference in column four. The sign is
// taken as-is from the file.
func ParseCSV(raw string) ([]models.Transaction, error) {
	lines := common.SplitLines(raw)
	var transactions []models.Transaction

	for i, line := range lines {
		if i == 0 {
			continue // header
		}
		parts := common.SplitLine(line)
		if len(parts) < 3 {
			continue
		}

		date, ok := dateutils.Normalize(parts[0])
		if !ok {
			log.WithField("row", i).Debugf("skipping row with unparseable date %q", parts[0])
			continue
		}
		description := parts[1]
		amount, ok := currencyutils.TryParseAmount(parts[2])
		if !ok {
			log.WithField("row", i).Debug("skipping row with unparseable amount")
			continue
		}
		var reference string
		if len(parts) > 4 {
			reference = parts[4]
		}

		transactions = append(transactions, models.Transaction{
			Date:        date,
			Description: description,
			Amount:      amount,
			Reference:   reference,
			ImportID:    importid.New(SourcePrefix, date, reference, amount),
		})
	}

	log.WithField("count", len(transactions)).Info("Parsed Leumi CSV ledger")
	return transactions, nil
}

// ParseHTML parses the table-shaped export. Rows are ordered newest-first,
// so the first valid balance encountered is the account's latest balance.
func ParseHTML(raw string) ([]models.Transaction, *models.ImportMetadata, error) {
	rows, err := htmltable.Extract(raw)
	if err != nil {
		return nil, nil, err
	}
	layout := htmltable.ResolveLayout(rows)

	var transactions []models.Transaction
	var latestBalance *decimal.Decimal

	for i := layout.DataStart; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 4 {
			continue
		}

		dateStr := cell(row, layout.Date)
		description := cell(row, layout.ExtDescription)
		if strings.TrimSpace(description) == "" {
			description = cell(row, layout.Description)
		}
		debit, _ := currencyutils.TryParseMagnitude(cell(row, layout.Debit))
		credit, _ := currencyutils.TryParseMagnitude(cell(row, layout.Credit))
		reference := cell(row, layout.Reference)

		if dateStr == "" || description == "" || (debit.IsZero() && credit.IsZero()) {
			continue
		}
		// Some exports re-print the header mid-table.
		if htmltable.IsHeaderLookalike(row) || description == "תיאור" {
			continue
		}

		date, ok := dateutils.Normalize(dateStr)
		if !ok {
			log.WithField("row", i).Debugf("skipping row with unparseable date %q", dateStr)
			continue
		}

		amount := credit
		if !credit.GreaterThan(decimal.Zero) {
			amount = debit.Neg()
		}

		if latestBalance == nil {
			if balance, ok := currencyutils.TryParseMagnitude(cell(row, layout.Balance)); ok {
				b := balance
				latestBalance = &b
			}
		}

		transactions = append(transactions, models.Transaction{
			Date:        date,
			Description: description,
			Amount:      amount,
			Reference:   reference,
			ImportID:    importid.New(SourcePrefix, date, reference, amount),
		})
	}

	var metadata *models.ImportMetadata
	if latestBalance != nil {
		metadata = &models.ImportMetadata{LatestBalance: latestBalance}
	}

	log.WithFields(logrus.Fields{
		"count":      len(transactions),
		"positional": layout.Positional,
	}).Info("Parsed Leumi HTML ledger")
	return transactions, metadata, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
