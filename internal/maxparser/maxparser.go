// Package maxparser parses Max credit-card statement CSV exports.
package maxparser

import (
	"ybarda/heshbon/internal/common"
	"ybarda/heshbon/internal/currencyutils"
	"ybarda/heshbon/internal/dateutils"
	"ybarda/heshbon/internal/importid"
	"ybarda/heshbon/internal/models"

	"github.com/sirupsen/logrus"
)

// SourcePrefix keys the dedup identity for this adapter.
const SourcePrefix = "max"

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
		common.SetLogger(logger)
	}
}

// Parse reads the positional {date, merchant, amount} statement. Every row
// is a card charge, so amounts are always stored negative regardless of how
// the file renders them.
func Parse(raw string) ([]models.Transaction, error) {
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
		merchant := parts[1]
		magnitude, ok := currencyutils.TryParseMagnitude(parts[2])
		if !ok {
			log.WithField("row", i).Debug("skipping row with unparseable amount")
			continue
		}
		amount := magnitude.Neg()

		transactions = append(transactions, models.Transaction{
			Date:        date,
			Description: merchant,
			Merchant:    merchant,
			Amount:      amount,
			ImportID:    importid.New(SourcePrefix, date, merchant, amount),
		})
	}

	log.WithField("count", len(transactions)).Info("Parsed Max card statement")
	return transactions, nil
}
