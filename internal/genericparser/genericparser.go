// Package genericparser is the catch-all adapter for positional
// {date, description, amount} CSV exports with no known source.
package genericparser

import (
	"ybarda/heshbon/internal/common"
	"ybarda/heshbon/internal/currencyutils"
	"ybarda/heshbon/internal/dateutils"
	"ybarda/heshbon/internal/importid"
	"ybarda/heshbon/internal/models"

	"github.com/sirupsen/logrus"
)

// SourcePrefix keys the dedup identity for this adapter.
const SourcePrefix = "generic"

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
		common.SetLogger(logger)
	}
}

// Parse reads positional rows, passing the sign through as-is.
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
		description := parts[1]
		amount, ok := currencyutils.TryParseAmount(parts[2])
		if !ok {
			log.WithField("row", i).Debug("skipping row with unparseable amount")
			continue
		}

		transactions = append(transactions, models.Transaction{
			Date:        date,
			Description: description,
			Amount:      amount,
			ImportID:    importid.New(SourcePrefix, date, description, amount),
		})
	}

	log.WithField("count", len(transactions)).Info("Parsed generic CSV")
	return transactions, nil
}
