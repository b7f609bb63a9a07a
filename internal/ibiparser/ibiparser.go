// Package ibiparser parses IBI equity-vesting portfolio CSV exports. Rows
// are grants, not ledger movements: each grant becomes one synthetic
// investment transaction and the batch metadata carries portfolio totals.
package ibiparser

import (
	"fmt"
	"strings"
	"time"

	"ybarda/heshbon/internal/common"
	"ybarda/heshbon/internal/currencyutils"
	"ybarda/heshbon/internal/dateutils"
	"ybarda/heshbon/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// SourcePrefix keys the dedup identity for this adapter.
const SourcePrefix = "ibi_grant"

// headerScanWindow bounds the header search. The header usually sits on the
// first line but can follow an "RS/RSU" section banner.
const headerScanWindow = 10

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
		common.SetLogger(logger)
	}
}

type columnLayout struct {
	grantName      int
	grantDate      int
	granted        int
	sellable       int
	nextVesting    int
	estimatedValue int
}

// Parse reads the portfolio view: Grant Name, Grant Date, Granted, Sellable,
// Next Vesting, Estimated Value. Column positions are resolved from the
// header by keyword, the header itself located by a pair of required
// keywords within the scan window.
func Parse(raw string) ([]models.Transaction, *models.ImportMetadata, error) {
	lines := common.SplitLines(raw)
	if len(lines) == 0 {
		return nil, nil, fmt.Errorf("empty portfolio export")
	}

	headerRow := findHeaderRow(lines)
	layout := resolveColumns(common.SplitLine(lines[headerRow]))

	var transactions []models.Transaction
	totalEstimatedValue := decimal.Zero
	totalSellableShares := decimal.Zero

	for i := headerRow + 1; i < len(lines); i++ {
		line := lines[i]
		lower := strings.ToLower(line)
		if strings.Contains(lower, "rs/rsu") || strings.Contains(lower, "portfolio") {
			continue // section banner
		}

		parts := common.SplitLine(line)
		if len(parts) < 3 {
			continue
		}

		grantName := field(parts, layout.grantName)
		grantDateStr := field(parts, layout.grantDate)
		granted := currencyutils.ParseAmount(field(parts, layout.granted))
		sellable := currencyutils.ParseAmount(field(parts, layout.sellable))
		nextVesting := field(parts, layout.nextVesting)
		estimatedValue := currencyutils.ParseAmount(field(parts, layout.estimatedValue))

		if grantName == "" || (granted.IsZero() && sellable.IsZero() && estimatedValue.IsZero()) {
			continue
		}

		totalEstimatedValue = totalEstimatedValue.Add(estimatedValue)
		totalSellableShares = totalSellableShares.Add(sellable)

		grantDate, ok := dateutils.Normalize(grantDateStr)
		if !ok {
			// Stored dates are always canonical; the raw string still
			// appears verbatim in the description and notes.
			grantDate = time.Now().Format(dateutils.DateLayoutISO)
		}

		description := "Fiverr Grant " + grantName
		if grantDateStr != "" {
			description += fmt.Sprintf(" (Granted: %s)", grantDateStr)
		}
		if nextVesting != "" {
			description += " | Next Vesting: " + nextVesting
		} else {
			description += " | Fully Vested"
		}

		vestingNote := nextVesting
		if vestingNote == "" {
			vestingNote = "Fully Vested"
		}
		notes := fmt.Sprintf("Grant: %s, Granted: %s shares, Sellable (Vested): %s shares, Next Vesting: %s, Estimated Value: %s ILS",
			grantName, granted.String(), sellable.String(), vestingNote, estimatedValue.String())

		transactions = append(transactions, models.Transaction{
			Date:        grantDate,
			Description: description,
			Amount:      estimatedValue,
			Type:        models.TypeInvestment,
			Notes:       notes,
			ImportID: fmt.Sprintf("%s_%s_%s_%s_%d",
				SourcePrefix, grantName, grantDate, granted.String(), time.Now().UnixMilli()),
		})
	}

	metadata := &models.ImportMetadata{
		TotalEstimatedValue: totalEstimatedValue,
		TotalSellableShares: totalSellableShares,
		GrantCount:          len(transactions),
	}

	log.WithFields(logrus.Fields{
		"count":       len(transactions),
		"total_value": totalEstimatedValue.String(),
	}).Info("Parsed IBI vesting portfolio")
	return transactions, metadata, nil
}

func findHeaderRow(lines []string) int {
	for i := 0; i < len(lines) && i < headerScanWindow; i++ {
		lower := strings.ToLower(lines[i])
		if (strings.Contains(lower, "grant name") || strings.Contains(lower, "grant date")) &&
			(strings.Contains(lower, "granted") || strings.Contains(lower, "sellable")) {
			return i
		}
	}
	return 0
}

// resolveColumns matches header cells against keyword lists in priority
// order, so "grant name" wins over a bare "grant" and "estimated value"
// over a bare "value".
func resolveColumns(header []string) columnLayout {
	return columnLayout{
		grantName:      findColumn(header, "grant name", "grant"),
		grantDate:      findColumn(header, "grant date", "date"),
		granted:        findColumn(header, "granted", "total"),
		sellable:       findColumn(header, "sellable", "available"),
		nextVesting:    findColumn(header, "next vesting", "vesting", "next"),
		estimatedValue: findColumn(header, "estimated value", "value", "estimated"),
	}
}

func findColumn(header []string, keywords ...string) int {
	for _, keyword := range keywords {
		for i, cell := range header {
			if strings.Contains(strings.ToLower(cell), keyword) {
				return i
			}
		}
	}
	return -1
}

func field(parts []string, idx int) string {
	if idx < 0 || idx >= len(parts) {
		return ""
	}
	return strings.Trim(strings.TrimSpace(parts[idx]), `"`)
}
