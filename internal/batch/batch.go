// Package batch imports a directory of exports in one run: each file is
// routed to its adapter by filename, ingested, and the results aggregated
// into a single chronologically sorted batch.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ybarda/heshbon/internal/fileutils"
	"ybarda/heshbon/internal/ingest"
	"ybarda/heshbon/internal/logging"
	"ybarda/heshbon/internal/models"
)

// sourceHints maps filename fragments to source tags. Checked in order, so
// the more specific fragments come first.
var sourceHints = []struct {
	fragment string
	source   models.Source
}{
	{"leumi", models.SourceLedgerFlat},
	{"max", models.SourceCardCSV},
	{"phoenix", models.SourceSavingsCSV},
	{"ibi", models.SourceVestingCSV},
	{"grant", models.SourceVestingCSV},
}

// Runner imports every recognizable export under one directory.
type Runner struct {
	service *ingest.Service
	logger  logging.Logger
}

// NewRunner creates a directory batch runner.
func NewRunner(service *ingest.Service, logger logging.Logger) *Runner {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &Runner{service: service, logger: logger}
}

// FileResult is the per-file outcome of a batch run.
type FileResult struct {
	File     string
	Source   models.Source
	Count    int
	Metadata *models.ImportMetadata
	Err      error
}

// Run imports every .csv, .xls and .html file in dir. Files whose source
// cannot be guessed from the filename fall back to the generic adapter.
// A file that fails to parse is reported and skipped, never fatal.
func (r *Runner) Run(ctx context.Context, dir string) ([]models.Transaction, []FileResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var all []models.Transaction
	var results []FileResult

	for _, entry := range entries {
		if entry.IsDir() || !isImportable(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		source := GuessSource(entry.Name())

		raw, err := fileutils.ReadImport(path, source)
		if err != nil {
			results = append(results, FileResult{File: entry.Name(), Source: source, Err: err})
			continue
		}

		result, err := r.service.Import(ctx, raw)
		if err != nil {
			r.logger.WithError(err).Error("batch file failed",
				logging.Field{Key: logging.FieldFile, Value: entry.Name()})
			results = append(results, FileResult{File: entry.Name(), Source: source, Err: err})
			continue
		}

		all = append(all, result.Transactions...)
		results = append(results, FileResult{
			File:     entry.Name(),
			Source:   source,
			Count:    len(result.Transactions),
			Metadata: result.Metadata,
		})
	}

	sortChronologically(all)
	r.warnOnDuplicateKeys(all)

	r.logger.Info("batch import completed",
		logging.Field{Key: logging.FieldCount, Value: len(all)},
		logging.Field{Key: "files", Value: len(results)})
	return all, results, nil
}

// GuessSource infers the source tag from a filename.
func GuessSource(filename string) models.Source {
	lower := strings.ToLower(filepath.Base(filename))
	for _, hint := range sourceHints {
		if strings.Contains(lower, hint.fragment) {
			return hint.source
		}
	}
	return models.SourceGenericCSV
}

func isImportable(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".xls", ".xlsx", ".html", ".htm", ".txt":
		return true
	}
	return false
}

// sortChronologically orders by date, then description, then amount, so a
// batch over the same files is byte-stable.
func sortChronologically(transactions []models.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		if transactions[i].Date != transactions[j].Date {
			return transactions[i].Date < transactions[j].Date
		}
		if transactions[i].Description != transactions[j].Description {
			return transactions[i].Description < transactions[j].Description
		}
		return transactions[i].Amount.LessThan(transactions[j].Amount)
	})
}

// warnOnDuplicateKeys flags rows sharing an import key across files. The
// rows are kept; the upsert boundary is where duplicates collapse.
func (r *Runner) warnOnDuplicateKeys(transactions []models.Transaction) {
	seen := make(map[string]int, len(transactions))
	duplicates := 0
	for _, tx := range transactions {
		seen[tx.ImportID]++
		if seen[tx.ImportID] == 2 {
			duplicates++
			r.logger.Warn("duplicate import key in batch",
				logging.Field{Key: logging.FieldImportID, Value: tx.ImportID})
		}
	}
	if duplicates > 0 {
		r.logger.Warn("batch contains overlapping exports",
			logging.Field{Key: logging.FieldCount, Value: duplicates})
	}
}
