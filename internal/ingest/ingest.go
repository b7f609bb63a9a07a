// Package ingest orchestrates an import run: source dispatch, adapter
// parsing, per-transaction categorization and translation, and the sign to
// type conversion at the persistence boundary.
package ingest

import (
	"context"
	"fmt"
	"strings"

	"ybarda/heshbon/internal/categorizer"
	"ybarda/heshbon/internal/genericparser"
	"ybarda/heshbon/internal/htmltable"
	"ybarda/heshbon/internal/ibiparser"
	"ybarda/heshbon/internal/leumiparser"
	"ybarda/heshbon/internal/logging"
	"ybarda/heshbon/internal/maxparser"
	"ybarda/heshbon/internal/models"
	"ybarda/heshbon/internal/phoenixparser"
	"ybarda/heshbon/internal/translate"
)

// Store is the persistence port. Implementations must upsert on ImportID
// without overwriting, so a re-import never duplicates rows or clobbers
// manually edited records. Returns the number of newly inserted rows.
type Store interface {
	UpsertTransactions(ctx context.Context, accountID string, txs []models.Transaction) (int, error)
}

// Result is the outcome of one import run.
type Result struct {
	Transactions []models.Transaction
	Metadata     *models.ImportMetadata
}

// Service runs imports. Collaborators are injected; translator may be nil.
type Service struct {
	engine     *categorizer.Engine
	translator translate.Translator
	log        logging.Logger
	workers    int
}

// NewService builds an import service with the given bounded concurrency
// for the per-transaction remote calls.
func NewService(engine *categorizer.Engine, translator translate.Translator, logger logging.Logger, workers int) *Service {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &Service{
		engine:     engine,
		translator: translator,
		log:        logger,
		workers:    workers,
	}
}

// Import parses, categorizes and normalizes one raw export. Individual bad
// rows are dropped by the adapters; only structural problems (empty payload,
// unknown source) fail the run.
func (s *Service) Import(ctx context.Context, raw models.RawImport) (*Result, error) {
	if strings.TrimSpace(raw.RawText) == "" {
		return nil, fmt.Errorf("empty import payload")
	}

	transactions, metadata, err := s.parse(raw)
	if err != nil {
		return nil, err
	}

	s.enrich(ctx, raw, transactions)

	for i := range transactions {
		normalizeTypeAndSign(&transactions[i])
	}

	s.log.Info("import completed",
		logging.Field{Key: logging.FieldSource, Value: string(raw.Source)},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})

	return &Result{Transactions: transactions, Metadata: metadata}, nil
}

// ImportAndStore runs Import and hands the batch to the persistence port.
func (s *Service) ImportAndStore(ctx context.Context, accountID string, raw models.RawImport, store Store) (*Result, int, error) {
	result, err := s.Import(ctx, raw)
	if err != nil {
		return nil, 0, err
	}
	inserted, err := store.UpsertTransactions(ctx, accountID, result.Transactions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to store transactions: %w", err)
	}
	s.log.Info("batch stored",
		logging.Field{Key: logging.FieldAccountID, Value: accountID},
		logging.Field{Key: logging.FieldCount, Value: inserted})
	return result, inserted, nil
}

func (s *Service) parse(raw models.RawImport) ([]models.Transaction, *models.ImportMetadata, error) {
	switch raw.Source {
	case models.SourceLedgerFlat:
		// The "flat" ledger family sometimes arrives as an HTML table in
		// disguise; route by hint first, content sniff second.
		if raw.FileType == models.FileTypeXLSHTML || htmltable.Detect(raw.RawText) {
			return leumiparser.ParseHTML(raw.RawText)
		}
		txs, err := leumiparser.ParseCSV(raw.RawText)
		return txs, nil, err
	case models.SourceLedgerHTML:
		return leumiparser.ParseHTML(raw.RawText)
	case models.SourceCardCSV:
		txs, err := maxparser.Parse(raw.RawText)
		return txs, nil, err
	case models.SourceSavingsCSV:
		txs, err := phoenixparser.Parse(raw.RawText)
		return txs, nil, err
	case models.SourceVestingCSV:
		return ibiparser.Parse(raw.RawText)
	case models.SourceGenericCSV:
		txs, err := genericparser.Parse(raw.RawText)
		return txs, nil, err
	default:
		return nil, nil, fmt.Errorf("unknown source tag %q", raw.Source)
	}
}

// enrich runs categorization and translation for each transaction with a
// bounded worker pool. Output order always matches input row order; only
// network completion order is free.
func (s *Service) enrich(ctx context.Context, raw models.RawImport, transactions []models.Transaction) {
	workers := s.workers
	if workers > len(transactions) {
		workers = len(transactions)
	}
	if workers <= 1 {
		for i := range transactions {
			s.enrichOne(ctx, raw, &transactions[i])
		}
		return
	}

	jobs := make(chan int, workers)
	done := make(chan struct{})
	for w := 0; w < workers; w++ {
		go func() {
			for i := range jobs {
				s.enrichOne(ctx, raw, &transactions[i])
				done <- struct{}{}
			}
		}()
	}
	go func() {
		for i := range transactions {
			jobs <- i
		}
		close(jobs)
	}()
	for range transactions {
		<-done
	}
}

// enrichOne is per-transaction and degrades gracefully: a remote failure
// leaves the local categorization and skips the note, never the row.
func (s *Service) enrichOne(ctx context.Context, raw models.RawImport, tx *models.Transaction) {
	result := s.engine.Categorize(ctx, categorizer.Request{
		Description: tx.Description,
		Merchant:    tx.Merchant,
		Amount:      tx.Amount,
		AccountType: string(raw.Source),
	})
	tx.Category = result.Category
	tx.Confidence = result.Confidence

	if s.translator != nil && translate.HasHebrew(tx.Description) {
		if translated, err := s.translator.Translate(ctx, tx.Description); err == nil {
			tx.Notes = translate.Annotate(tx.Notes, tx.Description, translated)
		} else {
			s.log.WithError(err).Debug("translation failed, keeping original description")
		}
	}
}

// normalizeTypeAndSign converts the adapter's signed amount into the stored
// form: a non-negative magnitude plus a type tag. Adapters that already set
// a type (vesting grants) keep it.
func normalizeTypeAndSign(tx *models.Transaction) {
	if tx.Type == "" {
		if tx.Amount.IsNegative() {
			tx.Type = models.TypeExpense
		} else {
			tx.Type = models.TypeIncome
		}
	}
	tx.Amount = tx.Amount.Abs()
}
