// Package batchcmd handles the batch command: import every export in a
// directory and write one consolidated CSV.
package batchcmd

import (
	"fmt"
	"time"

	"ybarda/heshbon/cmd/root"
	"ybarda/heshbon/internal/batch"
	"ybarda/heshbon/internal/categorizer"
	"ybarda/heshbon/internal/common"
	"ybarda/heshbon/internal/ingest"
	"ybarda/heshbon/internal/logging"
	"ybarda/heshbon/internal/store"
	"ybarda/heshbon/internal/translate"
	"ybarda/heshbon/internal/validation"

	"github.com/spf13/cobra"
)

var inputDir string

// Cmd represents the batch command.
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Import every export in a directory",
	Long: `Batch imports all recognizable export files in a directory, routing each
to its adapter by filename, and writes one consolidated, chronologically
sorted CSV.`,
	RunE: batchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputDir, "dir", "d", "", "Directory containing export files (required)")
	_ = Cmd.MarkFlagRequired("dir")
}

func batchFunc(cmd *cobra.Command, args []string) error {
	if root.SharedFlags.Output == "" {
		return fmt.Errorf("output file is required")
	}

	cfg := root.Cfg
	logger := logging.NewLogrusAdapterFromLogger(root.Log)

	ruleStore := store.NewRuleStore(cfg.Rules.RecipientsFile, cfg.Rules.KeywordsFile)
	recipients, err := ruleStore.LoadRecipientRules()
	if err != nil {
		return err
	}
	keywords, err := ruleStore.LoadKeywordGroups()
	if err != nil {
		return err
	}

	var aiClient categorizer.AIClient
	var translator translate.Translator
	if cfg.AI.Enabled {
		timeout := time.Duration(cfg.AI.TimeoutSeconds) * time.Second
		gemini, err := categorizer.NewGeminiClient(cmd.Context(), cfg.AI.APIKey, cfg.AI.Model, timeout, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize AI client: %w", err)
		}
		defer gemini.Close()
		aiClient = gemini

		if cfg.Translate.Enabled {
			geminiTranslator, err := translate.NewGeminiTranslator(cmd.Context(), cfg.AI.APIKey, cfg.AI.Model, timeout, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize translator: %w", err)
			}
			defer geminiTranslator.Close()
			translator = geminiTranslator
		}
	}

	engine := categorizer.New(aiClient, recipients, keywords, logger)
	service := ingest.NewService(engine, translator, logger, cfg.Import.Workers)
	runner := batch.NewRunner(service, logger)

	transactions, results, err := runner.Run(cmd.Context(), inputDir)
	if err != nil {
		return err
	}
	for _, fr := range results {
		if fr.Err != nil {
			root.Log.Warnf("Skipped %s: %v", fr.File, fr.Err)
			continue
		}
		root.Log.Infof("Imported %s (%s): %d transactions", fr.File, fr.Source, fr.Count)
	}

	if err := validation.ValidateBatch(transactions); err != nil {
		return fmt.Errorf("consolidated batch failed validation: %w", err)
	}
	if err := common.WriteTransactionsToCSV(transactions, root.SharedFlags.Output); err != nil {
		return err
	}
	root.Log.Infof("Wrote %d transactions to %s", len(transactions), root.SharedFlags.Output)
	return nil
}
