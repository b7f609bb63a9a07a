// Package importcmd handles the import command: read one raw export, run
// the full ingestion pipeline and write the normalized CSV.
package importcmd

import (
	"fmt"
	"time"

	"ybarda/heshbon/cmd/root"
	"ybarda/heshbon/internal/categorizer"
	"ybarda/heshbon/internal/common"
	"ybarda/heshbon/internal/fileutils"
	"ybarda/heshbon/internal/ingest"
	"ybarda/heshbon/internal/logging"
	"ybarda/heshbon/internal/models"
	"ybarda/heshbon/internal/store"
	"ybarda/heshbon/internal/translate"
	"ybarda/heshbon/internal/validation"

	"github.com/spf13/cobra"
)

// Cmd represents the import command.
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import a raw export and write normalized transactions",
	Long: `Import reads a bank, card, savings or vesting export, detects its layout,
categorizes every transaction and writes the normalized rows to a CSV file.`,
	RunE: importFunc,
}

func importFunc(cmd *cobra.Command, args []string) error {
	if root.SharedFlags.Input == "" {
		return fmt.Errorf("input file is required")
	}
	if root.SharedFlags.Output == "" {
		return fmt.Errorf("output file is required")
	}
	source, err := models.ParseSource(root.SharedFlags.Source)
	if err != nil {
		return err
	}

	cfg := root.Cfg
	logger := logging.NewLogrusAdapterFromLogger(root.Log)

	raw, err := fileutils.ReadImport(root.SharedFlags.Input, source)
	if err != nil {
		return err
	}

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

	result, err := service.Import(cmd.Context(), raw)
	if err != nil {
		return err
	}
	if err := validation.ValidateBatch(result.Transactions); err != nil {
		return fmt.Errorf("normalized batch failed validation: %w", err)
	}

	if err := common.WriteTransactionsToCSV(result.Transactions, root.SharedFlags.Output); err != nil {
		return err
	}

	root.Log.Infof("Imported %d transactions from %s", len(result.Transactions), root.SharedFlags.Input)
	if meta := result.Metadata; meta != nil {
		if meta.LatestBalance != nil {
			root.Log.Infof("Latest balance: %s", meta.LatestBalance.String())
		}
		if meta.GrantCount > 0 {
			root.Log.Infof("Portfolio: %d grants, %s sellable shares, estimated value %s ILS",
				meta.GrantCount, meta.TotalSellableShares.String(), meta.TotalEstimatedValue.String())
		}
	}
	return nil
}
