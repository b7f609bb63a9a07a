// Package categorize handles one-off transaction categorization.
package categorize

import (
	"fmt"
	"time"

	"ybarda/heshbon/cmd/root"
	"ybarda/heshbon/internal/categorizer"
	"ybarda/heshbon/internal/currencyutils"
	"ybarda/heshbon/internal/logging"
	"ybarda/heshbon/internal/store"

	"github.com/spf13/cobra"
)

var (
	description string
	merchant    string
	amount      string
)

// Cmd represents the categorize command.
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a single transaction description",
	Long: `Categorize runs one description through the rule tiers (and the remote
model when AI is enabled) and prints the resulting category.`,
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Transaction description (required)")
	Cmd.Flags().StringVarP(&merchant, "merchant", "m", "", "Merchant name (optional)")
	Cmd.Flags().StringVarP(&amount, "amount", "n", "0", "Transaction amount (optional)")
	_ = Cmd.MarkFlagRequired("description")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
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
	if cfg.AI.Enabled {
		timeout := time.Duration(cfg.AI.TimeoutSeconds) * time.Second
		gemini, err := categorizer.NewGeminiClient(cmd.Context(), cfg.AI.APIKey, cfg.AI.Model, timeout, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize AI client: %w", err)
		}
		defer gemini.Close()
		aiClient = gemini
	}

	engine := categorizer.New(aiClient, recipients, keywords, logger)
	result := engine.Categorize(cmd.Context(), categorizer.Request{
		Description: description,
		Merchant:    merchant,
		Amount:      currencyutils.ParseAmount(amount),
	})

	root.Log.Infof("Category: %s", result.Category)
	root.Log.Infof("Confidence: %.2f", result.Confidence)
	root.Log.Infof("Reasoning: %s", result.Reasoning)
	return nil
}
