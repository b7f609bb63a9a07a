// Package rules handles inspection of the external categorization rule tables.
package rules

import (
	"ybarda/heshbon/cmd/root"
	"ybarda/heshbon/internal/store"

	"github.com/spf13/cobra"
)

// Cmd represents the rules command.
var Cmd = &cobra.Command{
	Use:   "rules",
	Short: "Check the external rule tables",
	Long: `Rules loads the recipient and keyword tables from their configured
locations and reports what was found. Useful to verify a rules deployment
before running an import.`,
	RunE: rulesFunc,
}

func rulesFunc(cmd *cobra.Command, args []string) error {
	cfg := root.Cfg
	ruleStore := store.NewRuleStore(cfg.Rules.RecipientsFile, cfg.Rules.KeywordsFile)

	recipients, err := ruleStore.LoadRecipientRules()
	if err != nil {
		return err
	}
	keywords, err := ruleStore.LoadKeywordGroups()
	if err != nil {
		return err
	}

	if len(recipients) == 0 {
		root.Log.Warn("No recipient rules loaded; transfer recipients will fall through to keyword matching")
	} else {
		root.Log.Infof("Loaded %d recipient rules", len(recipients))
		for i, rule := range recipients {
			root.Log.Debugf("rule %d: category=%s confidence=%.2f any_of=%d all_of=%d",
				i, rule.Category, rule.Confidence, len(rule.AnyOf), len(rule.AllOf))
		}
	}

	if len(keywords) == 0 {
		root.Log.Info("No keyword overrides; using the built-in bilingual table")
	} else {
		root.Log.Infof("Loaded %d keyword groups", len(keywords))
	}
	return nil
}
