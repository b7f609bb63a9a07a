// Package root contains the root command for the application.
package root

import (
	"ybarda/heshbon/internal/common"
	"ybarda/heshbon/internal/config"
	"ybarda/heshbon/internal/currencyutils"
	"ybarda/heshbon/internal/fileutils"
	"ybarda/heshbon/internal/genericparser"
	"ybarda/heshbon/internal/ibiparser"
	"ybarda/heshbon/internal/leumiparser"
	"ybarda/heshbon/internal/maxparser"
	"ybarda/heshbon/internal/phoenixparser"
	"ybarda/heshbon/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags holds the flags shared by multiple commands.
type CommonFlags struct {
	Input     string
	Output    string
	Source    string
	AccountID string
}

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg is the resolved configuration, populated before any command runs.
	Cfg *config.Config

	// SharedFlags are accessible to all commands.
	SharedFlags = CommonFlags{}

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "heshbon",
		Short: "Import, categorize and normalize bank and broker exports.",
		Long: `heshbon ingests raw bank, card, savings and equity-vesting exports,
detects their format, categorizes every transaction and writes a normalized CSV.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to heshbon!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				return err
			}
			Cfg = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)

			// Cascade the configured logger to every leaf package.
			common.SetLogger(Log)
			currencyutils.SetLogger(Log)
			fileutils.SetLogger(Log)
			store.SetLogger(Log)
			leumiparser.SetLogger(Log)
			maxparser.SetLogger(Log)
			phoenixparser.SetLogger(Log)
			ibiparser.SetLogger(Log)
			genericparser.SetLogger(Log)
			return nil
		},
	}
)

// Init initializes the root command and all shared flags.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output CSV file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Source, "source", "s", "", "Source tag (ledger_flat, ledger_html, card_csv, savings_csv, vesting_csv, generic_csv)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.AccountID, "account", "a", "", "Account identifier (overrides import.account_id)")
}
