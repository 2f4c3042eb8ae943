package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/worldicons/worldicons-bot/internal/cards"
)

const (
	flagDataDir    = "data-dir"
	envDataDir     = "DATA_DIR"
	defaultDataDir = "data"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "cardtool",
	Short: "Inspect and check the World Icons Cards data files",
	Long: `cardtool reads cards.json and tiers.json the same way the bot does.
It validates the files before an edit goes live and prints the resulting loot table.`,
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringP(flagDataDir, "d", defaultDataDir, "Directory holding cards.json and tiers.json (env DATA_DIR)")

	RootCmd.AddCommand(checkCmd)
	RootCmd.AddCommand(ratesCmd)
	RootCmd.AddCommand(tiersCmd)
	RootCmd.AddCommand(topCmd)
}

// dataDir resolves the data directory: flag, then DATA_DIR, then the default.
func dataDir(cmd *cobra.Command) string {
	dir, _ := cmd.Flags().GetString(flagDataDir)
	if !cmd.Flags().Changed(flagDataDir) {
		if env := os.Getenv(envDataDir); env != "" {
			return env
		}
	}
	return dir
}

// loadSnapshot loads the data files through the same repository the bot uses.
func loadSnapshot(cmd *cobra.Command) (*cards.Snapshot, error) {
	repo, err := cards.NewRepository(cards.NewLoader(dataDir(cmd)))
	if err != nil {
		return nil, err
	}
	return repo.Snapshot(), nil
}
