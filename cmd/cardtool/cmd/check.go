package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/worldicons/worldicons-bot/internal/cards"
	"github.com/worldicons/worldicons-bot/internal/validation"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the data files before the bot reloads them",
	Long: `Check validates cards.json (and tiers.json when present) against the bundled
JSON schemas, then loads them exactly as the bot does. Duplicate keys and a zero
total weight are reported as warnings.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		loader := cards.NewLoader(dataDir(cmd))

		v, err := validation.NewSchemaValidator()
		if err != nil {
			return err
		}

		var failures int
		report := func(path string, err error) {
			if err != nil {
				failures++
				color.New(color.FgRed).Fprintf(out, "❌ %s\n", path)
				fmt.Fprintln(out, err)
				return
			}
			color.New(color.FgGreen).Fprintf(out, "✅ %s\n", path)
		}

		report(loader.CardsPath, v.ValidateFile(loader.CardsPath, validation.SchemaCards))

		if _, err := os.Stat(loader.TiersPath); errors.Is(err, fs.ErrNotExist) {
			color.New(color.FgYellow).Fprintf(out, "ℹ️  %s absent, tiers derived from card weights\n", loader.TiersPath)
		} else {
			report(loader.TiersPath, v.ValidateFile(loader.TiersPath, validation.SchemaTiers))
		}

		if failures > 0 {
			return fmt.Errorf("%d data file(s) failed validation", failures)
		}
		snap, err := loader.Load()
		if err != nil {
			return fmt.Errorf("load failed: %w", err)
		}

		var warnings []string
		for _, key := range snap.DuplicateKeys() {
			warnings = append(warnings, fmt.Sprintf("duplicate key %q: lookups resolve to the first card", key))
		}
		if snap.TotalWeight() <= 0 {
			warnings = append(warnings, "total weight is 0: /lootrate will refuse to compute probabilities")
		}

		fmt.Fprintf(out, "\n%d cards, %d tiers, total weight %d\n", len(snap.Cards()), len(snap.Tiers()), snap.TotalWeight())
		if len(warnings) > 0 {
			color.New(color.FgYellow).Fprintln(out, "\nWarnings:")
			for i, w := range warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, w)
			}
		}

		return nil
	},
}
