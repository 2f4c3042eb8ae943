package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// tiersCmd represents the tiers command
var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "Print the weight and share of each rarity tier",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot(cmd)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		header := color.New(color.Bold).SprintFunc()
		fmt.Fprintln(w, header("TIER\tCARDS\tWEIGHT\tSHARE"))
		for _, t := range snap.SummaryByTier() {
			fmt.Fprintf(w, "%s\t%d\t%d\t%.2f%%\n", t.Name, t.Cards, t.Weight, t.Percent)
		}
		return w.Flush()
	},
}
