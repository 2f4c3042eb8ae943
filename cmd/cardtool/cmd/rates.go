package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/worldicons/worldicons-bot/internal/cards"
	"github.com/worldicons/worldicons-bot/internal/domain"
)

// ratesCmd represents the rates command
var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Print every card with its loot probability",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot(cmd)
		if err != nil {
			return err
		}
		if snap.TotalWeight() <= 0 {
			return domain.ErrNoWeight
		}
		return printCards(cmd, snap, snap.Cards())
	},
}

// printCards writes one aligned row per card.
func printCards(cmd *cobra.Command, snap *cards.Snapshot, list []domain.Card) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	header := color.New(color.Bold).SprintFunc()
	fmt.Fprintln(w, header("NAME\tKEY\tTIER\tWEIGHT\tPROBABILITY"))
	for _, c := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.3f%%\n", c.Name, c.Key, snap.TierForCard(c), c.Weight, snap.Probability(c)*100)
	}
	return w.Flush()
}
