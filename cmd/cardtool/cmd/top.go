package cmd

import (
	"github.com/spf13/cobra"
)

const defaultTop = 10

// topCmd represents the top command
var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Print the most common cards",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("number")

		snap, err := loadSnapshot(cmd)
		if err != nil {
			return err
		}
		return printCards(cmd, snap, snap.TopCards(n))
	},
}

func init() {
	topCmd.Flags().IntP("number", "n", defaultTop, "Number of cards to show (at least 1)")
}
