package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/wwfstate/internal/services/bag"
)

func newBagCmd() *cobra.Command {
	var (
		seed  uint64
		limit int
	)

	cmd := &cobra.Command{
		Use:   "bag",
		Short: "Show the order a fresh bag deals its tiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			tiles := bag.New(seed).RemainingInPullOrder()
			if limit > 0 && limit < len(tiles) {
				tiles = tiles[:limit]
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(BagResult{Seed: seed, Tiles: tileViews(tiles)})
			return nil
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "Game random seed")
	cmd.Flags().IntVar(&limit, "limit", 0, "Show only the first N tiles")
	_ = cmd.MarkFlagRequired("seed")

	return cmd
}
