package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/wwfstate/internal/model"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the reconstruction cache",
	}

	cmd.AddCommand(newCacheListCmd())
	cmd.AddCommand(newCacheEvictCmd())

	return cmd
}

func newCacheListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached games",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := app.GameController.ListCached(cmd.Context())
			if err != nil {
				return err
			}
			if ids == nil {
				ids = []model.GameID{}
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(CacheResult{GameIDs: ids})
			return nil
		},
	}
}

func newCacheEvictCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "evict <game-id>",
		Short: "Drop a game's cached reconstruction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid game id %q: %w", args[0], err)
			}

			if err := app.GameController.Evict(cmd.Context(), model.GameID(id)); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage(fmt.Sprintf("Evicted game %d", id))
			return nil
		},
	}
}
