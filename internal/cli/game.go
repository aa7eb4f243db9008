package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/wwfstate/internal/model"
	"github.com/mcoot/wwfstate/internal/services/request"
)

func newReconstructCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconstruct <file>",
		Short: "Rebuild racks, board, scores and bag from a game file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState(cmd, args[0])
			if err != nil {
				return err
			}

			result, err := stateResult(state)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newChecksumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checksum <file>",
		Short: "Compute the board checksum of a game file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState(cmd, args[0])
			if err != nil {
				return err
			}

			b, err := app.GameStateHelper.BoardFromState(state)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(ChecksumResult{GameID: state.ID, Checksum: request.Checksum(b)})
			return nil
		},
	}
}

func newPlayCmd() *cobra.Command {
	var (
		moveType string
		tiles    string
		row      int
		col      int
		vertical bool
	)

	cmd := &cobra.Command{
		Use:   "play <file>",
		Short: "Build the submission request for the current player's move",
		Long: `Build the submission request for the current player's move.

Tiles are given by id, comma-separated. A blank takes its letter after a
colon, for example --tiles 12,0:s,40.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedType, err := model.ParseMoveType(strings.ToUpper(moveType))
			if err != nil {
				return err
			}
			parsedTiles, err := parseTiles(tiles)
			if err != nil {
				return err
			}

			state, err := loadState(cmd, args[0])
			if err != nil {
				return err
			}

			orientation := model.Horizontal
			if vertical {
				orientation = model.Vertical
			}
			sub := model.MoveSubmission{
				Type:        parsedType,
				Tiles:       parsedTiles,
				Orientation: orientation,
				PlayStart:   model.Coordinates{X: col, Y: row},
			}

			params, err := app.GameController.PrepareSubmission(cmd.Context(), state, sub)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(submissionResult(params))
			return nil
		},
	}

	cmd.Flags().StringVar(&moveType, "type", string(model.MoveTypePlay), "Move type: PLAY, SWAP, PASS, RESIGN, ...")
	cmd.Flags().StringVar(&tiles, "tiles", "", "Tile ids to play or swap")
	cmd.Flags().IntVar(&row, "row", 0, "Start row")
	cmd.Flags().IntVar(&col, "col", 0, "Start column")
	cmd.Flags().BoolVar(&vertical, "vertical", false, "Play down instead of across")

	return cmd
}

func loadState(cmd *cobra.Command, path string) (*model.GameState, error) {
	skeleton, err := loadGameFile(path)
	if err != nil {
		return nil, err
	}
	return app.GameController.LoadState(cmd.Context(), skeleton)
}

func stateResult(state *model.GameState) (StateResult, error) {
	b, err := app.GameStateHelper.BoardFromState(state)
	if err != nil {
		return StateResult{}, err
	}

	result := StateResult{
		GameID:      state.ID,
		CurrentUser: state.Meta.CurrentMoveUserID,
		Moves:       len(state.Moves),
		Remaining:   tileViews(state.RemainingTiles),
		Board:       app.BoardService.Render(b),
		Checksum:    request.Checksum(b),
	}

	for _, id := range slices.Sorted(maps.Keys(state.Meta.UsersByID)) {
		rack, ok := app.GameStateHelper.RackFor(state, id)
		if !ok {
			return StateResult{}, fmt.Errorf("%w: no rack for user %d", model.ErrPlayersNotFound, id)
		}
		result.Players = append(result.Players, PlayerView{
			UserID: id,
			Name:   state.Meta.UsersByID[id].Name,
			Score:  app.GameStateHelper.Score(state, id),
			Status: string(app.GameStateHelper.ScoreStatus(state, id)),
			Rack:   tileViews(rack.Tiles),
		})
	}
	return result, nil
}
