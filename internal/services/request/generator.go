// Package request builds the parameters a client sends to submit a move.
// The server checks them against its own state, so each value must be
// computed exactly as the official client does.
package request

import (
	"fmt"
	"strings"

	"github.com/mcoot/wwfstate/internal/model"
	"github.com/mcoot/wwfstate/internal/services/board"
	"github.com/mcoot/wwfstate/internal/services/gamestate"
	"github.com/mcoot/wwfstate/internal/services/scoring"
)

// from_x values that mark non-play moves
const (
	FromXTie      = 96
	FromXDecline  = 97
	FromXResign   = 99
	FromXGameOver = 100
	FromXSwap     = 101
)

// Promoted values
const (
	PromotedHorizontal = 1
	PromotedVertical   = 2
	PromotedFinal      = 3
)

// MoveParams are the fields of a move submission request
type MoveParams struct {
	GameID        model.GameID
	MoveIndex     int
	FromX         int
	FromY         int
	ToX           int
	ToY           int
	Text          string
	Words         []string
	Promoted      int
	Points        int
	BoardChecksum int32
}

// Generator computes move submission parameters
type Generator struct {
	boardService   *board.Service
	scoringService *scoring.Service
	helper         *gamestate.Helper
}

// New creates a new Generator
func New(boardService *board.Service, scoringService *scoring.Service, helper *gamestate.Helper) *Generator {
	return &Generator{
		boardService:   boardService,
		scoringService: scoringService,
		helper:         helper,
	}
}

// Checksum folds the board's occupancy into 32 bits: scanning row-major,
// each slot XORs in its tile id (-1 when empty) and, when that value is
// non-zero, a bit that cycles through positions 0..31.
func Checksum(b *model.Board) int32 {
	var a int32
	bit := 0
	for i := range b.Slots {
		value := int32(-1)
		if t := b.Slots[i].Tile; t != nil {
			value = int32(t.ID)
		}
		a ^= value
		if value != 0 {
			a ^= int32(uint32(1) << bit)
		}
		bit = (bit + 1) % 32
	}
	return a
}

// Promoted returns the promoted flag for a move given how many tiles remain
// in the bag. A nil move is treated as playing nothing.
func Promoted(remaining int, move *model.Move) int {
	played, words := 0, 0
	if move != nil {
		played = len(move.Tiles)
		if move.Result != nil {
			words = len(move.Result.Words)
		}
	}

	switch {
	case remaining-played == 1 && words > 1:
		return PromotedFinal
	case move != nil && move.Orientation == model.Horizontal:
		return PromotedHorizontal
	default:
		return PromotedVertical
	}
}

// PlayParams encodes a play that has already been committed to b
func (g *Generator) PlayParams(b *model.Board, move *model.Move) (*board.PlayText, error) {
	return g.boardService.EncodePlayText(b, move)
}

// SwapText encodes swapped tiles
func (g *Generator) SwapText(tiles []model.Tile) string {
	return g.boardService.EncodeSwapText(tiles)
}

// MoveParams computes the request for the current user making sub. The
// state is not modified. Plays are validated against the mover's rack and
// committed to a scratch board so the checksum reflects the result.
func (g *Generator) MoveParams(state *model.GameState, sub model.MoveSubmission) (*MoveParams, error) {
	b, err := g.helper.BoardFromState(state)
	if err != nil {
		return nil, err
	}

	params := &MoveParams{
		GameID:    state.ID,
		MoveIndex: len(state.Moves),
	}
	var played *model.Move

	switch sub.Type {
	case model.MoveTypePlay:
		move := g.helper.MoveFromSubmission(sub)
		rack := g.helper.CurrentRack(state)
		if err := g.boardService.ValidatePlay(move, rack.Tiles); err != nil {
			return nil, err
		}
		result, err := g.scoringService.Move(b, move)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", model.ErrInvalidSubmission, err)
		}
		text, err := g.PlayParams(b, move)
		if err != nil {
			return nil, err
		}

		params.Points = result.Score
		params.FromX, params.FromY = text.From.X, text.From.Y
		params.ToX, params.ToY = text.To.X, text.To.Y
		params.Text = text.Text
		params.Words = make([]string, len(result.Words))
		for i, w := range result.Words {
			params.Words[i] = strings.ToLower(w)
		}
		played = move
	case model.MoveTypePass:
	case model.MoveTypeSwap:
		rack := g.helper.CurrentRack(state)
		if err := g.boardService.ValidateTilesInRack(sub.Tiles, rack.Tiles); err != nil {
			return nil, err
		}
		params.FromX = FromXSwap
		params.Text = g.SwapText(sub.Tiles)
	case model.MoveTypeTie:
		params.FromX = FromXTie
	case model.MoveTypeDecline:
		params.FromX = FromXDecline
	case model.MoveTypeResign:
		params.FromX = FromXResign
	case model.MoveTypeGameOver:
		params.FromX = FromXGameOver
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnsupportedMove, sub.Type)
	}

	params.BoardChecksum = Checksum(b)
	params.Promoted = Promoted(len(state.RemainingTiles), played)
	return params, nil
}
