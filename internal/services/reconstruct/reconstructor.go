// Package reconstruct rebuilds the hidden parts of a game from its seed and
// move log: both racks, the board, the scores and the bag's pull order.
package reconstruct

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/mcoot/wwfstate/internal/model"
	"github.com/mcoot/wwfstate/internal/services/bag"
	"github.com/mcoot/wwfstate/internal/services/gamestate"
	"github.com/mcoot/wwfstate/internal/services/scoring"
)

// skipToken marks a slot the mover played through
const skipToken = "*"

// Reconstructor replays move logs
type Reconstructor struct {
	scoringService *scoring.Service
	helper         *gamestate.Helper
	logger         *slog.Logger
}

// New creates a new Reconstructor
func New(scoringService *scoring.Service, helper *gamestate.Helper, logger *slog.Logger) *Reconstructor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Reconstructor{
		scoringService: scoringService,
		helper:         helper,
		logger:         logger.With(slog.String("component", "reconstruct")),
	}
}

// replay is the running state of one reconstruction
type replay struct {
	bag    *bag.Bag
	board  *model.Board
	racks  map[model.UserID][]model.Tile
	scores map[model.UserID]int
	moves  []model.MoveData
}

// Reconstruct rebuilds racks, board, scores and remaining tiles from the
// state's seed and move log. The input is not modified. Any inconsistency
// between the log and the replay is returned as an error wrapping
// ErrDesync, and no partial state is returned.
func (r *Reconstructor) Reconstruct(state *model.GameState) (*model.GameState, error) {
	player1, player2, err := players(state.Meta)
	if err != nil {
		return nil, err
	}

	logger := r.logger.With(slog.Int64("game_id", int64(state.ID)))

	rp := &replay{
		bag:    bag.New(state.Meta.RandomSeed),
		board:  model.NewBoard(),
		racks:  make(map[model.UserID][]model.Tile, 2),
		scores: map[model.UserID]int{player1: 0, player2: 0},
		moves:  make([]model.MoveData, 0, len(state.Moves)),
	}

	for _, uid := range []model.UserID{player1, player2} {
		tiles, err := rp.bag.PullTiles(model.RackCapacity)
		if err != nil {
			return nil, fmt.Errorf("%w: opening deal: %w", model.ErrDesync, err)
		}
		rp.racks[uid] = tiles
	}

	current, other := player1, player2
	for i, record := range state.Moves {
		if record.UserID != 0 && record.UserID != current {
			logger.Warn("move record names a different mover",
				slog.Int("move", i),
				slog.Int64("expected_user", int64(current)),
				slog.Int64("record_user", int64(record.UserID)),
			)
		}

		applied, err := r.replayMove(rp, record.Clone(), current, logger.With(slog.Int("move", i)))
		if err != nil {
			return nil, fmt.Errorf("%w: move %d (%s): %w", model.ErrDesync, i, record.Type, err)
		}
		rp.moves = append(rp.moves, applied)
		current, other = other, current
	}

	out := state.Clone()
	out.Racks = rp.racks
	out.Board = rp.board.Slots
	out.Scores = rp.scores
	out.RemainingTiles = rp.bag.RemainingInPullOrder()
	out.Moves = rp.moves

	logger.Debug("state reconstructed",
		slog.Int("moves", len(rp.moves)),
		slog.Int("remaining_tiles", len(out.RemainingTiles)),
	)
	return out, nil
}

func (r *Reconstructor) replayMove(rp *replay, record model.MoveData, mover model.UserID, logger *slog.Logger) (model.MoveData, error) {
	if record.Type != model.MoveTypePlay && record.Type != model.MoveTypeSwap {
		return record, nil
	}

	if record.Type == model.MoveTypePlay && isDiagonal(record) {
		return record, model.ErrDiagonalMove
	}

	// An empty text is the server's closing move once no play is possible
	var (
		played   []model.Tile
		returned []model.Tile
	)
	if record.Text != "" {
		rack := rp.racks[mover]
		tiles, rest, err := parseText(record.Text, rack, record.Type == model.MoveTypePlay)
		if err != nil {
			return record, err
		}
		rp.racks[mover] = rest
		played = tiles
		record.Tiles = tiles

		switch record.Type {
		case model.MoveTypeSwap:
			returned = model.UnassignedTiles(tiles)
		case model.MoveTypePlay:
			result, err := r.scoringService.Move(rp.board, r.helper.MoveFromData(record))
			if err != nil {
				return record, err
			}
			rp.scores[mover] += result.Score
			if record.Points != nil && *record.Points != result.Score {
				logger.Warn("reported points differ from computed score",
					slog.Int("reported", *record.Points),
					slog.Int("computed", result.Score),
				)
			}
		}
	}

	for range len(played) {
		if !rp.bag.TilesLeft() {
			break
		}
		if len(rp.racks[mover]) >= model.RackCapacity {
			return record, model.ErrRackOverflow
		}
		tile, err := rp.bag.PullTile()
		if err != nil {
			return record, err
		}
		rp.racks[mover] = append(rp.racks[mover], tile)
	}
	rp.bag.ReturnTiles(returned)

	return record, nil
}

// parseText resolves a move's comma-separated tokens against the mover's
// rack. It returns the tiles in play order and the rack without them.
// A played blank must be followed by its letter; a swapped blank may be.
func parseText(text string, rack []model.Tile, play bool) ([]model.Tile, []model.Tile, error) {
	tokens := strings.Split(text, ",")
	rest := model.CloneTiles(rack)
	var tiles []model.Tile

	for i := 0; i < len(tokens); i++ {
		token := strings.TrimSpace(tokens[i])
		if token == skipToken {
			continue
		}
		// Trailing comma
		if token == "" && i == len(tokens)-1 {
			break
		}

		id, err := strconv.Atoi(token)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: token %q", model.ErrMalformedText, token)
		}
		tile, err := model.TileWithID(id)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %d", err, id)
		}

		idx := model.IndexOfTile(rest, id)
		if idx < 0 {
			return nil, nil, fmt.Errorf("%w: tile %d (%c)", model.ErrTileNotInRack, id, tile.Letter)
		}
		rest = append(rest[:idx], rest[idx+1:]...)

		if tile.IsBlank() {
			letter, ok := blankLetter(tokens, i+1)
			switch {
			case ok:
				tile = tile.WithLetter(letter)
				i++
			case play:
				return nil, nil, fmt.Errorf("%w: blank %d has no letter", model.ErrMalformedText, id)
			}
		}
		tiles = append(tiles, tile)
	}
	return tiles, rest, nil
}

// blankLetter reads tokens[i] as a blank's assigned letter
func blankLetter(tokens []string, i int) (rune, bool) {
	if i >= len(tokens) {
		return 0, false
	}
	r := []rune(strings.TrimSpace(tokens[i]))
	if len(r) != 1 || !unicode.IsLetter(r[0]) {
		return 0, false
	}
	if _, ok := model.LetterValue(r[0]); !ok {
		return 0, false
	}
	return r[0], true
}

func isDiagonal(record model.MoveData) bool {
	if record.PlayEnd == nil {
		return false
	}
	var start model.Coordinates
	if record.PlayStart != nil {
		start = *record.PlayStart
	}
	return record.PlayEnd.X != start.X && record.PlayEnd.Y != start.Y
}

// players returns the game creator and their opponent
func players(meta model.GameMeta) (model.UserID, model.UserID, error) {
	var creator, opponent model.UserID
	var foundCreator, foundOpponent bool
	for id := range meta.UsersByID {
		if id == meta.CreatedByUserID {
			creator, foundCreator = id, true
		} else if !foundOpponent || id < opponent {
			opponent, foundOpponent = id, true
		}
	}
	if !foundCreator || !foundOpponent {
		return 0, 0, fmt.Errorf("%w: %w", model.ErrDesync, model.ErrPlayersNotFound)
	}
	return creator, opponent, nil
}
