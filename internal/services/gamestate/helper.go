package gamestate

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/mcoot/wwfstate/internal/dependencies/clock"
	"github.com/mcoot/wwfstate/internal/model"
	"github.com/mcoot/wwfstate/internal/services/bag"
	"github.com/mcoot/wwfstate/internal/services/board"
	"github.com/mcoot/wwfstate/internal/services/scoring"
)

// TimestampLayout is the format the server uses for move and game times
const TimestampLayout = "2006-01-02T15:04:05+00:00"

// Helper answers questions about a game state and derives new states from
// it. It never mutates the states passed in except through AddToScore.
type Helper struct {
	boardService   *board.Service
	scoringService *scoring.Service
	clock          clock.Clock
}

// New creates a new Helper
func New(boardService *board.Service, scoringService *scoring.Service, clock clock.Clock) *Helper {
	return &Helper{
		boardService:   boardService,
		scoringService: scoringService,
		clock:          clock,
	}
}

// OtherUser returns the first user, in id order, who is not uid
func (h *Helper) OtherUser(meta model.GameMeta, uid model.UserID) (model.User, bool) {
	for _, id := range slices.Sorted(maps.Keys(meta.UsersByID)) {
		if id != uid {
			return meta.UsersByID[id], true
		}
	}
	return model.User{}, false
}

// Score returns a user's score, 0 if none is recorded
func (h *Helper) Score(state *model.GameState, uid model.UserID) int {
	return state.Scores[uid]
}

// AddToScore adds amount to a user's score in place and returns the total
func (h *Helper) AddToScore(state *model.GameState, uid model.UserID, amount int) int {
	if state.Scores == nil {
		state.Scores = make(map[model.UserID]int)
	}
	state.Scores[uid] += amount
	return state.Scores[uid]
}

// ScoreStatus compares a user's score with their opponent's
func (h *Helper) ScoreStatus(state *model.GameState, uid model.UserID) model.ScoreStatus {
	theirs := 0
	if other, ok := h.OtherUser(state.Meta, uid); ok {
		theirs = h.Score(state, other.ID)
	}
	return h.scoringService.ScoreStatus(h.Score(state, uid), theirs)
}

// BuildRack wraps tiles in a standard-capacity rack
func (h *Helper) BuildRack(tiles []model.Tile) model.Rack {
	return model.Rack{Capacity: model.RackCapacity, Tiles: tiles}
}

// RackFor returns a user's rack. The second result is false if the state
// holds no rack for them.
func (h *Helper) RackFor(state *model.GameState, uid model.UserID) (model.Rack, bool) {
	tiles, ok := state.Racks[uid]
	if !ok {
		return model.Rack{}, false
	}
	return h.BuildRack(tiles), true
}

// CurrentRack returns the rack of the user whose turn it is
func (h *Helper) CurrentRack(state *model.GameState) model.Rack {
	return h.BuildRack(state.Racks[state.Meta.CurrentMoveUserID])
}

// OtherRack returns the rack of the user waiting for their turn
func (h *Helper) OtherRack(state *model.GameState) (model.Rack, bool) {
	other, ok := h.OtherUser(state.Meta, state.Meta.CurrentMoveUserID)
	if !ok {
		return model.Rack{}, false
	}
	return h.RackFor(state, other.ID)
}

// BoardFromState builds a board holding the state's tiles
func (h *Helper) BoardFromState(state *model.GameState) (*model.Board, error) {
	return h.boardService.FromSlots(state.Board)
}

// GameHasPlays returns true if any PLAY appears in the move log
func (h *Helper) GameHasPlays(state *model.GameState) bool {
	return slices.ContainsFunc(state.Moves, func(m model.MoveData) bool {
		return m.Type == model.MoveTypePlay
	})
}

// SubmissionFromMove converts an engine move into the shape sent to the
// server. Tiles are carried for PLAY and SWAP; position only for PLAY.
func (h *Helper) SubmissionFromMove(move *model.Move) model.MoveSubmission {
	sub := model.MoveSubmission{Type: move.Type}
	if move.Type == model.MoveTypePlay || move.Type == model.MoveTypeSwap {
		sub.Tiles = model.CloneTiles(move.Tiles)
	}
	if move.Type == model.MoveTypePlay {
		sub.Orientation = move.Orientation
		sub.PlayStart = model.Coordinates{X: move.Col, Y: move.Row}
	}
	return sub
}

// MoveFromSubmission converts a submission into an engine move
func (h *Helper) MoveFromSubmission(sub model.MoveSubmission) *model.Move {
	return &model.Move{
		Type:        sub.Type,
		Tiles:       model.CloneTiles(sub.Tiles),
		Row:         sub.PlayStart.Y,
		Col:         sub.PlayStart.X,
		Orientation: sub.Orientation,
	}
}

// MoveFromData converts a PLAY log record into an engine move. A missing
// start defaults to (0,0); the play is horizontal only when it ends to the
// right of where it started.
func (h *Helper) MoveFromData(data model.MoveData) *model.Move {
	var start model.Coordinates
	if data.PlayStart != nil {
		start = *data.PlayStart
	}
	orientation := model.Vertical
	if data.PlayEnd != nil && start.X < data.PlayEnd.X {
		orientation = model.Horizontal
	}
	return model.NewPlay(data.Tiles, start.Y, start.X, orientation)
}

// SecondsSince returns the whole seconds elapsed since a server timestamp
func (h *Helper) SecondsSince(timestamp string) (int, error) {
	t, err := time.Parse(TimestampLayout, timestamp)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", model.ErrInvalidTimestamp, timestamp, err)
	}
	return int(clock.Since(h.clock, t) / time.Second), nil
}

// ReconstructBag replays the bag draws implied by a reconstructed move log:
// the opening deal, a refill after every PLAY and a pull-then-return for
// every SWAP.
func (h *Helper) ReconstructBag(state *model.GameState) (*bag.Bag, error) {
	b := bag.New(state.Meta.RandomSeed)
	if _, err := b.PullTiles(model.RackCapacity * 2); err != nil {
		return nil, err
	}

	for i, m := range state.Moves {
		switch m.Type {
		case model.MoveTypePlay:
			if _, err := b.PullTiles(min(b.Len(), len(m.Tiles))); err != nil {
				return nil, fmt.Errorf("move %d: %w", i, err)
			}
		case model.MoveTypeSwap:
			if _, err := b.PullTiles(len(m.Tiles)); err != nil {
				return nil, fmt.Errorf("move %d: %w", i, err)
			}
			b.ReturnTiles(model.UnassignedTiles(m.Tiles))
		}
	}
	return b, nil
}

// ApplyMove returns the state after the current user makes move. The move
// is validated first; on error the input is untouched and no state is
// returned. The move is recorded in the log so the result can itself be
// replayed. PLAY, SWAP and PASS are supported.
func (h *Helper) ApplyMove(state *model.GameState, move *model.Move) (*model.GameState, error) {
	moverID := state.Meta.CurrentMoveUserID
	rack, ok := state.Racks[moverID]
	if !ok {
		return nil, fmt.Errorf("%w: no rack for current user %d", model.ErrPlayersNotFound, moverID)
	}
	other, ok := h.OtherUser(state.Meta, moverID)
	if !ok {
		return nil, fmt.Errorf("%w: no opponent for user %d", model.ErrPlayersNotFound, moverID)
	}

	switch move.Type {
	case model.MoveTypePlay:
		if err := h.boardService.ValidatePlay(move, rack); err != nil {
			return nil, err
		}
	case model.MoveTypeSwap:
		if err := h.boardService.ValidateTilesInRack(move.Tiles, rack); err != nil {
			return nil, err
		}
		if len(move.Tiles) > len(state.RemainingTiles) {
			return nil, fmt.Errorf("%w: swapping %d tiles with %d in the bag",
				model.ErrInvalidSubmission, len(move.Tiles), len(state.RemainingTiles))
		}
	case model.MoveTypePass:
	default:
		return nil, fmt.Errorf("%w: %s", model.ErrUnsupportedMove, move.Type)
	}

	out := state.Clone()
	brd, err := h.BoardFromState(out)
	if err != nil {
		return nil, err
	}
	if _, err := h.scoringService.Move(brd, move); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrInvalidSubmission, err)
	}

	record, err := h.logRecord(brd, move, moverID)
	if err != nil {
		return nil, err
	}

	tileBag, err := h.ReconstructBag(out)
	if err != nil {
		return nil, err
	}

	remaining := model.CloneTiles(rack)
	for _, t := range move.Tiles {
		if idx := model.IndexOfTile(remaining, t.ID); idx >= 0 {
			remaining = slices.Delete(remaining, idx, idx+1)
		}
	}
	drawn, err := tileBag.PullTiles(min(tileBag.Len(), len(move.Tiles)))
	if err != nil {
		return nil, err
	}
	out.Racks[moverID] = append(remaining, drawn...)

	if move.Type == model.MoveTypeSwap {
		tileBag.ReturnTiles(model.UnassignedTiles(move.Tiles))
	}

	if move.Result != nil {
		h.AddToScore(out, moverID, move.Result.Score)
	}
	out.Meta.CurrentMoveUserID = other.ID
	out.RemainingTiles = tileBag.RemainingInPullOrder()
	out.Board = brd.Slots
	out.Moves = append(out.Moves, record)
	return out, nil
}

func (h *Helper) logRecord(brd *model.Board, move *model.Move, moverID model.UserID) (model.MoveData, error) {
	record := model.MoveData{
		Type:   move.Type,
		UserID: moverID,
		Tiles:  model.CloneTiles(move.Tiles),
	}

	switch move.Type {
	case model.MoveTypePlay:
		text, err := h.boardService.EncodePlayText(brd, move)
		if err != nil {
			return model.MoveData{}, err
		}
		points := move.Result.Score
		record.Text = text.Text
		record.PlayStart = &text.From
		record.PlayEnd = &text.To
		record.Points = &points
	case model.MoveTypeSwap:
		record.Text = h.boardService.EncodeSwapText(move.Tiles)
	}
	return record, nil
}
