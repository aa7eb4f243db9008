package game

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"log/slog"
	"maps"
	"slices"

	"golang.org/x/crypto/blake2b"

	"github.com/mcoot/wwfstate/internal/dependencies/clock"
	"github.com/mcoot/wwfstate/internal/model"
	"github.com/mcoot/wwfstate/internal/services/board"
	"github.com/mcoot/wwfstate/internal/services/gamestate"
	"github.com/mcoot/wwfstate/internal/services/reconstruct"
	"github.com/mcoot/wwfstate/internal/services/request"
	"github.com/mcoot/wwfstate/internal/services/scoring"
	"github.com/mcoot/wwfstate/internal/storage"
)

// Controller serves reconstructed game states, caching them in storage
// keyed by a fingerprint of the seed and move log
type Controller struct {
	storage        storage.Storage
	boardService   *board.Service
	scoringService *scoring.Service
	helper         *gamestate.Helper
	reconstructor  *reconstruct.Reconstructor
	generator      *request.Generator
	clock          clock.Clock
	logger         *slog.Logger
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	boardService *board.Service,
	scoringService *scoring.Service,
	helper *gamestate.Helper,
	reconstructor *reconstruct.Reconstructor,
	generator *request.Generator,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		storage:        storage,
		boardService:   boardService,
		scoringService: scoringService,
		helper:         helper,
		reconstructor:  reconstructor,
		generator:      generator,
		clock:          clock,
		logger:         logger.With(slog.String("component", "game")),
	}
}

// LoadState returns the full state for a skeleton holding the server's
// metadata and move log. A cached snapshot is used when its fingerprint
// matches; otherwise the state is reconstructed and cached. Cache failures
// never fail the call.
func (c *Controller) LoadState(ctx context.Context, skeleton *model.GameState) (*model.GameState, error) {
	fingerprint := Fingerprint(skeleton)
	logger := c.logger.With(slog.Int64("game_id", int64(skeleton.ID)))

	snap, err := c.storage.GetSnapshot(ctx, skeleton.ID)
	switch {
	case err == nil && snap.Fingerprint == fingerprint:
		logger.Debug("snapshot hit")
		return snap.State, nil
	case err == nil:
		logger.Debug("snapshot stale")
	case errors.Is(err, model.ErrSnapshotNotFound):
	default:
		logger.Warn("failed to read snapshot", slog.Any("error", err))
	}

	state, err := c.reconstructor.Reconstruct(skeleton)
	if err != nil {
		logger.Error("reconstruction failed", slog.Any("error", err))
		return nil, err
	}

	err = c.storage.SaveSnapshot(ctx, &model.Snapshot{
		GameID:      skeleton.ID,
		Fingerprint: fingerprint,
		State:       state,
		CreatedAt:   c.clock.Now(),
	})
	if err != nil {
		logger.Warn("failed to save snapshot", slog.Any("error", err))
	}

	logger.Info("state reconstructed",
		slog.Int("moves", len(state.Moves)),
		slog.Int("remaining_tiles", len(state.RemainingTiles)),
	)
	return state, nil
}

// PreviewMove scores a play against the state's board without changing it
func (c *Controller) PreviewMove(ctx context.Context, state *model.GameState, move *model.Move) (*model.MoveResult, error) {
	b, err := c.helper.BoardFromState(state)
	if err != nil {
		return nil, err
	}
	return c.scoringService.ScoreMove(b, move)
}

// ApplyMove returns the state after the current user makes move
func (c *Controller) ApplyMove(ctx context.Context, state *model.GameState, move *model.Move) (*model.GameState, error) {
	next, err := c.helper.ApplyMove(state, move)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("move applied",
		slog.Int64("game_id", int64(state.ID)),
		slog.String("type", string(move.Type)),
		slog.Int("moves", len(next.Moves)),
	)
	return next, nil
}

// PrepareSubmission builds the request parameters for the current user
func (c *Controller) PrepareSubmission(ctx context.Context, state *model.GameState, sub model.MoveSubmission) (*request.MoveParams, error) {
	return c.generator.MoveParams(state, sub)
}

// Render draws the state's board
func (c *Controller) Render(state *model.GameState) (string, error) {
	b, err := c.helper.BoardFromState(state)
	if err != nil {
		return "", err
	}
	return c.boardService.Render(b), nil
}

// Evict drops a game's cached snapshot
func (c *Controller) Evict(ctx context.Context, id model.GameID) error {
	if err := c.storage.DeleteSnapshot(ctx, id); err != nil {
		return err
	}
	c.logger.Info("snapshot evicted", slog.Int64("game_id", int64(id)))
	return nil
}

// ListCached returns the ids of games with cached snapshots
func (c *Controller) ListCached(ctx context.Context) ([]model.GameID, error) {
	return c.storage.ListSnapshots(ctx)
}

// Fingerprint hashes everything a reconstruction depends on: the seed, the
// creator, the participants and the move log
func Fingerprint(skeleton *model.GameState) string {
	h, _ := blake2b.New256(nil)
	meta := skeleton.Meta

	fmt.Fprintf(h, "seed=%d;creator=%d;", meta.RandomSeed, meta.CreatedByUserID)
	for _, id := range slices.Sorted(maps.Keys(meta.UsersByID)) {
		fmt.Fprintf(h, "user=%d;", id)
	}
	for _, m := range skeleton.Moves {
		fmt.Fprintf(h, "move=%s|%d|%q|", m.Type, m.UserID, m.Text)
		writeCoordinates(h, m.PlayStart)
		writeCoordinates(h, m.PlayEnd)
		if m.Points != nil {
			fmt.Fprintf(h, "%d", *m.Points)
		}
		fmt.Fprint(h, ";")
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeCoordinates(h hash.Hash, c *model.Coordinates) {
	if c == nil {
		fmt.Fprint(h, "-|")
		return
	}
	fmt.Fprintf(h, "%d,%d|", c.X, c.Y)
}
