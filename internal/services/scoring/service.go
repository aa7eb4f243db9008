package scoring

import (
	"fmt"

	"github.com/mcoot/wwfstate/internal/model"
)

// AllTilesBonus is added when a play uses a full rack
const AllTilesBonus = 35

// Service scores plays against a board. It holds no state: every call
// works on the board it is given.
type Service struct{}

// New creates a new ScoringService
func New() *Service {
	return &Service{}
}

// PlayWord lays tiles from (row, col) along orientation, filling empty
// slots in order and reading over occupied ones. With commit the tiles are
// placed on the board; without it the board is left untouched.
//
// No dictionary or connectivity checks are made.
func (s *Service) PlayWord(board *model.Board, tiles []model.Tile, row, col int, orientation model.Orientation, commit bool) (*model.MoveResult, error) {
	if !model.InBounds(row, col) {
		return nil, fmt.Errorf("%w: start (%d,%d)", model.ErrInvalidPosition, row, col)
	}
	if !orientation.Valid() {
		return nil, fmt.Errorf("%w: %d", model.ErrInvalidOrientation, orientation)
	}
	if free := emptySlotsFrom(board, row, col, orientation); free < len(tiles) {
		return nil, fmt.Errorf("%w: %d tiles, %d free slots", model.ErrPlayOffBoard, len(tiles), free)
	}

	var (
		primary, adjacentScore, skipped int
		mainWord                        []rune
		words                           []string
		wordModifiers                   []model.Modifier
	)
	pending := tiles
	perpendicular := orientation.Opposite()

	for index := range model.Walk(row, col, orientation, model.Forwards) {
		slot := board.SlotAt(index)

		if slot.Occupied() {
			primary += slot.Tile.Value
			mainWord = append(mainWord, slot.Tile.Letter)
			if len(pending) > 0 {
				skipped++
			}
			continue
		}
		if len(pending) == 0 {
			break
		}

		tile := pending[0]
		pending = pending[1:]
		mainWord = append(mainWord, tile.Letter)

		// Scored before placement; the centre tile is passed explicitly.
		formed := adjacentWords(board, index, tile, perpendicular)
		if err := checkAdjacent(formed, index); err != nil {
			return nil, err
		}
		if commit {
			placed := tile
			slot.Tile = &placed
		}
		if slot.Modifier.IsWordModifier() {
			wordModifiers = append(wordModifiers, slot.Modifier)
		}
		for _, w := range formed {
			adjacentScore += w.score
			words = append(words, w.word)
		}
		primary += letterScore(slot.Modifier, tile)
	}

	// Prefix tiles already on the board count at face value
	prefixRow, prefixCol := step(row, col, orientation, model.Backwards)
	for index := range model.Walk(prefixRow, prefixCol, orientation, model.Backwards) {
		slot := board.SlotAt(index)
		if !slot.Occupied() {
			break
		}
		primary += slot.Tile.Value
		mainWord = append([]rune{slot.Tile.Letter}, mainWord...)
	}

	score := wordScore(primary, wordModifiers)
	if len(tiles) == model.RackCapacity {
		score += AllTilesBonus
	}

	main := string(mainWord)
	return &model.MoveResult{
		Score:        score + adjacentScore,
		SkippedTiles: skipped,
		MainWord:     main,
		Words:        append(words, main),
	}, nil
}

// Move makes a move on the board and records its result on the move.
// PLAY moves are committed and scored; SWAP scores zero; other move types
// do not touch the board and are returned unscored.
func (s *Service) Move(board *model.Board, move *model.Move) (*model.MoveResult, error) {
	switch move.Type {
	case model.MoveTypePlay:
		result, err := s.PlayWord(board, move.Tiles, move.Row, move.Col, move.Orientation, true)
		if err != nil {
			return nil, err
		}
		move.Result = result
		return result, nil
	case model.MoveTypeSwap:
		move.Result = &model.MoveResult{}
		return move.Result, nil
	default:
		return nil, nil
	}
}

// ScoreMove scores a play without placing its tiles
func (s *Service) ScoreMove(board *model.Board, move *model.Move) (*model.MoveResult, error) {
	result, err := s.PlayWord(board, move.Tiles, move.Row, move.Col, move.Orientation, false)
	if err != nil {
		return nil, err
	}
	move.Result = result
	return result, nil
}

// ScoreStatus compares a player's score against their opponent's
func (s *Service) ScoreStatus(mine, theirs int) model.ScoreStatus {
	switch {
	case mine > theirs:
		return model.ScoreStatusWinning
	case mine < theirs:
		return model.ScoreStatusLosing
	default:
		return model.ScoreStatusTied
	}
}

type adjacent struct {
	word  string
	score int
}

// adjacentWords returns the scoring words formed perpendicular to the play
// through index, where tile is being placed
func adjacentWords(board *model.Board, index int, tile model.Tile, orientation model.Orientation) []adjacent {
	row, col := model.RowCol(index)
	if !hasNeighbour(board, row, col, orientation) {
		return nil
	}

	center := board.SlotAt(index)
	word := []rune{tile.Letter}
	score := letterScore(center.Modifier, tile)

	nextRow, nextCol := step(row, col, orientation, model.Forwards)
	for i := range model.Walk(nextRow, nextCol, orientation, model.Forwards) {
		slot := board.SlotAt(i)
		if !slot.Occupied() {
			break
		}
		score += slot.Tile.Value
		word = append(word, slot.Tile.Letter)
	}

	prevRow, prevCol := step(row, col, orientation, model.Backwards)
	for i := range model.Walk(prevRow, prevCol, orientation, model.Backwards) {
		slot := board.SlotAt(i)
		if !slot.Occupied() {
			break
		}
		score += slot.Tile.Value
		word = append([]rune{slot.Tile.Letter}, word...)
	}

	if center.Modifier.IsWordModifier() {
		score = wordScore(score, []model.Modifier{center.Modifier})
	}
	if score == 0 {
		return nil
	}
	return []adjacent{{word: string(word), score: score}}
}

// checkAdjacent enforces that a placed tile adds at most one word across
// the play
func checkAdjacent(formed []adjacent, index int) error {
	if len(formed) > 1 {
		row, col := model.RowCol(index)
		return fmt.Errorf("%w: %d words at (%d,%d)", model.ErrAdjacentWords, len(formed), row, col)
	}
	return nil
}

func hasNeighbour(board *model.Board, row, col int, orientation model.Orientation) bool {
	for _, d := range []model.Direction{model.Backwards, model.Forwards} {
		r, c := step(row, col, orientation, d)
		if model.InBounds(r, c) && board.Slot(r, c).Occupied() {
			return true
		}
	}
	return false
}

func emptySlotsFrom(board *model.Board, row, col int, orientation model.Orientation) int {
	free := 0
	for index := range model.Walk(row, col, orientation, model.Forwards) {
		if !board.SlotAt(index).Occupied() {
			free++
		}
	}
	return free
}

func step(row, col int, orientation model.Orientation, d model.Direction) (int, int) {
	if orientation == model.Horizontal {
		return row, col + int(d)
	}
	return row + int(d), col
}

func letterScore(m model.Modifier, tile model.Tile) int {
	return tile.Value * m.LetterMultiplier()
}

func wordScore(base int, modifiers []model.Modifier) int {
	for _, m := range modifiers {
		base *= m.WordMultiplier()
	}
	return base
}

// ServiceInterface for dependency injection
type ServiceInterface interface {
	PlayWord(board *model.Board, tiles []model.Tile, row, col int, orientation model.Orientation, commit bool) (*model.MoveResult, error)
	Move(board *model.Board, move *model.Move) (*model.MoveResult, error)
	ScoreMove(board *model.Board, move *model.Move) (*model.MoveResult, error)
	ScoreStatus(mine, theirs int) model.ScoreStatus
}

var _ ServiceInterface = (*Service)(nil)
