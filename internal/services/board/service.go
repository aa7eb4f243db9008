package board

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/mcoot/wwfstate/internal/model"
)

// Service provides board construction, play validation and encoding
type Service struct{}

// New creates a new BoardService
func New() *Service {
	return &Service{}
}

// FromSlots builds a board from a state's slot list. An empty list yields a
// fresh board; anything else must hold exactly one entry per slot.
// The slots are deep-copied.
func (s *Service) FromSlots(slots []model.Slot) (*model.Board, error) {
	if len(slots) == 0 {
		return model.NewBoard(), nil
	}
	if len(slots) != model.SlotCount {
		return nil, fmt.Errorf("%w: %d slots, expected %d", model.ErrInvalidBoard, len(slots), model.SlotCount)
	}
	return &model.Board{Slots: model.CloneSlots(slots)}, nil
}

// ValidatePlay checks a PLAY before it touches a board: the start must be
// on the board, the orientation known, and every tile must come from rack.
func (s *Service) ValidatePlay(move *model.Move, rack []model.Tile) error {
	if len(move.Tiles) == 0 {
		return fmt.Errorf("%w: no tiles played", model.ErrInvalidSubmission)
	}
	if !move.InBounds() {
		return fmt.Errorf("%w: %w: start (%d,%d)", model.ErrInvalidSubmission, model.ErrInvalidPosition, move.Row, move.Col)
	}
	if !move.Orientation.Valid() {
		return fmt.Errorf("%w: %w", model.ErrInvalidSubmission, model.ErrInvalidOrientation)
	}
	return s.ValidateTilesInRack(move.Tiles, rack)
}

// ValidateTilesInRack checks every tile id is held in rack, counting
// repeats, and that no tile is played twice
func (s *Service) ValidateTilesInRack(tiles []model.Tile, rack []model.Tile) error {
	remaining := model.CloneTiles(rack)
	for _, t := range tiles {
		idx := model.IndexOfTile(remaining, t.ID)
		if idx < 0 {
			return fmt.Errorf("%w: %w: tile %d", model.ErrInvalidSubmission, model.ErrTileNotInRack, t.ID)
		}
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return nil
}

// PlayText is the wire encoding of a committed play
type PlayText struct {
	From model.Coordinates
	To   model.Coordinates
	Text string
}

// EncodePlayText walks a committed play from its start. Slots holding one
// of the played tiles are written as "id," (blanks as "id,letter,");
// existing tiles walked over are written as "*,". To is the slot of the
// last played tile.
func (s *Service) EncodePlayText(board *model.Board, move *model.Move) (*PlayText, error) {
	var sb strings.Builder
	pending := move.Tiles
	row, col := move.Row, move.Col

	for len(pending) > 0 {
		if !model.InBounds(row, col) {
			return nil, fmt.Errorf("%w: play runs past (%d,%d)", model.ErrPlayOffBoard, row, col)
		}
		slot := board.Slot(row, col)
		if !slot.Occupied() {
			return nil, fmt.Errorf("%w: slot (%d,%d) is empty, play was not committed", model.ErrInvalidSubmission, row, col)
		}

		if slot.Tile.ID == pending[0].ID {
			played := pending[0]
			pending = pending[1:]
			sb.WriteString(strconv.Itoa(played.ID))
			sb.WriteByte(',')
			if played.IsBlank() {
				sb.WriteRune(unicode.ToLower(played.Letter))
				sb.WriteByte(',')
			}
		} else {
			sb.WriteString("*,")
		}

		if len(pending) > 0 {
			if move.Orientation == model.Horizontal {
				col++
			} else {
				row++
			}
		}
	}

	return &PlayText{
		From: model.Coordinates{X: move.Col, Y: move.Row},
		To:   model.Coordinates{X: col, Y: row},
		Text: sb.String(),
	}, nil
}

// EncodeSwapText writes swapped tiles as "id," each
func (s *Service) EncodeSwapText(tiles []model.Tile) string {
	var sb strings.Builder
	for _, t := range tiles {
		sb.WriteString(strconv.Itoa(t.ID))
		sb.WriteByte(',')
	}
	return sb.String()
}

// Render draws the board with column and row labels. Blanks are shown in
// lower case. Empty slots show their modifier: - DL, = TL, + DW, # TW.
func (s *Service) Render(board *model.Board) string {
	var sb strings.Builder
	sb.WriteString("   ")
	for col := range model.BoardSize {
		fmt.Fprintf(&sb, "%2d", col)
	}
	sb.WriteByte('\n')

	for row := range model.BoardSize {
		fmt.Fprintf(&sb, "%2d ", row)
		for col := range model.BoardSize {
			slot := board.Slot(row, col)
			sb.WriteByte(' ')
			switch {
			case slot.Occupied() && slot.Tile.IsBlank():
				sb.WriteRune(unicode.ToLower(slot.Tile.Letter))
			case slot.Occupied():
				sb.WriteRune(slot.Tile.Letter)
			default:
				sb.WriteByte(modifierGlyph(slot.Modifier))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func modifierGlyph(m model.Modifier) byte {
	switch m {
	case model.ModifierDoubleLetter:
		return '-'
	case model.ModifierTripleLetter:
		return '='
	case model.ModifierDoubleWord:
		return '+'
	case model.ModifierTripleWord:
		return '#'
	default:
		return '.'
	}
}

// Interface for dependency injection
type ServiceInterface interface {
	FromSlots(slots []model.Slot) (*model.Board, error)
	ValidatePlay(move *model.Move, rack []model.Tile) error
	ValidateTilesInRack(tiles []model.Tile, rack []model.Tile) error
	EncodePlayText(board *model.Board, move *model.Move) (*PlayText, error)
	EncodeSwapText(tiles []model.Tile) string
	Render(board *model.Board) string
}

var _ ServiceInterface = (*Service)(nil)
