package model

import "fmt"

// MoveType identifies the kind of turn taken
type MoveType string

const (
	MoveTypePlay     MoveType = "PLAY"
	MoveTypeSwap     MoveType = "SWAP"
	MoveTypePass     MoveType = "PASS"
	MoveTypeTie      MoveType = "TIE"
	MoveTypeDecline  MoveType = "DECLINE"
	MoveTypeResign   MoveType = "RESIGN"
	MoveTypeGameOver MoveType = "GAME_OVER"
)

// ParseMoveType converts a wire name into a MoveType
func ParseMoveType(s string) (MoveType, error) {
	switch t := MoveType(s); t {
	case MoveTypePlay, MoveTypeSwap, MoveTypePass, MoveTypeTie,
		MoveTypeDecline, MoveTypeResign, MoveTypeGameOver:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMove, s)
	}
}

// Coordinates is a board position as the server reports it
type Coordinates struct {
	X int // column
	Y int // row
}

// MoveResult describes the outcome of scoring a move
type MoveResult struct {
	Score        int
	SkippedTiles int      // Occupied slots walked over while tiles remained
	MainWord     string   // Word formed along the play's orientation
	Words        []string // Adjacent words followed by the main word
}

// Move is a play as the scoring engine sees it
type Move struct {
	Type        MoveType
	Tiles       []Tile
	Row         int
	Col         int
	Orientation Orientation
	Result      *MoveResult // Set once the move has been scored
}

// NewPlay creates a PLAY move
func NewPlay(tiles []Tile, row, col int, orientation Orientation) *Move {
	return &Move{
		Type:        MoveTypePlay,
		Tiles:       CloneTiles(tiles),
		Row:         row,
		Col:         col,
		Orientation: orientation,
	}
}

// NewSwap creates a SWAP move
func NewSwap(tiles []Tile) *Move {
	return &Move{
		Type:  MoveTypeSwap,
		Tiles: CloneTiles(tiles),
	}
}

// InBounds returns true if the move's start position is on the board
func (m *Move) InBounds() bool {
	return InBounds(m.Row, m.Col)
}

// MoveData is one record of a game's move log
type MoveData struct {
	Type      MoveType
	Text      string       // Comma-separated tile tokens, may be empty
	PlayStart *Coordinates // nil if the server omitted it
	PlayEnd   *Coordinates
	Points    *int   // Server-reported score, cross-check only
	UserID    UserID // Zero when the record does not name a mover
	Tiles     []Tile // Parsed tiles, filled in by reconstruction
}

// Clone returns a deep copy of the record
func (m MoveData) Clone() MoveData {
	out := m
	if m.PlayStart != nil {
		start := *m.PlayStart
		out.PlayStart = &start
	}
	if m.PlayEnd != nil {
		end := *m.PlayEnd
		out.PlayEnd = &end
	}
	if m.Points != nil {
		points := *m.Points
		out.Points = &points
	}
	out.Tiles = CloneTiles(m.Tiles)
	return out
}

// MoveSubmission is the shape of a move a player sends to the server
type MoveSubmission struct {
	Type        MoveType
	Tiles       []Tile
	Orientation Orientation
	PlayStart   Coordinates
}
