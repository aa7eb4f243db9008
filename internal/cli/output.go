package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mcoot/wwfstate/internal/model"
	"github.com/mcoot/wwfstate/internal/services/request"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == OutputJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == OutputJSON {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case BagResult:
		o.printBag(v)
	case StateResult:
		o.printState(v)
	case ChecksumResult:
		fmt.Fprintf(o.w, "Game %d checksum: %d\n", v.GameID, v.Checksum)
	case SubmissionResult:
		o.printSubmission(v)
	case CacheResult:
		o.printCache(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// TileView is a tile as printed
type TileView struct {
	ID     int    `json:"id"`
	Letter string `json:"letter"`
}

func tileViews(tiles []model.Tile) []TileView {
	views := make([]TileView, len(tiles))
	for i, t := range tiles {
		views[i] = TileView{ID: t.ID, Letter: string(t.Letter)}
	}
	return views
}

func letters(tiles []TileView) string {
	var sb strings.Builder
	for _, t := range tiles {
		sb.WriteString(t.Letter)
	}
	return sb.String()
}

// BagResult is a fresh bag's pull order
type BagResult struct {
	Seed  uint64     `json:"seed"`
	Tiles []TileView `json:"tiles"`
}

// PlayerView is one player's hidden state
type PlayerView struct {
	UserID model.UserID `json:"user_id"`
	Name   string       `json:"name"`
	Score  int          `json:"score"`
	Status string       `json:"status"`
	Rack   []TileView   `json:"rack"`
}

// StateResult is a reconstructed game
type StateResult struct {
	GameID      model.GameID `json:"game_id"`
	CurrentUser model.UserID `json:"current_user_id"`
	Moves       int          `json:"moves"`
	Players     []PlayerView `json:"players"`
	Remaining   []TileView   `json:"remaining"`
	Board       string       `json:"board"`
	Checksum    int32        `json:"checksum"`
}

// ChecksumResult is a board checksum
type ChecksumResult struct {
	GameID   model.GameID `json:"game_id"`
	Checksum int32        `json:"checksum"`
}

// SubmissionResult is the request for a move
type SubmissionResult struct {
	GameID        model.GameID `json:"game_id"`
	MoveIndex     int          `json:"move_index"`
	FromX         int          `json:"from_x"`
	FromY         int          `json:"from_y"`
	ToX           int          `json:"to_x"`
	ToY           int          `json:"to_y"`
	Text          string       `json:"text"`
	Words         []string     `json:"words"`
	Promoted      int          `json:"promoted"`
	Points        int          `json:"points"`
	BoardChecksum int32        `json:"board_checksum"`
}

func submissionResult(p *request.MoveParams) SubmissionResult {
	words := p.Words
	if words == nil {
		words = []string{}
	}
	return SubmissionResult{
		GameID:        p.GameID,
		MoveIndex:     p.MoveIndex,
		FromX:         p.FromX,
		FromY:         p.FromY,
		ToX:           p.ToX,
		ToY:           p.ToY,
		Text:          p.Text,
		Words:         words,
		Promoted:      p.Promoted,
		Points:        p.Points,
		BoardChecksum: p.BoardChecksum,
	}
}

// CacheResult lists cached games
type CacheResult struct {
	GameIDs []model.GameID `json:"game_ids"`
}

func (o *Output) printBag(b BagResult) {
	fmt.Fprintf(o.w, "Seed: %d\n", b.Seed)
	fmt.Fprintf(o.w, "Tiles (%d): %s\n", len(b.Tiles), letters(b.Tiles))
	ids := make([]string, len(b.Tiles))
	for i, t := range b.Tiles {
		ids[i] = fmt.Sprint(t.ID)
	}
	fmt.Fprintf(o.w, "IDs: %s\n", strings.Join(ids, ","))
}

func (o *Output) printState(s StateResult) {
	fmt.Fprintf(o.w, "Game: %d\n", s.GameID)
	fmt.Fprintf(o.w, "Moves: %d\n", s.Moves)
	fmt.Fprintf(o.w, "To move: %d\n", s.CurrentUser)
	fmt.Fprintln(o.w, "\nPlayers:")
	for _, p := range s.Players {
		fmt.Fprintf(o.w, "  %s (%d): %d points, %s, rack %s\n", p.Name, p.UserID, p.Score, p.Status, letters(p.Rack))
	}
	fmt.Fprintf(o.w, "\nBag (%d): %s\n", len(s.Remaining), letters(s.Remaining))
	fmt.Fprintf(o.w, "Checksum: %d\n\n", s.Checksum)
	fmt.Fprint(o.w, s.Board)
}

func (o *Output) printSubmission(s SubmissionResult) {
	fmt.Fprintf(o.w, "game_id=%d\n", s.GameID)
	fmt.Fprintf(o.w, "move_index=%d\n", s.MoveIndex)
	fmt.Fprintf(o.w, "from_x=%d from_y=%d to_x=%d to_y=%d\n", s.FromX, s.FromY, s.ToX, s.ToY)
	fmt.Fprintf(o.w, "text=%s\n", s.Text)
	fmt.Fprintf(o.w, "words=%s\n", strings.Join(s.Words, ","))
	fmt.Fprintf(o.w, "promoted=%d\n", s.Promoted)
	fmt.Fprintf(o.w, "points=%d\n", s.Points)
	fmt.Fprintf(o.w, "board_checksum=%d\n", s.BoardChecksum)
}

func (o *Output) printCache(c CacheResult) {
	if len(c.GameIDs) == 0 {
		fmt.Fprintln(o.w, "No cached games")
		return
	}
	fmt.Fprintf(o.w, "Cached games (%d):\n", len(c.GameIDs))
	for _, id := range c.GameIDs {
		fmt.Fprintf(o.w, "  - %d\n", id)
	}
}
