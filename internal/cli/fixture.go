package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mcoot/wwfstate/internal/model"
)

// GameFile is a game as the server reports it
type GameFile struct {
	ID                model.GameID `json:"id"`
	RandomSeed        uint64       `json:"random_seed"`
	CreatedByUserID   model.UserID `json:"created_by_user_id"`
	CurrentMoveUserID model.UserID `json:"current_move_user_id"`
	Users             []UserFile   `json:"users"`
	Moves             []MoveFile   `json:"moves"`
}

// UserFile is one participant
type UserFile struct {
	ID   model.UserID `json:"id"`
	Name string       `json:"name"`
}

// MoveFile is one move log record. Coordinates and points are optional.
type MoveFile struct {
	MoveType string       `json:"move_type"`
	Text     string       `json:"text"`
	FromX    *int         `json:"from_x,omitempty"`
	FromY    *int         `json:"from_y,omitempty"`
	ToX      *int         `json:"to_x,omitempty"`
	ToY      *int         `json:"to_y,omitempty"`
	Points   *int         `json:"points,omitempty"`
	UserID   model.UserID `json:"user_id,omitempty"`
}

// loadGameFile reads and converts a game file
func loadGameFile(path string) (*model.GameState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f GameFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return f.Skeleton()
}

// Skeleton converts the file into a game state holding only what the
// server sends
func (f *GameFile) Skeleton() (*model.GameState, error) {
	users := make(map[model.UserID]model.User, len(f.Users))
	for _, u := range f.Users {
		users[u.ID] = model.User{ID: u.ID, Name: u.Name}
	}

	moves := make([]model.MoveData, 0, len(f.Moves))
	for i, m := range f.Moves {
		moveType, err := model.ParseMoveType(m.MoveType)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i, err)
		}
		moves = append(moves, model.MoveData{
			Type:      moveType,
			Text:      m.Text,
			PlayStart: coordinates(m.FromX, m.FromY),
			PlayEnd:   coordinates(m.ToX, m.ToY),
			Points:    m.Points,
			UserID:    m.UserID,
		})
	}

	return &model.GameState{
		ID: f.ID,
		Meta: model.GameMeta{
			RandomSeed:        f.RandomSeed,
			CreatedByUserID:   f.CreatedByUserID,
			UsersByID:         users,
			CurrentMoveUserID: f.CurrentMoveUserID,
		},
		Moves: moves,
	}, nil
}

func coordinates(x, y *int) *model.Coordinates {
	if x == nil || y == nil {
		return nil
	}
	return &model.Coordinates{X: *x, Y: *y}
}

// parseTiles reads a comma-separated tile list such as "12,0:s,40". A blank
// carries its letter after a colon.
func parseTiles(list string) ([]model.Tile, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}

	var tiles []model.Tile
	for _, field := range strings.Split(list, ",") {
		idText, letter, hasLetter := strings.Cut(strings.TrimSpace(field), ":")
		id, err := strconv.Atoi(idText)
		if err != nil {
			return nil, fmt.Errorf("tile %q: %w", field, err)
		}
		tile, err := model.TileWithID(id)
		if err != nil {
			return nil, fmt.Errorf("tile %d: %w", id, err)
		}

		switch {
		case tile.IsBlank() && hasLetter:
			r, _ := utf8.DecodeRuneInString(letter)
			if _, ok := model.LetterValue(r); utf8.RuneCountInString(letter) != 1 || !ok || r == model.BlankLetter {
				return nil, fmt.Errorf("tile %d: invalid letter %q", id, letter)
			}
			tile = tile.WithLetter(r)
		case hasLetter:
			return nil, fmt.Errorf("tile %d: only blanks take a letter", id)
		}
		tiles = append(tiles, tile)
	}
	return tiles, nil
}
