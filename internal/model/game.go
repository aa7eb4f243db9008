package model

import (
	"maps"
	"time"
)

// GameID identifies a game on the server
type GameID int64

// UserID identifies a player on the server
type UserID int64

// User is a game participant
type User struct {
	ID   UserID
	Name string
}

// GameMeta is the public metadata the server sends with a game
type GameMeta struct {
	RandomSeed        uint64
	CreatedByUserID   UserID
	UsersByID         map[UserID]User
	CurrentMoveUserID UserID
}

// Clone returns a deep copy of the metadata
func (m GameMeta) Clone() GameMeta {
	out := m
	out.UsersByID = maps.Clone(m.UsersByID)
	return out
}

// GameState is a game as seen by a client. Meta and Moves come from the
// server; racks, board, scores and remaining tiles are derived from them.
type GameState struct {
	ID             GameID
	Meta           GameMeta
	Racks          map[UserID][]Tile
	Board          []Slot
	Scores         map[UserID]int
	RemainingTiles []Tile // Bag contents in the order they will be drawn
	Moves          []MoveData
}

// Clone returns a deep copy of the state
func (g *GameState) Clone() *GameState {
	out := &GameState{
		ID:             g.ID,
		Meta:           g.Meta.Clone(),
		Board:          CloneSlots(g.Board),
		Scores:         maps.Clone(g.Scores),
		RemainingTiles: CloneTiles(g.RemainingTiles),
	}
	if g.Racks != nil {
		out.Racks = make(map[UserID][]Tile, len(g.Racks))
		for id, tiles := range g.Racks {
			out.Racks[id] = CloneTiles(tiles)
		}
	}
	if g.Moves != nil {
		out.Moves = make([]MoveData, len(g.Moves))
		for i, m := range g.Moves {
			out.Moves[i] = m.Clone()
		}
	}
	return out
}

// ScoreStatus describes how a player stands against their opponent
type ScoreStatus string

const (
	ScoreStatusWinning ScoreStatus = "winning"
	ScoreStatusLosing  ScoreStatus = "losing"
	ScoreStatusTied    ScoreStatus = "tied"
)

// Snapshot is a cached reconstruction of a game. Fingerprint identifies the
// seed and move log it was built from.
type Snapshot struct {
	GameID      GameID
	Fingerprint string
	State       *GameState
	CreatedAt   time.Time
}
