package testutil

import (
	"fmt"
	"time"

	"github.com/mcoot/wwfstate/internal/model"
)

// SampleSnapshot returns a small, fully populated snapshot for storage tests
func SampleSnapshot(id model.GameID) *model.Snapshot {
	board := model.NewBoard()
	x := Tile(102)
	blank := Blank(0, 'q')
	board.Slot(7, 7).Tile = &x
	board.Slot(7, 8).Tile = &blank

	points := 8
	state := &model.GameState{
		ID: id,
		Meta: model.GameMeta{
			RandomSeed:      123,
			CreatedByUserID: 1,
			UsersByID: map[model.UserID]model.User{
				1: {ID: 1, Name: "one"},
				2: {ID: 2, Name: "two"},
			},
			CurrentMoveUserID: 2,
		},
		Racks: map[model.UserID][]model.Tile{
			1: Word("AEIOU"),
			2: Word("BCDFG"),
		},
		Board:          board.Slots,
		Scores:         map[model.UserID]int{1: 8, 2: 0},
		RemainingTiles: []model.Tile{Tile(50), Tile(60)},
		Moves: []model.MoveData{{
			Type:      model.MoveTypePlay,
			Text:      "102,0,q,",
			PlayStart: &model.Coordinates{X: 7, Y: 7},
			PlayEnd:   &model.Coordinates{X: 8, Y: 7},
			Points:    &points,
			UserID:    1,
			Tiles:     []model.Tile{x, blank},
		}},
	}

	return &model.Snapshot{
		GameID:      id,
		Fingerprint: fmt.Sprintf("fp-%d", id),
		State:       state,
		CreatedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}
