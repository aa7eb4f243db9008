package factory

import (
	"time"

	"github.com/mcoot/wwfstate/internal/dependencies/mocks"
	"github.com/mcoot/wwfstate/internal/model"
	"github.com/mcoot/wwfstate/internal/storage/memory"
	"github.com/mcoot/wwfstate/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	app := newWithDependencies(store, mockClock, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}

// NewSkeleton returns a game as the server first sends it: metadata for a
// creator and one opponent and an empty move log
func (t *TestApp) NewSkeleton(id model.GameID, seed uint64, creator, opponent model.UserID) *model.GameState {
	return &model.GameState{
		ID: id,
		Meta: model.GameMeta{
			RandomSeed:      seed,
			CreatedByUserID: creator,
			UsersByID: map[model.UserID]model.User{
				creator:  {ID: creator, Name: "creator"},
				opponent: {ID: opponent, Name: "opponent"},
			},
			CurrentMoveUserID: creator,
		},
	}
}
