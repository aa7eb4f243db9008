package model

import "errors"

// Common errors used across the application
var (
	// Tile and bag errors
	ErrUnknownTile = errors.New("unknown tile id")
	ErrBagEmpty    = errors.New("tile bag is empty")

	// Board and scoring errors
	ErrInvalidPosition    = errors.New("invalid board position")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrPlayOffBoard       = errors.New("played tiles run off the board")
	ErrInvalidBoard       = errors.New("invalid board")
	ErrAdjacentWords      = errors.New("tile forms more than one adjacent word")

	// Submission errors
	ErrInvalidSubmission = errors.New("invalid move submission")
	ErrTileNotInRack     = errors.New("tile is not in the player's rack")
	ErrUnsupportedMove   = errors.New("unsupported move type")

	// Reconstruction errors
	ErrDesync          = errors.New("game state desync")
	ErrPlayersNotFound = errors.New("could not find both players")
	ErrDiagonalMove    = errors.New("move can only be horizontal or vertical")
	ErrRackOverflow    = errors.New("rack would exceed capacity")
	ErrMalformedText   = errors.New("malformed move text")

	// Storage errors
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// Helper errors
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)
