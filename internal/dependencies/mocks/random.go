package mocks

import (
	"slices"

	"github.com/mcoot/wwfstate/internal/dependencies/random"
)

// MockSource is a Source that replays queued draws. Once the queue is
// exhausted it returns 0, which always selects the head of the bag.
type MockSource struct {
	Draws []uint32
	index int
}

// Ensure MockSource implements Source
var _ random.Source = (*MockSource)(nil)

// NewMockSource creates a MockSource with the given draws queued
func NewMockSource(draws ...uint32) *MockSource {
	return &MockSource{Draws: draws}
}

// Uint32 returns the next queued draw, or 0 if none remain
func (s *MockSource) Uint32() uint32 {
	if s.index >= len(s.Draws) {
		return 0
	}
	v := s.Draws[s.index]
	s.index++
	return v
}

// Clone returns a copy positioned at the same queued draw
func (s *MockSource) Clone() random.Source {
	return &MockSource{Draws: slices.Clone(s.Draws), index: s.index}
}

// QueueUint32 adds draws to the queue
func (s *MockSource) QueueUint32(values ...uint32) {
	s.Draws = append(s.Draws, values...)
}

// Consumed returns how many queued draws have been used
func (s *MockSource) Consumed() int {
	return s.index
}
