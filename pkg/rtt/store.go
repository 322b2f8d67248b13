package rtt

import (
	"errors"
	"fmt"
	"time"
)

// ErrLevelRange is returned when a level index is negative or more than one
// past the last existing level.
var ErrLevelRange = errors.New("level index out of range")

// WrapLevelRange wraps ErrLevelRange with the offending index and the
// current number of levels.
func WrapLevelRange(index, length int) error {
	return fmt.Errorf("%w: index %d, %d levels", ErrLevelRange, index, length)
}

// Level is one nesting slot of the start/finish protocol.
type Level struct {
	Name string
	Time time.Time
}

// LevelStore is an ordered, append-by-index sequence of levels.
//
// Levels are stored by pointer, so a *Level returned by Set or Get stays
// valid and writes through it mutate the stored slot.
type LevelStore struct {
	levels []*Level
}

// Set returns level i, appending a blank level when i equals Len.
func (s *LevelStore) Set(i int) (*Level, error) {
	switch {
	case i < 0 || i > len(s.levels):
		return nil, WrapLevelRange(i, len(s.levels))
	case i == len(s.levels):
		s.levels = append(s.levels, &Level{})
	}
	return s.levels[i], nil
}

// Get returns level i, or nil when it does not exist. It never creates.
func (s *LevelStore) Get(i int) *Level {
	if i < 0 || i >= len(s.levels) {
		return nil
	}
	return s.levels[i]
}

// Len returns the number of levels.
func (s *LevelStore) Len() int {
	return len(s.levels)
}

// Reset drops every level.
func (s *LevelStore) Reset() {
	s.levels = nil
}
