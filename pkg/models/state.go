package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidState is returned when a stored lifecycle stage is not recognized.
var ErrInvalidState = errors.New("invalid card state")

// State is the lifecycle stage of a card.
type State int

const (
	StateNew        State = iota // Never reviewed.
	StateLearning                // In initial learning steps.
	StateReview                  // In the long-term review cycle.
	StateRelearning              // Forgotten during review, relearning.
)

var (
	stateNames  = [...]string{StateNew: "New", StateLearning: "Learning", StateReview: "Review", StateRelearning: "Relearning"}
	stateByName = map[string]State{
		"New":        StateNew,
		"Learning":   StateLearning,
		"Review":     StateReview,
		"Relearning": StateRelearning,
	}
)

// ParseState converts a stored name into a State.
func ParseState(s string) (State, error) {
	v, ok := stateByName[s]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidState, s)
	}
	return v, nil
}

// IsValid reports whether s is a known lifecycle stage.
func (s State) IsValid() bool {
	return s >= StateNew && s <= StateRelearning
}

func (s State) String() string {
	if s.IsValid() {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidState, int(s))
	}
	return []byte(stateNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	v, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalJSON encodes the state as a JSON string.
func (s State) MarshalJSON() ([]byte, error) {
	text, err := s.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON expects a JSON string.
func (s *State) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidState, data)
	}
	return s.UnmarshalText([]byte(str))
}

// Value implements driver.Valuer.
func (s State) Value() (driver.Value, error) {
	text, err := s.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}

// Scan implements sql.Scanner.
func (s *State) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return s.UnmarshalText([]byte(v))
	case []byte:
		return s.UnmarshalText(v)
	default:
		return fmt.Errorf("%w: unsupported column type %T", ErrInvalidState, src)
	}
}
