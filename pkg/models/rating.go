package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidRating is returned when a rating outside forgot/remembered/perfect is supplied.
var ErrInvalidRating = errors.New("invalid rating")

// Rating is the learner's self-reported recall quality for one review.
// The zero value means no review yet; it encodes as JSON null and SQL NULL.
type Rating int

const (
	RatingForgot     Rating = iota + 1 // Could not recall.
	RatingRemembered                   // Recalled with some effort.
	RatingPerfect                      // Recalled effortlessly.
)

var (
	ratingNames  = [...]string{RatingForgot: "forgot", RatingRemembered: "remembered", RatingPerfect: "perfect"}
	ratingByName = map[string]Rating{
		"forgot":     RatingForgot,
		"remembered": RatingRemembered,
		"perfect":    RatingPerfect,
	}
)

// ParseRating converts a stored or user-supplied name into a Rating.
func ParseRating(s string) (Rating, error) {
	r, ok := ratingByName[s]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRating, s)
	}
	return r, nil
}

// IsValid reports whether r is one of the three recognized grades.
func (r Rating) IsValid() bool {
	return r >= RatingForgot && r <= RatingPerfect
}

func (r Rating) String() string {
	if r.IsValid() {
		return ratingNames[r]
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// MarshalText implements encoding.TextMarshaler.
func (r Rating) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRating, int(r))
	}
	return []byte(ratingNames[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rating) UnmarshalText(text []byte) error {
	v, err := ParseRating(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// MarshalJSON encodes the rating as a JSON string.
func (r Rating) MarshalJSON() ([]byte, error) {
	if r == 0 {
		return []byte("null"), nil
	}
	text, err := r.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON expects a JSON string.
func (r *Rating) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = 0
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRating, data)
	}
	return r.UnmarshalText([]byte(s))
}

// Value implements driver.Valuer. Ratings are stored by name.
func (r Rating) Value() (driver.Value, error) {
	if r == 0 {
		return nil, nil
	}
	text, err := r.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}

// Scan implements sql.Scanner.
func (r *Rating) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*r = 0
		return nil
	case string:
		return r.UnmarshalText([]byte(v))
	case []byte:
		return r.UnmarshalText(v)
	default:
		return fmt.Errorf("%w: unsupported column type %T", ErrInvalidRating, src)
	}
}
