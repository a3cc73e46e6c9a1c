package models

import "time"

// Word is a unit of study content identified by its unique Word key.
// Only the key takes part in scheduling; the rest is shown to the learner.
type Word struct {
	Word          string    `json:"word" db:"word" validate:"required,max=200"`
	Meaning       string    `json:"meaning" db:"meaning" validate:"required,max=1000"`
	Pronunciation string    `json:"pronunciation,omitempty" db:"pronunciation" validate:"max=200"`
	Example       string    `json:"example,omitempty" db:"example" validate:"max=2000"`
	Translation   string    `json:"translation,omitempty" db:"translation" validate:"max=2000"`
	Note          string    `json:"note,omitempty" db:"note" validate:"max=2000"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
