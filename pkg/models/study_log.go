package models

// StudyLog records a single answered card.
type StudyLog struct {
	ID           string  `json:"id" db:"id"`
	UserID       int64   `json:"user_id" db:"user_id"`
	Word         string  `json:"word" db:"word"`
	Timestamp    int64   `json:"timestamp" db:"reviewed_at"` // epoch ms
	Rating       Rating  `json:"rating" db:"rating"`
	TimeSpentSec float64 `json:"timeSpentSec" db:"time_spent_sec"`
	State        State   `json:"state" db:"state"` // state before the answer
}
