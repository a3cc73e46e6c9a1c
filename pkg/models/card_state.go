package models

// CardState is a learner's memory record for one word.
// Timestamps are epoch milliseconds. A CardState is replaced, never mutated,
// after every review.
type CardState struct {
	Word              string  `json:"word" db:"word"`
	State             State   `json:"state" db:"state"`
	Stability         float64 `json:"stability" db:"stability"`
	Difficulty        float64 `json:"difficulty" db:"difficulty"`
	Retrievability    float64 `json:"retrievability" db:"retrievability"` // cached, recomputed on demand
	ElapsedDays       int     `json:"elapsedDays" db:"elapsed_days"`
	ScheduledDays     int     `json:"scheduledDays" db:"scheduled_days"`
	Reps              int     `json:"reps" db:"reps"`
	Lapses            int     `json:"lapses" db:"lapses"`
	LastReview        int64   `json:"lastReview" db:"last_review"`
	Due               int64   `json:"due" db:"due"`
	LastRating        Rating  `json:"lastRating" db:"last_rating"`
	CorrectCount      int     `json:"correctCount" db:"correct_count"`
	WrongCount        int     `json:"wrongCount" db:"wrong_count"`
	TotalStudyTimeSec float64 `json:"totalStudyTimeSec" db:"total_study_time_sec"`
}

// IsNew reports whether the card has never been reviewed.
// A nil card counts as new.
func (c *CardState) IsNew() bool {
	return c == nil || c.State == StateNew
}

// ProgressMap maps word keys to the learner's card state.
type ProgressMap map[string]CardState
