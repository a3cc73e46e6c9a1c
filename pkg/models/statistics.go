package models

// UserStats summarizes a learner's progress across the word pool.
type UserStats struct {
	TotalWords         int     `json:"total_words"`
	LearnedWords       int     `json:"learned_words"` // state != New
	DueNow             int     `json:"due_now"`
	TotalReps          int     `json:"total_reps"`
	TotalLapses        int     `json:"total_lapses"`
	MeanRetrievability float64 `json:"mean_retrievability"`
	ReviewedToday      int     `json:"reviewed_today"`
	StudyTimeTodaySec  float64 `json:"study_time_today_sec"`
}
