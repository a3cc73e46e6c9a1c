package database

import (
	"context"
	"time"

	"github.com/example/recallbot/pkg/models"
)

// ProgressRepository stores one card state per (user, word).
type ProgressRepository struct {
	db QueryI
}

// NewProgressRepository creates a new repository instance.
func NewProgressRepository(db QueryI) *ProgressRepository {
	return &ProgressRepository{db: db}
}

const progressColumns = `word, state, stability, difficulty, retrievability, elapsed_days, scheduled_days,
	reps, lapses, last_review, due, last_rating, correct_count, wrong_count, total_study_time_sec`

// Get returns the card state of one word, or ErrNotFound if it was never reviewed.
func (r *ProgressRepository) Get(ctx context.Context, userID int64, word string) (models.CardState, error) {
	var card models.CardState
	query := r.db.Rebind(`SELECT ` + progressColumns + ` FROM user_progress WHERE user_id = ? AND word = ?`)
	if err := r.db.GetContext(ctx, &card, query, userID, word); err != nil {
		return models.CardState{}, classify("get progress", err)
	}
	return card, nil
}

// GetAll loads every card state of the user keyed by word.
func (r *ProgressRepository) GetAll(ctx context.Context, userID int64) (models.ProgressMap, error) {
	cards := []models.CardState{}
	query := r.db.Rebind(`SELECT ` + progressColumns + ` FROM user_progress WHERE user_id = ?`)
	if err := r.db.SelectContext(ctx, &cards, query, userID); err != nil {
		return nil, classify("get progress", err)
	}

	progress := make(models.ProgressMap, len(cards))
	for _, c := range cards {
		progress[c.Word] = c
	}
	return progress, nil
}

// Save replaces the stored card state for card.Word.
func (r *ProgressRepository) Save(ctx context.Context, userID int64, card models.CardState) error {
	query := r.db.Rebind(`
		INSERT INTO user_progress (user_id, ` + progressColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, word) DO UPDATE SET
			state = excluded.state,
			stability = excluded.stability,
			difficulty = excluded.difficulty,
			retrievability = excluded.retrievability,
			elapsed_days = excluded.elapsed_days,
			scheduled_days = excluded.scheduled_days,
			reps = excluded.reps,
			lapses = excluded.lapses,
			last_review = excluded.last_review,
			due = excluded.due,
			last_rating = excluded.last_rating,
			correct_count = excluded.correct_count,
			wrong_count = excluded.wrong_count,
			total_study_time_sec = excluded.total_study_time_sec
	`)
	_, err := r.db.ExecContext(ctx, query,
		userID,
		card.Word,
		card.State,
		card.Stability,
		card.Difficulty,
		card.Retrievability,
		card.ElapsedDays,
		card.ScheduledDays,
		card.Reps,
		card.Lapses,
		card.LastReview,
		card.Due,
		card.LastRating,
		card.CorrectCount,
		card.WrongCount,
		card.TotalStudyTimeSec,
	)
	return classify("save progress", err)
}

// CountDue returns how many of the user's cards are due at now.
func (r *ProgressRepository) CountDue(ctx context.Context, userID int64, now time.Time) (int, error) {
	var n int
	query := r.db.Rebind(`SELECT COUNT(*) FROM user_progress WHERE user_id = ? AND due <= ?`)
	if err := r.db.GetContext(ctx, &n, query, userID, now.UnixMilli()); err != nil {
		return 0, classify("count due", err)
	}
	return n, nil
}

// DeleteAll forgets every review of the user.
func (r *ProgressRepository) DeleteAll(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM user_progress WHERE user_id = ?`), userID)
	return classify("delete progress", err)
}
