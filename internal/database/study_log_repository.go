package database

import (
	"context"
	"time"

	"github.com/example/recallbot/pkg/models"
	"github.com/google/uuid"
)

// StudyLogRepository is the append-only review history.
type StudyLogRepository struct {
	db QueryI
}

// NewStudyLogRepository creates a new repository instance.
func NewStudyLogRepository(db QueryI) *StudyLogRepository {
	return &StudyLogRepository{db: db}
}

const studyLogColumns = `id, user_id, word, reviewed_at, rating, time_spent_sec, state`

// Add appends an entry, assigning an ID when it has none. It returns the stored entry.
func (r *StudyLogRepository) Add(ctx context.Context, entry models.StudyLog) (models.StudyLog, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	query := r.db.Rebind(`INSERT INTO study_logs (` + studyLogColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Word,
		entry.Timestamp,
		entry.Rating,
		entry.TimeSpentSec,
		entry.State,
	)
	if err != nil {
		return models.StudyLog{}, classify("add study log", err)
	}
	return entry, nil
}

// ByWord returns the user's history for one word, oldest first.
func (r *StudyLogRepository) ByWord(ctx context.Context, userID int64, word string) ([]models.StudyLog, error) {
	logs := []models.StudyLog{}
	query := r.db.Rebind(`SELECT ` + studyLogColumns + ` FROM study_logs
		WHERE user_id = ? AND word = ? ORDER BY reviewed_at, id`)
	if err := r.db.SelectContext(ctx, &logs, query, userID, word); err != nil {
		return nil, classify("get study logs", err)
	}
	return logs, nil
}

// Between returns entries with from <= timestamp < to, oldest first.
func (r *StudyLogRepository) Between(ctx context.Context, userID int64, from, to time.Time) ([]models.StudyLog, error) {
	logs := []models.StudyLog{}
	query := r.db.Rebind(`SELECT ` + studyLogColumns + ` FROM study_logs
		WHERE user_id = ? AND reviewed_at >= ? AND reviewed_at < ? ORDER BY reviewed_at, id`)
	if err := r.db.SelectContext(ctx, &logs, query, userID, from.UnixMilli(), to.UnixMilli()); err != nil {
		return nil, classify("get study logs", err)
	}
	return logs, nil
}

// Today returns the entries of the calendar day containing now in loc.
func (r *StudyLogRepository) Today(ctx context.Context, userID int64, now time.Time, loc *time.Location) ([]models.StudyLog, error) {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return r.Between(ctx, userID, start, start.AddDate(0, 0, 1))
}
