package bot

import (
	"context"
	"time"

	"github.com/example/recallbot/internal/excel"
	"github.com/example/recallbot/internal/spaced_repetition"
	"github.com/example/recallbot/pkg/models"
)

//go:generate mockgen -source=deps.go -destination=mock/service_mock.go -package=mock_bot

type StudySI interface {
	StartSet(ctx context.Context, userID int64, now time.Time) (spaced_repetition.StudySet, error)
	Current(userID int64) (spaced_repetition.StudySet, bool)
	Answer(ctx context.Context, userID int64, key string, rating models.Rating, timeSpent time.Duration, now time.Time) (models.CardState, spaced_repetition.StudySet, error)
	Word(ctx context.Context, key string) (models.Word, error)
	Stats(ctx context.Context, userID int64, now time.Time) (models.UserStats, error)
	History(ctx context.Context, userID int64, key string) ([]models.StudyLog, error)
	DeleteWord(ctx context.Context, key string) error
	Reset(ctx context.Context, userID int64) error
}

type UserRI interface {
	Upsert(ctx context.Context, user models.User, now time.Time) error
	GetByID(ctx context.Context, id int64) (models.User, error)
	SetNotification(ctx context.Context, id int64, enabled bool, hour int) error
}

type ImporterI interface {
	ImportWords(ctx context.Context, cfg excel.ImportConfig, now time.Time) (*excel.ImportResult, error)
}

// ReminderChecker runs an on-demand due check for one learner.
type ReminderChecker interface {
	RunManualCheck(ctx context.Context, userID int64) (bool, error)
}

// Deps are the services behind the bot.
type Deps struct {
	Study    StudySI
	Users    UserRI
	Importer ImporterI
}
