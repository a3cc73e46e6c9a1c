package database

import (
	"context"
	"database/sql"
)

//go:generate mockgen -source=repository.go -destination=mock/query_mock.go -package=mock_database

// QueryI is the subset of *sqlx.DB and *sqlx.Tx the repositories use.
// Queries are written with ? placeholders and passed through Rebind.
type QueryI interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Rebind(query string) string
}

// Repository groups every table repository over one connection.
type Repository struct {
	Words    *WordRepository
	Progress *ProgressRepository
	Logs     *StudyLogRepository
	Users    *UserRepository
}

func NewRepository(db QueryI) Repository {
	return Repository{
		Words:    NewWordRepository(db),
		Progress: NewProgressRepository(db),
		Logs:     NewStudyLogRepository(db),
		Users:    NewUserRepository(db),
	}
}
