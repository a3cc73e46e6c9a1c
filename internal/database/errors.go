package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrQuotaExceeded is returned when the backing store has run out of space.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	// ErrStorage wraps every other driver failure.
	ErrStorage = errors.New("storage failure")
)

// pqDiskFull is the PostgreSQL SQLSTATE for disk_full.
const pqDiskFull pq.ErrorCode = "53100"

// classify maps a driver error onto the package sentinels, keeping the cause in the chain.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if isQuotaError(err) {
		return fmt.Errorf("%s: %w: %w", op, ErrQuotaExceeded, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

func isQuotaError(err error) bool {
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrFull {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqDiskFull {
		return true
	}
	return false
}
