package database

import (
	"context"
	"fmt"
	"time"

	"github.com/example/recallbot/pkg/models"
)

// WordRepository handles database operations for words.
type WordRepository struct {
	db QueryI
}

// NewWordRepository creates a new repository instance.
func NewWordRepository(db QueryI) *WordRepository {
	return &WordRepository{db: db}
}

const wordColumns = `word, meaning, pronunciation, example, translation, note, created_at, updated_at`

// Upsert inserts a word or replaces the content of an existing one.
// The original creation time is kept.
func (r *WordRepository) Upsert(ctx context.Context, word models.Word, now time.Time) error {
	query := r.db.Rebind(`
		INSERT INTO words (` + wordColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (word) DO UPDATE SET
			meaning = excluded.meaning,
			pronunciation = excluded.pronunciation,
			example = excluded.example,
			translation = excluded.translation,
			note = excluded.note,
			updated_at = excluded.updated_at
	`)
	_, err := r.db.ExecContext(ctx, query,
		word.Word,
		word.Meaning,
		word.Pronunciation,
		word.Example,
		word.Translation,
		word.Note,
		now.UTC(),
		now.UTC(),
	)
	return classify("upsert word", err)
}

// Keys returns every word key in pool order.
func (r *WordRepository) Keys(ctx context.Context) ([]string, error) {
	keys := []string{}
	err := r.db.SelectContext(ctx, &keys, `SELECT word FROM words ORDER BY created_at, word`)
	if err != nil {
		return nil, classify("get word keys", err)
	}
	return keys, nil
}

// Get returns a word by key.
func (r *WordRepository) Get(ctx context.Context, key string) (models.Word, error) {
	var word models.Word
	err := r.db.GetContext(ctx, &word, r.db.Rebind(`SELECT `+wordColumns+` FROM words WHERE word = ?`), key)
	if err != nil {
		return models.Word{}, classify("get word", err)
	}
	return word, nil
}

// Count returns the pool size.
func (r *WordRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM words`); err != nil {
		return 0, classify("count words", err)
	}
	return n, nil
}

// Delete removes a word from the pool. Progress rows for it stay behind and
// are ignored because study sets are built from pool keys only.
func (r *WordRepository) Delete(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM words WHERE word = ?`), key)
	if err != nil {
		return classify("delete word", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return classify("delete word", err)
	}
	if n == 0 {
		return fmt.Errorf("delete word %q: %w", key, ErrNotFound)
	}
	return nil
}
