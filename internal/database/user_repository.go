package database

import (
	"context"
	"fmt"
	"time"

	"github.com/example/recallbot/pkg/models"
)

// UserRepository handles database operations for users.
type UserRepository struct {
	db QueryI
}

// NewUserRepository creates a new repository instance.
func NewUserRepository(db QueryI) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `telegram_id, username, first_name, notification_enabled, notification_hour, created_at`

// Upsert registers a user or refreshes their Telegram names.
// Notification settings of an existing user are not touched.
func (r *UserRepository) Upsert(ctx context.Context, user models.User, now time.Time) error {
	query := r.db.Rebind(`
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (telegram_id) DO UPDATE SET
			username = excluded.username,
			first_name = excluded.first_name
	`)
	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.FirstName,
		user.NotificationEnabled,
		user.NotificationHour,
		now.UTC(),
	)
	return classify("upsert user", err)
}

// GetByID returns a user by Telegram ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, r.db.Rebind(`SELECT `+userColumns+` FROM users WHERE telegram_id = ?`), id)
	if err != nil {
		return models.User{}, classify("get user", err)
	}
	return user, nil
}

// SetNotification updates the reminder preference of a user.
func (r *UserRepository) SetNotification(ctx context.Context, id int64, enabled bool, hour int) error {
	query := r.db.Rebind(`UPDATE users SET notification_enabled = ?, notification_hour = ? WHERE telegram_id = ?`)
	res, err := r.db.ExecContext(ctx, query, enabled, hour, id)
	if err != nil {
		return classify("set notification", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return classify("set notification", err)
	}
	if n == 0 {
		return fmt.Errorf("set notification: user %d: %w", id, ErrNotFound)
	}
	return nil
}

// GetForNotificationHour returns users with reminders enabled at the given hour.
func (r *UserRepository) GetForNotificationHour(ctx context.Context, hour int) ([]models.User, error) {
	users := []models.User{}
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users
		WHERE notification_enabled = ? AND notification_hour = ? ORDER BY telegram_id`)
	if err := r.db.SelectContext(ctx, &users, query, true, hour); err != nil {
		return nil, classify("get users", err)
	}
	return users, nil
}
