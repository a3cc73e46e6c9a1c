package database

import (
	"context"
	"testing"
	"time"

	"github.com/example/recallbot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewRepository(newTestDB(t)).Words

	require.NoError(t, repo.Upsert(ctx, models.Word{Word: "banana", Meaning: "a fruit"}, t0))
	require.NoError(t, repo.Upsert(ctx, models.Word{Word: "apple", Meaning: "another fruit", Example: "An apple a day."}, t0.Add(time.Second)))
	require.NoError(t, repo.Upsert(ctx, models.Word{Word: "cherry", Meaning: "small fruit"}, t0.Add(time.Second)))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	keys, err := repo.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"banana", "apple", "cherry"}, keys)

	// Update keeps the creation time and therefore the pool position.
	require.NoError(t, repo.Upsert(ctx, models.Word{Word: "banana", Meaning: "a yellow fruit"}, t0.Add(time.Hour)))

	got, err := repo.Get(ctx, "banana")
	require.NoError(t, err)
	assert.Equal(t, "a yellow fruit", got.Meaning)
	assert.True(t, got.CreatedAt.Equal(t0), got.CreatedAt)
	assert.True(t, got.UpdatedAt.Equal(t0.Add(time.Hour)), got.UpdatedAt)

	apple, err := repo.Get(ctx, "apple")
	require.NoError(t, err)
	assert.Equal(t, "An apple a day.", apple.Example)

	_, err = repo.Get(ctx, "durian")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "apple"))
	keys, err = repo.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"banana", "cherry"}, keys)

	assert.ErrorIs(t, repo.Delete(ctx, "apple"), ErrNotFound)
}

func TestProgressRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewRepository(newTestDB(t)).Progress

	card := models.CardState{
		Word:              "apple",
		State:             models.StateReview,
		Stability:         4.25,
		Difficulty:        5.5,
		Retrievability:    0.93,
		ScheduledDays:     4,
		Reps:              3,
		Lapses:            1,
		LastReview:        t0.UnixMilli(),
		Due:               t0.AddDate(0, 0, 4).UnixMilli(),
		LastRating:        models.RatingRemembered,
		CorrectCount:      2,
		WrongCount:        1,
		TotalStudyTimeSec: 12.5,
	}

	_, err := repo.Get(ctx, 1, "apple")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Save(ctx, 1, card))

	got, err := repo.Get(ctx, 1, "apple")
	require.NoError(t, err)
	assert.Equal(t, card, got)

	// Other users are isolated.
	_, err = repo.Get(ctx, 2, "apple")
	require.ErrorIs(t, err, ErrNotFound)

	card.State = models.StateRelearning
	card.LastRating = models.RatingForgot
	card.Lapses = 2
	card.Due = t0.Add(10 * time.Minute).UnixMilli()
	require.NoError(t, repo.Save(ctx, 1, card))

	other := models.CardState{
		Word:       "banana",
		State:      models.StateLearning,
		Stability:  1,
		LastReview: t0.UnixMilli(),
		Due:        t0.AddDate(0, 0, 2).UnixMilli(),
		LastRating: models.RatingPerfect,
	}
	require.NoError(t, repo.Save(ctx, 1, other))

	all, err := repo.GetAll(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.ProgressMap{"apple": card, "banana": other}, all)

	due, err := repo.CountDue(ctx, 1, t0.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, due)

	due, err = repo.CountDue(ctx, 1, t0.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Equal(t, 2, due)

	require.NoError(t, repo.DeleteAll(ctx, 1))
	all, err = repo.GetAll(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestProgressRepository_NewCardRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewRepository(newTestDB(t)).Progress

	fresh := models.CardState{Word: "apple"}
	require.NoError(t, repo.Save(ctx, 1, fresh))

	got, err := repo.Get(ctx, 1, "apple")
	require.NoError(t, err)
	assert.Equal(t, fresh, got)
	assert.True(t, got.IsNew())
}

func TestStudyLogRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewRepository(newTestDB(t)).Logs

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 2024-03-01 23:30 and 2024-03-02 00:30 in Tokyo straddle a local midnight.
	lateNight := time.Date(2024, 3, 1, 23, 30, 0, 0, tokyo)
	earlyMorning := time.Date(2024, 3, 2, 0, 30, 0, 0, tokyo)

	entries := []models.StudyLog{
		{UserID: 1, Word: "apple", Timestamp: lateNight.UnixMilli(), Rating: models.RatingForgot, TimeSpentSec: 3, State: models.StateNew},
		{UserID: 1, Word: "apple", Timestamp: earlyMorning.UnixMilli(), Rating: models.RatingPerfect, TimeSpentSec: 1.5, State: models.StateLearning},
		{UserID: 1, Word: "banana", Timestamp: earlyMorning.Add(time.Minute).UnixMilli(), Rating: models.RatingRemembered, State: models.StateNew},
		{UserID: 2, Word: "apple", Timestamp: earlyMorning.UnixMilli(), Rating: models.RatingRemembered, State: models.StateNew},
	}
	for i := range entries {
		stored, err := repo.Add(ctx, entries[i])
		require.NoError(t, err)
		require.NotEmpty(t, stored.ID)
		entries[i] = stored
	}

	fixed, err := repo.Add(ctx, models.StudyLog{ID: "fixed", UserID: 3, Word: "x", Rating: models.RatingPerfect})
	require.NoError(t, err)
	assert.Equal(t, "fixed", fixed.ID)

	history, err := repo.ByWord(ctx, 1, "apple")
	require.NoError(t, err)
	assert.Equal(t, entries[:2], history)

	today, err := repo.Today(ctx, 1, earlyMorning.Add(5*time.Hour), tokyo)
	require.NoError(t, err)
	assert.Equal(t, entries[1:3], today)

	yesterday, err := repo.Today(ctx, 1, lateNight, tokyo)
	require.NoError(t, err)
	assert.Equal(t, entries[:1], yesterday)

	// The same instants fall on a single UTC day.
	utcDay, err := repo.Today(ctx, 1, lateNight, time.UTC)
	require.NoError(t, err)
	assert.Len(t, utcDay, 3)

	between, err := repo.Between(ctx, 1, lateNight, earlyMorning)
	require.NoError(t, err)
	assert.Equal(t, entries[:1], between)
}

func TestUserRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewRepository(newTestDB(t)).Users

	require.NoError(t, repo.Upsert(ctx, models.User{ID: 42, Username: "learner", FirstName: "Kim", NotificationEnabled: true, NotificationHour: 9}, t0))
	require.NoError(t, repo.Upsert(ctx, models.User{ID: 7, Username: "other", NotificationEnabled: true, NotificationHour: 9}, t0))

	require.NoError(t, repo.SetNotification(ctx, 42, true, 20))

	// A second upsert refreshes names and keeps the reminder settings.
	require.NoError(t, repo.Upsert(ctx, models.User{ID: 42, Username: "renamed", NotificationHour: 9}, t0.Add(time.Hour)))

	got, err := repo.GetByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Username)
	assert.True(t, got.NotificationEnabled)
	assert.Equal(t, 20, got.NotificationHour)
	assert.True(t, got.CreatedAt.Equal(t0))

	at9, err := repo.GetForNotificationHour(ctx, 9)
	require.NoError(t, err)
	require.Len(t, at9, 1)
	assert.Equal(t, int64(7), at9[0].ID)

	require.NoError(t, repo.SetNotification(ctx, 7, false, 9))
	at9, err = repo.GetForNotificationHour(ctx, 9)
	require.NoError(t, err)
	assert.Empty(t, at9)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.SetNotification(ctx, 999, true, 1), ErrNotFound)
}
