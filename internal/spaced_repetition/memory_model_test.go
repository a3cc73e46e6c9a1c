package spaced_repetition

import (
	"testing"
	"time"

	"github.com/example/recallbot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	allRatings = []models.Rating{models.RatingForgot, models.RatingRemembered, models.RatingPerfect}
	t0         = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
)

func newModel() *MemoryModel {
	return NewMemoryModel(MemoryModelConfig{})
}

// reviewCard returns a card that has graduated to Review.
func reviewCard(t *testing.T, m *MemoryModel) models.CardState {
	t.Helper()
	c, err := m.Transition("apple", nil, models.RatingPerfect, t0, 0)
	require.NoError(t, err)
	require.Equal(t, models.StateReview, c.State)
	return c
}

func TestMemoryModel_NilAndNewPriorAreEquivalent(t *testing.T) {
	t.Parallel()
	m := newModel()

	for _, r := range allRatings {
		fromNil, err := m.Transition("apple", nil, r, t0, 0)
		require.NoError(t, err)

		fromNew, err := m.Transition("apple", &models.CardState{Word: "apple", State: models.StateNew}, r, t0, 0)
		require.NoError(t, err)

		assert.Equal(t, fromNil, fromNew, r.String())
	}
}

func TestMemoryModel_FirstReview(t *testing.T) {
	t.Parallel()
	m := newModel()

	tests := []struct {
		name        string
		rating      models.Rating
		wantCorrect int
		wantWrong   int
		wantLapses  int
	}{
		{name: "forgot", rating: models.RatingForgot, wantWrong: 1, wantLapses: 1},
		{name: "remembered", rating: models.RatingRemembered, wantCorrect: 1},
		{name: "perfect", rating: models.RatingPerfect, wantCorrect: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := m.Transition("apple", nil, tt.rating, t0, 4)
			require.NoError(t, err)

			assert.Equal(t, "apple", got.Word)
			assert.NotEqual(t, models.StateNew, got.State)
			assert.Greater(t, got.Stability, 0.0)
			assert.Equal(t, 1, got.Reps)
			assert.Equal(t, tt.wantLapses, got.Lapses)
			assert.Equal(t, 0, got.ElapsedDays)
			assert.Equal(t, t0.UnixMilli(), got.LastReview)
			assert.GreaterOrEqual(t, got.Due, t0.UnixMilli())
			assert.Equal(t, tt.rating, got.LastRating)
			assert.Equal(t, tt.wantCorrect, got.CorrectCount)
			assert.Equal(t, tt.wantWrong, got.WrongCount)
			assert.Equal(t, 4.0, got.TotalStudyTimeSec)
			assert.InDelta(t, 1.0, got.Retrievability, 1e-9)
		})
	}
}

func TestMemoryModel_PerfectGraduatesToReview(t *testing.T) {
	t.Parallel()
	m := newModel()

	c := reviewCard(t, m)
	assert.GreaterOrEqual(t, c.ScheduledDays, 1)
}

func TestMemoryModel_ScheduledDaysOrderedByRating(t *testing.T) {
	t.Parallel()
	m := newModel()

	priors := map[string]*models.CardState{
		"new": nil,
	}
	rc := reviewCard(t, m)
	priors["review"] = &rc

	for name, prior := range priors {
		now := t0
		if prior != nil {
			now = time.UnixMilli(prior.Due)
		}

		forgot, err := m.Transition("apple", prior, models.RatingForgot, now, 0)
		require.NoError(t, err)
		remembered, err := m.Transition("apple", prior, models.RatingRemembered, now, 0)
		require.NoError(t, err)
		perfect, err := m.Transition("apple", prior, models.RatingPerfect, now, 0)
		require.NoError(t, err)

		assert.LessOrEqual(t, forgot.ScheduledDays, remembered.ScheduledDays, name)
		assert.LessOrEqual(t, remembered.ScheduledDays, perfect.ScheduledDays, name)
		assert.LessOrEqual(t, forgot.Due, remembered.Due, name)
	}
}

func TestMemoryModel_ForgotFromReviewRelearns(t *testing.T) {
	t.Parallel()
	m := newModel()

	c := reviewCard(t, m)
	now := time.UnixMilli(c.Due)

	got, err := m.Transition("apple", &c, models.RatingForgot, now, 0)
	require.NoError(t, err)

	assert.Equal(t, models.StateRelearning, got.State)
	assert.Equal(t, c.Lapses+1, got.Lapses)
	assert.Equal(t, c.Reps+1, got.Reps)
	assert.Less(t, got.Stability, c.Stability)
	assert.Equal(t, now.UnixMilli(), got.LastReview)
}

func TestMemoryModel_ForgotAlwaysCountsLapse(t *testing.T) {
	t.Parallel()
	m := newModel()

	c, err := m.Transition("apple", nil, models.RatingForgot, t0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, c.Lapses)

	c, err = m.Transition("apple", &c, models.RatingForgot, t0.Add(time.Minute), 0)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Lapses)

	c, err = m.Transition("apple", &c, models.RatingRemembered, t0.Add(2*time.Minute), 0)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Lapses)
}

func TestMemoryModel_CountersAccumulate(t *testing.T) {
	t.Parallel()
	m := newModel()

	sequence := []models.Rating{
		models.RatingRemembered,
		models.RatingForgot,
		models.RatingPerfect,
		models.RatingRemembered,
		models.RatingForgot,
		models.RatingPerfect,
	}

	var (
		card *models.CardState
		now  = t0
	)
	for i, r := range sequence {
		next, err := m.Transition("apple", card, r, now, 2.5)
		require.NoError(t, err)

		assert.Equal(t, next.Reps, next.CorrectCount+next.WrongCount, "step %d", i)
		assert.InDelta(t, 2.5*float64(i+1), next.TotalStudyTimeSec, 1e-9)
		assert.Equal(t, 0, next.ElapsedDays)

		card = &next
		now = time.UnixMilli(next.Due).Add(time.Hour)
	}
}

func TestMemoryModel_PriorIsNotMutated(t *testing.T) {
	t.Parallel()
	m := newModel()

	c := reviewCard(t, m)
	snapshot := c

	_, err := m.Transition("apple", &c, models.RatingForgot, time.UnixMilli(c.Due), 3)
	require.NoError(t, err)
	assert.Equal(t, snapshot, c)
}

func TestMemoryModel_Deterministic(t *testing.T) {
	t.Parallel()
	m := newModel()

	c := reviewCard(t, m)
	now := time.UnixMilli(c.Due).Add(36 * time.Hour)

	for _, r := range allRatings {
		a, err := m.Transition("apple", &c, r, now, 1)
		require.NoError(t, err)
		b, err := m.Transition("apple", &c, r, now, 1)
		require.NoError(t, err)
		assert.Equal(t, a, b, r.String())
	}
}

func TestMemoryModel_InvalidInput(t *testing.T) {
	t.Parallel()
	m := newModel()

	tests := []struct {
		name    string
		prior   *models.CardState
		rating  models.Rating
		wantErr error
	}{
		{name: "zero rating", rating: models.Rating(0), wantErr: ErrInvalidRating},
		{name: "out of range rating", rating: models.Rating(7), wantErr: ErrInvalidRating},
		{
			name:    "unknown prior state",
			prior:   &models.CardState{Word: "apple", State: models.State(9), Stability: 2},
			rating:  models.RatingRemembered,
			wantErr: ErrInvalidState,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := m.Transition("apple", tt.prior, tt.rating, t0, 0)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMemoryModel_Preview(t *testing.T) {
	t.Parallel()
	m := newModel()

	c := reviewCard(t, m)
	now := time.UnixMilli(c.Due)

	preview, err := m.Preview("apple", &c, now)
	require.NoError(t, err)
	require.Len(t, preview, 3)

	for _, r := range allRatings {
		want, err := m.Transition("apple", &c, r, now, 0)
		require.NoError(t, err)
		assert.Equal(t, want, preview[r])
	}
}

func TestMemoryModel_DesiredRetentionShortensIntervals(t *testing.T) {
	t.Parallel()

	relaxed := NewMemoryModel(MemoryModelConfig{DesiredRetention: 0.8})
	strict := NewMemoryModel(MemoryModelConfig{DesiredRetention: 0.97})

	a, err := relaxed.Transition("apple", nil, models.RatingPerfect, t0, 0)
	require.NoError(t, err)
	b, err := strict.Transition("apple", nil, models.RatingPerfect, t0, 0)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, a.ScheduledDays, b.ScheduledDays)
}
