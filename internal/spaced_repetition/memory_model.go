package spaced_repetition

import (
	"fmt"
	"time"

	"github.com/example/recallbot/pkg/models"
	"github.com/open-spaced-repetition/go-fsrs"
)

// MemoryModelConfig tunes the FSRS parameters. Zero values keep the library defaults.
type MemoryModelConfig struct {
	DesiredRetention float64 // target recall probability at the due date
	MaximumInterval  int     // days
}

// MemoryModel maps (prior state, rating, time) to the next card state
// using the FSRS forgetting-curve update rule.
// It holds only immutable parameters and is safe for concurrent use.
type MemoryModel struct {
	params fsrs.Parameters
}

// NewMemoryModel creates a MemoryModel from the given config.
func NewMemoryModel(cfg MemoryModelConfig) *MemoryModel {
	p := fsrs.DefaultParam()
	if cfg.DesiredRetention > 0 {
		p.RequestRetention = cfg.DesiredRetention
	}
	if cfg.MaximumInterval > 0 {
		p.MaximumInterval = float64(cfg.MaximumInterval)
	}
	return &MemoryModel{params: p}
}

// Transition reviews word with the given rating at now and returns the replacement
// card state. A nil prior and a prior in the New state are treated identically:
// a fresh card is created at now and advanced by one step.
// timeSpentSec is added to the card's study time counter.
func (m *MemoryModel) Transition(word string, prior *models.CardState, rating models.Rating, now time.Time, timeSpentSec float64) (models.CardState, error) {
	grade, err := toFSRSRating(rating)
	if err != nil {
		return models.CardState{}, err
	}

	base := models.CardState{Word: word}
	card := fsrs.Card{Due: now, State: fsrs.New}
	if !prior.IsNew() {
		if !prior.State.IsValid() {
			return models.CardState{}, fmt.Errorf("%w: %d", ErrInvalidState, int(prior.State))
		}
		base = *prior
		base.Word = word
		card = toFSRSCard(*prior)
	}

	// Repeat may record a fuzz seed on its receiver, so it runs on a copy.
	params := m.params
	next := params.Repeat(card, now)[grade].Card

	state, err := fromFSRSState(next.State)
	if err != nil {
		return models.CardState{}, err
	}

	out := base
	out.State = state
	out.Stability = next.Stability
	out.Difficulty = next.Difficulty
	out.ElapsedDays = 0
	out.ScheduledDays = int(next.ScheduledDays)
	out.Reps = int(next.Reps)
	out.Lapses = int(next.Lapses)
	out.LastReview = now.UnixMilli()
	if !next.LastReview.IsZero() {
		out.LastReview = next.LastReview.UnixMilli()
	}
	out.Due = next.Due.UnixMilli()
	out.LastRating = rating

	// FSRS only counts lapses out of Review; a forgot answer counts everywhere.
	if rating == models.RatingForgot && out.Lapses <= base.Lapses {
		out.Lapses = base.Lapses + 1
	}

	if rating == models.RatingForgot {
		out.WrongCount = base.WrongCount + 1
	} else {
		out.CorrectCount = base.CorrectCount + 1
	}
	out.TotalStudyTimeSec = base.TotalStudyTimeSec + timeSpentSec
	out.Retrievability = Retrievability(&out, now)

	return out, nil
}

// Preview returns the state each rating would produce, without side effects.
func (m *MemoryModel) Preview(word string, prior *models.CardState, now time.Time) (map[models.Rating]models.CardState, error) {
	result := make(map[models.Rating]models.CardState, 3)
	for _, r := range []models.Rating{models.RatingForgot, models.RatingRemembered, models.RatingPerfect} {
		c, err := m.Transition(word, prior, r, now, 0)
		if err != nil {
			return nil, err
		}
		result[r] = c
	}
	return result, nil
}

func toFSRSRating(r models.Rating) (fsrs.Rating, error) {
	switch r {
	case models.RatingForgot:
		return fsrs.Again, nil
	case models.RatingRemembered:
		return fsrs.Good, nil
	case models.RatingPerfect:
		return fsrs.Easy, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidRating, int(r))
	}
}

func fromFSRSState(s fsrs.State) (models.State, error) {
	switch s {
	case fsrs.New:
		return models.StateNew, nil
	case fsrs.Learning:
		return models.StateLearning, nil
	case fsrs.Review:
		return models.StateReview, nil
	case fsrs.Relearning:
		return models.StateRelearning, nil
	default:
		return 0, fmt.Errorf("%w: fsrs state %d", ErrInvalidState, int(s))
	}
}

func toFSRSState(s models.State) fsrs.State {
	switch s {
	case models.StateLearning:
		return fsrs.Learning
	case models.StateReview:
		return fsrs.Review
	case models.StateRelearning:
		return fsrs.Relearning
	default:
		return fsrs.New
	}
}

func toFSRSCard(c models.CardState) fsrs.Card {
	card := fsrs.Card{
		Due:           time.UnixMilli(c.Due),
		Stability:     c.Stability,
		Difficulty:    c.Difficulty,
		ElapsedDays:   uint64(max(c.ElapsedDays, 0)),
		ScheduledDays: uint64(max(c.ScheduledDays, 0)),
		Reps:          uint64(max(c.Reps, 0)),
		Lapses:        uint64(max(c.Lapses, 0)),
		State:         toFSRSState(c.State),
	}
	if c.LastReview > 0 {
		card.LastReview = time.UnixMilli(c.LastReview)
	}
	return card
}
