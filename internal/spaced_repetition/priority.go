package spaced_repetition

import (
	"math"
	"time"

	"github.com/example/recallbot/pkg/models"
)

const (
	newWordPriority = 100.0
	basePriority    = 50.0
)

// Priority scores how urgently a word should be presented; higher is more urgent.
//
// Unseen words score 100. Reviewed words score
// 50 · lastRatingFactor · max(1, elapsedDays / max(1, scheduledDays)),
// so a card is never discounted below its rating tier and grows linearly once overdue.
// A forgot card more than ~1.33× overdue outranks an unseen word.
func Priority(c *models.CardState, now time.Time) float64 {
	if c.IsNew() {
		return newWordPriority
	}
	elapsed := elapsedDays(c.LastReview, now)
	overdue := math.Max(1, elapsed/math.Max(1, float64(c.ScheduledDays)))
	return basePriority * lastRatingFactor(c.LastRating) * overdue
}

// lastRatingFactor is higher for weaker recall.
func lastRatingFactor(r models.Rating) float64 {
	switch r {
	case models.RatingForgot:
		return 1.5
	case models.RatingRemembered:
		return 1.2
	default:
		return 1.0
	}
}
