package spaced_repetition

import (
	"math"
	"time"

	"github.com/example/recallbot/pkg/models"
)

const msPerDay = float64(24 * time.Hour / time.Millisecond)

// forgettingCurveScale fixes R = 0.9 at t = stability.
const forgettingCurveScale = 9.0

// Retrievability estimates the probability of recalling the card at now
// with the power-law curve R = (1 + t/(9·S))^-1, t in days since the last review.
// It returns 0 for new cards and cards without stability.
func Retrievability(c *models.CardState, now time.Time) float64 {
	if c.IsNew() || c.Stability <= 0 {
		return 0
	}
	t := math.Max(0, elapsedDays(c.LastReview, now))
	return math.Pow(1+t/(forgettingCurveScale*c.Stability), -1)
}

func elapsedDays(lastReview int64, now time.Time) float64 {
	return float64(now.UnixMilli()-lastReview) / msPerDay
}
