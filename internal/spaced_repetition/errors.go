package spaced_repetition

import "github.com/example/recallbot/pkg/models"

// Boundary validation errors. Use errors.Is to check.
var (
	ErrInvalidRating = models.ErrInvalidRating
	ErrInvalidState  = models.ErrInvalidState
)
