package mastery

import (
	"context"

	"github.com/mathprep/backend/internal/models"
)

// StepSize returns the update strength for the n-th graded attempt at a
// scope. New scopes converge fast; mature ones move in small steps.
func StepSize(attempts int) float64 {
	if attempts < 5 {
		return 0.30
	}
	if attempts < 20 {
		return 0.20
	}
	return 0.10
}

// UpdatedProbability moves the current mastery estimate toward 1 on a
// correct answer and toward 0 on a wrong one, by a step that shrinks as
// evidence accumulates. The result stays in [0, 1] and the most recent
// evidence dominates.
func UpdatedProbability(current float64, correct bool, attempts int) float64 {
	target := 0.0
	if correct {
		target = 1.0
	}

	p := current + (target-current)*StepSize(attempts)

	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return p
}

// ProgressCalculator supplies the current probability table for a pair. The
// pipeline substitutes an empty table when the calculator fails.
type ProgressCalculator interface {
	Compute(ctx context.Context, userID int64, courseID string) ([]models.ProbabilityEntry, error)
}
