// Package workout handles workout logging, including the reconciliation of
// the legacy single-weight field with the newer per-set weights array.
package workout

import (
	"fmt"
	"math"

	"duetchat/backend/internal/apperrors"
)

// Input is the boundary shape of a workout submission. Weight and
// PerSetWeights are pointers/slices so that "absent" is distinguishable
// from zero values.
type Input struct {
	ExerciseName     string    `json:"exercise_name"`
	Sets             int       `json:"sets"`
	Reps             int       `json:"reps"`
	Weight           *float64  `json:"weight"`
	PerSetWeights    []float64 `json:"per_set_weights"`
	DifficultyRating *int      `json:"difficulty_rating"`
	Notes            string    `json:"notes"`
}

// ReconcileWeights normalizes the three accepted submission shapes (legacy
// weight only, per-set weights only, or both) into one stored
// representation:
//
//   - per-set weights present: stored verbatim, and the stored single
//     weight is forced to the first element. A conflicting legacy weight is
//     overridden, not rejected.
//   - only the legacy weight present: stored as-is, per-set weights NULL.
//   - neither present: validation failure.
//
// Returns (storedWeight, storedPerSetWeights, error).
func ReconcileWeights(sets int, weight *float64, perSetWeights []float64) (float64, []float64, error) {
	if perSetWeights != nil {
		if len(perSetWeights) != sets {
			return 0, nil, apperrors.NewValidation("per_set_weights",
				fmt.Sprintf("length %d does not match sets (%d)", len(perSetWeights), sets))
		}
		for i, w := range perSetWeights {
			if !validWeight(w) {
				return 0, nil, apperrors.NewValidation("per_set_weights",
					fmt.Sprintf("element %d must be a non-negative finite number", i))
			}
		}
		return perSetWeights[0], perSetWeights, nil
	}

	if weight != nil {
		if !validWeight(*weight) {
			return 0, nil, apperrors.NewValidation("weight", "must be a non-negative finite number")
		}
		return *weight, nil, nil
	}

	return 0, nil, apperrors.NewValidation("weight", "either weight or per_set_weights is required")
}

func validWeight(w float64) bool {
	return w >= 0 && !math.IsNaN(w) && !math.IsInf(w, 0)
}
