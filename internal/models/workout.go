package models

import (
	"time"

	"github.com/lib/pq"
)

// Workout is one logged workout entry. Rows are insert-only.
//
// Weight carries the legacy single value; PerSetWeights, when present, holds
// one weight per set and its first element is mirrored into Weight so that
// readers of the old schema keep working.
type Workout struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	ExerciseName string `gorm:"type:text;not null" json:"exercise_name"`
	Sets         int    `gorm:"not null" json:"sets"`
	Reps         int    `gorm:"not null" json:"reps"`
	// Weight in kilograms. Equals PerSetWeights[0] whenever per-set
	// weights were submitted.
	Weight float64 `gorm:"not null" json:"weight"`
	// PerSetWeights has length == Sets when present, else NULL.
	PerSetWeights    pq.Float64Array `gorm:"type:numeric[]" json:"per_set_weights"`
	DifficultyRating *int            `json:"difficulty_rating,omitempty"`
	Notes            string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt        time.Time       `gorm:"index" json:"created_at"`
}
