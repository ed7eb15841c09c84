package workout

import (
	"strings"

	"duetchat/backend/internal/apperrors"
	"duetchat/backend/internal/models"
	"duetchat/backend/internal/storage"

	"github.com/sirupsen/logrus"
)

// Service validates workout submissions and persists them. Entries are
// immutable once stored; there is no update path.
type Service struct {
	Storage storage.Storage
	Logger  *logrus.Logger
}

// NewService creates a workout service.
func NewService(s storage.Storage, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
	}
	return &Service{Storage: s, Logger: logger}
}

// Create validates the submission, reconciles the weight fields and stores
// the workout.
func (s *Service) Create(input Input) (*models.Workout, error) {
	details := map[string]string{}
	if strings.TrimSpace(input.ExerciseName) == "" {
		details["exercise_name"] = "is required"
	}
	if input.Sets <= 0 {
		details["sets"] = "must be a positive integer"
	}
	if input.Reps <= 0 {
		details["reps"] = "must be a positive integer"
	}
	if input.DifficultyRating != nil && (*input.DifficultyRating < 1 || *input.DifficultyRating > 10) {
		details["difficulty_rating"] = "must be between 1 and 10"
	}
	if len(details) > 0 {
		return nil, &apperrors.ValidationError{Details: details}
	}

	weight, perSet, err := ReconcileWeights(input.Sets, input.Weight, input.PerSetWeights)
	if err != nil {
		return nil, err
	}

	w := &models.Workout{
		ExerciseName:     strings.TrimSpace(input.ExerciseName),
		Sets:             input.Sets,
		Reps:             input.Reps,
		Weight:           weight,
		PerSetWeights:    perSet,
		DifficultyRating: input.DifficultyRating,
		Notes:            input.Notes,
	}
	if err := s.Storage.SaveWorkout(w); err != nil {
		return nil, &apperrors.StorageError{Code: apperrors.CodeStorageFailed, Op: "save workout", Err: err}
	}

	s.Logger.WithFields(logrus.Fields{
		"exercise": w.ExerciseName,
		"sets":     w.Sets,
	}).Info("Workout logged")
	return w, nil
}

// List returns every workout entry, newest first.
func (s *Service) List() ([]models.Workout, error) {
	workouts, err := s.Storage.GetWorkouts()
	if err != nil {
		return nil, &apperrors.StorageError{Code: apperrors.CodeStorageFailed, Op: "list workouts", Err: err}
	}
	return workouts, nil
}
