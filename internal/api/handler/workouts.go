package handler

import (
	"net/http"

	"duetchat/backend/internal/apperrors"
	"duetchat/backend/internal/workout"

	"github.com/gin-gonic/gin"
)

// CreateWorkout logs one workout entry. Public: the workout log is shared
// by both participants without auth, matching the chat's deployment model.
// POST /api/workouts
func (h *Handler) CreateWorkout(c *gin.Context) {
	var input workout.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		h.respondError(c, apperrors.NewValidation("body", "invalid JSON payload"))
		return
	}

	w, err := h.Workouts.Create(input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "workout": w})
}

// GetWorkouts lists every workout entry, newest first.
// GET /api/workouts
func (h *Handler) GetWorkouts(c *gin.Context) {
	workouts, err := h.Workouts.List()
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "workouts": workouts})
}
