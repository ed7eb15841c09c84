package handler

import (
	"errors"
	"net/http"

	"duetchat/backend/internal/apperrors"
	"duetchat/backend/internal/chathub"
	"duetchat/backend/internal/config"
	"duetchat/backend/internal/storage"
	"duetchat/backend/internal/translate"
	"duetchat/backend/internal/workout"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handler carries every dependency the HTTP layer needs.
type Handler struct {
	Hub          *chathub.ManagerService
	Storage      storage.Storage
	Translations *translate.Service
	Workouts     *workout.Service
	Config       *config.Config
	Logger       *logrus.Logger
}

// NewHandler wires the HTTP layer.
func NewHandler(hub *chathub.ManagerService, s storage.Storage, t *translate.Service, w *workout.Service, cfg *config.Config, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		Hub:          hub,
		Storage:      s,
		Translations: t,
		Workouts:     w,
		Config:       cfg,
		Logger:       logger,
	}
}

// respondError maps a domain error onto the stable failure shape
// {success:false, error, code} with the right HTTP status. Validation
// failures additionally carry a field-level details map.
func (h *Handler) respondError(c *gin.Context, err error) {
	var (
		valErr      *apperrors.ValidationError
		notFound    *apperrors.NotFoundError
		conflict    *apperrors.ConflictError
		provider    *apperrors.ProviderError
		storageFail *apperrors.StorageError
	)

	switch {
	case errors.As(err, &valErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request",
			"code":    apperrors.CodeInvalidRequest,
			"details": valErr.Details,
		})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   notFound.Error(),
			"code":    notFound.Code,
		})
	case errors.As(err, &conflict):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   conflict.Message,
			"code":    conflict.Code,
		})
	case errors.As(err, &provider):
		status := provider.Status
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{
			"success": false,
			"error":   provider.Message,
			"code":    provider.Code,
		})
	case errors.As(err, &storageFail):
		h.Logger.WithError(err).Error("Storage failure")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Persistence failure",
			"code":    storageFail.Code,
		})
	default:
		h.Logger.WithError(err).Error("Unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Internal error",
			"code":    apperrors.CodeInternal,
		})
	}
}
