package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"duetchat/backend/internal/apperrors"
	"duetchat/backend/internal/config"
	"duetchat/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SendMessage creates a text message and broadcasts it.
func (h *Handler) SendMessage(c *gin.Context) {
	var body struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, apperrors.NewValidation("body", "invalid JSON payload"))
		return
	}
	if strings.TrimSpace(body.Text) == "" {
		h.respondError(c, apperrors.NewValidation("text", "must be a non-empty string"))
		return
	}

	text := body.Text
	msg := &models.Message{
		SenderRole: viewerRole(c),
		Type:       models.MessageTypeText,
		Text:       &text,
	}
	if err := h.Storage.SaveMessage(msg); err != nil {
		h.respondError(c, &apperrors.StorageError{Code: apperrors.CodeMessageSaveFailed, Op: "save message", Err: err})
		return
	}

	h.Hub.Broadcast(models.ChatEvent{
		Type:       models.EventMessageNew,
		SenderRole: msg.SenderRole,
		MessageID:  msg.ID,
		Message:    msg,
	})

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": msg})
}

// GetMessages returns one page of messages enriched with the viewer's
// translation preferences. Query: ?limit= & ?before=RFC3339.
func (h *Handler) GetMessages(c *gin.Context) {
	limit := config.DefaultPageLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.respondError(c, apperrors.NewValidation("limit", "must be a positive integer"))
			return
		}
		if parsed > config.MaxPageLimit {
			parsed = config.MaxPageLimit
		}
		limit = parsed
	}

	var before *time.Time
	if raw := c.Query("before"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.respondError(c, apperrors.NewValidation("before", "must be an RFC3339 timestamp"))
			return
		}
		before = &parsed
	}

	page, err := h.Storage.GetMessages(limit, before)
	if err != nil {
		h.respondError(c, &apperrors.StorageError{Code: apperrors.CodeStorageFailed, Op: "load messages", Err: err})
		return
	}

	enriched, err := h.Translations.EnrichMessages(page, viewerRole(c))
	if err != nil {
		h.respondError(c, &apperrors.StorageError{Code: apperrors.CodeStorageFailed, Op: "enrich messages", Err: err})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "messages": enriched})
}

// UnsendMessage soft-deletes a message. Only the sender may unsend.
func (h *Handler) UnsendMessage(c *gin.Context) {
	id := c.Param("id")

	msg, err := h.Storage.GetMessageByID(id)
	if err != nil {
		h.respondError(c, &apperrors.StorageError{Code: apperrors.CodeStorageFailed, Op: "fetch message", Err: err})
		return
	}
	if msg == nil {
		h.respondError(c, &apperrors.NotFoundError{Code: apperrors.CodeMessageNotFound, Resource: "message", ID: id})
		return
	}
	if msg.SenderRole != viewerRole(c) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   "Only the sender can unsend a message",
			"code":    apperrors.CodeForbidden,
		})
		return
	}

	if err := h.Storage.SoftDeleteMessage(id); err != nil {
		h.respondError(c, &apperrors.StorageError{Code: apperrors.CodeStorageFailed, Op: "unsend message", Err: err})
		return
	}

	h.Hub.Broadcast(models.ChatEvent{
		Type:       models.EventMessageDeleted,
		SenderRole: viewerRole(c),
		MessageID:  id,
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SetReaction attaches (or replaces) the viewer's emoji on a message.
func (h *Handler) SetReaction(c *gin.Context) {
	id := c.Param("id")

	var body struct {
		Emoji string `json:"emoji"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Emoji) == "" {
		h.respondError(c, apperrors.NewValidation("emoji", "must be a non-empty string"))
		return
	}

	msg, err := h.Storage.GetMessageByID(id)
	if err != nil {
		h.respondError(c, &apperrors.StorageError{Code: apperrors.CodeStorageFailed, Op: "fetch message", Err: err})
		return
	}
	if msg == nil {
		h.respondError(c, &apperrors.NotFoundError{Code: apperrors.CodeMessageNotFound, Resource: "message", ID: id})
		return
	}

	reaction := &models.Reaction{
		MessageID: id,
		UserRole:  viewerRole(c),
		Emoji:     body.Emoji,
	}
	if err := h.Storage.SetReaction(reaction); err != nil {
		h.respondError(c, &apperrors.StorageError{Code: apperrors.CodeStorageFailed, Op: "set reaction", Err: err})
		return
	}

	h.Hub.Broadcast(models.ChatEvent{
		Type:       models.EventReactionSet,
		SenderRole: viewerRole(c),
		MessageID:  id,
		Emoji:      body.Emoji,
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "reaction": reaction})
}

// RemoveReaction clears the viewer's reaction from a message.
func (h *Handler) RemoveReaction(c *gin.Context) {
	id := c.Param("id")

	if err := h.Storage.RemoveReaction(id, viewerRole(c)); err != nil {
		h.respondError(c, &apperrors.StorageError{Code: apperrors.CodeStorageFailed, Op: "remove reaction", Err: err})
		return
	}

	h.Hub.Broadcast(models.ChatEvent{
		Type:       models.EventReactionClear,
		SenderRole: viewerRole(c),
		MessageID:  id,
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}
