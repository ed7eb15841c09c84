package handler

import (
	"net/http"

	"duetchat/backend/internal/apperrors"
	"duetchat/backend/internal/translate"

	"github.com/gin-gonic/gin"
)

// TranslateMessage runs the translation pipeline for one message.
// POST /api/translations
func (h *Handler) TranslateMessage(c *gin.Context) {
	var req translate.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.NewValidation("body", "invalid JSON payload"))
		return
	}

	result, err := h.Translations.Translate(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "translation": result})
}

// GetTranslations lists the cached translations of a message.
// GET /api/translations/:messageId?targetLanguage=
func (h *Handler) GetTranslations(c *gin.Context) {
	translations, err := h.Translations.ListTranslations(c.Param("messageId"), c.Query("targetLanguage"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "translations": translations})
}

// SetTranslationPreference upserts the viewer's display preference.
// POST /api/translations/preferences
func (h *Handler) SetTranslationPreference(c *gin.Context) {
	var input translate.PreferenceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.respondError(c, apperrors.NewValidation("body", "invalid JSON payload"))
		return
	}

	pref, err := h.Translations.SetPreference(viewerRole(c), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "preference": pref})
}

// GetSupportedLanguages exposes the fixed language set to the UI.
// GET /api/languages
func (h *Handler) GetSupportedLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "languages": translate.SupportedLanguages()})
}
