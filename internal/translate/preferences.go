package translate

import (
	"duetchat/backend/internal/apperrors"
	"duetchat/backend/internal/models"
)

// PreferenceInput is the boundary shape for a preference toggle.
// ShowOriginal is a pointer so that a missing boolean is distinguishable
// from an explicit false.
type PreferenceInput struct {
	MessageID      string  `json:"messageId"`
	ShowOriginal   *bool   `json:"showOriginal"`
	TargetLanguage *string `json:"targetLanguage"`
}

// SetPreference upserts the viewer's display preference for one message.
// A preference may be stored before any translation exists; the two are
// independent.
func (s *Service) SetPreference(viewerRole string, input PreferenceInput) (*models.TranslationPreference, error) {
	details := map[string]string{}
	if input.MessageID == "" {
		details["messageId"] = "must be a non-empty string"
	}
	if input.ShowOriginal == nil {
		details["showOriginal"] = "must be a boolean"
	}
	if input.TargetLanguage != nil && !IsSupported(*input.TargetLanguage) {
		details["targetLanguage"] = "unsupported language code"
	}
	if len(details) > 0 {
		return nil, &apperrors.ValidationError{Details: details}
	}

	pref := &models.TranslationPreference{
		UserRole:       viewerRole,
		MessageID:      input.MessageID,
		ShowOriginal:   *input.ShowOriginal,
		TargetLanguage: input.TargetLanguage,
	}
	if err := s.Storage.UpsertTranslationPreference(pref); err != nil {
		return nil, &apperrors.StorageError{Code: apperrors.CodePreferenceSaveFailed, Op: "upsert preference", Err: err}
	}
	return pref, nil
}
