package models

import "time"

// Translation is a cached translation of one message into one target
// language. At most one row exists per (message, source, target) triple;
// rows are immutable once written and live as long as their message.
type Translation struct {
	ID uint `gorm:"primaryKey" json:"-"`
	// MessageID references the translated message. Deleting the message
	// removes its cache entries.
	MessageID string `gorm:"type:uuid;not null;uniqueIndex:idx_translation_cache_key" json:"message_id"`
	// SourceLanguage is the resolved (never "auto") source code.
	SourceLanguage string `gorm:"size:10;not null;uniqueIndex:idx_translation_cache_key" json:"source_language"`
	TargetLanguage string `gorm:"size:10;not null;uniqueIndex:idx_translation_cache_key" json:"target_language"`
	TranslatedText string `gorm:"type:text;not null" json:"translated_text"`
	CreatedAt      time.Time `json:"created_at"`

	Message *Message `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// TranslationPreference stores how one viewer wants one message displayed.
// Unique per (viewer role, message); upserted on every toggle.
type TranslationPreference struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	UserRole string `gorm:"type:text;not null;uniqueIndex:idx_pref_viewer_message" json:"user_role"`
	// MessageID cascades with the message row.
	MessageID string `gorm:"type:uuid;not null;uniqueIndex:idx_pref_viewer_message" json:"message_id"`
	// ShowOriginal defaults to true: the viewer sees the original text.
	ShowOriginal   bool      `gorm:"not null;default:true" json:"show_original"`
	TargetLanguage *string   `gorm:"size:10" json:"target_language"`
	UpdatedAt      time.Time `json:"updated_at"`

	Message *Message `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// DefaultPreference is the implied preference for messages the viewer has
// never toggled: show the original, no target language.
func DefaultPreference(userRole, messageID string) TranslationPreference {
	return TranslationPreference{
		UserRole:     userRole,
		MessageID:    messageID,
		ShowOriginal: true,
	}
}
