package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The chat has exactly two fixed participants.
const (
	RoleA = "A"
	RoleB = "B"
)

// Message types.
const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
	MessageTypeVoice = "voice"
)

// ValidRole reports whether role is one of the two chat identities.
func ValidRole(role string) bool {
	return role == RoleA || role == RoleB
}

// PartnerRole returns the opposite chat identity.
func PartnerRole(role string) string {
	if role == RoleA {
		return RoleB
	}
	return RoleA
}

// Message represents a single chat message in the PostgreSQL database.
// Messages are created by a send action and mutated only by soft delete
// (unsend) or reaction attach. Text is non-null only for type "text" and
// only while the message is not deleted.
type Message struct {
	// ID is the opaque message identifier (UUID).
	ID string `gorm:"primaryKey" json:"id"`
	// SenderRole is "A" or "B".
	SenderRole string `gorm:"type:text;not null;index" json:"sender_role"`
	// Type is one of "text", "image", "voice".
	Type string `gorm:"type:text;not null" json:"type"`
	// Text is the message body for text messages, cleared on unsend.
	Text *string `gorm:"type:text" json:"text"`
	// MediaPath is the storage object key for image/voice payloads.
	// The binary itself lives in a collaborator storage bucket.
	MediaPath *string `gorm:"type:text" json:"media_path,omitempty"`
	// Deleted marks an unsent message. The row is kept for history.
	Deleted   bool      `gorm:"not null;default:false" json:"deleted"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Translations []Translation `gorm:"constraint:OnDelete:CASCADE" json:"translations,omitempty"`
	Reactions    []Reaction    `gorm:"constraint:OnDelete:CASCADE" json:"reactions,omitempty"`
}

// BeforeCreate is a GORM hook that assigns a new UUID when the ID is not set.
func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}
