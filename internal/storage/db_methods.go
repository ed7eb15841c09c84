package storage

import (
	"errors"
	"time"

	"duetchat/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaveMessage persists a new message. The BeforeCreate hook fills the UUID.
func (s *Service) SaveMessage(msg *models.Message) error {
	if err := s.DB.Create(msg).Error; err != nil {
		s.Logger.WithError(err).WithField("sender_role", msg.SenderRole).Error("Failed to save message")
		return err
	}
	return nil
}

// GetMessageByID returns the message with the given id, or (nil, nil) when
// no such message exists.
func (s *Service) GetMessageByID(id string) (*models.Message, error) {
	var msg models.Message
	err := s.DB.Where("id = ?", id).First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// GetMessages loads one page of messages with translations and reactions
// preloaded. Pages are cut newest-first by the optional before cursor and
// returned oldest-to-newest so the client appends in display order.
func (s *Service) GetMessages(limit int, before *time.Time) ([]models.Message, error) {
	q := s.DB.Preload("Translations").Preload("Reactions").Order("created_at desc").Limit(limit)
	if before != nil {
		q = q.Where("created_at < ?", *before)
	}

	var page []models.Message
	if err := q.Find(&page).Error; err != nil {
		s.Logger.WithError(err).Error("Failed to load message page")
		return nil, err
	}

	// Reverse into chronological order.
	for i, j := 0, len(page)-1; i < j; i, j = i+1, j-1 {
		page[i], page[j] = page[j], page[i]
	}
	return page, nil
}

// SoftDeleteMessage marks a message deleted and clears its text. Deleted
// messages must not carry text content.
func (s *Service) SoftDeleteMessage(id string) error {
	return s.DB.Model(&models.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"deleted": true,
			"text":    nil,
		}).Error
}

// SetReaction inserts or replaces the viewer's reaction on a message. The
// conflict target is the named (message_id, user_role) composite key.
func (s *Service) SetReaction(reaction *models.Reaction) error {
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "message_id"}, {Name: "user_role"}},
		DoUpdates: clause.AssignmentColumns([]string{"emoji", "created_at"}),
	}).Create(reaction).Error
}

// RemoveReaction deletes the viewer's reaction, if any.
func (s *Service) RemoveReaction(messageID, userRole string) error {
	return s.DB.Where("message_id = ? AND user_role = ?", messageID, userRole).
		Delete(&models.Reaction{}).Error
}

// GetTranslation looks up a cache entry for (message, source, target).
// Returns (nil, nil) on a cache miss.
func (s *Service) GetTranslation(messageID, sourceLang, targetLang string) (*models.Translation, error) {
	var t models.Translation
	err := s.DB.Where("message_id = ? AND source_language = ? AND target_language = ?",
		messageID, sourceLang, targetLang).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SaveTranslation inserts a cache entry. A concurrent writer that already
// inserted the same (message, source, target) triple wins; this insert is
// silently ignored on conflict.
func (s *Service) SaveTranslation(t *models.Translation) error {
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "message_id"}, {Name: "source_language"}, {Name: "target_language"}},
		DoNothing: true,
	}).Create(t).Error
}

// GetTranslationsForMessage returns all cached translations of a message,
// optionally narrowed to one target language.
func (s *Service) GetTranslationsForMessage(messageID, targetLang string) ([]models.Translation, error) {
	q := s.DB.Where("message_id = ?", messageID)
	if targetLang != "" {
		q = q.Where("target_language = ?", targetLang)
	}

	var out []models.Translation
	if err := q.Order("created_at asc").Find(&out).Error; err != nil {
		s.Logger.WithError(err).WithField("message_id", messageID).Error("Failed to load translations")
		return nil, err
	}
	return out, nil
}

// UpsertTranslationPreference inserts the preference row or, when the viewer
// already has one for this message, overwrites it and refreshes updated_at.
func (s *Service) UpsertTranslationPreference(pref *models.TranslationPreference) error {
	pref.UpdatedAt = time.Now()
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_role"}, {Name: "message_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"show_original", "target_language", "updated_at"}),
	}).Create(pref).Error
}

// GetTranslationPreferences batch-loads the viewer's preference rows for a
// set of message ids in a single query.
func (s *Service) GetTranslationPreferences(userRole string, messageIDs []string) ([]models.TranslationPreference, error) {
	if len(messageIDs) == 0 {
		return nil, nil
	}

	var prefs []models.TranslationPreference
	err := s.DB.Where("user_role = ? AND message_id IN ?", userRole, messageIDs).Find(&prefs).Error
	if err != nil {
		s.Logger.WithError(err).WithField("user_role", userRole).Error("Failed to load translation preferences")
		return nil, err
	}
	return prefs, nil
}

// SaveWorkout persists one workout entry.
func (s *Service) SaveWorkout(w *models.Workout) error {
	if err := s.DB.Create(w).Error; err != nil {
		s.Logger.WithError(err).WithField("exercise", w.ExerciseName).Error("Failed to save workout")
		return err
	}
	return nil
}

// GetWorkouts returns every workout entry, newest first.
func (s *Service) GetWorkouts() ([]models.Workout, error) {
	var workouts []models.Workout
	if err := s.DB.Order("created_at desc").Find(&workouts).Error; err != nil {
		s.Logger.WithError(err).Error("Failed to load workouts")
		return nil, err
	}
	return workouts, nil
}

// UpsertPushSubscription binds a Telegram chat id to an identity, replacing
// any previous binding for that identity.
func (s *Service) UpsertPushSubscription(sub *models.PushSubscription) error {
	sub.UpdatedAt = time.Now()
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_role"}},
		DoUpdates: clause.AssignmentColumns([]string{"telegram_chat_id", "updated_at"}),
	}).Create(sub).Error
}

// GetPushSubscription returns the subscription for a role, or (nil, nil) if
// the role never linked a Telegram chat.
func (s *Service) GetPushSubscription(userRole string) (*models.PushSubscription, error) {
	var sub models.PushSubscription
	err := s.DB.Where("user_role = ?", userRole).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}
