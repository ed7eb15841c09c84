package storage

import (
	"context"
	"encoding/json"
	"time"

	"duetchat/backend/internal/config"
	"duetchat/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Storage is the persistence boundary for the whole service. Handlers and
// domain services depend on this interface so tests can swap in doubles.
type Storage interface {
	// Messages
	SaveMessage(msg *models.Message) error
	GetMessageByID(id string) (*models.Message, error)
	GetMessages(limit int, before *time.Time) ([]models.Message, error)
	SoftDeleteMessage(id string) error

	// Reactions
	SetReaction(reaction *models.Reaction) error
	RemoveReaction(messageID, userRole string) error

	// Translation cache
	GetTranslation(messageID, sourceLang, targetLang string) (*models.Translation, error)
	SaveTranslation(t *models.Translation) error
	GetTranslationsForMessage(messageID, targetLang string) ([]models.Translation, error)

	// Translation preferences
	UpsertTranslationPreference(pref *models.TranslationPreference) error
	GetTranslationPreferences(userRole string, messageIDs []string) ([]models.TranslationPreference, error)

	// Workouts
	SaveWorkout(w *models.Workout) error
	GetWorkouts() ([]models.Workout, error)

	// Push subscriptions
	UpsertPushSubscription(sub *models.PushSubscription) error
	GetPushSubscription(userRole string) (*models.PushSubscription, error)

	// Realtime / presence (Redis)
	PublishEvent(event models.ChatEvent) error
	MarkOnline(userRole string) error
	IsOnline(userRole string) (bool, error)
}

// EventChannel is the Redis pub/sub channel carrying chat events across
// server instances.
const EventChannel = "chat:events"

// Service implements Storage over PostgreSQL (GORM) and Redis.
type Service struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Ctx    context.Context
	Logger *logrus.Logger
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
	}
	return &Service{
		DB:     db,
		Redis:  rdb,
		Ctx:    context.Background(),
		Logger: logger,
	}
}

// PublishEvent publishes a chat event to Redis Pub/Sub for fanout to every
// server instance with connected clients.
func (s *Service) PublishEvent(event models.ChatEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, EventChannel, string(payload)).Err()
}

// SubscribeEvents subscribes to the chat event channel.
func (s *Service) SubscribeEvents() *redis.PubSub {
	return s.Redis.Subscribe(s.Ctx, EventChannel)
}

// MarkOnline refreshes the presence key for a role. The key expires on its
// own when heartbeats stop.
func (s *Service) MarkOnline(userRole string) error {
	key := "presence:" + userRole
	return s.Redis.Set(s.Ctx, key, time.Now().Unix(), config.PresenceTTL).Err()
}

// IsOnline checks whether a role has a live presence key.
func (s *Service) IsOnline(userRole string) (bool, error) {
	key := "presence:" + userRole
	n, err := s.Redis.Exists(s.Ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
