package chathub_test

import (
	"time"

	"duetchat/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStorage implements storage.Storage for hub tests. It deliberately does
// not implement SubscribeEvents, so the hub runs without a Redis listener.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStorage) GetMessageByID(id string) (*models.Message, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockStorage) GetMessages(limit int, before *time.Time) ([]models.Message, error) {
	args := m.Called(limit, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStorage) SoftDeleteMessage(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) SetReaction(reaction *models.Reaction) error {
	args := m.Called(reaction)
	return args.Error(0)
}

func (m *MockStorage) RemoveReaction(messageID, userRole string) error {
	args := m.Called(messageID, userRole)
	return args.Error(0)
}

func (m *MockStorage) GetTranslation(messageID, sourceLang, targetLang string) (*models.Translation, error) {
	args := m.Called(messageID, sourceLang, targetLang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Translation), args.Error(1)
}

func (m *MockStorage) SaveTranslation(t *models.Translation) error {
	args := m.Called(t)
	return args.Error(0)
}

func (m *MockStorage) GetTranslationsForMessage(messageID, targetLang string) ([]models.Translation, error) {
	args := m.Called(messageID, targetLang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Translation), args.Error(1)
}

func (m *MockStorage) UpsertTranslationPreference(pref *models.TranslationPreference) error {
	args := m.Called(pref)
	return args.Error(0)
}

func (m *MockStorage) GetTranslationPreferences(userRole string, messageIDs []string) ([]models.TranslationPreference, error) {
	args := m.Called(userRole, messageIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TranslationPreference), args.Error(1)
}

func (m *MockStorage) SaveWorkout(w *models.Workout) error {
	args := m.Called(w)
	return args.Error(0)
}

func (m *MockStorage) GetWorkouts() ([]models.Workout, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Workout), args.Error(1)
}

func (m *MockStorage) UpsertPushSubscription(sub *models.PushSubscription) error {
	args := m.Called(sub)
	return args.Error(0)
}

func (m *MockStorage) GetPushSubscription(userRole string) (*models.PushSubscription, error) {
	args := m.Called(userRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PushSubscription), args.Error(1)
}

func (m *MockStorage) PublishEvent(event models.ChatEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockStorage) MarkOnline(userRole string) error {
	args := m.Called(userRole)
	return args.Error(0)
}

func (m *MockStorage) IsOnline(userRole string) (bool, error) {
	args := m.Called(userRole)
	return args.Bool(0), args.Error(1)
}

// MockClient is an in-memory chathub.Client. Events the hub sends land in
// RecvChannel.
type MockClient struct {
	userRole    string
	RecvChannel chan models.ChatEvent
	closed      bool
}

func newMockClient(userRole string, buffer int) *MockClient {
	return &MockClient{
		userRole:    userRole,
		RecvChannel: make(chan models.ChatEvent, buffer),
	}
}

func (c *MockClient) GetUserRole() string {
	return c.userRole
}

func (c *MockClient) GetSendChannel() chan<- models.ChatEvent {
	return c.RecvChannel
}

func (c *MockClient) Run() {
	// Not needed for testing
}

func (c *MockClient) Close() {
	c.closed = true
}

// MockNotifier implements chathub.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyNewMessage(recipientRole string) {
	m.Called(recipientRole)
}
