package chathub

import (
	"time"

	"duetchat/backend/internal/models"
	"duetchat/backend/internal/storage"

	"github.com/sirupsen/logrus"
)

// presenceRefreshInterval must stay well under config.PresenceTTL so a
// connected client never looks offline.
const presenceRefreshInterval = 15 * time.Second

// ManagerService is the hub: it tracks live connections for both chat
// identities and fans chat events out to them. Cross-instance delivery goes
// through Redis pub/sub; the hub republishes everything it receives there
// and feeds what arrives back to its local clients.
type ManagerService struct {
	Clients map[Client]bool

	// Channels
	IncomingCh   chan models.ChatEvent
	RegisterCh   chan Client
	UnregisterCh chan Client

	// PubSubCh carries events arriving from the Redis subscription.
	PubSubCh chan models.ChatEvent

	Storage  storage.Storage
	Notifier Notifier
	Logger   *logrus.Logger
}

// NewManagerService creates the hub.
func NewManagerService(s storage.Storage, logger *logrus.Logger) *ManagerService {
	if logger == nil {
		logger = logrus.New()
	}
	return &ManagerService{
		Clients:      make(map[Client]bool),
		IncomingCh:   make(chan models.ChatEvent),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		PubSubCh:     make(chan models.ChatEvent),
		Storage:      s,
		Logger:       logger,
	}
}

// SetNotifier installs the offline notification bridge.
func (m *ManagerService) SetNotifier(n Notifier) {
	m.Notifier = n
}

// Broadcast publishes a chat event to every instance via Redis and, for new
// messages, nudges the partner when they have no live connection anywhere.
func (m *ManagerService) Broadcast(event models.ChatEvent) {
	if err := m.Storage.PublishEvent(event); err != nil {
		// Clients recover the missed event on their next fetch.
		m.Logger.WithError(err).WithField("type", event.Type).Error("Failed to publish chat event")
	}

	if event.Type == models.EventMessageNew && m.Notifier != nil {
		recipient := models.PartnerRole(event.SenderRole)
		online, err := m.Storage.IsOnline(recipient)
		if err != nil {
			m.Logger.WithError(err).WithField("role", recipient).Error("Presence check failed")
			return
		}
		if !online {
			m.Notifier.NotifyNewMessage(recipient)
		}
	}
}

// Run is the hub's main dispatcher goroutine.
func (m *ManagerService) Run() {
	m.startPubSubListener()

	presenceTicker := time.NewTicker(presenceRefreshInterval)
	defer presenceTicker.Stop()

	for {
		select {
		case client := <-m.RegisterCh:
			m.Clients[client] = true
			if err := m.Storage.MarkOnline(client.GetUserRole()); err != nil {
				m.Logger.WithError(err).Error("Failed to mark client online")
			}
			m.Logger.WithField("role", client.GetUserRole()).Info("Client connected")

		case client := <-m.UnregisterCh:
			if _, ok := m.Clients[client]; ok {
				delete(m.Clients, client)
				client.Close()
				m.Logger.WithField("role", client.GetUserRole()).Info("Client disconnected")
			}

		case event := <-m.IncomingCh:
			// Client-originated events (typing) are fanned out like
			// everything else.
			m.Broadcast(event)

		case event := <-m.PubSubCh:
			m.deliver(event)

		case <-presenceTicker.C:
			for client := range m.Clients {
				if err := m.Storage.MarkOnline(client.GetUserRole()); err != nil {
					m.Logger.WithError(err).Error("Presence refresh failed")
				}
			}
		}
	}
}

// deliver pushes one event to every local client. A client whose send
// buffer is full is dropped: a reader that slow is better off reconnecting
// and re-fetching than stalling the hub.
func (m *ManagerService) deliver(event models.ChatEvent) {
	for client := range m.Clients {
		select {
		case client.GetSendChannel() <- event:
		default:
			delete(m.Clients, client)
			client.Close()
			m.Logger.WithField("role", client.GetUserRole()).Warn("Dropped slow client")
		}
	}
}
