package chathub

import "duetchat/backend/internal/models"

// Client is the interface for one live connection of a chat participant.
// It abstracts the underlying transport so the hub can manage every
// connection type uniformly.
type Client interface {
	// GetUserRole returns the chat identity ("A" or "B") behind the client.
	GetUserRole() string

	// GetSendChannel returns the channel the hub writes outbound events to.
	GetSendChannel() chan<- models.ChatEvent

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts down the client's connection and channels.
	Close()
}

// Notifier delivers an out-of-band nudge to a participant with no live
// connection. Implemented by the Telegram bridge.
type Notifier interface {
	NotifyNewMessage(recipientRole string)
}
