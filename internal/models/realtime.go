package models

// Realtime event types pushed over WebSocket and Redis pub/sub.
const (
	EventMessageNew     = "message_new"
	EventMessageDeleted = "message_deleted"
	EventReactionSet    = "reaction_set"
	EventReactionClear  = "reaction_clear"
	EventTyping         = "typing"
)

// ChatEvent is the wire format for realtime fanout between server
// instances and connected clients.
type ChatEvent struct {
	Type       string   `json:"type"`
	SenderRole string   `json:"sender_role"`
	MessageID  string   `json:"message_id,omitempty"`
	Emoji      string   `json:"emoji,omitempty"`
	Message    *Message `json:"message,omitempty"`
}

// EnrichedMessage is a message joined with the viewer's display preference.
// Translations ride along on the embedded message.
type EnrichedMessage struct {
	Message
	TranslationPreference TranslationPreference `json:"translation_preference"`
}
