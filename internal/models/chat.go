package models

import "time"

// Conversation is one thread per unordered user pair. StarterID is the
// user who opened the thread; PartnerID the other side.
type Conversation struct {
	ID        int64     `json:"id"`
	StarterID int64     `json:"starter_id"`
	PartnerID int64     `json:"partner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OtherParticipant returns the counterpart of userID in the thread.
func (c *Conversation) OtherParticipant(userID int64) int64 {
	if c.StarterID == userID {
		return c.PartnerID
	}
	return c.StarterID
}

type ChatMessage struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	SenderID       int64     `json:"sender_id"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

type ConversationSummary struct {
	Conversation
	LastMessage *ChatMessage `json:"last_message,omitempty"`
	UnreadCount int          `json:"unread_count"`
}
