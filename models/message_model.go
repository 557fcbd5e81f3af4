package models

import "time"

// Message is immutable once stored.
type Message struct {
	ID             string    `bson:"_id" json:"id"`
	ConversationID string    `bson:"conversation_id" json:"conversation_id"`
	SenderID       string    `bson:"sender_id" json:"sender_id"`
	Content        string    `bson:"content" json:"content"`
	Attachments    []string  `bson:"attachments,omitempty" json:"attachments,omitempty"`
	SentAt         time.Time `bson:"sent_at" json:"sent_at"`
}
