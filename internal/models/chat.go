package models

import "time"

const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// ChatMessage is one turn of a chatbot conversation.
type ChatMessage struct {
	Base      `bson:",inline"`
	Text      string    `bson:"text" json:"text"`
	Sender    string    `bson:"sender" json:"sender"`
	SessionID string    `bson:"sessionId" json:"sessionId"`
	Domain    string    `bson:"domain" json:"domain"`
	Intent    string    `bson:"intent,omitempty" json:"intent,omitempty"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}
