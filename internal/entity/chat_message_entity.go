package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ChatSenderUser = "user"
	ChatSenderBot  = "bot"

	ChatMessageTypeText   = "text"
	ChatMessageTypeResult = "result"
)

// ChatMessage is one turn in the assistant conversation log.
// Result-typed messages carry the catalog items the reply refers to.
type ChatMessage struct {
	Id        uuid.UUID
	Text      string
	Sender    string
	Type      string
	Results   []CatalogItem
	CreatedAt time.Time
}
