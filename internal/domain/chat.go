package domain

import "time"

// ChatMessage is one entry of the mentor chat log.
type ChatMessage struct {
	Role   ChatRole
	Text   string
	SentAt time.Time
}
