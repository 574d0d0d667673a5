package model

import "time"

// Role identifies who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message stores a single turn of a conversation. Turns are never edited once appended.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatState is a snapshot of the active conversation.
type ChatState struct {
	Turns   []Message `json:"turns"`
	Loading bool      `json:"loading"`
	Draft   string    `json:"draft"`
}

// SavedSession is an archived copy of a past conversation.
type SavedSession struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	Turns     []Message `json:"turns"`
}

// CopyMessages returns an independent copy of msgs. A nil or empty input yields an empty, non-nil slice.
func CopyMessages(msgs []Message) []Message {
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}
