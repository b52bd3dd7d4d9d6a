package model

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"

	// IntelStreamSession is the well-known session the ingestion loops
	// append to. It is distinct from user-facing chat sessions.
	IntelStreamSession = "INTEL_STREAM"
)

type ChatSession struct {
	ID        string
	Title     string
	CreatedAt time.Time
}

type ChatMessage struct {
	ID        int64
	SessionID string
	Role      string
	Content   string
	CreatedAt time.Time
}

type Favorite struct {
	Ticker  string
	AddedAt time.Time
}
