package model

import (
	"encoding/json"
	"time"
)

type SessionStatus string

const (
	SessionOpen   SessionStatus = "OPEN"
	SessionClosed SessionStatus = "CLOSED"
)

// ChatSession is one conversation thread between a user and the assistant,
// optionally scoped to an influencer persona. At most one OPEN session may
// exist per (user, influencer) pair; the counter fields below are mutated
// only through the locked store operations in service/chat.
type ChatSession struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uint      `gorm:"not null;index:idx_user_influencer" json:"user_id"`

	// Persona slug, empty for the default consultant
	Influencer string `gorm:"index:idx_user_influencer" json:"influencer"`

	Status SessionStatus `gorm:"not null;default:OPEN" json:"status"`

	// User-authored turns since session creation or since the last
	// diagnosis reset
	UserTurns int `gorm:"not null;default:0" json:"user_turns"`

	// Set while an auto-materialized report exists for the current cycle.
	// Reset together with UserTurns, never separately.
	Diagnosed bool `gorm:"not null;default:false" json:"diagnosed"`

	EndedAt *time.Time `json:"ended_at"`
}

func (ChatSession) TableName() string {
	return "chat_session"
}

// Turn is an append-only (user message, assistant response) pair. The
// opening welcome turn has no user text and does not count toward
// UserTurns. Turns are never edited or deleted.
type Turn struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_session_created" json:"created_at"`
	SessionID uint      `gorm:"not null;index:idx_session_created" json:"session_id"`

	// Monotonic position within the session
	Seq int `gorm:"not null" json:"seq"`

	// Nil for the assistant-only welcome turn
	UserText *string `gorm:"type:text" json:"user_text"`

	Narrative string `gorm:"type:text" json:"narrative"`

	// Structured assistant payload; nil when the adapter degraded to a
	// fallback narrative without a classification
	Payload json.RawMessage `gorm:"type:json" json:"payload"`

	// Raw influencer-styling metadata passed through for the frontend
	Styling json.RawMessage `gorm:"type:json" json:"styling"`
}

func (Turn) TableName() string {
	return "chat_turn"
}

// AssistantPayload is the normalized structured output of the dialogue
// model. The JSON field names are part of the external contract; report
// rendering and the frontend depend on them.
type AssistantPayload struct {
	PrimaryTone     string   `json:"primary_tone"`
	SubTone         string   `json:"sub_tone"`
	Description     string   `json:"description"`
	Recommendations []string `json:"recommendations"`
	Emotion         string   `json:"emotion"`
}

// DecodePayload parses a stored turn payload. Returns nil when the turn
// carries no structured payload.
func (t *Turn) DecodePayload() *AssistantPayload {
	if len(t.Payload) == 0 {
		return nil
	}
	var p AssistantPayload
	if err := json.Unmarshal(t.Payload, &p); err != nil {
		return nil
	}
	return &p
}
