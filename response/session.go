package response

import (
	"encoding/json"
	"time"

	"personal-color-agent-backend/model"
)

type StartSessionResponse struct {
	SessionID uint `json:"session_id"`
	Reused    bool `json:"reused"`
	UserTurns int  `json:"user_turns"`
}

type CloseSessionResponse struct {
	SessionID uint       `json:"session_id"`
	EndedAt   *time.Time `json:"ended_at"`
}

type SessionResponse struct {
	SessionID  uint       `json:"session_id"`
	Influencer string     `json:"influencer"`
	Status     string     `json:"status"`
	UserTurns  int        `json:"user_turns"`
	CreatedAt  time.Time  `json:"created_at"`
	EndedAt    *time.Time `json:"ended_at"`
}

type GetSessionsResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

type TurnResponse struct {
	Seq          int                     `json:"seq"`
	CreatedAt    time.Time               `json:"created_at"`
	UserText     *string                 `json:"user_text"`
	Narrative    string                  `json:"narrative"`
	Payload      *model.AssistantPayload `json:"payload"`
	Styling      json.RawMessage         `json:"styling,omitempty"`
	EmotionAsset string                  `json:"emotion_asset"`
}

type GetHistoryResponse struct {
	SessionID uint           `json:"session_id"`
	Status    string         `json:"status"`
	UserTurns int            `json:"user_turns"`
	Turns     []TurnResponse `json:"turns"`
}
