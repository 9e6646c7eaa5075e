package model

import (
	"encoding/json"
	"time"
)

// InfluencerProfile is a read-mostly persona descriptor used to style the
// dialogue prompt and to group session history. Not mutated by the chat
// core.
type InfluencerProfile struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Slug       string          `gorm:"not null;uniqueIndex" json:"slug"`
	Name       string          `gorm:"not null" json:"name"`
	Greeting   string          `gorm:"type:text" json:"greeting"`
	Emoji      string          `json:"emoji"`
	ColorTheme string          `json:"color_theme"`
	Expertise  json.RawMessage `gorm:"type:json" json:"expertise"`
	Closing    string          `gorm:"type:text" json:"closing"`
}

func (InfluencerProfile) TableName() string {
	return "influencer_profile"
}
