package model

import (
	"encoding/json"
	"time"
)

type ReportSource string

const (
	// Report derived from a completed chat diagnosis cycle
	ReportSourceChat ReportSource = "chat"

	// Report derived from the fixed-form survey
	ReportSourceSurvey ReportSource = "survey"
)

// DiagnosisReport is the durable result of exactly one committing event
// (a 3-turn chat cycle or a survey submission). A new cycle always produces
// a new record; reports are deleted only on explicit user request.
// Indexed on (user_id, created_at) for the history listing.
type DiagnosisReport struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_report_user_created" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Stable public identifier handed to clients
	ReportUID string `gorm:"not null;uniqueIndex" json:"report_uid"`

	UserID uint `gorm:"not null;index:idx_report_user_created" json:"user_id"`

	// Nil for survey-sourced reports
	SessionID *uint `json:"session_id"`

	Source ReportSource `gorm:"not null" json:"source"`

	// spring, summer, autumn or winter
	ResultTone string `gorm:"not null" json:"result_tone"`

	// Human-readable result, e.g. "Autumn Warm"
	ResultName string `json:"result_name"`

	Confidence float64 `gorm:"not null" json:"confidence"`

	Description      string `gorm:"type:text" json:"description"`
	DetailedAnalysis string `gorm:"type:text" json:"detailed_analysis"`

	ColorPalette  json.RawMessage `gorm:"type:json" json:"color_palette"`
	StyleKeywords json.RawMessage `gorm:"type:json" json:"style_keywords"`
	MakeupTips    json.RawMessage `gorm:"type:json" json:"makeup_tips"`
}

func (DiagnosisReport) TableName() string {
	return "diagnosis_report"
}
