package response

import (
	"encoding/json"
	"time"
)

type ReportResponse struct {
	ReportUID        string          `json:"report_uid"`
	CreatedAt        time.Time       `json:"created_at"`
	SessionID        *uint           `json:"session_id"`
	Source           string          `json:"source"`
	ResultTone       string          `json:"result_tone"`
	ResultName       string          `json:"result_name"`
	Confidence       float64         `json:"confidence"`
	Description      string          `json:"description"`
	DetailedAnalysis string          `json:"detailed_analysis"`
	ColorPalette     json.RawMessage `json:"color_palette"`
	StyleKeywords    json.RawMessage `json:"style_keywords"`
	MakeupTips       json.RawMessage `json:"makeup_tips"`
}

type GetReportsResponse struct {
	Reports []ReportResponse `json:"reports"`
}
