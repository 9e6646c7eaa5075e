package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"gorm.io/gorm"

	"personal-color-agent-backend/dao"
	"personal-color-agent-backend/model"
)

const (
	// Chat-sourced reports carry a flat confidence; the conversation is
	// signal enough once a sub-tone has been committed.
	chatConfidence = 0.85

	// Generated analyses shorter than this are treated as unusable and
	// replaced by the per-season default body.
	minAnalysisLength = 80
)

const reportSystemPrompt = `You are a personal color analyst writing a diagnosis report. Based on the consultation summary, reply with exactly one JSON object, no other text:
{
  "description": "2-3 sentence summary of the result",
  "detailed_analysis": "a thorough paragraph covering skin tone, flattering colors, makeup and outfit direction",
  "color_palette": ["5 hex color codes"],
  "style_keywords": ["5 short keywords"],
  "makeup_tips": ["4 practical makeup tips"]
}`

// Materializer turns a finished diagnosis cycle, or a survey submission,
// into a durable DiagnosisReport row. A nil llm makes every report use the
// deterministic per-season defaults, which is also the failure fallback.
type Materializer struct {
	db  *gorm.DB
	llm llms.Model
}

func NewMaterializer(db *gorm.DB, llm llms.Model) *Materializer {
	return &Materializer{db: db, llm: llm}
}

// DeriveSeason picks the season for a chat cycle: the most recent turn with
// a valid sub_tone wins, since the conversation refines the diagnosis as it
// goes; spring when no turn carries one.
func DeriveSeason(turns []model.Turn) Season {
	for i := len(turns) - 1; i >= 0; i-- {
		payload := turns[i].DecodePayload()
		if payload == nil {
			continue
		}
		if season, ok := SeasonFromSubTone(payload.SubTone); ok {
			return season
		}
	}
	return Spring
}

// Materialize creates the chat-sourced report for the session's current
// cycle. Any failure is wrapped in ErrMaterializationFailed so the caller
// can revert the diagnosis flag and retry on a later turn.
func (m *Materializer) Materialize(ctx context.Context, session *model.ChatSession, turns []model.Turn) (*model.DiagnosisReport, error) {
	season := DeriveSeason(turns)
	body := m.generateBody(ctx, season, summarizeTurns(turns))

	sessionID := session.ID
	report := buildReport(session.UserID, &sessionID, model.ReportSourceChat, season, chatConfidence, body)
	if err := dao.CreateReport(m.db, report); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMaterializationFailed, err)
	}
	return report, nil
}

// MaterializeFromSurvey scores the submission and persists a survey-sourced
// report. Validation failures surface as ErrValidation, untouched.
func (m *Materializer) MaterializeFromSurvey(ctx context.Context, userID uint, answers []int) (*model.DiagnosisReport, error) {
	result, err := ScoreSurvey(answers)
	if err != nil {
		return nil, err
	}

	body := m.generateBody(ctx, result.Season, fmt.Sprintf(
		"Self-diagnosis survey result: %s with score %d.",
		result.Season.DisplayName(), result.Totals[result.Season],
	))

	report := buildReport(userID, nil, model.ReportSourceSurvey, result.Season, result.Confidence, body)
	if err := dao.CreateReport(m.db, report); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMaterializationFailed, err)
	}
	return report, nil
}

func buildReport(userID uint, sessionID *uint, source model.ReportSource, season Season, confidence float64, body diagnosisBody) *model.DiagnosisReport {
	return &model.DiagnosisReport{
		ReportUID:        uuid.NewString(),
		UserID:           userID,
		SessionID:        sessionID,
		Source:           source,
		ResultTone:       string(season),
		ResultName:       season.DisplayName(),
		Confidence:       confidence,
		Description:      body.Description,
		DetailedAnalysis: body.DetailedAnalysis,
		ColorPalette:     mustMarshal(body.ColorPalette),
		StyleKeywords:    mustMarshal(body.StyleKeywords),
		MakeupTips:       mustMarshal(body.MakeupTips),
	}
}

// generateBody asks the model for the report body and falls back to the
// season default on any failure or thin output. Never an error path.
func (m *Materializer) generateBody(ctx context.Context, season Season, summary string) diagnosisBody {
	fallback := defaultBodies[season]
	if m.llm == nil {
		return fallback
	}

	prompt := fmt.Sprintf("%s\n\nResult: %s (%s tone).\nConsultation summary:\n%s",
		reportSystemPrompt, season.DisplayName(), season.PrimaryTone(), summary)

	text, err := llms.GenerateFromSinglePrompt(ctx, m.llm, prompt,
		llms.WithTemperature(0.3),
	)
	if err != nil {
		slog.Warn("Report body generation failed, using default", "season", season, "err", err)
		return fallback
	}

	var body diagnosisBody
	start, end := strings.Index(text, "{"), strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		slog.Warn("Report body output has no JSON object, using default", "season", season)
		return fallback
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &body); err != nil {
		slog.Warn("Report body output unparsable, using default", "season", season, "err", err)
		return fallback
	}
	if len(body.DetailedAnalysis) < minAnalysisLength {
		return fallback
	}
	if body.Description == "" {
		body.Description = fallback.Description
	}
	if len(body.ColorPalette) == 0 {
		body.ColorPalette = fallback.ColorPalette
	}
	if len(body.StyleKeywords) == 0 {
		body.StyleKeywords = fallback.StyleKeywords
	}
	if len(body.MakeupTips) == 0 {
		body.MakeupTips = fallback.MakeupTips
	}
	return body
}

func summarizeTurns(turns []model.Turn) string {
	var b strings.Builder
	for _, turn := range turns {
		if turn.UserText != nil {
			b.WriteString("User: ")
			b.WriteString(*turn.UserText)
			b.WriteString("\n")
		}
		if turn.Narrative != "" {
			b.WriteString("Consultant: ")
			b.WriteString(turn.Narrative)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("[]")
	}
	return data
}
