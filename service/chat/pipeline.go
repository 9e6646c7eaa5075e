package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"personal-color-agent-backend/dao"
	"personal-color-agent-backend/model"
)

// DialogueAdapter is the model boundary the pipeline speaks to. *Adapter
// implements it; tests substitute deterministic fakes.
type DialogueAdapter interface {
	Generate(ctx context.Context, persona *model.InfluencerProfile, turns []model.Turn, userText, knowledgeContext string) (*model.AssistantPayload, string, error)
	GenerateWelcome(ctx context.Context, persona *model.InfluencerProfile, previousResult string) string
}

// KnowledgeSource supplies grounding context for a turn. Best-effort: an
// empty string means the turn proceeds ungrounded.
type KnowledgeSource interface {
	ContextFor(ctx context.Context, query string) string
}

// ReportMaterializer persists the diagnosis report for a committed cycle.
type ReportMaterializer interface {
	Materialize(ctx context.Context, session *model.ChatSession, turns []model.Turn) (*model.DiagnosisReport, error)
}

// Pipeline runs one chat turn end to end: generate, append, evaluate the
// diagnosis trigger, materialize. Knowledge may be nil.
type Pipeline struct {
	Store     *Store
	Adapter   DialogueAdapter
	Knowledge KnowledgeSource
	Reports   ReportMaterializer
}

type TurnResult struct {
	SessionID    uint                    `json:"session_id"`
	Seq          int                     `json:"seq"`
	UserTurns    int                     `json:"user_turns"`
	Narrative    string                  `json:"narrative"`
	Payload      *model.AssistantPayload `json:"payload"`
	EmotionAsset string                  `json:"emotion_asset"`
	Report       *model.DiagnosisReport  `json:"report,omitempty"`
}

// Chat processes one user message. The session lock is held across the
// whole append-evaluate-materialize sequence so concurrent turns on one
// session cannot double-fire the diagnosis.
func (p *Pipeline) Chat(ctx context.Context, userID, sessionID uint, userText string) (*TurnResult, error) {
	unlock := p.Store.LockSession(sessionID)
	defer unlock()

	session, err := p.Store.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == model.SessionClosed {
		return nil, ErrSessionClosed
	}

	turns, err := dao.GetTurnsBySessionID(p.Store.DB.WithContext(ctx), sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load turns: %v", err)
	}

	persona, err := dao.GetInfluencerBySlug(p.Store.DB.WithContext(ctx), session.Influencer)
	if err != nil {
		slog.Warn("Failed to load persona, proceeding without", "influencer", session.Influencer, "err", err)
	}

	knowledgeContext := ""
	if p.Knowledge != nil {
		knowledgeContext = p.Knowledge.ContextFor(ctx, userText)
	}

	payload, narrative, err := p.Adapter.Generate(ctx, persona, turns, userText, knowledgeContext)
	if err != nil {
		return nil, err
	}

	var rawPayload []byte
	if payload != nil {
		payload.Emotion = CanonicalEmotion(payload.Emotion)
		rawPayload, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode payload: %v", err)
		}
	}

	userTurns, err := p.Store.AppendTurn(ctx, sessionID, userText, narrative, rawPayload, personaStyling(persona))
	if err != nil {
		return nil, err
	}

	result := &TurnResult{
		SessionID:    sessionID,
		Seq:          len(turns) + 1,
		UserTurns:    userTurns,
		Narrative:    narrative,
		Payload:      payload,
		EmotionAsset: EmotionAsset(emotionOf(payload)),
	}

	if !ShouldDiagnose(userTurns, session.Diagnosed, payload) {
		return result, nil
	}

	// Claim the cycle before materializing so a concurrent evaluation on
	// a stale read cannot fire twice; revert on failure so a later turn
	// retries.
	if err := p.Store.MarkDiagnosed(ctx, sessionID, true); err != nil {
		return nil, fmt.Errorf("failed to mark session diagnosed: %v", err)
	}

	cycleTurns, err := dao.GetTurnsBySessionID(p.Store.DB.WithContext(ctx), sessionID)
	if err == nil {
		var report *model.DiagnosisReport
		report, err = p.Reports.Materialize(ctx, session, cycleTurns)
		if err == nil {
			if resetErr := p.Store.ResetCycle(ctx, sessionID); resetErr != nil {
				slog.Error("Failed to reset diagnosis cycle", "session_id", sessionID, "err", resetErr)
			} else {
				result.UserTurns = 0
			}
			result.Report = report
			return result, nil
		}
	}

	slog.Error("Diagnosis materialization failed, will retry next turn", "session_id", sessionID, "err", err)
	if revertErr := p.Store.MarkDiagnosed(ctx, sessionID, false); revertErr != nil {
		slog.Error("Failed to revert diagnosed flag", "session_id", sessionID, "err", revertErr)
	}
	// The turn itself is committed; surface it together with the failure.
	return result, err
}

func emotionOf(payload *model.AssistantPayload) string {
	if payload == nil {
		return "neutral"
	}
	return payload.Emotion
}

func personaStyling(persona *model.InfluencerProfile) []byte {
	if persona == nil {
		return nil
	}
	styling, err := json.Marshal(map[string]string{
		"emoji":       persona.Emoji,
		"color_theme": persona.ColorTheme,
	})
	if err != nil {
		return nil
	}
	return styling
}
