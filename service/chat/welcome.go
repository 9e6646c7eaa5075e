package chat

import (
	"context"
	"fmt"
	"log/slog"

	"personal-color-agent-backend/dao"
	"personal-color-agent-backend/model"
)

// Welcome appends the assistant-only opening turn for a fresh session. It
// carries no user text, so it never counts toward the diagnosis cycle. On a
// reused session with existing turns the call is a no-op returning the last
// assistant narrative, so reconnecting clients can always render something.
func (p *Pipeline) Welcome(ctx context.Context, userID, sessionID uint) (*TurnResult, error) {
	unlock := p.Store.LockSession(sessionID)
	defer unlock()

	session, err := p.Store.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == model.SessionClosed {
		return nil, ErrSessionClosed
	}

	db := p.Store.DB.WithContext(ctx)

	turns, err := dao.GetTurnsBySessionID(db, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load turns: %v", err)
	}
	if len(turns) > 0 {
		last := turns[len(turns)-1]
		return &TurnResult{
			SessionID:    sessionID,
			Seq:          last.Seq,
			UserTurns:    session.UserTurns,
			Narrative:    last.Narrative,
			Payload:      last.DecodePayload(),
			EmotionAsset: EmotionAsset(emotionOf(last.DecodePayload())),
		}, nil
	}

	persona, err := dao.GetInfluencerBySlug(db, session.Influencer)
	if err != nil {
		slog.Warn("Failed to load persona for welcome", "influencer", session.Influencer, "err", err)
	}

	previousResult := ""
	if reports, err := dao.GetReportsByUser(db, userID); err == nil && len(reports) > 0 {
		previousResult = reports[0].ResultName
	}

	narrative := p.Adapter.GenerateWelcome(ctx, persona, previousResult)

	if _, err := p.Store.AppendTurn(ctx, sessionID, "", narrative, nil, personaStyling(persona)); err != nil {
		return nil, err
	}

	return &TurnResult{
		SessionID:    sessionID,
		Seq:          1,
		UserTurns:    session.UserTurns,
		Narrative:    narrative,
		EmotionAsset: EmotionAsset("happy"),
	}, nil
}
