package chat

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"personal-color-agent-backend/dao"
	"personal-color-agent-backend/model"
)

// Store owns every mutation of chat sessions and turns. All counter and
// flag updates go through its locked operations; nothing else may write
// them. Serialization is an in-process keyed mutex held across the whole
// append-evaluate-materialize sequence, which is sufficient for the single
// authoritative store this service runs against.
type Store struct {
	DB    *gorm.DB
	locks *keyedLocks
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		DB:    db,
		locks: newKeyedLocks(),
	}
}

type StartResult struct {
	SessionID uint
	Reused    bool
	UserTurns int
}

// Start returns the existing open session for (user, influencer) or creates
// one. Reuse prevents turn-count fragmentation across duplicate sessions
// and lets a reconnecting client resume exactly where it left off.
func (s *Store) Start(ctx context.Context, userID uint, influencer string) (*StartResult, error) {
	unlock := s.locks.Lock(pairKey(userID, influencer))
	defer unlock()

	db := s.DB.WithContext(ctx)

	existing, err := dao.GetOpenSession(db, userID, influencer)
	if err != nil {
		return nil, fmt.Errorf("failed to look up open session: %v", err)
	}
	if existing != nil {
		return &StartResult{
			SessionID: existing.ID,
			Reused:    true,
			UserTurns: existing.UserTurns,
		}, nil
	}

	session := model.ChatSession{
		UserID:     userID,
		Influencer: influencer,
		Status:     model.SessionOpen,
	}
	if err := db.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("failed to create session: %v", err)
	}

	return &StartResult{SessionID: session.ID}, nil
}

// Get loads a session owned by userID. Returns ErrSessionNotFound when the
// id is unknown or owned by someone else.
func (s *Store) Get(ctx context.Context, userID, sessionID uint) (*model.ChatSession, error) {
	session, err := dao.GetSessionByID(s.DB.WithContext(ctx), sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %v", err)
	}
	if session == nil || session.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// LockSession serializes turn processing for one session. The returned
// unlock must be deferred by the caller.
func (s *Store) LockSession(sessionID uint) func() {
	return s.locks.Lock(sessionKey(sessionID))
}

// AppendTurn persists one complete turn and, for user-authored turns,
// increments the counter atomically, so a user message never lands
// without its assistant response. Caller must hold the session lock.
func (s *Store) AppendTurn(ctx context.Context, sessionID uint, userText string, narrative string, payload, styling []byte) (int, error) {
	userTurns := 0

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		session, err := dao.GetSessionByID(tx, sessionID)
		if err != nil {
			return err
		}
		if session == nil {
			return ErrSessionNotFound
		}
		if session.Status == model.SessionClosed {
			return ErrSessionClosed
		}

		count, err := dao.CountTurns(tx, sessionID)
		if err != nil {
			return err
		}

		turn := model.Turn{
			SessionID: sessionID,
			Seq:       int(count) + 1,
			Narrative: narrative,
			Payload:   payload,
			Styling:   styling,
		}
		if userText != "" {
			turn.UserText = &userText
		}
		if err := tx.Create(&turn).Error; err != nil {
			return err
		}

		// The welcome turn has no user text and must not count
		if userText != "" {
			session.UserTurns++
			if err := tx.Model(session).
				Update("user_turns", session.UserTurns).Error; err != nil {
				return err
			}
		}
		userTurns = session.UserTurns
		return nil
	})
	if err != nil {
		return 0, err
	}
	return userTurns, nil
}

// MarkDiagnosed persists the auto-generated flag for the current cycle.
func (s *Store) MarkDiagnosed(ctx context.Context, sessionID uint, diagnosed bool) error {
	return s.DB.WithContext(ctx).Model(&model.ChatSession{}).
		Where("id = ?", sessionID).
		Update("diagnosed", diagnosed).Error
}

// ResetCycle zeroes the turn counter and clears the diagnosed flag in one
// update. Resetting one without the other would either re-trigger the next
// cycle prematurely or suppress it forever, so they only ever move together.
func (s *Store) ResetCycle(ctx context.Context, sessionID uint) error {
	return s.DB.WithContext(ctx).Model(&model.ChatSession{}).
		Where("id = ?", sessionID).
		Updates(map[string]any{
			"user_turns": 0,
			"diagnosed":  false,
		}).Error
}

// Close terminates a session. Closing an already-closed session is a no-op
// success; clients call close defensively. An abandoned cycle is reset so a
// reopened session always starts counting from a clean slate.
func (s *Store) Close(ctx context.Context, userID, sessionID uint) (*time.Time, error) {
	unlock := s.LockSession(sessionID)
	defer unlock()

	session, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == model.SessionClosed {
		return session.EndedAt, nil
	}

	now := time.Now().UTC()
	err = s.DB.WithContext(ctx).Model(session).
		Updates(map[string]any{
			"status":     model.SessionClosed,
			"ended_at":   now,
			"user_turns": 0,
			"diagnosed":  false,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to close session: %v", err)
	}
	return &now, nil
}

// History returns the session's turns in order.
func (s *Store) History(ctx context.Context, userID, sessionID uint) (*model.ChatSession, []model.Turn, error) {
	session, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, nil, err
	}
	turns, err := dao.GetTurnsBySessionID(s.DB.WithContext(ctx), sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load turns: %v", err)
	}
	return session, turns, nil
}
