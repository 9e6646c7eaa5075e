package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"personal-color-agent-backend/model"
	"personal-color-agent-backend/service/report"
)

type fakeAdapter struct {
	payload   *model.AssistantPayload
	narrative string
	err       error
}

func (f *fakeAdapter) Generate(ctx context.Context, persona *model.InfluencerProfile, turns []model.Turn, userText, knowledgeContext string) (*model.AssistantPayload, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	narrative := f.narrative
	if f.payload != nil && narrative == "" {
		narrative = f.payload.Description
	}
	return f.payload, narrative, nil
}

func (f *fakeAdapter) GenerateWelcome(ctx context.Context, persona *model.InfluencerProfile, previousResult string) string {
	return "Welcome! Tell me about your favorite colors."
}

type failingMaterializer struct{}

func (failingMaterializer) Materialize(ctx context.Context, session *model.ChatSession, turns []model.Turn) (*model.DiagnosisReport, error) {
	return nil, fmt.Errorf("%w: store down", report.ErrMaterializationFailed)
}

func newTestPipeline(t *testing.T, adapter DialogueAdapter) (*Pipeline, *gorm.DB) {
	t.Helper()
	db := testDB(t)
	store := NewStore(db)
	return &Pipeline{
		Store:   store,
		Adapter: adapter,
		Reports: report.NewMaterializer(db, nil),
	}, db
}

func autumnPayload() *model.AssistantPayload {
	return &model.AssistantPayload{
		PrimaryTone: "warm",
		SubTone:     "autumn",
		Description: "Deep warm colors suit you.",
		Emotion:     "happy",
	}
}

func TestChatDiagnosesAtThreshold(t *testing.T) {
	p, db := newTestPipeline(t, &fakeAdapter{payload: autumnPayload()})
	ctx := context.Background()

	start, err := p.Store.Start(ctx, 1, "")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		result, err := p.Chat(ctx, 1, start.SessionID, fmt.Sprintf("message %d", i))
		require.NoError(t, err)
		assert.Nil(t, result.Report)
		assert.Equal(t, i+1, result.UserTurns)
	}

	result, err := p.Chat(ctx, 1, start.SessionID, "third message")
	require.NoError(t, err)
	require.NotNil(t, result.Report)
	assert.Equal(t, "autumn", result.Report.ResultTone)
	assert.Equal(t, "Autumn Warm", result.Report.ResultName)
	assert.Equal(t, model.ReportSourceChat, result.Report.Source)
	assert.Equal(t, 0, result.UserTurns)

	// The cycle is fully reset in storage
	var session model.ChatSession
	require.NoError(t, db.First(&session, start.SessionID).Error)
	assert.Equal(t, 0, session.UserTurns)
	assert.False(t, session.Diagnosed)
}

func TestChatSecondCycleRetriggersAtGlobalTurnSix(t *testing.T) {
	p, db := newTestPipeline(t, &fakeAdapter{payload: autumnPayload()})
	ctx := context.Background()

	start, err := p.Store.Start(ctx, 1, "")
	require.NoError(t, err)

	// First cycle: diagnosis at turn 3
	for i := 0; i < 3; i++ {
		_, err := p.Chat(ctx, 1, start.SessionID, fmt.Sprintf("cycle one %d", i))
		require.NoError(t, err)
	}

	// Turns 4 and 5 run in the fresh cycle without re-triggering
	for i := 0; i < 2; i++ {
		result, err := p.Chat(ctx, 1, start.SessionID, fmt.Sprintf("cycle two %d", i))
		require.NoError(t, err)
		assert.Nil(t, result.Report)
		assert.Equal(t, i+1, result.UserTurns)
	}

	var count int64
	require.NoError(t, db.Model(&model.DiagnosisReport{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Global turn 6 is turn 3 of the new cycle; a second report appears
	result, err := p.Chat(ctx, 1, start.SessionID, "global turn six")
	require.NoError(t, err)
	require.NotNil(t, result.Report)
	assert.Equal(t, 0, result.UserTurns)

	require.NoError(t, db.Model(&model.DiagnosisReport{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestChatWithoutPayloadDefersDiagnosis(t *testing.T) {
	adapter := &fakeAdapter{narrative: "Could you tell me more?"}
	p, db := newTestPipeline(t, adapter)
	ctx := context.Background()

	start, err := p.Store.Start(ctx, 1, "")
	require.NoError(t, err)

	// Three degraded turns: counter passes the threshold with no payload
	for i := 0; i < 3; i++ {
		result, err := p.Chat(ctx, 1, start.SessionID, "hello")
		require.NoError(t, err)
		assert.Nil(t, result.Report)
	}

	// Classification arrives on the next turn and the trigger fires
	adapter.payload = autumnPayload()
	result, err := p.Chat(ctx, 1, start.SessionID, "what am I?")
	require.NoError(t, err)
	require.NotNil(t, result.Report)

	var count int64
	require.NoError(t, db.Model(&model.DiagnosisReport{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestChatMaterializationFailureRetries(t *testing.T) {
	p, db := newTestPipeline(t, &fakeAdapter{payload: autumnPayload()})
	p.Reports = failingMaterializer{}
	ctx := context.Background()

	start, err := p.Store.Start(ctx, 1, "")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := p.Chat(ctx, 1, start.SessionID, "msg")
		require.NoError(t, err)
	}

	result, err := p.Chat(ctx, 1, start.SessionID, "third")
	require.ErrorIs(t, err, report.ErrMaterializationFailed)
	require.NotNil(t, result, "the turn itself must be committed")
	assert.Nil(t, result.Report)

	// Flag reverted so the next turn retries
	var session model.ChatSession
	require.NoError(t, db.First(&session, start.SessionID).Error)
	assert.False(t, session.Diagnosed)
	assert.Equal(t, 3, session.UserTurns)

	// Backends recover; the next turn materializes
	p.Reports = report.NewMaterializer(db, nil)
	result, err = p.Chat(ctx, 1, start.SessionID, "fourth")
	require.NoError(t, err)
	require.NotNil(t, result.Report)
}

func TestChatOnClosedSession(t *testing.T) {
	p, _ := newTestPipeline(t, &fakeAdapter{payload: autumnPayload()})
	ctx := context.Background()

	start, err := p.Store.Start(ctx, 1, "")
	require.NoError(t, err)
	_, err = p.Store.Close(ctx, 1, start.SessionID)
	require.NoError(t, err)

	_, err = p.Chat(ctx, 1, start.SessionID, "hello")
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestChatAdapterTimeoutSurfaces(t *testing.T) {
	p, db := newTestPipeline(t, &fakeAdapter{err: fmt.Errorf("%w: deadline", ErrAdapterTimeout)})
	ctx := context.Background()

	start, err := p.Store.Start(ctx, 1, "")
	require.NoError(t, err)

	_, err = p.Chat(ctx, 1, start.SessionID, "hello")
	assert.ErrorIs(t, err, ErrAdapterTimeout)

	// Nothing was persisted for the failed turn
	var count int64
	require.NoError(t, db.Model(&model.Turn{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestWelcomeDoesNotCountAndIsIdempotent(t *testing.T) {
	p, db := newTestPipeline(t, &fakeAdapter{payload: autumnPayload()})
	ctx := context.Background()

	start, err := p.Store.Start(ctx, 1, "")
	require.NoError(t, err)

	result, err := p.Welcome(ctx, 1, start.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, result.UserTurns)
	assert.NotEmpty(t, result.Narrative)

	// A second welcome re-serves the last turn instead of appending
	again, err := p.Welcome(ctx, 1, start.SessionID)
	require.NoError(t, err)
	assert.Equal(t, result.Narrative, again.Narrative)

	var count int64
	require.NoError(t, db.Model(&model.Turn{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var session model.ChatSession
	require.NoError(t, db.First(&session, start.SessionID).Error)
	assert.Equal(t, 0, session.UserTurns)
}

func TestConcurrentTurnsFireExactlyOnce(t *testing.T) {
	p, db := newTestPipeline(t, &fakeAdapter{payload: autumnPayload()})
	ctx := context.Background()

	start, err := p.Store.Start(ctx, 1, "")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := p.Chat(ctx, 1, start.SessionID, "warmup")
		require.NoError(t, err)
	}

	// Three racing turns on top of a counter at 2: exactly one may
	// commit the diagnosis
	var wg sync.WaitGroup
	errs := make([]error, 3)
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = p.Chat(ctx, 1, start.SessionID, fmt.Sprintf("racer %d", i))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.True(t, err == nil || errors.Is(err, report.ErrMaterializationFailed), "unexpected error: %v", err)
	}

	var count int64
	require.NoError(t, db.Model(&model.DiagnosisReport{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
