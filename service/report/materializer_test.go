package report

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"personal-color-agent-backend/dao"
	"personal-color-agent-backend/model"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dao.Migrate(db))
	return db
}

func turnWithSubTone(seq int, subTone string) model.Turn {
	payload, _ := json.Marshal(model.AssistantPayload{
		SubTone:     subTone,
		Description: "reply",
	})
	return model.Turn{Seq: seq, Narrative: "reply", Payload: payload}
}

func TestDeriveSeasonMostRecentWins(t *testing.T) {
	turns := []model.Turn{
		turnWithSubTone(1, "spring"),
		turnWithSubTone(2, "autumn"),
		turnWithSubTone(3, "winter"),
	}
	assert.Equal(t, Winter, DeriveSeason(turns))
}

func TestDeriveSeasonLatestSignalBeatsEarlierMajority(t *testing.T) {
	turns := []model.Turn{
		turnWithSubTone(1, "summer"),
		turnWithSubTone(2, "summer"),
		turnWithSubTone(3, "summer"),
		turnWithSubTone(4, "autumn"),
	}
	assert.Equal(t, Autumn, DeriveSeason(turns))
}

func TestDeriveSeasonSkipsEmptySubTones(t *testing.T) {
	turns := []model.Turn{
		turnWithSubTone(1, "summer"),
		turnWithSubTone(2, ""),
		{Seq: 3, Narrative: "no payload at all"},
	}
	assert.Equal(t, Summer, DeriveSeason(turns))
}

func TestDeriveSeasonDefaultsToSpring(t *testing.T) {
	assert.Equal(t, Spring, DeriveSeason(nil))
	assert.Equal(t, Spring, DeriveSeason([]model.Turn{
		{Seq: 1, Narrative: "nothing structured"},
	}))
}

func TestMaterializePersistsChatReport(t *testing.T) {
	db := testDB(t)
	m := NewMaterializer(db, nil)
	ctx := context.Background()

	session := &model.ChatSession{UserID: 7, Status: model.SessionOpen}
	require.NoError(t, db.Create(session).Error)

	turns := []model.Turn{
		turnWithSubTone(1, ""),
		turnWithSubTone(2, "winter"),
	}

	rep, err := m.Materialize(ctx, session, turns)
	require.NoError(t, err)
	assert.NotEmpty(t, rep.ReportUID)
	assert.Equal(t, "winter", rep.ResultTone)
	assert.Equal(t, "Winter Cool", rep.ResultName)
	assert.Equal(t, model.ReportSourceChat, rep.Source)
	require.NotNil(t, rep.SessionID)
	assert.Equal(t, session.ID, *rep.SessionID)
	assert.Equal(t, chatConfidence, rep.Confidence)

	// Defaults fill the body when no generation model is wired
	assert.Equal(t, defaultBodies[Winter].Description, rep.Description)
	var palette []string
	require.NoError(t, json.Unmarshal(rep.ColorPalette, &palette))
	assert.Len(t, palette, 5)

	// Round-trip through the user-scoped lookup
	loaded, err := dao.GetReportByUID(db, 7, rep.ReportUID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, rep.ResultName, loaded.ResultName)

	// Wrong owner sees nothing
	missing, err := dao.GetReportByUID(db, 8, rep.ReportUID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMaterializeFromSurvey(t *testing.T) {
	db := testDB(t)
	m := NewMaterializer(db, nil)
	ctx := context.Background()

	rep, err := m.MaterializeFromSurvey(ctx, 3, answersFavoring(Autumn))
	require.NoError(t, err)
	assert.Equal(t, model.ReportSourceSurvey, rep.Source)
	assert.Nil(t, rep.SessionID)
	assert.Equal(t, "autumn", rep.ResultTone)
	assert.InDelta(t, 1.0, rep.Confidence, 1e-9)

	_, err = m.MaterializeFromSurvey(ctx, 3, []int{1})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEachCycleCreatesNewReport(t *testing.T) {
	db := testDB(t)
	m := NewMaterializer(db, nil)
	ctx := context.Background()

	session := &model.ChatSession{UserID: 7, Status: model.SessionOpen}
	require.NoError(t, db.Create(session).Error)

	turns := []model.Turn{turnWithSubTone(1, "spring")}

	first, err := m.Materialize(ctx, session, turns)
	require.NoError(t, err)
	second, err := m.Materialize(ctx, session, turns)
	require.NoError(t, err)
	assert.NotEqual(t, first.ReportUID, second.ReportUID)

	reports, err := dao.GetReportsBySession(db, session.ID)
	require.NoError(t, err)
	assert.Len(t, reports, 2)
}
