package dao

import (
	"errors"

	"gorm.io/gorm"

	"personal-color-agent-backend/model"
)

func GetSessionByID(db *gorm.DB, sessionID uint) (*model.ChatSession, error) {
	var session model.ChatSession
	if err := db.Where("id = ?", sessionID).
		First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// GetOpenSession returns the newest open session for the (user, influencer)
// pair, or nil when none exists.
func GetOpenSession(db *gorm.DB, userID uint, influencer string) (*model.ChatSession, error) {
	var session model.ChatSession
	err := db.Where("user_id = ? AND influencer = ? AND status = ?",
		userID, influencer, model.SessionOpen).
		Order("created_at DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func GetSessionsByUser(db *gorm.DB, userID uint) ([]model.ChatSession, error) {
	var sessions []model.ChatSession
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func GetTurnsBySessionID(db *gorm.DB, sessionID uint) ([]model.Turn, error) {
	var turns []model.Turn
	if err := db.Where("session_id = ?", sessionID).
		Order("seq ASC").
		Find(&turns).Error; err != nil {
		return nil, err
	}
	return turns, nil
}

func CountTurns(db *gorm.DB, sessionID uint) (int64, error) {
	var n int64
	err := db.Model(&model.Turn{}).
		Where("session_id = ?", sessionID).
		Count(&n).Error
	return n, err
}
