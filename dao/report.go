package dao

import (
	"errors"

	"gorm.io/gorm"

	"personal-color-agent-backend/model"
)

func CreateReport(db *gorm.DB, report *model.DiagnosisReport) error {
	return db.Create(report).Error
}

func GetReportByUID(db *gorm.DB, userID uint, reportUID string) (*model.DiagnosisReport, error) {
	var report model.DiagnosisReport
	err := db.Where("user_id = ? AND report_uid = ?", userID, reportUID).
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func GetReportsByUser(db *gorm.DB, userID uint) ([]model.DiagnosisReport, error) {
	var reports []model.DiagnosisReport
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func GetReportsBySession(db *gorm.DB, sessionID uint) ([]model.DiagnosisReport, error) {
	var reports []model.DiagnosisReport
	if err := db.Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func DeleteReport(db *gorm.DB, userID uint, reportUID string) error {
	return db.Where("user_id = ? AND report_uid = ?", userID, reportUID).
		Delete(&model.DiagnosisReport{}).Error
}
