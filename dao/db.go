package dao

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"personal-color-agent-backend/model"
)

// DB is the shared gorm handle, initialized once from main.
var DB *gorm.DB

func Init(dsn string) error {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect database: %v", err)
	}

	if err := Migrate(db); err != nil {
		return err
	}

	DB = db
	return nil
}

// Migrate creates/updates the schema. Exposed separately so tests can run
// it against their own database handle.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.ChatSession{},
		&model.Turn{},
		&model.DiagnosisReport{},
		&model.InfluencerProfile{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %v", err)
	}
	return nil
}
