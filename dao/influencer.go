package dao

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"personal-color-agent-backend/model"
)

func GetInfluencerBySlug(db *gorm.DB, slug string) (*model.InfluencerProfile, error) {
	var profile model.InfluencerProfile
	if err := db.Where("slug = ?", slug).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func GetInfluencers(db *gorm.DB) ([]model.InfluencerProfile, error) {
	var profiles []model.InfluencerProfile
	if err := db.Order("id ASC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func mustJSON(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

var defaultInfluencers = []model.InfluencerProfile{
	{
		Slug:       "wonjun",
		Name:       "Wonjun",
		Greeting:   "Hi, Wonjun here! Ready for an honest take on your colors?",
		Emoji:      "🎨",
		ColorTheme: "#FF8A65",
		Expertise:  mustJSON([]string{"honest reviews", "color matching"}),
		Closing:    "Hope that helped, come back anytime!",
	},
	{
		Slug:       "sehyun",
		Name:       "Sehyun",
		Greeting:   "Hello! Sehyun here, let's find your everyday look.",
		Emoji:      "🌸",
		ColorTheme: "#F48FB1",
		Expertise:  mustJSON([]string{"daily makeup", "natural styling"}),
		Closing:    "Stay lovely!",
	},
	{
		Slug:       "jongmin",
		Name:       "Jongmin",
		Greeting:   "Hey, Jongmin here. Great style doesn't have to be expensive.",
		Emoji:      "💸",
		ColorTheme: "#4DB6AC",
		Expertise:  mustJSON([]string{"budget picks", "practical reviews"}),
		Closing:    "Spend smart, look great!",
	},
	{
		Slug:       "hyekyung",
		Name:       "Hyekyung",
		Greeting:   "Welcome! Hyekyung here with your full beauty guide.",
		Emoji:      "✨",
		ColorTheme: "#9575CD",
		Expertise:  mustJSON([]string{"beauty guide", "seasonal palettes"}),
		Closing:    "See you in the next consultation!",
	},
}

// SeedInfluencers inserts the default personas when missing. Existing rows
// are left untouched so operator edits survive restarts.
func SeedInfluencers(db *gorm.DB) error {
	for _, profile := range defaultInfluencers {
		var n int64
		if err := db.Model(&model.InfluencerProfile{}).
			Where("slug = ?", profile.Slug).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		if err := db.Create(&profile).Error; err != nil {
			return err
		}
	}
	return nil
}
