package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalEmotion(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"happy", "happy"},
		{"HAPPY", "happy"},
		{" joy ", "happy"},
		{"excited", "happy"},
		{"depressed", "sad"},
		{"anger", "angry"},
		{"afraid", "fearful"},
		{"loving", "love"},
		{"calm", "neutral"},
		{"", "neutral"},
		{"completely unknown", "neutral"},
		{"feeling happy today", "happy"},
		{"😭", "sad"},
		{"so great 😄", "happy"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanonicalEmotion(tt.in), "input %q", tt.in)
	}
}

func TestEmotionAsset(t *testing.T) {
	assert.Equal(t, "emotion_happy.json", EmotionAsset("joy"))
	assert.Equal(t, "emotion_neutral.json", EmotionAsset(""))
	assert.Equal(t, "emotion_fearful.json", EmotionAsset("scared"))
}
