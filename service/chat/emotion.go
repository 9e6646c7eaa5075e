package chat

import "strings"

// Canonical emotion labels carried on every assistant payload. The frontend
// maps each label to an animation asset, so anything the model produces is
// folded into this set at the adapter boundary.
var canonicalEmotions = []string{"happy", "sad", "angry", "love", "fearful", "neutral"}

var emotionSynonyms = map[string]string{
	"joy":       "happy",
	"happiness": "happy",
	"excited":   "happy",
	"cheerful":  "happy",
	"depressed": "sad",
	"gloomy":    "sad",
	"unhappy":   "sad",
	"anger":     "angry",
	"furious":   "angry",
	"annoyed":   "angry",
	"fear":      "fearful",
	"afraid":    "fearful",
	"scared":    "fearful",
	"anxious":   "fearful",
	"loving":    "love",
	"affection": "love",
	"calm":      "neutral",
	"none":      "neutral",
}

var emotionEmoji = map[string]string{
	"😄": "happy", "😊": "happy", "🙂": "happy", "😁": "happy",
	"😭": "sad", "😢": "sad", "😞": "sad", "💔": "sad",
	"😠": "angry", "😡": "angry",
	"💖": "love", "❤️": "love", "😍": "love",
	"😨": "fearful", "😱": "fearful",
}

// CanonicalEmotion maps an arbitrary model-produced label onto the
// canonical set, defaulting to neutral.
func CanonicalEmotion(label string) string {
	l := strings.ToLower(strings.TrimSpace(label))
	if l == "" {
		return "neutral"
	}

	for emoji, mapped := range emotionEmoji {
		if strings.Contains(label, emoji) {
			return mapped
		}
	}

	for _, canon := range canonicalEmotions {
		if l == canon {
			return canon
		}
	}
	if mapped, ok := emotionSynonyms[l]; ok {
		return mapped
	}

	// Multi-word output: take the first canonical token found
	for _, canon := range canonicalEmotions {
		if strings.Contains(l, canon) {
			return canon
		}
	}
	return "neutral"
}

// EmotionAsset returns the animation asset file for a canonical label.
func EmotionAsset(emotion string) string {
	return "emotion_" + CanonicalEmotion(emotion) + ".json"
}
