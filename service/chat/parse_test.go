package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayloadPlainObject(t *testing.T) {
	raw := `{"primary_tone":"warm","sub_tone":"autumn","description":"Deep colors suit you.","recommendations":["camel coat","brick lipstick"],"emotion":"happy"}`

	p, err := ParsePayload(raw)
	require.NoError(t, err)
	assert.Equal(t, "warm", p.PrimaryTone)
	assert.Equal(t, "autumn", p.SubTone)
	assert.Equal(t, "Deep colors suit you.", p.Description)
	assert.Equal(t, []string{"camel coat", "brick lipstick"}, p.Recommendations)
	assert.Equal(t, "happy", p.Emotion)
}

func TestParsePayloadWrappedInProse(t *testing.T) {
	raw := "Sure! Here is the result:\n```json\n{\"sub_tone\":\"summer\",\"description\":\"Soft colors.\",\"emotion\":\"neutral\"}\n```\nHope it helps."

	p, err := ParsePayload(raw)
	require.NoError(t, err)
	assert.Equal(t, "summer", p.SubTone)
	assert.Equal(t, "cool", p.PrimaryTone)
	assert.Equal(t, "Soft colors.", p.Description)
}

func TestParsePayloadEmbeddedInDescription(t *testing.T) {
	raw := `{"description":"{\"primary_tone\":\"cool\",\"sub_tone\":\"winter\",\"description\":\"Vivid contrast works.\",\"emotion\":\"love\"}"}`

	p, err := ParsePayload(raw)
	require.NoError(t, err)
	assert.Equal(t, "winter", p.SubTone)
	assert.Equal(t, "cool", p.PrimaryTone)
	assert.Equal(t, "Vivid contrast works.", p.Description)
	assert.Equal(t, "love", p.Emotion)
}

func TestParsePayloadRecommendationShapes(t *testing.T) {
	// Map-shaped recommendations
	p, err := ParsePayload(`{"description":"ok","recommendations":{"first":"coral","second":"peach"}}`)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"coral", "peach"}, p.Recommendations)

	// Single string
	p, err = ParsePayload(`{"description":"ok","recommendations":"just coral"}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"just coral"}, p.Recommendations)

	// Nested lists flatten
	p, err = ParsePayload(`{"description":"ok","recommendations":[["coral","peach"],"ivory"]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"coral", "peach", "ivory"}, p.Recommendations)

	// Duplicates collapse
	p, err = ParsePayload(`{"description":"ok","recommendations":["coral","coral"," "]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"coral"}, p.Recommendations)
}

func TestParsePayloadErrors(t *testing.T) {
	_, err := ParsePayload("no json at all")
	assert.Error(t, err)

	_, err = ParsePayload(`{"sub_tone":"spring"}`)
	assert.Error(t, err, "missing description must fail")

	_, err = ParsePayload(`{"description": broken`)
	assert.Error(t, err)
}

func TestNormalizeTones(t *testing.T) {
	tests := []struct {
		primary, sub         string
		wantPrimary, wantSub string
	}{
		{"warm", "autumn", "warm", "autumn"},
		{"Warm tone", "Fall", "warm", "autumn"},
		{"", "winter", "cool", "winter"},
		{"cool", "", "cool", ""},
		{"warm", "summer", "cool", "summer"}, // season wins the disagreement
		{"vivid", "nonsense", "", ""},
	}

	for _, tt := range tests {
		p, s := NormalizeTones(tt.primary, tt.sub)
		assert.Equal(t, tt.wantPrimary, p, "primary for %q/%q", tt.primary, tt.sub)
		assert.Equal(t, tt.wantSub, s, "sub for %q/%q", tt.primary, tt.sub)
	}
}
