package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"personal-color-agent-backend/model"
)

// ParsePayload extracts and normalizes the structured payload from raw
// model output. The model sometimes wraps the JSON in prose, nests the
// whole payload inside the description string, or emits recommendations as
// a map or single string; everything is folded into the strict schema here
// so the rest of the core never sees those shapes.
func ParsePayload(raw string) (*model.AssistantPayload, error) {
	obj, err := extractObject(raw)
	if err != nil {
		return nil, err
	}

	// Older/degraded outputs embed the real payload as a JSON string in
	// the description field
	if desc, ok := obj["description"].(string); ok {
		trimmed := strings.TrimSpace(desc)
		if strings.HasPrefix(trimmed, "{") {
			if inner, innerErr := extractObject(trimmed); innerErr == nil {
				for k, v := range inner {
					if _, exists := obj[k]; !exists || k == "description" {
						obj[k] = v
					}
				}
			}
		}
	}

	payload := &model.AssistantPayload{
		PrimaryTone:     stringField(obj, "primary_tone"),
		SubTone:         stringField(obj, "sub_tone"),
		Description:     stringField(obj, "description"),
		Recommendations: recommendationList(obj["recommendations"]),
		Emotion:         CanonicalEmotion(stringField(obj, "emotion")),
	}
	payload.PrimaryTone, payload.SubTone = NormalizeTones(payload.PrimaryTone, payload.SubTone)

	if payload.Description == "" {
		return nil, errors.New("payload has no description")
	}
	return payload, nil
}

func extractObject(raw string) (map[string]any, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in output: %.80q", raw)
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(raw[start:end+1]), &obj); err != nil {
		return nil, fmt.Errorf("failed to decode payload JSON: %v", err)
	}
	return obj, nil
}

func stringField(obj map[string]any, key string) string {
	if v, ok := obj[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func recommendationList(v any) []string {
	var out []string
	var appendItem func(item any)
	appendItem = func(item any) {
		switch s := item.(type) {
		case string:
			s = strings.TrimSpace(s)
			if s == "" {
				return
			}
			for _, seen := range out {
				if seen == s {
					return
				}
			}
			out = append(out, s)
		case []any:
			for _, nested := range s {
				if str, ok := nested.(string); ok {
					appendItem(str)
				}
			}
		}
	}

	switch items := v.(type) {
	case []any:
		for _, item := range items {
			appendItem(item)
		}
	case map[string]any:
		for _, item := range items {
			appendItem(item)
		}
	case string:
		appendItem(items)
	}
	return out
}

var subToneSynonyms = map[string]string{
	"spring": "spring",
	"summer": "summer",
	"autumn": "autumn",
	"fall":   "autumn",
	"winter": "winter",
}

// NormalizeTones folds free-text tone labels into the canonical pair and
// keeps them mutually consistent: spring/autumn are warm, summer/winter are
// cool. Unknown values collapse to empty rather than leaking through.
func NormalizeTones(primary, sub string) (string, string) {
	p := strings.ToLower(strings.TrimSpace(primary))
	switch {
	case strings.Contains(p, "warm"):
		p = "warm"
	case strings.Contains(p, "cool"):
		p = "cool"
	default:
		p = ""
	}

	s := strings.ToLower(strings.TrimSpace(sub))
	canonical := ""
	for token, season := range subToneSynonyms {
		if strings.Contains(s, token) {
			canonical = season
			break
		}
	}
	s = canonical

	// Derive the missing half, and let the season win a disagreement
	switch s {
	case "spring", "autumn":
		p = "warm"
	case "summer", "winter":
		p = "cool"
	}
	return p, s
}
