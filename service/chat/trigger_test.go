package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"personal-color-agent-backend/model"
)

func TestShouldDiagnose(t *testing.T) {
	payload := &model.AssistantPayload{SubTone: "autumn", Description: "result"}

	tests := []struct {
		name      string
		userTurns int
		diagnosed bool
		payload   *model.AssistantPayload
		want      bool
	}{
		{"below threshold", 2, false, payload, false},
		{"at threshold", 3, false, payload, true},
		{"above threshold", 5, false, payload, true},
		{"already diagnosed", 3, true, payload, false},
		{"no payload at threshold", 3, false, nil, false},
		{"no payload above threshold", 4, false, nil, false},
		{"fresh cycle", 0, false, payload, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldDiagnose(tt.userTurns, tt.diagnosed, tt.payload))
		})
	}
}
