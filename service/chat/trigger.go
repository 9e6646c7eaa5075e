package chat

import "personal-color-agent-backend/model"

// DiagnosisTurnThreshold is the number of user turns per diagnosis cycle.
const DiagnosisTurnThreshold = 3

// ShouldDiagnose decides whether a just-appended turn commits a diagnosis.
// The check is >= rather than ==: if the threshold turn carried no
// structured payload (degraded adapter call), the trigger re-evaluates on
// every later turn and eventually fires once a classification appears.
func ShouldDiagnose(userTurns int, diagnosed bool, payload *model.AssistantPayload) bool {
	return userTurns >= DiagnosisTurnThreshold && !diagnosed && payload != nil
}
