package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"personal-color-agent-backend/config"
	"personal-color-agent-backend/model"
	"personal-color-agent-backend/utils"
)

const (
	// Diagnosis generation can chain several model calls, so the adapter
	// client gets a much longer timeout than plain CRUD traffic.
	adapterHTTPTimeout = 300 * time.Second

	adapterCallAttempts = 2
)

const dialogueSystemPrompt = `You are a personal color consultant. Analyze the user's answers about skin tone, preferred colors and style, and reply with exactly one JSON object, no other text:
{
  "primary_tone": "warm" or "cool" (empty string if not yet determined),
  "sub_tone": "spring", "summer", "autumn" or "winter" (empty string if not yet determined),
  "description": "a warm, conversational reply in the consultant's voice",
  "recommendations": ["up to 5 short, practical suggestions"],
  "emotion": one of "happy", "sad", "angry", "love", "fearful", "neutral" describing the user's mood
}
Ask gentle follow-up questions in the description while signal is still thin; commit to tones once the conversation supports them.`

const fallbackNarrative = "Thanks for sharing! Could you tell me a bit more about your usual outfit colors and whether your skin leans bright or deep? That will help me pin down your personal color."

// Adapter normalizes the dialogue model into one strict payload schema.
// The core never branches on response shape; all defensive parsing lives
// here.
type Adapter struct {
	llm llms.Model
}

func NewAdapter(llm llms.Model) *Adapter {
	return &Adapter{llm: llm}
}

// NewOpenAIAdapter builds the adapter against the configured
// OpenAI-compatible endpoint.
func NewOpenAIAdapter() (*Adapter, error) {
	llm, err := openai.New(
		openai.WithModel(config.Cfg.Model.ChatModel),
		openai.WithToken(config.Cfg.Model.APIKey),
		openai.WithBaseURL(config.Cfg.Model.BaseURL),
		openai.WithHTTPClient(utils.NewHTTPClient(
			utils.WithTimeout(adapterHTTPTimeout),
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create dialogue llm client: %v", err)
	}
	return NewAdapter(llm), nil
}

// Generate runs one dialogue turn. Timeouts are retried once and then
// surfaced as ErrAdapterTimeout; malformed output is recovered locally with
// a fallback narrative and a nil payload so the diagnosis trigger simply
// waits for a later turn.
func (a *Adapter) Generate(ctx context.Context, persona *model.InfluencerProfile, turns []model.Turn, userText, knowledgeContext string) (*model.AssistantPayload, string, error) {
	messages := a.buildMessages(persona, turns, userText, knowledgeContext)

	var resp *llms.ContentResponse
	err := retry.Do(
		func() error {
			var callErr error
			resp, callErr = a.llm.GenerateContent(ctx, messages,
				llms.WithTemperature(0.7),
			)
			return callErr
		},
		retry.Attempts(adapterCallAttempts),
		retry.RetryIf(isTimeout),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("Retrying dialogue model call", "attempt", n+1, "err", err)
		}),
	)
	if err != nil {
		if isTimeout(err) {
			return nil, "", fmt.Errorf("%w: %v", ErrAdapterTimeout, err)
		}
		return nil, "", fmt.Errorf("dialogue model call failed: %w", err)
	}

	raw := ""
	if len(resp.Choices) > 0 {
		raw = resp.Choices[0].Content
	}

	payload, err := ParsePayload(raw)
	if err != nil {
		slog.Warn("Recovering from malformed dialogue output",
			"err", errors.Join(ErrAdapterMalformed, err),
		)
		return nil, fallbackNarrative, nil
	}
	return payload, payload.Description, nil
}

func (a *Adapter) buildMessages(persona *model.InfluencerProfile, turns []model.Turn, userText, knowledgeContext string) []llms.MessageContent {
	system := dialogueSystemPrompt
	if persona != nil {
		system += fmt.Sprintf(
			"\nSpeak in the voice of %s. Greeting style: %q. Sign-off style: %q.",
			persona.Name, persona.Greeting, persona.Closing,
		)
	}
	if knowledgeContext != "" {
		system += "\nGround your reply in this reference material:\n" + knowledgeContext
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
	}
	for _, turn := range turns {
		if turn.UserText != nil {
			messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, *turn.UserText))
		}
		if turn.Narrative != "" {
			messages = append(messages, llms.TextParts(llms.ChatMessageTypeAI, turn.Narrative))
		}
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, userText))
	return messages
}

// GenerateWelcome produces the persona welcome message, mentioning the
// user's previous diagnosis when one exists. Model failures fall back to
// deterministic text; the welcome is never an error path.
func (a *Adapter) GenerateWelcome(ctx context.Context, persona *model.InfluencerProfile, previousResult string) string {
	prompt := "Write a short, friendly welcome for a personal color consultation chat. "
	if persona != nil {
		prompt += fmt.Sprintf("Write in the voice of %s, whose usual greeting is %q. ", persona.Name, persona.Greeting)
	}
	if previousResult != "" {
		prompt += fmt.Sprintf("The user was previously diagnosed as %q; mention it naturally and offer to build on it. ", previousResult)
	} else {
		prompt += "Ask two or three gentle opening questions about the user's skin tone and usual outfit colors. "
	}
	prompt += "Output only the welcome text."

	text, err := llms.GenerateFromSinglePrompt(ctx, a.llm, prompt)
	if err != nil {
		slog.Warn("Welcome generation failed, using fallback", "err", err)
		return welcomeFallback(persona, previousResult)
	}
	return strings.TrimSpace(text)
}

func welcomeFallback(persona *model.InfluencerProfile, previousResult string) string {
	greeting := "Hello! I'm your personal color consultant."
	if persona != nil && persona.Greeting != "" {
		greeting = persona.Greeting
	}
	if previousResult != "" {
		return fmt.Sprintf("%s Last time you were diagnosed as %s. Want to build on that, or start fresh?", greeting, previousResult)
	}
	return greeting + " To get started: what colors do you usually wear, and does your skin lean bright or deep?"
}

func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "timeout")
}
