package knowledge

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

// Route selects which backend answers a query.
type Route int

const (
	// RouteGeneral handles smalltalk with a canned reply, no retrieval.
	RouteGeneral Route = iota + 1

	// RouteImmutable hits the read-only reference corpus in the vector
	// store.
	RouteImmutable

	// RouteMutable hits the refreshable trend documents on local disk.
	RouteMutable

	// RouteCombined queries both corpora and merges.
	RouteCombined
)

func (r Route) String() string {
	switch r {
	case RouteGeneral:
		return "general"
	case RouteImmutable:
		return "immutable"
	case RouteMutable:
		return "mutable"
	case RouteCombined:
		return "combined"
	}
	return fmt.Sprintf("route(%d)", int(r))
}

// Classifier decides the route for a query. Implementations must always
// return a usable route; classification is never allowed to fail a query.
type Classifier interface {
	Classify(ctx context.Context, query string) Route
}

const routerPrompt = `Classify the user question for a personal color consultation service. Reply with exactly one digit:
1 - smalltalk or off-topic chat
2 - color theory, diagnosis methodology, season characteristics
3 - current trends, seasonal fashion, recent product recommendations
4 - needs both theory and current trends
Question: %s
Digit:`

// LLMClassifier routes with a small model call at temperature zero. Any
// failure or unparseable output falls back to the reference corpus, the
// safest default for a consultation domain.
type LLMClassifier struct {
	llm llms.Model
}

func NewLLMClassifier(llm llms.Model) *LLMClassifier {
	return &LLMClassifier{llm: llm}
}

func (c *LLMClassifier) Classify(ctx context.Context, query string) Route {
	text, err := llms.GenerateFromSinglePrompt(ctx, c.llm,
		fmt.Sprintf(routerPrompt, query),
		llms.WithTemperature(0),
	)
	if err != nil {
		slog.Warn("Route classification failed, defaulting to reference corpus", "err", err)
		return RouteImmutable
	}

	for _, r := range strings.TrimSpace(text) {
		switch r {
		case '1':
			return RouteGeneral
		case '2':
			return RouteImmutable
		case '3':
			return RouteMutable
		case '4':
			return RouteCombined
		}
	}
	slog.Warn("Unparseable route classification, defaulting to reference corpus", "output", text)
	return RouteImmutable
}

var (
	trendKeywords = []string{
		"trend", "trending", "this season", "this year", "latest", "new",
		"popular", "recently", "in fashion", "2025", "2026",
	}
	theoryKeywords = []string{
		"warm tone", "cool tone", "spring", "summer", "autumn", "winter",
		"undertone", "palette", "season type", "diagnosis", "why", "theory",
		"contrast", "saturation",
	}
	smalltalkKeywords = []string{
		"hello", "hi ", "hey", "thank", "bye", "how are you", "good morning",
		"good night", "who are you",
	}
)

// KeywordClassifier is the deterministic alternative used when no router
// model is configured, and in tests.
type KeywordClassifier struct{}

func (KeywordClassifier) Classify(ctx context.Context, query string) Route {
	q := strings.ToLower(query)

	trend := containsAny(q, trendKeywords)
	theory := containsAny(q, theoryKeywords)
	switch {
	case trend && theory:
		return RouteCombined
	case trend:
		return RouteMutable
	case theory:
		return RouteImmutable
	case containsAny(q, smalltalkKeywords):
		return RouteGeneral
	}
	return RouteImmutable
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
