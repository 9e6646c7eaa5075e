package knowledge

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

const generalReply = "I'm your personal color assistant! I can help with color seasons, tone theory and current style trends. What would you like to know?"

// Service routes a query to the right backend and shapes the final result.
// Backends degrade independently: a combined query with one dead backend
// still answers, tagged in metadata.
type Service struct {
	Classifier Classifier
	Immutable  Handler
	Mutable    Handler
}

func NewService(classifier Classifier, immutable, mutable Handler) *Service {
	return &Service{
		Classifier: classifier,
		Immutable:  immutable,
		Mutable:    mutable,
	}
}

// Query answers one knowledge question. A non-zero force skips
// classification; admin and test traffic uses it.
func (s *Service) Query(ctx context.Context, query string, force Route) (*Result, error) {
	route := force
	if route == 0 {
		route = s.Classifier.Classify(ctx, query)
	}

	var result *Result
	var err error
	switch route {
	case RouteGeneral:
		result = &Result{Answer: generalReply, Metadata: map[string]string{}}
	case RouteImmutable:
		result, err = s.queryImmutable(ctx, query)
	case RouteMutable:
		result, err = s.queryMutable(ctx, query)
	case RouteCombined:
		result, err = s.queryCombined(ctx, query)
	default:
		return nil, fmt.Errorf("unknown route: %d", route)
	}
	if err != nil {
		return nil, err
	}

	result.Metadata["route"] = route.String()
	return result, nil
}

func (s *Service) queryImmutable(ctx context.Context, query string) (*Result, error) {
	result, err := s.Immutable.Answer(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKnowledgeUnavailable, err)
	}
	return result, nil
}

// queryMutable falls back to the reference corpus when the trend backend
// has nothing: a stale-but-correct theory answer beats no answer.
func (s *Service) queryMutable(ctx context.Context, query string) (*Result, error) {
	result, err := s.Mutable.Answer(ctx, query)
	if err == nil {
		return result, nil
	}
	slog.Warn("Trend backend failed, falling back to reference corpus", "err", err)

	result, immErr := s.Immutable.Answer(ctx, query)
	if immErr != nil {
		return nil, fmt.Errorf("%w: mutable: %v; immutable: %v", ErrKnowledgeUnavailable, err, immErr)
	}
	result.Metadata["fallback"] = "immutable"
	return result, nil
}

func (s *Service) queryCombined(ctx context.Context, query string) (*Result, error) {
	var (
		wg             sync.WaitGroup
		immRes, mutRes *Result
		immErr, mutErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		immRes, immErr = s.Immutable.Answer(ctx, query)
	}()
	go func() {
		defer wg.Done()
		mutRes, mutErr = s.Mutable.Answer(ctx, query)
	}()
	wg.Wait()

	if immErr != nil && mutErr != nil {
		return nil, fmt.Errorf("%w: immutable: %v; mutable: %v", ErrKnowledgeUnavailable, immErr, mutErr)
	}

	if immErr != nil {
		slog.Warn("Combined query degraded to trend backend only", "err", immErr)
		mutRes.Metadata["degraded"] = "immutable"
		return mutRes, nil
	}
	if mutErr != nil {
		slog.Warn("Combined query degraded to reference backend only", "err", mutErr)
		immRes.Metadata["degraded"] = "mutable"
		return immRes, nil
	}

	merged := &Result{
		Answer: fmt.Sprintf("From color theory:\n%s\n\nFrom current trends:\n%s",
			immRes.Answer, mutRes.Answer),
		Sources:  append(immRes.Sources, mutRes.Sources...),
		Metadata: map[string]string{},
	}
	return merged, nil
}

// ContextFor adapts the service into the chat pipeline's grounding source.
// Best-effort: failures and smalltalk routes contribute no context.
func (s *Service) ContextFor(ctx context.Context, query string) string {
	result, err := s.Query(ctx, query, 0)
	if err != nil {
		slog.Warn("Knowledge grounding unavailable for turn", "err", err)
		return ""
	}
	if result.Metadata["route"] == RouteGeneral.String() {
		return ""
	}
	return strings.TrimSpace(result.Answer)
}
