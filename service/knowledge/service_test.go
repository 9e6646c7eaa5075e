package knowledge

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHandler struct {
	result *Result
	err    error
}

func (s *stubHandler) Answer(ctx context.Context, query string) (*Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	// Fresh metadata map per call; the service mutates it
	r := *s.result
	r.Metadata = map[string]string{}
	for k, v := range s.result.Metadata {
		r.Metadata[k] = v
	}
	return &r, nil
}

func okHandler(answer string, sources ...string) *stubHandler {
	return &stubHandler{result: &Result{Answer: answer, Sources: sources, Metadata: map[string]string{}}}
}

func newTestService(immutable, mutable Handler) *Service {
	return NewService(KeywordClassifier{}, immutable, mutable)
}

func TestQueryGeneralRoute(t *testing.T) {
	svc := newTestService(okHandler("theory"), okHandler("trend"))

	result, err := svc.Query(context.Background(), "hello there!", 0)
	require.NoError(t, err)
	assert.Equal(t, generalReply, result.Answer)
	assert.Equal(t, "general", result.Metadata["route"])
}

func TestQueryForcedRouteSkipsClassifier(t *testing.T) {
	svc := newTestService(okHandler("theory"), okHandler("trend"))

	// Smalltalk text, forced to the trend backend anyway
	result, err := svc.Query(context.Background(), "hello there!", RouteMutable)
	require.NoError(t, err)
	assert.Equal(t, "trend", result.Answer)
	assert.Equal(t, "mutable", result.Metadata["route"])
}

func TestQueryMutableFallsBackToImmutable(t *testing.T) {
	svc := newTestService(
		okHandler("theory answer", "guide.md"),
		&stubHandler{err: errors.New("no documents")},
	)

	result, err := svc.Query(context.Background(), "what colors are trending", 0)
	require.NoError(t, err)
	assert.Equal(t, "theory answer", result.Answer)
	assert.Equal(t, "immutable", result.Metadata["fallback"])
	assert.Equal(t, "mutable", result.Metadata["route"])
}

func TestQueryCombinedMergesBoth(t *testing.T) {
	svc := newTestService(
		okHandler("theory answer", "guide.md"),
		okHandler("trend answer", "trends.txt"),
	)

	result, err := svc.Query(context.Background(), "query", RouteCombined)
	require.NoError(t, err)
	assert.Contains(t, result.Answer, "theory answer")
	assert.Contains(t, result.Answer, "trend answer")
	assert.ElementsMatch(t, []string{"guide.md", "trends.txt"}, result.Sources)
	assert.Empty(t, result.Metadata["degraded"])
}

func TestQueryCombinedDegradesOnPartialFailure(t *testing.T) {
	svc := newTestService(
		&stubHandler{err: errors.New("milvus down")},
		okHandler("trend answer", "trends.txt"),
	)

	result, err := svc.Query(context.Background(), "query", RouteCombined)
	require.NoError(t, err)
	assert.Equal(t, "trend answer", result.Answer)
	assert.Equal(t, "immutable", result.Metadata["degraded"])

	svc = newTestService(
		okHandler("theory answer", "guide.md"),
		&stubHandler{err: errors.New("dir missing")},
	)

	result, err = svc.Query(context.Background(), "query", RouteCombined)
	require.NoError(t, err)
	assert.Equal(t, "theory answer", result.Answer)
	assert.Equal(t, "mutable", result.Metadata["degraded"])
}

func TestQueryCombinedBothFail(t *testing.T) {
	svc := newTestService(
		&stubHandler{err: errors.New("milvus down")},
		&stubHandler{err: errors.New("dir missing")},
	)

	_, err := svc.Query(context.Background(), "query", RouteCombined)
	assert.ErrorIs(t, err, ErrKnowledgeUnavailable)
}

func TestQueryImmutableFailure(t *testing.T) {
	svc := newTestService(
		&stubHandler{err: errors.New("milvus down")},
		okHandler("trend"),
	)

	_, err := svc.Query(context.Background(), "query", RouteImmutable)
	assert.ErrorIs(t, err, ErrKnowledgeUnavailable)
}

func TestKeywordClassifierRoutes(t *testing.T) {
	ctx := context.Background()
	c := KeywordClassifier{}

	assert.Equal(t, RouteGeneral, c.Classify(ctx, "hello, how are you?"))
	assert.Equal(t, RouteImmutable, c.Classify(ctx, "why does a warm tone suit gold jewelry?"))
	assert.Equal(t, RouteMutable, c.Classify(ctx, "what lip colors are trending right now?"))
	assert.Equal(t, RouteCombined, c.Classify(ctx, "which trending colors fit a cool tone undertone?"))

	// Unrecognized questions land on the reference corpus
	assert.Equal(t, RouteImmutable, c.Classify(ctx, "tell me something"))
}

func TestContextForSuppressesSmalltalk(t *testing.T) {
	svc := newTestService(okHandler("theory answer"), okHandler("trend"))

	assert.Empty(t, svc.ContextFor(context.Background(), "hello there!"))
	assert.Equal(t, "theory answer", svc.ContextFor(context.Background(), "what is a warm tone palette?"))
}
