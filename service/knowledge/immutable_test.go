package knowledge

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/vectorstores"
)

type failingVectorStore struct{}

func (failingVectorStore) AddDocuments(ctx context.Context, docs []schema.Document, opts ...vectorstores.Option) ([]string, error) {
	return nil, errors.New("store unavailable")
}

func (failingVectorStore) SimilaritySearch(ctx context.Context, query string, numDocuments int, opts ...vectorstores.Option) ([]schema.Document, error) {
	return nil, errors.New("collection not found")
}

func TestImmutableSearchFailureForcesRevalidation(t *testing.T) {
	h := &ImmutableHandler{
		store:    failingVectorStore{},
		verified: true,
	}

	_, err := h.Answer(context.Background(), "what suits a warm tone?")
	require.Error(t, err)

	// The collection check must run again on the next query
	h.mu.Lock()
	defer h.mu.Unlock()
	assert.False(t, h.verified)
}
