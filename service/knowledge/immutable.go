package knowledge

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/milvus-io/milvus/client/v2/milvusclient"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/vectorstores"
	v2 "github.com/tmc/langchaingo/vectorstores/milvus/v2"

	"personal-color-agent-backend/config"
	"personal-color-agent-backend/service/knowledge/etl"
	"personal-color-agent-backend/utils"
)

const (
	embeddingHTTPTimeout = 60 * time.Second
	embeddingBatchSize   = 10

	immutableTopK = 4
)

const composePrompt = `You are a personal color expert. Answer the question strictly from the reference excerpts below. If they do not cover the question, say so briefly instead of inventing an answer.

Reference excerpts:
%s

Question: %s`

// ImmutableHandler answers theory questions from the read-only reference
// corpus in the vector store. A missing collection is rebuilt transparently
// from the on-disk corpus before the first search.
type ImmutableHandler struct {
	store      vectorstores.VectorStore
	llm        llms.Model
	milvus     *milvusclient.Client
	ingestor   *etl.Ingestor
	collection string
	corpusDir  string

	mu       sync.Mutex
	verified bool
}

var _ Handler = &ImmutableHandler{}

func NewImmutableHandler(ctx context.Context) (*ImmutableHandler, error) {
	client, err := openai.New(
		openai.WithModel(config.Cfg.Model.ChatModel),
		openai.WithEmbeddingModel(config.Cfg.Model.EmbeddingModel),
		openai.WithToken(config.Cfg.Model.APIKey),
		openai.WithBaseURL(config.Cfg.Model.BaseURL),
		openai.WithHTTPClient(utils.NewHTTPClient(
			utils.WithTimeout(embeddingHTTPTimeout),
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder client: %v", err)
	}

	embedder, err := embeddings.NewEmbedder(client,
		embeddings.WithBatchSize(embeddingBatchSize),
		embeddings.WithStripNewLines(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %v", err)
	}

	clientConfig := milvusclient.ClientConfig{
		Address: config.Cfg.Milvus.Endpoint,
		APIKey:  config.Cfg.Milvus.APIKey,
	}

	store, err := v2.New(ctx, clientConfig,
		v2.WithEmbedder(embedder),
		v2.WithCollectionName(config.Cfg.Milvus.Collection),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create vector store: %v", err)
	}

	milvus, err := milvusclient.New(ctx, &clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create milvus client: %v", err)
	}

	return &ImmutableHandler{
		store:      store,
		llm:        client,
		milvus:     milvus,
		ingestor:   etl.NewIngestor(store),
		collection: config.Cfg.Milvus.Collection,
		corpusDir:  config.Cfg.Knowledge.ImmutableDir,
	}, nil
}

func (h *ImmutableHandler) Answer(ctx context.Context, query string) (*Result, error) {
	if err := h.ensureCollection(ctx); err != nil {
		return nil, err
	}

	docs, err := h.store.SimilaritySearch(ctx, query, immutableTopK)
	if err != nil {
		// The collection may have been dropped since the last check;
		// force a re-verification so the next query rebuilds it.
		h.invalidate()
		return nil, fmt.Errorf("failed to search reference corpus: %v", err)
	}

	excerpts := make([]string, 0, len(docs))
	sources := make([]string, 0, len(docs))
	seen := map[string]bool{}
	for _, doc := range docs {
		excerpts = append(excerpts, doc.PageContent)
		if source, ok := doc.Metadata["source"].(string); ok && !seen[source] {
			seen[source] = true
			sources = append(sources, source)
		}
	}

	answer, err := llms.GenerateFromSinglePrompt(ctx, h.llm,
		fmt.Sprintf(composePrompt, strings.Join(excerpts, "\n---\n"), query),
		llms.WithTemperature(0.3),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compose reference answer: %v", err)
	}

	return &Result{
		Answer:  strings.TrimSpace(answer),
		Sources: sources,
		Metadata: map[string]string{
			"backend": "immutable",
		},
	}, nil
}

// ensureCollection verifies the collection exists, rebuilding it from the
// on-disk corpus when it does not. Verified once per process; a concurrent
// first query waits on the rebuild instead of racing it.
func (h *ImmutableHandler) ensureCollection(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.verified {
		return nil
	}

	exists, err := h.milvus.HasCollection(ctx, milvusclient.NewHasCollectionOption(h.collection))
	if err != nil {
		return fmt.Errorf("failed to check collection: %v", err)
	}
	if !exists {
		slog.Info("Reference collection missing, rebuilding", "collection", h.collection)
		if err := h.ingestor.RebuildReferenceCorpus(ctx, h.corpusDir); err != nil {
			return fmt.Errorf("failed to rebuild reference corpus: %v", err)
		}
	}

	h.verified = true
	return nil
}

func (h *ImmutableHandler) invalidate() {
	h.mu.Lock()
	h.verified = false
	h.mu.Unlock()
}
