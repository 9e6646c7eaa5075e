package etl

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tmc/langchaingo/vectorstores"

	"personal-color-agent-backend/service/knowledge/etl/processor"
)

// Ingestor loads reference documents into the vector store through the
// per-file-type processor registry.
type Ingestor struct {
	Store      vectorstores.VectorStore
	processors []processor.Processor
}

func NewIngestor(store vectorstores.VectorStore) *Ingestor {
	return &Ingestor{
		Store: store,
		processors: []processor.Processor{
			processor.NewMarkdownProcessor(),
			processor.NewPDFProcessor(),
		},
	}
}

// IngestFile runs one document through its processor and stores the chunks.
// Unsupported file types are an error; the caller decides whether to skip.
func (i *Ingestor) IngestFile(ctx context.Context, data []byte, name string) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")

	for _, p := range i.processors {
		if !p.CanProcess(ext) {
			continue
		}

		docs, err := p.Process(ctx, data, name)
		if err != nil {
			return fmt.Errorf("failed to process %s: %v", name, err)
		}
		for idx := range docs {
			if docs[idx].Metadata == nil {
				docs[idx].Metadata = map[string]any{}
			}
			docs[idx].Metadata["source"] = name
		}

		if _, err := i.Store.AddDocuments(ctx, docs); err != nil {
			return fmt.Errorf("failed to store chunks of %s: %v", name, err)
		}

		slog.Info("Ingested reference document", "name", name, "chunks", len(docs))
		return nil
	}
	return fmt.Errorf("no processor for file type: %s", ext)
}

// RebuildReferenceCorpus re-ingests every supported file under dir. Used to
// repopulate a missing or dropped collection; unsupported files are skipped
// with a log line rather than failing the rebuild.
func (i *Ingestor) RebuildReferenceCorpus(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read reference corpus dir: %v", err)
	}

	ingested := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read %s: %v", entry.Name(), err)
		}

		if err := i.IngestFile(ctx, data, entry.Name()); err != nil {
			slog.Warn("Skipping reference document", "name", entry.Name(), "err", err)
			continue
		}
		ingested++
	}

	if ingested == 0 {
		return fmt.Errorf("no ingestable documents in %s", dir)
	}
	return nil
}
