package processor

import (
	"context"

	"github.com/tmc/langchaingo/schema"
)

const (
	chunkSize    = 4000
	chunkOverlap = 200
)

// Processor splits one reference document type into chunks ready for
// embedding.
type Processor interface {
	// CanProcess reports whether the processor handles this file
	// extension (lowercase, without the dot).
	CanProcess(ext string) bool

	// Process parses the raw file into chunk documents.
	Process(ctx context.Context, data []byte, name string) ([]schema.Document, error)
}
