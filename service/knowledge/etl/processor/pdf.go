package processor

import (
	"bytes"
	"context"
	"fmt"

	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/textsplitter"
)

// PDFProcessor handles PDF reference files.
type PDFProcessor struct {
	splitter textsplitter.TextSplitter
}

var _ Processor = &PDFProcessor{}

func NewPDFProcessor() *PDFProcessor {
	return &PDFProcessor{
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithSeparators([]string{"\n\n", "\n", ". ", "! ", "? ", "; ", ", ", " ", ""}),
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkOverlap),
		),
	}
}

func (p *PDFProcessor) CanProcess(ext string) bool {
	return ext == "pdf"
}

func (p *PDFProcessor) Process(ctx context.Context, data []byte, name string) ([]schema.Document, error) {
	loader := documentloaders.NewPDF(bytes.NewReader(data), int64(len(data)))

	docs, err := loader.LoadAndSplit(ctx, p.splitter)
	if err != nil {
		return nil, fmt.Errorf("error loading and splitting pdf: %v", err)
	}
	return docs, nil
}
