package processor

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/textsplitter"
)

// MarkdownProcessor handles markdown and plain text reference files.
type MarkdownProcessor struct {
	splitter textsplitter.TextSplitter
}

var _ Processor = &MarkdownProcessor{}

// Matches chunks that are nothing but headings
var headerOnlyRegex = regexp.MustCompile(`^\s*(?:#{1,6}\s+.+\n?)+\s*$`)

func NewMarkdownProcessor() *MarkdownProcessor {
	separators := []string{"\n\n", "\n", ". ", "! ", "? ", "; ", ", ", " ", ""}
	return &MarkdownProcessor{
		splitter: textsplitter.NewMarkdownTextSplitter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkOverlap),
			textsplitter.WithHeadingHierarchy(true),
			textsplitter.WithSecondSplitter(textsplitter.NewRecursiveCharacter(
				textsplitter.WithChunkSize(chunkSize),
				textsplitter.WithChunkOverlap(chunkOverlap),
				textsplitter.WithSeparators(separators),
			)),
		),
	}
}

func (p *MarkdownProcessor) CanProcess(ext string) bool {
	return ext == "md" || ext == "markdown" || ext == "txt"
}

func (p *MarkdownProcessor) Process(ctx context.Context, data []byte, name string) ([]schema.Document, error) {
	loader := documentloaders.NewText(bytes.NewReader(data))

	docs, err := loader.LoadAndSplit(ctx, p.splitter)
	if err != nil {
		return nil, fmt.Errorf("error loading and splitting markdown: %v", err)
	}

	// Heading-hierarchy splitting leaves some chunks that are headings
	// with no body; they embed poorly and pollute retrieval
	filtered := make([]schema.Document, 0, len(docs))
	for _, doc := range docs {
		content := strings.TrimSpace(doc.PageContent)
		if content == "" || headerOnlyRegex.MatchString(content) {
			continue
		}
		filtered = append(filtered, doc)
	}
	return filtered, nil
}
