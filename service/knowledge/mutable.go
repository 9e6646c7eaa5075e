package knowledge

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/tmc/langchaingo/llms"
)

const (
	// Trend answers read at most this many documents, newest first
	mutableMaxDocs = 5

	// Hard cap on the total characters fed to the compose prompt
	mutableMaxChars = 30000
)

const trendComposePrompt = `You are a personal color consultant. Answer the question using the current trend notes below. Prefer the most recent information.

Trend notes:
%s

Question: %s`

type trendDoc struct {
	name    string
	content string
	modTime int64
}

// MutableHandler answers trend questions from the refreshable document
// directory. Documents are cached in memory; Resync reloads after the MQ
// consumer drops new files in. A nil llm returns the raw excerpts, which
// tests rely on.
type MutableHandler struct {
	dir string
	llm llms.Model

	mu   sync.RWMutex
	docs []trendDoc
}

var _ Handler = &MutableHandler{}

func NewMutableHandler(dir string, llm llms.Model) *MutableHandler {
	h := &MutableHandler{dir: dir, llm: llm}
	if err := h.Resync(); err != nil {
		slog.Warn("Initial trend document load failed", "dir", dir, "err", err)
	}
	return h
}

// Resync reloads the trend documents from disk. Non-UTF-8 files are skipped
// silently: the refresh pipeline occasionally delivers binary artifacts and
// they must never poison an answer.
func (h *MutableHandler) Resync() error {
	entries, err := os.ReadDir(h.dir)
	if err != nil {
		return fmt.Errorf("failed to read trend dir: %v", err)
	}

	docs := make([]trendDoc, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		data, err := os.ReadFile(filepath.Join(h.dir, entry.Name()))
		if err != nil {
			slog.Warn("Failed to read trend document", "name", entry.Name(), "err", err)
			continue
		}
		if !utf8.Valid(data) {
			continue
		}
		docs = append(docs, trendDoc{
			name:    entry.Name(),
			content: string(data),
			modTime: info.ModTime().UnixNano(),
		})
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].modTime > docs[j].modTime
	})

	h.mu.Lock()
	h.docs = docs
	h.mu.Unlock()
	return nil
}

// truncateOnRune cuts s to at most max bytes without splitting a rune.
func truncateOnRune(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func (h *MutableHandler) Answer(ctx context.Context, query string) (*Result, error) {
	h.mu.RLock()
	docs := h.docs
	h.mu.RUnlock()

	if len(docs) == 0 {
		return nil, fmt.Errorf("no trend documents loaded")
	}

	var b strings.Builder
	sources := make([]string, 0, mutableMaxDocs)
	for _, doc := range docs {
		if len(sources) == mutableMaxDocs {
			break
		}
		remaining := mutableMaxChars - b.Len()
		if remaining <= 0 {
			break
		}
		content := doc.content
		if len(content) > remaining {
			content = truncateOnRune(content, remaining)
		}
		fmt.Fprintf(&b, "[%s]\n%s\n\n", doc.name, content)
		sources = append(sources, doc.name)
	}

	answer := strings.TrimSpace(b.String())
	if h.llm != nil {
		composed, err := llms.GenerateFromSinglePrompt(ctx, h.llm,
			fmt.Sprintf(trendComposePrompt, answer, query),
			llms.WithTemperature(0.3),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to compose trend answer: %v", err)
		}
		answer = strings.TrimSpace(composed)
	}

	return &Result{
		Answer:  answer,
		Sources: sources,
		Metadata: map[string]string{
			"backend": "mutable",
		},
	}, nil
}
