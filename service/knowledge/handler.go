package knowledge

import "context"

// Result is one backend's (or the merged) answer to a knowledge query.
// Metadata carries routing and degradation details for the caller.
type Result struct {
	Answer   string            `json:"answer"`
	Sources  []string          `json:"sources"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Handler answers a query from one knowledge backend.
type Handler interface {
	Answer(ctx context.Context, query string) (*Result, error)
}
