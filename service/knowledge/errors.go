package knowledge

import "errors"

// ErrKnowledgeUnavailable means every backend a route needed has failed.
// Partial failures degrade instead of returning this.
var ErrKnowledgeUnavailable = errors.New("knowledge backends unavailable")
