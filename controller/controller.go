package controller

import (
	"personal-color-agent-backend/service/chat"
	"personal-color-agent-backend/service/knowledge"
	"personal-color-agent-backend/service/report"
)

// Shared service instances, wired once at startup.
var (
	Store        *chat.Store
	Pipeline     *chat.Pipeline
	Materializer *report.Materializer
	Knowledge    *knowledge.Service

	// Forces a trend document reload; wired to the mutable handler
	ResyncTrends func() error
)

func Init(store *chat.Store, pipeline *chat.Pipeline, materializer *report.Materializer, kb *knowledge.Service, resync func() error) {
	Store = store
	Pipeline = pipeline
	Materializer = materializer
	Knowledge = kb
	ResyncTrends = resync
}
