package request

type StartSessionRequest struct {
	Influencer string `json:"influencer"`
}

type ChatRequest struct {
	SessionID uint   `json:"session_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

type SubmitSurveyRequest struct {
	Answers []int `json:"answers" binding:"required"`
}

type RefreshKnowledgeRequest struct {
	// Object key of a trend document in OSS. When set, the refresh is
	// published to MQ so it runs through the same fetch-and-resync path as
	// crawler-announced documents; when empty only the local cache is
	// re-scanned.
	ObjectName string `json:"object_name"`
}

type KnowledgeQueryRequest struct {
	Query string `json:"query" binding:"required"`

	// 0 lets the classifier decide; 1-4 forces a route
	Route int `json:"route"`
}
