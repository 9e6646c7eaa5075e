package response

type KnowledgeResponse struct {
	Answer   string            `json:"answer"`
	Sources  []string          `json:"sources"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type InfluencerResponse struct {
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	Greeting   string `json:"greeting"`
	Emoji      string `json:"emoji"`
	ColorTheme string `json:"color_theme"`
}

type GetInfluencersResponse struct {
	Influencers []InfluencerResponse `json:"influencers"`
}

type SurveyQuestionResponse struct {
	ID      int      `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

type GetSurveyResponse struct {
	Questions []SurveyQuestionResponse `json:"questions"`
}
