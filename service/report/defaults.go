package report

// diagnosisBody is the generated (or default) content of a report beyond
// the tone classification itself.
type diagnosisBody struct {
	Description      string   `json:"description"`
	DetailedAnalysis string   `json:"detailed_analysis"`
	ColorPalette     []string `json:"color_palette"`
	StyleKeywords    []string `json:"style_keywords"`
	MakeupTips       []string `json:"makeup_tips"`
}

// defaultBodies backs every report path when the generation model fails or
// returns unusable output. Deterministic per season.
var defaultBodies = map[Season]diagnosisBody{
	Spring: {
		Description:      "Vibrant and radiant: bright warm colors suit you naturally and bring out an energetic charm.",
		DetailedAnalysis: "As a spring warm type, warm and bright colors flatter you most. Coral, peach and ivory tones make your skin look lively; in makeup, favor natural warm shades over heavy or cool ones. For outfits, white, cream, coral and light green keep your look fresh and cheerful.",
		ColorPalette:     []string{"#FFB6C1", "#FFA07A", "#FFFF99", "#98FB98", "#87CEEB"},
		StyleKeywords:    []string{"bright", "radiant", "lively", "warm", "natural"},
		MakeupTips: []string{
			"Coral lipstick for a fresh look",
			"Peach blush for a natural flush",
			"Gold eyeshadow for warm eyes",
			"Brown mascara for a soft finish",
		},
	},
	Summer: {
		Description:      "Cool and elegant: soft, refined colors let your natural grace shine.",
		DetailedAnalysis: "As a summer cool type, soft cool-leaning colors harmonize best with your skin. Rose, lavender, mint and sky blue pastels flatter you; in makeup, choose cool, gentle shades over strong warm ones. Build outfits on white, silver, navy and grey with pastel accents for an elegant, modern look.",
		ColorPalette:     []string{"#E6E6FA", "#B0C4DE", "#FFC0CB", "#DDA0DD", "#F0F8FF"},
		StyleKeywords:    []string{"soft", "elegant", "refined", "cool", "pastel"},
		MakeupTips: []string{
			"Rose pink lips for a fresh impression",
			"Lavender eyeshadow for a dreamy look",
			"Silver highlighter for translucent glow",
			"Ash brown brows for a gentle frame",
		},
	},
	Autumn: {
		Description:      "Deep and sophisticated: rich warm colors express your mature charm perfectly.",
		DetailedAnalysis: "As an autumn warm type, deep and rich colors suit you best. Mustard, brick, olive and burgundy blend naturally with your skin; beige, brown and gold makeup gives a polished, classic feel. Base outfits on camel, beige, brown and wine, accenting with mustard or olive green for a classic yet current style.",
		ColorPalette:     []string{"#D2691E", "#CD853F", "#DEB887", "#BC8F8F", "#F4A460"},
		StyleKeywords:    []string{"deep", "sophisticated", "warm", "mature", "classic"},
		MakeupTips: []string{
			"Brown-toned lips for an intellectual look",
			"Gold bronze eyeshadow for depth",
			"Warm orange blush",
			"Dark brown mascara for defined lashes",
		},
	},
	Winter: {
		Description:      "Clear and striking: vivid, dramatic colors amplify your natural charisma.",
		DetailedAnalysis: "As a winter cool type, clear and intense colors flatter you most. Pure white, black, royal blue and emerald green work perfectly with your skin; makeup built on sharp color contrast reads chic and polished. Base outfits on black, white and grey, then add vivid accent colors for a distinctive, confident style.",
		ColorPalette:     []string{"#FF1493", "#4169E1", "#000000", "#FFFFFF", "#8A2BE2"},
		StyleKeywords:    []string{"clear", "striking", "vivid", "dramatic", "modern"},
		MakeupTips: []string{
			"Red lipstick as a bold focal point",
			"Silver eyeshadow for mysterious eyes",
			"Black eyeliner for crisp definition",
			"Bold contouring for dimension",
		},
	},
}
