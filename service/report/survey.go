package report

import "fmt"

// SurveyQuestion is a single multiple-choice question in the self-diagnosis
// questionnaire. Each option carries an integer weight per season.
type SurveyQuestion struct {
	ID      int            `json:"id"`
	Text    string         `json:"text"`
	Options []SurveyOption `json:"options"`
}

type SurveyOption struct {
	Text    string         `json:"text"`
	Weights map[Season]int `json:"-"`
}

// SurveyQuestions is the fixed question bank. Order matters: answers are
// submitted positionally.
var SurveyQuestions = []SurveyQuestion{
	{
		ID:   1,
		Text: "What is the undertone of the inside of your wrist?",
		Options: []SurveyOption{
			{Text: "Yellowish or golden", Weights: map[Season]int{Spring: 3, Autumn: 3}},
			{Text: "Pinkish or bluish", Weights: map[Season]int{Summer: 3, Winter: 3}},
			{Text: "Peachy and bright", Weights: map[Season]int{Spring: 3, Summer: 1}},
			{Text: "Olive or deep beige", Weights: map[Season]int{Autumn: 3, Winter: 1}},
		},
	},
	{
		ID:   2,
		Text: "Which jewelry flatters your skin more?",
		Options: []SurveyOption{
			{Text: "Bright gold", Weights: map[Season]int{Spring: 3, Autumn: 2}},
			{Text: "Silver or platinum", Weights: map[Season]int{Summer: 2, Winter: 3}},
			{Text: "Rose gold", Weights: map[Season]int{Spring: 2, Summer: 2}},
			{Text: "Antique or matte gold", Weights: map[Season]int{Autumn: 3, Winter: 1}},
		},
	},
	{
		ID:   3,
		Text: "What is your natural hair color?",
		Options: []SurveyOption{
			{Text: "Light brown with warmth", Weights: map[Season]int{Spring: 3, Autumn: 1}},
			{Text: "Ash brown or soft black", Weights: map[Season]int{Summer: 3, Winter: 1}},
			{Text: "Dark brown with red or copper", Weights: map[Season]int{Autumn: 3, Spring: 1}},
			{Text: "Jet black", Weights: map[Season]int{Winter: 3, Summer: 1}},
		},
	},
	{
		ID:   4,
		Text: "How does your skin react to sunlight?",
		Options: []SurveyOption{
			{Text: "Tans easily to a golden color", Weights: map[Season]int{Spring: 2, Autumn: 3}},
			{Text: "Burns quickly and turns red", Weights: map[Season]int{Summer: 3, Winter: 2}},
			{Text: "Tans slowly but evenly", Weights: map[Season]int{Autumn: 2, Spring: 2}},
			{Text: "Rarely changes at all", Weights: map[Season]int{Winter: 3, Summer: 1}},
		},
	},
	{
		ID:   5,
		Text: "Which lipstick shade looks best on you?",
		Options: []SurveyOption{
			{Text: "Coral or peach", Weights: map[Season]int{Spring: 3}},
			{Text: "Rose or mauve pink", Weights: map[Season]int{Summer: 3}},
			{Text: "Brick or brown red", Weights: map[Season]int{Autumn: 3}},
			{Text: "True red or fuchsia", Weights: map[Season]int{Winter: 3}},
		},
	},
	{
		ID:   6,
		Text: "Which clothing palette earns you the most compliments?",
		Options: []SurveyOption{
			{Text: "Ivory, coral, light green", Weights: map[Season]int{Spring: 3, Summer: 1}},
			{Text: "Lavender, sky blue, soft grey", Weights: map[Season]int{Summer: 3, Winter: 1}},
			{Text: "Camel, khaki, burgundy", Weights: map[Season]int{Autumn: 3, Spring: 1}},
			{Text: "Black, pure white, royal blue", Weights: map[Season]int{Winter: 3, Autumn: 1}},
		},
	},
	{
		ID:   7,
		Text: "What overall impression do people say you give?",
		Options: []SurveyOption{
			{Text: "Bright and lively", Weights: map[Season]int{Spring: 3, Summer: 1}},
			{Text: "Soft and gentle", Weights: map[Season]int{Summer: 3, Spring: 1}},
			{Text: "Calm and mature", Weights: map[Season]int{Autumn: 3, Winter: 1}},
			{Text: "Sharp and charismatic", Weights: map[Season]int{Winter: 3, Autumn: 1}},
		},
	},
	{
		ID:   8,
		Text: "What color are your eyes?",
		Options: []SurveyOption{
			{Text: "Light brown, almost amber", Weights: map[Season]int{Spring: 3, Autumn: 1}},
			{Text: "Soft grayish brown", Weights: map[Season]int{Summer: 3}},
			{Text: "Deep brown", Weights: map[Season]int{Autumn: 3, Winter: 1}},
			{Text: "Near black with high contrast", Weights: map[Season]int{Winter: 3}},
		},
	},
}

// SurveyResult is the deterministic outcome of scoring a completed survey.
type SurveyResult struct {
	Season     Season
	Confidence float64
	Totals     map[Season]int
}

// ScoreSurvey sums the per-season weights of the chosen options and picks the
// season with the highest total. Ties resolve by seasonPriority. Confidence is
// the winner's total divided by the maximum total the winner could have
// attained across all questions.
func ScoreSurvey(answers []int) (*SurveyResult, error) {
	if len(answers) != len(SurveyQuestions) {
		return nil, fmt.Errorf("%w: expected %d answers, got %d", ErrValidation, len(SurveyQuestions), len(answers))
	}

	totals := map[Season]int{}
	for i, choice := range answers {
		q := SurveyQuestions[i]
		if choice < 0 || choice >= len(q.Options) {
			return nil, fmt.Errorf("%w: answer %d out of range for question %d", ErrValidation, choice, q.ID)
		}
		for season, w := range q.Options[choice].Weights {
			totals[season] += w
		}
	}

	winner := seasonPriority[0]
	best := totals[winner]
	for _, s := range seasonPriority[1:] {
		if totals[s] > best {
			winner, best = s, totals[s]
		}
	}

	attainable := 0
	for _, q := range SurveyQuestions {
		max := 0
		for _, opt := range q.Options {
			if w := opt.Weights[winner]; w > max {
				max = w
			}
		}
		attainable += max
	}

	confidence := 0.0
	if attainable > 0 {
		confidence = float64(best) / float64(attainable)
	}
	return &SurveyResult{Season: winner, Confidence: confidence, Totals: totals}, nil
}
