package report

type Season string

const (
	Spring Season = "spring"
	Summer Season = "summer"
	Autumn Season = "autumn"
	Winter Season = "winter"
)

// seasonPriority fixes the winner on survey score ties: spring first,
// winter last.
var seasonPriority = []Season{Spring, Summer, Autumn, Winter}

func (s Season) PrimaryTone() string {
	switch s {
	case Spring, Autumn:
		return "warm"
	default:
		return "cool"
	}
}

func (s Season) DisplayName() string {
	switch s {
	case Spring:
		return "Spring Warm"
	case Summer:
		return "Summer Cool"
	case Autumn:
		return "Autumn Warm"
	case Winter:
		return "Winter Cool"
	}
	return string(s)
}

// SeasonFromSubTone maps a payload sub_tone onto a Season; ok is false for
// empty/unknown values.
func SeasonFromSubTone(subTone string) (Season, bool) {
	switch Season(subTone) {
	case Spring, Summer, Autumn, Winter:
		return Season(subTone), true
	}
	return "", false
}
