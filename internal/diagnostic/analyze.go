package diagnostic

import (
	"math"
	"strconv"

	"github.com/verte-zerg/studyflow/internal/model"
)

const defaultSliderScore = 5

// Profile archetypes.
const (
	ArchetypePerfectionist = "PERFECTIONIST PROCRASTINATOR"
	ArchetypeChronic       = "CHRONIC PROCRASTINATOR"
	ArchetypeUnmotivated   = "STRATEGIC UNMOTIVATED"
)

// Score is one axis of the habit radar, 0 to 100.
type Score struct {
	Label string
	Value int
}

// Result is the profile shown after the questionnaire.
type Result struct {
	Archetype       string
	Description     string
	Perfectionism   bool
	Strengths       []string
	Challenges      []string
	Radar           []Score
	RecommendedPlan model.Plan
}

// Analyze classifies the answers into a procrastination profile.
// Missing or zero slider answers count as the midpoint.
func Analyze(answers map[int]model.AnswerValue) Result {
	freq := sliderOrDefault(answers, QuestionProcrastination)
	motivation := sliderOrDefault(answers, QuestionUrgency)

	res := Result{
		Archetype:   ArchetypePerfectionist,
		Description: "You wait for the perfect moment to study, and it never comes. Your high standards sometimes freeze you.",
		Strengths: []string{
			"Aware of the problem",
			"Motivated to change",
			"Willing to try new techniques",
		},
		Challenges: []string{
			"Putting off hard tasks",
			"Digital distractions",
			"Lack of structure",
		},
		Radar: []Score{
			{Label: "Focus", Value: int(math.Max(30, 100-freq*10))},
			{Label: "Motivation", Value: int(motivation * 10)},
			{Label: "Organization", Value: 40},
			{Label: "Consistency", Value: 35},
			{Label: "Techniques", Value: 50},
			{Label: "Self-discipline", Value: 45},
		},
		RecommendedPlan: model.PlanSilver,
	}
	if v, ok := answers[QuestionReason]; ok && v.Kind == model.AnswerText {
		res.Perfectionism = v.Text == ReasonPerfectionism
	}

	switch {
	case freq > 7:
		res.Archetype = ArchetypeChronic
		res.Description = "You keep postponing your study tasks. You need structure and outside accountability to stay focused."
	case motivation < 4:
		res.Archetype = ArchetypeUnmotivated
		res.Description = "You lack clarity about your goals. Once you connect with your why, your productivity will take off."
	}
	return res
}

func sliderOrDefault(answers map[int]model.AnswerValue, id int) float64 {
	v, ok := answers[id]
	if !ok {
		return defaultSliderScore
	}
	var n float64
	switch v.Kind {
	case model.AnswerNumber:
		n = v.Number
	case model.AnswerText:
		parsed, err := strconv.ParseFloat(v.Text, 64)
		if err != nil {
			return defaultSliderScore
		}
		n = parsed
	default:
		return defaultSliderScore
	}
	if n == 0 {
		return defaultSliderScore
	}
	return n
}
