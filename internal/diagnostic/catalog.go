// Package diagnostic runs the study-habit questionnaire.
package diagnostic

// QuestionType selects how a question is answered.
type QuestionType int

// Question types.
const (
	Slider QuestionType = iota
	Radio
	Checkbox
	Text
	Email
)

// Question ids referenced outside the catalog.
const (
	QuestionProcrastination = 1
	QuestionReason          = 6
	QuestionUrgency         = 7
	QuestionCareer          = 9
	QuestionCurrentAverage  = 10
	QuestionTargetAverage   = 11
	QuestionEmail           = 19
)

// Question is one catalog entry.
type Question struct {
	ID          int
	Prompt      string
	Type        QuestionType
	Min         int
	Max         int
	Unit        string
	Options     []string
	Placeholder string
}

// Category groups questions shown together.
type Category struct {
	Name      string
	Questions []Question
}

var categories = []Category{
	{
		Name: "Current Habits",
		Questions: []Question{
			{ID: 1, Prompt: "How many times a week do you put off studying?", Type: Slider, Min: 0, Max: 10, Unit: "times"},
			{ID: 2, Prompt: "When do you study best?", Type: Radio, Options: []string{
				"Morning (6am-12pm)", "Afternoon (12pm-6pm)", "Evening (6pm-12am)", "Late night (12am-6am)",
			}},
			{ID: 3, Prompt: "What distracts you the most? (pick any)", Type: Checkbox, Options: []string{
				"TikTok", "WhatsApp", "YouTube", "Instagram", "Netflix", "Video games", "Background noise",
			}},
			{ID: 4, Prompt: "How long do you usually study without stopping?", Type: Radio, Options: []string{
				"Less than 15 minutes", "15-30 minutes", "30-60 minutes", "More than 60 minutes",
			}},
			{ID: 5, Prompt: "How often do you stick to your study plan?", Type: Slider, Min: 0, Max: 10, Unit: "/10"},
		},
	},
	{
		Name: "Motivation and Fears",
		Questions: []Question{
			{ID: 6, Prompt: "Why do you think you procrastinate?", Type: Radio, Options: []string{
				"Fear of failing",
				ReasonPerfectionism,
				"The subject bores me",
				"I don't know where to start",
				"Low academic self-esteem",
			}},
			{ID: 7, Prompt: "How urgent is improving your grades?", Type: Slider, Min: 1, Max: 10, Unit: "/10"},
			{ID: 8, Prompt: "What really motivates you to study?", Type: Checkbox, Options: []string{
				"Raising my grades", "Not letting my family down", "Getting a scholarship",
				"My professional future", "Competing with others", "Personal pride",
			}},
		},
	},
	{
		Name: "Academic Context",
		Questions: []Question{
			{ID: 9, Prompt: "What do you study?", Type: Text, Placeholder: "e.g. Industrial Engineering"},
			{ID: 10, Prompt: "What is your current average?", Type: Slider, Min: 0, Max: 20},
			{ID: 11, Prompt: "What average do you want to reach?", Type: Slider, Min: 0, Max: 20},
			{ID: 12, Prompt: "How many courses are you taking?", Type: Slider, Min: 1, Max: 8, Unit: "courses"},
			{ID: 13, Prompt: "Do you have important exams or assignments coming up?", Type: Radio, Options: []string{
				"Yes, in less than 2 weeks", "Yes, in 2-4 weeks", "Yes, in more than a month", "Not right now",
			}},
		},
	},
	{
		Name: "Learning Style",
		Questions: []Question{
			{ID: 14, Prompt: "How do you learn best?", Type: Radio, Options: []string{
				"Visual (diagrams, videos)", "Auditory (explanations, podcasts)",
				"Kinesthetic (practice, experiments)", "Reading and writing",
			}},
			{ID: 15, Prompt: "Do you prefer studying alone or in a group?", Type: Radio, Options: []string{
				"Always alone", "Mostly alone, sometimes a group", "I like groups", "Depends on the subject",
			}},
			{ID: 16, Prompt: "Which study techniques do you use? (pick all that apply)", Type: Checkbox, Options: []string{
				"Mind maps", "Written summaries", "Flashcards", "Explaining out loud", "None in particular",
			}},
		},
	},
	{
		Name: "Goals",
		Questions: []Question{
			{ID: 17, Prompt: "What do you want to achieve this term?", Type: Radio, Options: []string{
				"Pass every course", "Raise my average", "Get a scholarship", "Reach the top third", "Just not fail",
			}},
			{ID: 18, Prompt: "How many hours a day can you realistically study?", Type: Slider, Min: 1, Max: 8, Unit: "hours"},
			{ID: 19, Prompt: "Your email to send you the results", Type: Email, Placeholder: "you@email.com"},
		},
	},
}

// ReasonPerfectionism is the perfectionism option of the procrastination reason question.
const ReasonPerfectionism = "Perfectionism (waiting for the ideal moment)"

// Categories returns the questionnaire in display order.
func Categories() []Category {
	return categories
}

// TotalQuestions counts every question in the catalog.
func TotalQuestions() int {
	total := 0
	for _, c := range categories {
		total += len(c.Questions)
	}
	return total
}

// QuestionByID finds a catalog question.
func QuestionByID(id int) (Question, bool) {
	for _, c := range categories {
		for _, q := range c.Questions {
			if q.ID == id {
				return q, true
			}
		}
	}
	return Question{}, false
}
