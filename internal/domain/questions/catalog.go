package questions

// QuestionType enum
type QuestionType string

const (
	TypeSingleChoice QuestionType = "single_choice"
	TypeDemographics QuestionType = "demographics"
)

// AnswerOption is one selectable answer with its score (1-5 for scored questions)
type AnswerOption struct {
	ID          int    `json:"id"`
	Text        string `json:"text"`
	Score       int    `json:"score"`
	Description string `json:"description,omitempty"`
}

// Question definition, immutable after process start
type Question struct {
	ID         int            `json:"id"`
	Chapter    string         `json:"chapter"`
	Text       string         `json:"text"`
	OrderIndex int            `json:"orderIndex"`
	Type       QuestionType   `json:"type"`
	Answers    []AnswerOption `json:"answers"`
}

// Category groups exactly three scored questions for sub-scoring
type Category struct {
	Name        string
	QuestionIDs [3]int
}

const (
	CategoryStrategy    = "AI STRATEGY"
	CategoryApplication = "AI APPLICATION"
	CategoryCulture     = "AI CULTURE"
)

// Categories in display order. Every scored question belongs to exactly one.
var Categories = [3]Category{
	{Name: CategoryStrategy, QuestionIDs: [3]int{0, 1, 2}},
	{Name: CategoryApplication, QuestionIDs: [3]int{3, 4, 5}},
	{Name: CategoryCulture, QuestionIDs: [3]int{6, 7, 8}},
}

// AmbitionQuestionID is the scored question whose selected answer label is
// surfaced as the "ambition" field of the results payload.
const AmbitionQuestionID = 8

// ScoredCount is the number of score-carrying questions (ids 0..8).
const ScoredCount = 9

func scale(texts [5]string) []AnswerOption {
	out := make([]AnswerOption, 5)
	for i, t := range texts {
		out[i] = AnswerOption{ID: i, Text: t, Score: i + 1}
	}
	return out
}

var catalog = []Question{
	{
		ID: 0, Chapter: CategoryStrategy, OrderIndex: 0, Type: TypeSingleChoice,
		Text: "Does your company have a documented AI strategy?",
		Answers: scale([5]string{
			"No, AI is not on our agenda",
			"We have discussed it informally",
			"A strategy draft exists but is not adopted",
			"An adopted strategy exists for parts of the business",
			"A company-wide AI strategy is adopted and reviewed",
		}),
	},
	{
		ID: 1, Chapter: CategoryStrategy, OrderIndex: 1, Type: TypeSingleChoice,
		Text: "Is there budget and ownership for AI initiatives?",
		Answers: scale([5]string{
			"Neither budget nor ownership",
			"Occasional ad-hoc spending",
			"A small budget, no named owner",
			"Dedicated budget with a named owner",
			"Dedicated budget, owner and steering process",
		}),
	},
	{
		ID: 2, Chapter: CategoryStrategy, OrderIndex: 2, Type: TypeSingleChoice,
		Text: "How well do you know the AI use cases relevant to your industry?",
		Answers: scale([5]string{
			"Not at all",
			"We have heard of a few examples",
			"We track competitor activity loosely",
			"We maintain a list of evaluated use cases",
			"We systematically scout and prioritise use cases",
		}),
	},
	{
		ID: 3, Chapter: CategoryApplication, OrderIndex: 3, Type: TypeSingleChoice,
		Text: "Are AI tools used in day-to-day work today?",
		Answers: scale([5]string{
			"Not at all",
			"A few individuals experiment privately",
			"Some teams use AI tools occasionally",
			"Several teams use AI tools routinely",
			"AI tools are embedded across the organisation",
		}),
	},
	{
		ID: 4, Chapter: CategoryApplication, OrderIndex: 4, Type: TypeSingleChoice,
		Text: "Have you integrated AI into any core business process?",
		Answers: scale([5]string{
			"No",
			"We ran isolated experiments",
			"One pilot integration is underway",
			"At least one process runs with AI in production",
			"Multiple core processes run with AI in production",
		}),
	},
	{
		ID: 5, Chapter: CategoryApplication, OrderIndex: 5, Type: TypeSingleChoice,
		Text: "How is the quality and availability of the data AI would need?",
		Answers: scale([5]string{
			"Data is scattered and largely unusable",
			"Data exists but is siloed and inconsistent",
			"Key data is accessible with manual effort",
			"Key data is centralised and mostly clean",
			"Data is governed, clean and readily accessible",
		}),
	},
	{
		ID: 6, Chapter: CategoryCulture, OrderIndex: 6, Type: TypeSingleChoice,
		Text: "How do employees react to AI-driven change?",
		Answers: scale([5]string{
			"With rejection or fear",
			"Mostly sceptical",
			"Neutral, waiting to see",
			"Mostly curious and open",
			"Actively driving adoption themselves",
		}),
	},
	{
		ID: 7, Chapter: CategoryCulture, OrderIndex: 7, Type: TypeSingleChoice,
		Text: "Does your company invest in AI skills and training?",
		Answers: scale([5]string{
			"No training at all",
			"Self-study is tolerated",
			"Occasional workshops on demand",
			"A structured training offer exists",
			"Continuous, role-specific AI upskilling",
		}),
	},
	{
		ID: 8, Chapter: CategoryCulture, OrderIndex: 8, Type: TypeSingleChoice,
		Text: "What is your ambition for AI in the next two years?",
		Answers: scale([5]string{
			"Observe only",
			"Try a first small experiment",
			"Run selected pilots",
			"Scale AI in core processes",
			"Become an AI-first organisation",
		}),
	},
	{
		ID: 9, Chapter: "DEMOGRAPHICS", OrderIndex: 9, Type: TypeDemographics,
		Text: "Which sector is your company in?",
		Answers: []AnswerOption{
			{ID: 0, Text: "Manufacturing"},
			{ID: 1, Text: "Trade & Commerce"},
			{ID: 2, Text: "Services"},
			{ID: 3, Text: "IT & Software"},
			{ID: 4, Text: "Public Sector"},
			{ID: 5, Text: "Other"},
		},
	},
	{
		ID: 10, Chapter: "DEMOGRAPHICS", OrderIndex: 10, Type: TypeDemographics,
		Text: "How many employees does your company have?",
		Answers: []AnswerOption{
			{ID: 0, Text: "1-9"},
			{ID: 1, Text: "10-49"},
			{ID: 2, Text: "50-249"},
			{ID: 3, Text: "250-999"},
			{ID: 4, Text: "1000+"},
		},
	},
}

// Count returns the number of questions in the catalog.
func Count() int { return len(catalog) }

// ByID returns the question with the given id.
func ByID(id int) (*Question, bool) {
	if id < 0 || id >= len(catalog) {
		return nil, false
	}
	return &catalog[id], true
}

// All returns the catalog in order.
func All() []Question { return catalog }

// AnswerScore resolves a (question, answer) pair to its score.
func AnswerScore(questionID, answerID int) (int, bool) {
	q, ok := ByID(questionID)
	if !ok {
		return 0, false
	}
	for _, a := range q.Answers {
		if a.ID == answerID {
			return a.Score, true
		}
	}
	return 0, false
}

// AnswerLabel resolves a (question, answer) pair to the option text.
func AnswerLabel(questionID, answerID int) (string, bool) {
	q, ok := ByID(questionID)
	if !ok {
		return "", false
	}
	for _, a := range q.Answers {
		if a.ID == answerID {
			return a.Text, true
		}
	}
	return "", false
}

// IsScored reports whether the question carries a 1-5 score.
func IsScored(questionID int) bool {
	return questionID >= 0 && questionID < ScoredCount
}

// CategoryOf returns the category a scored question belongs to.
func CategoryOf(questionID int) (Category, bool) {
	for _, c := range Categories {
		for _, id := range c.QuestionIDs {
			if id == questionID {
				return c, true
			}
		}
	}
	return Category{}, false
}
