package assessment

import (
	"time"
)

// SessionID is the opaque token identifying one respondent's assessment
type SessionID string

// Response is the aggregate root: one mutable record per session.
// Answer slots are nullable; nil means the question was never answered.
type Response struct {
	SessionID SessionID `json:"sessionId"`

	Question0Answer  *int `json:"question0Answer,omitempty"`
	Question1Answer  *int `json:"question1Answer,omitempty"`
	Question2Answer  *int `json:"question2Answer,omitempty"`
	Question3Answer  *int `json:"question3Answer,omitempty"`
	Question4Answer  *int `json:"question4Answer,omitempty"`
	Question5Answer  *int `json:"question5Answer,omitempty"`
	Question6Answer  *int `json:"question6Answer,omitempty"`
	Question7Answer  *int `json:"question7Answer,omitempty"`
	Question8Answer  *int `json:"question8Answer,omitempty"`
	Question9Answer  *int `json:"question9Answer,omitempty"`
	Question10Answer *int `json:"question10Answer,omitempty"`

	StrategyAverage    *float64 `json:"strategyAverage,omitempty"`
	ApplicationAverage *float64 `json:"applicationAverage,omitempty"`
	CultureAverage     *float64 `json:"cultureAverage,omitempty"`

	Name        string `json:"name,omitempty"`
	Company     string `json:"company,omitempty"`
	Email       string `json:"email,omitempty"`
	Sector      string `json:"sector,omitempty"`
	CompanySize string `json:"companySize,omitempty"`
	OptIn       bool   `json:"optIn"`

	// Rev is a last-write token, regenerated on every save
	Rev       string    `json:"rev,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SlotCount is the number of answer slots on a response.
const SlotCount = 11

// Answer returns the stored value for a question slot, nil when unanswered
// or the id is out of range. Explicit switch instead of reflection so the
// slot set is checked at compile time.
func (r *Response) Answer(questionID int) *int {
	switch questionID {
	case 0:
		return r.Question0Answer
	case 1:
		return r.Question1Answer
	case 2:
		return r.Question2Answer
	case 3:
		return r.Question3Answer
	case 4:
		return r.Question4Answer
	case 5:
		return r.Question5Answer
	case 6:
		return r.Question6Answer
	case 7:
		return r.Question7Answer
	case 8:
		return r.Question8Answer
	case 9:
		return r.Question9Answer
	case 10:
		return r.Question10Answer
	}
	return nil
}

// SetAnswer writes a question slot. Returns false for out-of-range ids.
func (r *Response) SetAnswer(questionID, value int) bool {
	v := value
	switch questionID {
	case 0:
		r.Question0Answer = &v
	case 1:
		r.Question1Answer = &v
	case 2:
		r.Question2Answer = &v
	case 3:
		r.Question3Answer = &v
	case 4:
		r.Question4Answer = &v
	case 5:
		r.Question5Answer = &v
	case 6:
		r.Question6Answer = &v
	case 7:
		r.Question7Answer = &v
	case 8:
		r.Question8Answer = &v
	case 9:
		r.Question9Answer = &v
	case 10:
		r.Question10Answer = &v
	default:
		return false
	}
	return true
}

// AnsweredCount counts the non-nil slots.
func (r *Response) AnsweredCount() int {
	n := 0
	for i := 0; i < SlotCount; i++ {
		if r.Answer(i) != nil {
			n++
		}
	}
	return n
}

// Average returns the stored category average by category index
// (order matches questions.Categories).
func (r *Response) Average(categoryIdx int) *float64 {
	switch categoryIdx {
	case 0:
		return r.StrategyAverage
	case 1:
		return r.ApplicationAverage
	case 2:
		return r.CultureAverage
	}
	return nil
}

// SetAverage stores a category average by category index.
func (r *Response) SetAverage(categoryIdx int, avg float64) {
	v := avg
	switch categoryIdx {
	case 0:
		r.StrategyAverage = &v
	case 1:
		r.ApplicationAverage = &v
	case 2:
		r.CultureAverage = &v
	}
}

// HasContact reports whether the respondent left a non-blank name.
func (r *Response) HasContact() bool {
	return trimmedNonEmpty(r.Name)
}

func trimmedNonEmpty(s string) bool {
	for _, c := range s {
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			return true
		}
	}
	return false
}
