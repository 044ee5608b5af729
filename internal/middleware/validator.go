package middleware

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/evalix/ai-readiness/internal/domain/questions"
)

// Input validation and sanitization helpers for the survey surface

var sessionIDPattern = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`)

// ValidateSessionID accepts server-minted tokens only (uuid v4 format).
// An empty id is valid where the endpoint mints one itself.
func ValidateSessionID(id string) error {
	if id == "" {
		return nil
	}
	if !sessionIDPattern.MatchString(strings.ToLower(id)) {
		return fmt.Errorf("invalid session id format")
	}
	return nil
}

// ValidateQuestionID checks the id against the catalog range.
func ValidateQuestionID(id int) error {
	if id < 0 || id >= questions.Count() {
		return fmt.Errorf("invalid question id: %d (0-%d)", id, questions.Count()-1)
	}
	return nil
}

// ValidateAnswerID checks the answer exists on the question.
func ValidateAnswerID(questionID, answerID int) error {
	if err := ValidateQuestionID(questionID); err != nil {
		return err
	}
	if _, ok := questions.AnswerLabel(questionID, answerID); !ok {
		return fmt.Errorf("invalid answer id %d for question %d", answerID, questionID)
	}
	return nil
}

// ValidateSortField restricts the admin sort parameter to known fields.
func ValidateSortField(field string) error {
	if field == "" {
		return nil
	}
	allowed := map[string]bool{
		"name": true, "company": true, "email": true,
		"createdAt": true, "updatedAt": true,
		"strategy": true, "application": true, "culture": true,
	}
	if !allowed[field] {
		return fmt.Errorf("invalid sort field: %s", field)
	}
	return nil
}

// SanitizeString removes null bytes and control characters from free-text
// form fields before they are persisted.
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateLimit clamps pagination limits
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}
