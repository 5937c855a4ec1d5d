package quizgen

import (
	"fmt"
	"strings"
)

// ChoicesValidator checks type-specific answer consistency: choice types
// must list options containing the answer, true-false answers must be a
// boolean word, open types must not carry choices.
type ChoicesValidator struct{}

func (v *ChoicesValidator) Name() string { return "choices" }

func (v *ChoicesValidator) Validate(q *Question, _ SetRequest) *ValidationError {
	switch q.Type {
	case TypeMultipleChoice:
		return v.checkOptions(q.Choices, q.Answer, "choices")
	case TypeApproachSelection:
		return v.checkOptions(q.Approaches, q.Answer, "approaches")
	case TypeTrueFalse:
		switch strings.ToLower(strings.TrimSpace(q.Answer)) {
		case "true", "false":
		default:
			return &ValidationError{
				Validator: v.Name(),
				Message:   "true-false answer must be \"true\" or \"false\"",
				Retryable: true,
			}
		}
	case TypeShortAnswer, TypeExplanation:
		if len(q.Choices) > 0 || len(q.Approaches) > 0 {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("%s questions must not carry options", q.Type),
				Retryable: true,
			}
		}
	}
	return nil
}

func (v *ChoicesValidator) checkOptions(options []string, answer, field string) *ValidationError {
	if len(options) < 2 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("%s must list at least 2 options", field),
			Retryable: true,
		}
	}
	for _, opt := range options {
		if strings.EqualFold(strings.TrimSpace(opt), strings.TrimSpace(answer)) {
			return nil
		}
	}
	return &ValidationError{
		Validator: v.Name(),
		Message:   fmt.Sprintf("answer does not match any of the %s", field),
		Retryable: true,
	}
}
