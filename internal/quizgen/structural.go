package quizgen

// StructuralValidator checks that required fields are present, within
// length limits, and have valid enum values.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, _ SetRequest) *ValidationError {
	if q.Prompt == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "prompt is empty",
			Retryable: true,
		}
	}
	if len(q.Prompt) > 500 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "prompt exceeds 500 characters",
			Retryable: true,
		}
	}
	if !KnownType(q.Type) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "type must be one of multiple-choice, true-false, short-answer, explanation, approach-selection",
			Retryable: true,
		}
	}
	if q.Answer == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "answer is empty",
			Retryable: true,
		}
	}
	if q.Explanation == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "explanation is empty",
			Retryable: true,
		}
	}
	if len(q.Explanation) > 1000 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "explanation exceeds 1000 characters",
			Retryable: true,
		}
	}
	if q.Concept == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "concept is empty",
			Retryable: true,
		}
	}
	switch q.Difficulty {
	case "easy", "medium", "hard":
	default:
		return &ValidationError{
			Validator: v.Name(),
			Message:   "difficulty must be \"easy\", \"medium\" or \"hard\"",
			Retryable: true,
		}
	}
	return nil
}
