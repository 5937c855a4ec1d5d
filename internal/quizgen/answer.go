package quizgen

import (
	"strconv"
	"strings"
)

// CheckAnswer compares the learner's input against the canonical answer
// for closed question types. Returns false for open types (short-answer,
// explanation), which need the evaluation service.
//
// Normalization rules:
// - Whitespace is trimmed, comparison is case-insensitive
// - For choice types: matches against the option text or its index (1-n)
// - For true-false: accepts "true"/"false", "t"/"f", "yes"/"no"
func CheckAnswer(learnerAnswer string, question *Question) bool {
	learnerAnswer = strings.TrimSpace(learnerAnswer)
	if learnerAnswer == "" {
		return false
	}

	switch question.Type {
	case TypeMultipleChoice:
		return checkChoice(learnerAnswer, question.Choices, question.Answer)
	case TypeApproachSelection:
		return checkChoice(learnerAnswer, question.Approaches, question.Answer)
	case TypeTrueFalse:
		return checkTrueFalse(learnerAnswer, question.Answer)
	}
	return false
}

// checkChoice checks the learner's answer against the option list.
func checkChoice(learnerAnswer string, options []string, answer string) bool {
	// Try matching by index (1-n).
	if idx, err := strconv.Atoi(learnerAnswer); err == nil && idx >= 1 && idx <= len(options) {
		return strings.EqualFold(
			strings.TrimSpace(options[idx-1]),
			strings.TrimSpace(answer),
		)
	}

	// Match by text (case-insensitive).
	return strings.EqualFold(learnerAnswer, strings.TrimSpace(answer))
}

// checkTrueFalse normalizes boolean words before comparing.
func checkTrueFalse(learnerAnswer, answer string) bool {
	norm, ok := normalizeBool(learnerAnswer)
	if !ok {
		return false
	}
	want, ok := normalizeBool(answer)
	if !ok {
		return false
	}
	return norm == want
}

func normalizeBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes":
		return true, true
	case "false", "f", "no":
		return false, true
	}
	return false, false
}
