package quizgen

import "testing"

func TestCheckAnswer_MultipleChoiceByText(t *testing.T) {
	q := validQuestion()

	tests := []struct {
		answer string
		want   bool
	}{
		{"Rate of change", true},
		{"rate of change", true},
		{"  Rate of change  ", true},
		{"Accumulated area", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := CheckAnswer(tt.answer, q); got != tt.want {
			t.Errorf("CheckAnswer(%q) = %v, want %v", tt.answer, got, tt.want)
		}
	}
}

func TestCheckAnswer_MultipleChoiceByIndex(t *testing.T) {
	q := validQuestion() // correct option is #2

	if !CheckAnswer("2", q) {
		t.Error("expected index of the correct option to match")
	}
	if CheckAnswer("1", q) {
		t.Error("expected index of a distractor to fail")
	}
	if CheckAnswer("9", q) {
		t.Error("expected out-of-range index to fail")
	}
}

func TestCheckAnswer_TrueFalseForms(t *testing.T) {
	q := &Question{Type: TypeTrueFalse, Answer: "true"}

	for _, ans := range []string{"true", "TRUE", "t", "yes", " True "} {
		if !CheckAnswer(ans, q) {
			t.Errorf("CheckAnswer(%q) = false, want true", ans)
		}
	}
	for _, ans := range []string{"false", "f", "no", "maybe", ""} {
		if CheckAnswer(ans, q) {
			t.Errorf("CheckAnswer(%q) = true, want false", ans)
		}
	}
}

func TestCheckAnswer_ApproachSelection(t *testing.T) {
	q := &Question{
		Type:       TypeApproachSelection,
		Approaches: []string{"Differentiate", "Integrate", "Factor"},
		Answer:     "Integrate",
	}

	if !CheckAnswer("integrate", q) {
		t.Error("expected approach text to match case-insensitively")
	}
	if !CheckAnswer("2", q) {
		t.Error("expected approach index to match")
	}
	if CheckAnswer("Factor", q) {
		t.Error("expected wrong approach to fail")
	}
}

func TestCheckAnswer_OpenTypesNeedTheEvaluator(t *testing.T) {
	for _, typ := range []QuestionType{TypeShortAnswer, TypeExplanation} {
		q := &Question{Type: typ, Answer: "entropy always increases"}
		if CheckAnswer("entropy always increases", q) {
			t.Errorf("%s: CheckAnswer must defer open types to the evaluation service", typ)
		}
	}
}
