package selftest

import "testing"

func TestEscalate_TierTable(t *testing.T) {
	tests := []struct {
		attempt    int
		correct    bool
		wantTier   Tier
		wantReveal bool
		wantRetry  bool
	}{
		{1, true, TierConfirm, false, false},
		{3, true, TierConfirm, false, false},
		{1, false, TierEncourage, false, true},
		{2, false, TierHint, false, true},
		{3, false, TierReveal, true, false},
		{4, false, TierReveal, true, false},
		{9, false, TierReveal, true, false},
	}

	for _, tt := range tests {
		got := Escalate(tt.attempt, tt.correct)
		if got.Tier != tt.wantTier {
			t.Errorf("Escalate(%d, %v).Tier = %q, want %q", tt.attempt, tt.correct, got.Tier, tt.wantTier)
		}
		if got.RevealAnswer != tt.wantReveal {
			t.Errorf("Escalate(%d, %v).RevealAnswer = %v, want %v", tt.attempt, tt.correct, got.RevealAnswer, tt.wantReveal)
		}
		if got.RetrySameQuestion != tt.wantRetry {
			t.Errorf("Escalate(%d, %v).RetrySameQuestion = %v, want %v", tt.attempt, tt.correct, got.RetrySameQuestion, tt.wantRetry)
		}
	}
}

func TestEscalate_Pure(t *testing.T) {
	for attempt := 0; attempt <= 5; attempt++ {
		for _, correct := range []bool{true, false} {
			first := Escalate(attempt, correct)
			second := Escalate(attempt, correct)
			if first != second {
				t.Errorf("Escalate(%d, %v) not deterministic: %+v then %+v", attempt, correct, first, second)
			}
		}
	}
}

func TestEscalate_AttemptFloor(t *testing.T) {
	// Attempt numbers below 1 behave like the first attempt.
	for _, attempt := range []int{0, -3} {
		got := Escalate(attempt, false)
		if got.Tier != TierEncourage {
			t.Errorf("Escalate(%d, false).Tier = %q, want %q", attempt, got.Tier, TierEncourage)
		}
	}
}
