package selftest

import (
	"errors"
	"testing"
	"time"
)

func TestValidate_RejectsEmptyTopicsOutsideWeakAreas(t *testing.T) {
	for _, mode := range []Mode{ModeComprehensive, ModeCustom} {
		cfg := Config{Mode: mode, Difficulty: DifficultyMixed, QuestionCount: 10}
		err := cfg.Validate()
		if !errors.Is(err, ErrNoTopics) {
			t.Errorf("mode %q with no topics: err = %v, want ErrNoTopics", mode, err)
		}
	}
}

func TestValidate_WeakAreasAllowsEmptyTopics(t *testing.T) {
	cfg := Config{Mode: ModeWeakAreas, Difficulty: DifficultyEasy, QuestionCount: 5}
	if err := cfg.Validate(); err != nil {
		t.Errorf("weak-areas with no topics: err = %v, want nil", err)
	}
}

func TestValidate_TopicsPresent(t *testing.T) {
	cfg := Config{Mode: ModeComprehensive, Topics: []string{"Calculus"}, QuestionCount: 5}
	if err := cfg.Validate(); err != nil {
		t.Errorf("err = %v, want nil", err)
	}
}

func TestValidate_ReasonText(t *testing.T) {
	cfg := Config{Mode: ModeComprehensive}
	err := cfg.Validate()
	if err == nil || err.Error() != "select at least one topic" {
		t.Errorf("rejection reason = %q, want %q", err, "select at least one topic")
	}
}

func TestDefaultConfig_NeedsTopicsBeforeStart(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Difficulty != DifficultyMixed || cfg.QuestionCount != 10 || cfg.Mode != ModeComprehensive {
		t.Errorf("DefaultConfig = %+v, want mixed/10/comprehensive", cfg)
	}
	// No topics selected yet, so the default cannot start a session as-is.
	if !errors.Is(cfg.Validate(), ErrNoTopics) {
		t.Error("expected default config to require topic selection")
	}
}

func TestTimeLimit(t *testing.T) {
	tests := []struct {
		minutes int
		want    time.Duration
	}{
		{0, 0},
		{-1, 0},
		{1, time.Minute},
		{30, 30 * time.Minute},
	}
	for _, tt := range tests {
		cfg := Config{TimeLimitMinutes: tt.minutes}
		if got := cfg.TimeLimit(); got != tt.want {
			t.Errorf("TimeLimit(%d) = %v, want %v", tt.minutes, got, tt.want)
		}
	}
}

func TestValidQuestionCount(t *testing.T) {
	for _, n := range QuestionCounts {
		if !ValidQuestionCount(n) {
			t.Errorf("ValidQuestionCount(%d) = false, want true", n)
		}
	}
	for _, n := range []int{0, 1, 7, 15, 100} {
		if ValidQuestionCount(n) {
			t.Errorf("ValidQuestionCount(%d) = true, want false", n)
		}
	}
}
