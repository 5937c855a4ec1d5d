package quizgen

import (
	"strings"
	"testing"
)

func TestBuildUserMessage_IncludesRequestFields(t *testing.T) {
	req := SetRequest{
		Topics:            []string{"Thermodynamics", "Entropy"},
		Difficulty:        "hard",
		Count:             10,
		Mode:              "custom",
		FocusAreas:        []string{"second law"},
		VocalExplanations: true,
	}
	msg := buildUserMessage(req, DefaultConfig())

	for _, want := range []string{
		"Questions requested: 10",
		"Difficulty: hard",
		"Mode: custom",
		"Vocal explanations: true",
		"- Thermodynamics",
		"- Entropy",
		"- second law",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

func TestBuildUserMessage_EmptyListsSayNone(t *testing.T) {
	req := SetRequest{Difficulty: "easy", Count: 5, Mode: "weak-areas"}
	msg := buildUserMessage(req, DefaultConfig())

	if !strings.Contains(msg, "Topics:\nNone") {
		t.Error("expected empty topics to render as None")
	}
	if !strings.Contains(msg, "Already served recently (do not repeat):\nNone") {
		t.Error("expected empty avoid list to render as None")
	}
}

func TestBuildAvoid_KeepsMostRecent(t *testing.T) {
	prompts := []string{"one", "two", "three", "four"}
	out := buildAvoid(prompts, 2)

	if strings.Contains(out, "one") || strings.Contains(out, "two") {
		t.Errorf("oldest prompts must be dropped, got %q", out)
	}
	if !strings.Contains(out, "three") || !strings.Contains(out, "four") {
		t.Errorf("most recent prompts must be kept, got %q", out)
	}
}

func TestBuildUserMessage_ClipsDocumentExcerpts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDocExcerpt = 10
	req := SetRequest{
		Topics: []string{"History"},
		Count:  5,
		Documents: []DocumentContext{
			{DocID: "doc-1", Title: "Lecture Notes", Excerpt: strings.Repeat("x", 50)},
		},
	}
	msg := buildUserMessage(req, cfg)

	if !strings.Contains(msg, `Document "Lecture Notes" (id doc-1)`) {
		t.Error("expected document header")
	}
	if !strings.Contains(msg, strings.Repeat("x", 10)+" [...]") {
		t.Error("expected the excerpt to be clipped")
	}
	if strings.Contains(msg, strings.Repeat("x", 11)) {
		t.Error("excerpt exceeded the clip limit")
	}
}
