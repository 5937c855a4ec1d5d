package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a study assistant creating self-assessment questions from a learner's study material.

Rules:
- Generate exactly the requested number of questions as a JSON object with a "questions" array.
- Every question must be answerable from the given topics and document excerpts alone; never require outside knowledge the material does not cover.
- Spread questions evenly across the topics and requested concepts; each question tests exactly one concept, named in the "concept" field.
- Mix question types: prefer multiple-choice and true-false for recall, short-answer for definitions, explanation for reasoning, approach-selection for method choice.
- For multiple-choice, provide exactly 4 options where exactly one is correct. Distractors should reflect plausible misunderstandings, not random text.
- For approach-selection, list 3-4 candidate approaches where exactly one is appropriate.
- For difficulty "mixed", produce a balance of easy, medium and hard questions; otherwise match the requested difficulty.
- When vocal explanations are requested, set "requires_vocal" on roughly a third of the questions, favoring explanation questions.
- The explanation field must teach: state the correct answer and why, in 2-4 sentences.
- Do not repeat any question from the "already served" list.`

// buildUserMessage constructs the user message from the SetRequest and
// Config limits.
func buildUserMessage(req SetRequest, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Questions requested: %d\n", req.Count)
	fmt.Fprintf(&b, "Difficulty: %s\n", req.Difficulty)
	fmt.Fprintf(&b, "Mode: %s\n", req.Mode)
	fmt.Fprintf(&b, "Vocal explanations: %t\n", req.VocalExplanations)

	b.WriteString("\nTopics:\n")
	b.WriteString(buildList(req.Topics))

	if len(req.FocusAreas) > 0 {
		b.WriteString("\nFocus areas:\n")
		b.WriteString(buildList(req.FocusAreas))
	}

	if len(req.WeakConcepts) > 0 {
		b.WriteString("\nConcepts the learner is weak on (prioritize these):\n")
		b.WriteString(buildList(req.WeakConcepts))
	}

	b.WriteString("\nAlready served recently (do not repeat):\n")
	b.WriteString(buildAvoid(req.AvoidPrompts, cfg.MaxAvoidPrompts))

	for _, doc := range req.Documents {
		fmt.Fprintf(&b, "\nDocument %q (id %s):\n", doc.Title, doc.DocID)
		b.WriteString(clip(doc.Excerpt, cfg.MaxDocExcerpt))
		b.WriteString("\n")
	}

	return b.String()
}

// buildList formats a bullet list, "None" when empty.
func buildList(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "- %s\n", item)
	}
	return strings.TrimRight(b.String(), "\n")
}

// buildAvoid formats recently served prompts, respecting the max limit.
func buildAvoid(prompts []string, max int) string {
	if len(prompts) == 0 {
		return "None"
	}
	// Keep only the most recent N prompts.
	if max > 0 && len(prompts) > max {
		prompts = prompts[len(prompts)-max:]
	}
	var b strings.Builder
	for i, p := range prompts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	return strings.TrimRight(b.String(), "\n")
}

// clip truncates s to max characters, appending an ellipsis marker.
func clip(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + " [...]"
}
