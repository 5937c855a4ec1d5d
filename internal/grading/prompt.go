package grading

import (
	"fmt"
	"strings"

	"github.com/abhisek/studiz/internal/quizgen"
)

const answerSystemPrompt = `You are a study tutor grading one submitted answer and coaching the learner.

Rules:
- Judge correctness against the canonical answer and explanation. Accept equivalent phrasings; an answer does not need to match word for word to be correct.
- When the input asserts a verdict, echo it in the "correct" field and write feedback consistent with it.
- Write the feedback for the requested feedback level and no other:
  - confirm: one short sentence confirming the answer, optionally reinforcing the key idea.
  - encourage: the answer is wrong; encourage a retry without giving any hint toward the answer.
  - hint: the answer is wrong; give one concrete hint drawn from the explanation without stating the answer.
  - reveal: the answer is wrong; state the correct answer and teach why, using the explanation.
- For explanation questions, grade the reasoning, not the wording. A vocal transcript, when present, counts toward the answer.
- Use "mastery_delta" only for partial credit, e.g. right idea with a flawed step. Keep it between -1 and 1; 0 is the norm.`

const testSystemPrompt = `You are a study tutor scoring a completed self-test.

Rules:
- Return exactly one grade per question, keyed by the question's id.
- Judge correctness against each question's canonical answer and explanation. Accept equivalent phrasings.
- Questions marked with an asserted verdict are already scored; echo the assertion in the "correct" field.
- Unanswered questions are already scored as incorrect; echo that.
- Feedback is shown in the results review: one or two sentences per question, teaching for misses, brief for hits.
- A vocal transcript, when present, counts toward the answer for explanation questions.
- Use "mastery_delta" only for partial credit. Keep it between -1 and 1; 0 is the norm.`

// buildAnswerMessage constructs the user message for single-answer grading.
// asserted is non-nil when the verdict was already determined locally;
// level names the feedback register the model must write in.
func buildAnswerMessage(req AnswerRequest, asserted *bool, level string, cfg Config) string {
	var b strings.Builder

	writeQuestion(&b, &req.Question)

	fmt.Fprintf(&b, "\nSubmitted answer: %s\n", req.Answer)
	if req.Transcript != "" {
		fmt.Fprintf(&b, "Vocal transcript: %s\n", clip(req.Transcript, cfg.MaxTranscript))
	}
	fmt.Fprintf(&b, "Attempt number: %d\n", req.Attempt)

	if asserted != nil {
		fmt.Fprintf(&b, "Asserted verdict: %t\n", *asserted)
	}
	fmt.Fprintf(&b, "Feedback level: %s\n", level)

	return b.String()
}

// buildTestMessage constructs the user message for batch grading. verdicts
// holds the locally determined outcomes, keyed by question id; questions
// absent from it are the ones the model must judge.
func buildTestMessage(req TestRequest, verdicts map[string]bool, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Test mode: %s\n", req.Config.Mode)
	fmt.Fprintf(&b, "Questions: %d\n", len(req.Questions))

	for i := range req.Questions {
		q := &req.Questions[i]
		rec := req.record(q.ID)

		fmt.Fprintf(&b, "\n--- Question %d (id %s) ---\n", i+1, q.ID)
		writeQuestion(&b, q)

		if strings.TrimSpace(rec.Answer) == "" {
			b.WriteString("Submitted answer: (none)\n")
		} else {
			fmt.Fprintf(&b, "Submitted answer: %s\n", rec.Answer)
		}
		if rec.Transcript != "" {
			fmt.Fprintf(&b, "Vocal transcript: %s\n", clip(rec.Transcript, cfg.MaxTranscript))
		}
		if verdict, ok := verdicts[q.ID]; ok {
			fmt.Fprintf(&b, "Asserted verdict: %t\n", verdict)
		}
	}

	return b.String()
}

// writeQuestion formats the shared question block: prompt, type, options,
// canonical answer and explanation.
func writeQuestion(b *strings.Builder, q *quizgen.Question) {
	fmt.Fprintf(b, "Question: %s\n", q.Prompt)
	fmt.Fprintf(b, "Type: %s\n", q.Type)
	for i, c := range q.Choices {
		fmt.Fprintf(b, "Choice %d: %s\n", i+1, c)
	}
	for i, a := range q.Approaches {
		fmt.Fprintf(b, "Approach %d: %s\n", i+1, a)
	}
	fmt.Fprintf(b, "Canonical answer: %s\n", q.Answer)
	fmt.Fprintf(b, "Explanation: %s\n", q.Explanation)
}

// clip truncates s to max characters, appending an ellipsis marker.
func clip(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + " [...]"
}
