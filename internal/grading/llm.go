package grading

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/studiz/internal/llm"
	"github.com/abhisek/studiz/internal/quizgen"
	"github.com/abhisek/studiz/internal/selftest"
)

// LLMEvaluator implements Evaluator using the LLM provider. Closed
// question types are scored by the deterministic checker and only pass
// through the model for feedback text; open types are judged by the model.
type LLMEvaluator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMEvaluator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMEvaluator {
	return &LLMEvaluator{provider: provider, config: cfg}
}

// answerOutput is a raw LLM answer grade before post-correction.
type answerOutput struct {
	Correct      bool    `json:"correct"`
	Feedback     string  `json:"feedback"`
	MasteryDelta float64 `json:"mastery_delta"`
}

// gradeOutput is one raw LLM grade in a batch response.
type gradeOutput struct {
	QuestionID   string  `json:"question_id"`
	Correct      bool    `json:"correct"`
	Feedback     string  `json:"feedback"`
	MasteryDelta float64 `json:"mastery_delta"`
}

// testOutput is the raw LLM batch response.
type testOutput struct {
	Grades []gradeOutput `json:"grades"`
}

// GradeAnswer grades one submission. The model writes the feedback; the
// escalation tier and reveal flag are always recomputed from the scored
// correctness, so a drifting model cannot change the feedback contract.
func (e *LLMEvaluator) GradeAnswer(ctx context.Context, req AnswerRequest) (*AnswerFeedback, error) {
	var asserted *bool
	level := fmt.Sprintf("confirm if correct, otherwise %s", selftest.Escalate(req.Attempt, false).Tier)
	if req.Question.Type.Closed() {
		correct := quizgen.CheckAnswer(req.Answer, &req.Question)
		asserted = &correct
		level = string(selftest.Escalate(req.Attempt, correct).Tier)
	}

	ctx = llm.WithPurpose(ctx, "answer-eval")

	llmReq := llm.Request{
		System: answerSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildAnswerMessage(req, asserted, level, e.config)},
		},
		Schema:      AnswerEvalSchema,
		MaxTokens:   e.config.MaxTokens,
		Temperature: e.config.Temperature,
	}

	resp, err := e.provider.Generate(ctx, llmReq)
	if err != nil {
		return nil, fmt.Errorf("LLM grading failed: %w", err)
	}

	var raw answerOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	correct := raw.Correct
	if asserted != nil {
		correct = *asserted
	}
	esc := selftest.Escalate(req.Attempt, correct)

	feedback := strings.TrimSpace(raw.Feedback)
	if feedback == "" {
		feedback = tierFeedback(esc, &req.Question)
	}

	return &AnswerFeedback{
		Correct:      correct,
		Tier:         esc.Tier,
		RevealAnswer: esc.RevealAnswer,
		Feedback:     feedback,
		Explanation:  req.Question.Explanation,
		MasteryDelta: clampDelta(raw.MasteryDelta),
	}, nil
}

// GradeTest scores a completed set. Closed and unanswered questions are
// scored locally and included in the prompt with their verdicts asserted;
// the model judges the answered open questions and writes review feedback
// for everything. When nothing needs the model, for instance an all-closed
// set or a timeout with no answers, no request is made at all.
func (e *LLMEvaluator) GradeTest(ctx context.Context, req TestRequest) (*selftest.Result, error) {
	grades := make(map[string]selftest.QuestionGrade, len(req.Questions))
	verdicts := make(map[string]bool, len(req.Questions))
	needModel := false

	for i := range req.Questions {
		q := &req.Questions[i]
		rec := req.record(q.ID)

		switch {
		case strings.TrimSpace(rec.Answer) == "":
			grades[q.ID] = selftest.QuestionGrade{Feedback: "Not answered."}
			verdicts[q.ID] = false
		case q.Type.Closed():
			correct := quizgen.CheckAnswer(rec.Answer, q)
			g := selftest.QuestionGrade{Correct: correct}
			if !correct {
				g.Feedback = q.Explanation
			}
			grades[q.ID] = g
			verdicts[q.ID] = correct
		default:
			needModel = true
		}
	}

	if !needModel {
		res := selftest.BuildResult(req.Questions, req.Records, grades, req.TotalTimeMs)
		return &res, nil
	}

	ctx = llm.WithPurpose(ctx, "test-eval")

	llmReq := llm.Request{
		System: testSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildTestMessage(req, verdicts, e.config)},
		},
		Schema:      TestEvalSchema,
		MaxTokens:   e.config.MaxTokens,
		Temperature: e.config.Temperature,
	}

	resp, err := e.provider.Generate(ctx, llmReq)
	if err != nil {
		return nil, fmt.Errorf("LLM grading failed: %w", err)
	}

	var raw testOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	byID := make(map[string]*gradeOutput, len(raw.Grades))
	for i := range raw.Grades {
		byID[raw.Grades[i].QuestionID] = &raw.Grades[i]
	}

	for i := range req.Questions {
		q := &req.Questions[i]
		out := byID[q.ID]

		if g, scored := grades[q.ID]; scored {
			// Locally scored; take the model's review feedback when it
			// wrote any, keep the local verdict regardless.
			if out != nil && strings.TrimSpace(out.Feedback) != "" {
				g.Feedback = strings.TrimSpace(out.Feedback)
				grades[q.ID] = g
			}
			continue
		}

		if out == nil {
			return nil, fmt.Errorf("model response missing a grade for question %s", q.ID)
		}
		grades[q.ID] = selftest.QuestionGrade{
			Correct:      out.Correct,
			Feedback:     strings.TrimSpace(out.Feedback),
			MasteryDelta: clampDelta(out.MasteryDelta),
		}
	}

	res := selftest.BuildResult(req.Questions, req.Records, grades, req.TotalTimeMs)
	return &res, nil
}

// clampDelta keeps a partial-credit adjustment within [-1, 1].
func clampDelta(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
