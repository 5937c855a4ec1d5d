package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/studiz/internal/llm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// questionOutput is a raw LLM question before validation.
type questionOutput struct {
	Prompt        string   `json:"prompt"`
	Type          string   `json:"type"`
	Choices       []string `json:"choices"`
	Approaches    []string `json:"approaches"`
	Answer        string   `json:"answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
	Concept       string   `json:"concept"`
	SourceDocID   string   `json:"source_doc_id"`
	RequiresVocal bool     `json:"requires_vocal"`
}

// setOutput is the raw LLM response before validation.
type setOutput struct {
	Questions []questionOutput `json:"questions"`
}

// GenerateSet produces exactly req.Count validated questions.
func (g *LLMGenerator) GenerateSet(ctx context.Context, req SetRequest) ([]Question, error) {
	if req.Count <= 0 {
		return nil, &ValidationError{
			Validator: "request",
			Message:   fmt.Sprintf("question count must be positive, got %d", req.Count),
			Retryable: false,
		}
	}
	if len(req.Topics) == 0 && len(req.WeakConcepts) == 0 && len(req.Documents) == 0 {
		return nil, &ValidationError{
			Validator: "request",
			Message:   "nothing to generate from: no topics, weak concepts or documents",
			Retryable: false,
		}
	}

	ctx = llm.WithPurpose(ctx, "question-set")

	userMsg := buildUserMessage(req, g.config)

	llmReq := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      QuestionSetSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, llmReq)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw setOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	if len(raw.Questions) < req.Count {
		return nil, &ValidationError{
			Validator: "set",
			Message:   fmt.Sprintf("model returned %d questions, need %d", len(raw.Questions), req.Count),
			Retryable: true,
		}
	}
	// Over-generation is tolerated; the set is cut to the requested count.
	raw.Questions = raw.Questions[:req.Count]

	questions := make([]Question, 0, req.Count)
	for i := range raw.Questions {
		out := &raw.Questions[i]
		q := Question{
			ID:            uuid.NewString(),
			Prompt:        out.Prompt,
			Type:          QuestionType(out.Type),
			Choices:       out.Choices,
			Approaches:    out.Approaches,
			Answer:        out.Answer,
			Explanation:   out.Explanation,
			Difficulty:    out.Difficulty,
			Concept:       out.Concept,
			SourceDocID:   out.SourceDocID,
			RequiresVocal: out.RequiresVocal && req.VocalExplanations,
		}

		// Run validators in order.
		for _, v := range g.config.Validators {
			if verr := v.Validate(&q, req); verr != nil {
				return nil, verr
			}
		}

		questions = append(questions, q)
	}

	return questions, nil
}
