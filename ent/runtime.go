// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/abhisek/studiz/ent/attemptevent"
	"github.com/abhisek/studiz/ent/course"
	"github.com/abhisek/studiz/ent/document"
	"github.com/abhisek/studiz/ent/feedbackevent"
	"github.com/abhisek/studiz/ent/llmrequestevent"
	"github.com/abhisek/studiz/ent/masterysnapshot"
	"github.com/abhisek/studiz/ent/schema"
	"github.com/abhisek/studiz/ent/testevent"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	attempteventMixin := schema.AttemptEvent{}.Mixin()
	attempteventMixinFields0 := attempteventMixin[0].Fields()
	_ = attempteventMixinFields0
	attempteventFields := schema.AttemptEvent{}.Fields()
	_ = attempteventFields
	// attempteventDescTimestamp is the schema descriptor for timestamp field.
	attempteventDescTimestamp := attempteventMixinFields0[1].Descriptor()
	// attemptevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	attemptevent.DefaultTimestamp = attempteventDescTimestamp.Default.(func() time.Time)
	// attempteventDescSessionID is the schema descriptor for session_id field.
	attempteventDescSessionID := attempteventFields[0].Descriptor()
	// attemptevent.SessionIDValidator is a validator for the "session_id" field. It is called by the builders before save.
	attemptevent.SessionIDValidator = attempteventDescSessionID.Validators[0].(func(string) error)
	// attempteventDescQuestionID is the schema descriptor for question_id field.
	attempteventDescQuestionID := attempteventFields[1].Descriptor()
	// attemptevent.QuestionIDValidator is a validator for the "question_id" field. It is called by the builders before save.
	attemptevent.QuestionIDValidator = attempteventDescQuestionID.Validators[0].(func(string) error)
	// attempteventDescConcept is the schema descriptor for concept field.
	attempteventDescConcept := attempteventFields[2].Descriptor()
	// attemptevent.ConceptValidator is a validator for the "concept" field. It is called by the builders before save.
	attemptevent.ConceptValidator = attempteventDescConcept.Validators[0].(func(string) error)
	// attempteventDescTopic is the schema descriptor for topic field.
	attempteventDescTopic := attempteventFields[3].Descriptor()
	// attemptevent.DefaultTopic holds the default value on creation for the topic field.
	attemptevent.DefaultTopic = attempteventDescTopic.Default.(string)
	// attempteventDescQuestionText is the schema descriptor for question_text field.
	attempteventDescQuestionText := attempteventFields[4].Descriptor()
	// attemptevent.QuestionTextValidator is a validator for the "question_text" field. It is called by the builders before save.
	attemptevent.QuestionTextValidator = attempteventDescQuestionText.Validators[0].(func(string) error)
	// attempteventDescCorrectAnswer is the schema descriptor for correct_answer field.
	attempteventDescCorrectAnswer := attempteventFields[5].Descriptor()
	// attemptevent.CorrectAnswerValidator is a validator for the "correct_answer" field. It is called by the builders before save.
	attemptevent.CorrectAnswerValidator = attempteventDescCorrectAnswer.Validators[0].(func(string) error)
	// attempteventDescLearnerAnswer is the schema descriptor for learner_answer field.
	attempteventDescLearnerAnswer := attempteventFields[6].Descriptor()
	// attemptevent.DefaultLearnerAnswer holds the default value on creation for the learner_answer field.
	attemptevent.DefaultLearnerAnswer = attempteventDescLearnerAnswer.Default.(string)
	// attempteventDescTranscript is the schema descriptor for transcript field.
	attempteventDescTranscript := attempteventFields[7].Descriptor()
	// attemptevent.DefaultTranscript holds the default value on creation for the transcript field.
	attemptevent.DefaultTranscript = attempteventDescTranscript.Default.(string)
	// attempteventDescConfidence is the schema descriptor for confidence field.
	attempteventDescConfidence := attempteventFields[9].Descriptor()
	// attemptevent.DefaultConfidence holds the default value on creation for the confidence field.
	attemptevent.DefaultConfidence = attempteventDescConfidence.Default.(int)
	// attempteventDescTimeMs is the schema descriptor for time_ms field.
	attempteventDescTimeMs := attempteventFields[10].Descriptor()
	// attemptevent.DefaultTimeMs holds the default value on creation for the time_ms field.
	attemptevent.DefaultTimeMs = attempteventDescTimeMs.Default.(int64)
	// attempteventDescAttempt is the schema descriptor for attempt field.
	attempteventDescAttempt := attempteventFields[11].Descriptor()
	// attemptevent.DefaultAttempt holds the default value on creation for the attempt field.
	attemptevent.DefaultAttempt = attempteventDescAttempt.Default.(int)
	// attempteventDescQuestionType is the schema descriptor for question_type field.
	attempteventDescQuestionType := attempteventFields[12].Descriptor()
	// attemptevent.QuestionTypeValidator is a validator for the "question_type" field. It is called by the builders before save.
	attemptevent.QuestionTypeValidator = attempteventDescQuestionType.Validators[0].(func(string) error)
	// attempteventDescPractice is the schema descriptor for practice field.
	attempteventDescPractice := attempteventFields[13].Descriptor()
	// attemptevent.DefaultPractice holds the default value on creation for the practice field.
	attemptevent.DefaultPractice = attempteventDescPractice.Default.(bool)
	courseFields := schema.Course{}.Fields()
	_ = courseFields
	// courseDescName is the schema descriptor for name field.
	courseDescName := courseFields[0].Descriptor()
	// course.NameValidator is a validator for the "name" field. It is called by the builders before save.
	course.NameValidator = courseDescName.Validators[0].(func(string) error)
	// courseDescDescription is the schema descriptor for description field.
	courseDescDescription := courseFields[1].Descriptor()
	// course.DefaultDescription holds the default value on creation for the description field.
	course.DefaultDescription = courseDescDescription.Default.(string)
	// courseDescCreatedAt is the schema descriptor for created_at field.
	courseDescCreatedAt := courseFields[3].Descriptor()
	// course.DefaultCreatedAt holds the default value on creation for the created_at field.
	course.DefaultCreatedAt = courseDescCreatedAt.Default.(func() time.Time)
	documentFields := schema.Document{}.Fields()
	_ = documentFields
	// documentDescDocID is the schema descriptor for doc_id field.
	documentDescDocID := documentFields[0].Descriptor()
	// document.DocIDValidator is a validator for the "doc_id" field. It is called by the builders before save.
	document.DocIDValidator = documentDescDocID.Validators[0].(func(string) error)
	// documentDescTitle is the schema descriptor for title field.
	documentDescTitle := documentFields[1].Descriptor()
	// document.TitleValidator is a validator for the "title" field. It is called by the builders before save.
	document.TitleValidator = documentDescTitle.Validators[0].(func(string) error)
	// documentDescTopic is the schema descriptor for topic field.
	documentDescTopic := documentFields[2].Descriptor()
	// document.DefaultTopic holds the default value on creation for the topic field.
	document.DefaultTopic = documentDescTopic.Default.(string)
	// documentDescContent is the schema descriptor for content field.
	documentDescContent := documentFields[3].Descriptor()
	// document.ContentValidator is a validator for the "content" field. It is called by the builders before save.
	document.ContentValidator = documentDescContent.Validators[0].(func(string) error)
	// documentDescSourcePath is the schema descriptor for source_path field.
	documentDescSourcePath := documentFields[4].Descriptor()
	// document.DefaultSourcePath holds the default value on creation for the source_path field.
	document.DefaultSourcePath = documentDescSourcePath.Default.(string)
	// documentDescCreatedAt is the schema descriptor for created_at field.
	documentDescCreatedAt := documentFields[5].Descriptor()
	// document.DefaultCreatedAt holds the default value on creation for the created_at field.
	document.DefaultCreatedAt = documentDescCreatedAt.Default.(func() time.Time)
	feedbackeventMixin := schema.FeedbackEvent{}.Mixin()
	feedbackeventMixinFields0 := feedbackeventMixin[0].Fields()
	_ = feedbackeventMixinFields0
	feedbackeventFields := schema.FeedbackEvent{}.Fields()
	_ = feedbackeventFields
	// feedbackeventDescTimestamp is the schema descriptor for timestamp field.
	feedbackeventDescTimestamp := feedbackeventMixinFields0[1].Descriptor()
	// feedbackevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	feedbackevent.DefaultTimestamp = feedbackeventDescTimestamp.Default.(func() time.Time)
	// feedbackeventDescSessionID is the schema descriptor for session_id field.
	feedbackeventDescSessionID := feedbackeventFields[0].Descriptor()
	// feedbackevent.SessionIDValidator is a validator for the "session_id" field. It is called by the builders before save.
	feedbackevent.SessionIDValidator = feedbackeventDescSessionID.Validators[0].(func(string) error)
	// feedbackeventDescQuestionID is the schema descriptor for question_id field.
	feedbackeventDescQuestionID := feedbackeventFields[1].Descriptor()
	// feedbackevent.QuestionIDValidator is a validator for the "question_id" field. It is called by the builders before save.
	feedbackevent.QuestionIDValidator = feedbackeventDescQuestionID.Validators[0].(func(string) error)
	// feedbackeventDescConcept is the schema descriptor for concept field.
	feedbackeventDescConcept := feedbackeventFields[2].Descriptor()
	// feedbackevent.ConceptValidator is a validator for the "concept" field. It is called by the builders before save.
	feedbackevent.ConceptValidator = feedbackeventDescConcept.Validators[0].(func(string) error)
	// feedbackeventDescTier is the schema descriptor for tier field.
	feedbackeventDescTier := feedbackeventFields[3].Descriptor()
	// feedbackevent.TierValidator is a validator for the "tier" field. It is called by the builders before save.
	feedbackevent.TierValidator = feedbackeventDescTier.Validators[0].(func(string) error)
	// feedbackeventDescReveal is the schema descriptor for reveal field.
	feedbackeventDescReveal := feedbackeventFields[5].Descriptor()
	// feedbackevent.DefaultReveal holds the default value on creation for the reveal field.
	feedbackevent.DefaultReveal = feedbackeventDescReveal.Default.(bool)
	// feedbackeventDescMessage is the schema descriptor for message field.
	feedbackeventDescMessage := feedbackeventFields[6].Descriptor()
	// feedbackevent.DefaultMessage holds the default value on creation for the message field.
	feedbackevent.DefaultMessage = feedbackeventDescMessage.Default.(string)
	llmrequesteventMixin := schema.LLMRequestEvent{}.Mixin()
	llmrequesteventMixinFields0 := llmrequesteventMixin[0].Fields()
	_ = llmrequesteventMixinFields0
	llmrequesteventFields := schema.LLMRequestEvent{}.Fields()
	_ = llmrequesteventFields
	// llmrequesteventDescTimestamp is the schema descriptor for timestamp field.
	llmrequesteventDescTimestamp := llmrequesteventMixinFields0[1].Descriptor()
	// llmrequestevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	llmrequestevent.DefaultTimestamp = llmrequesteventDescTimestamp.Default.(func() time.Time)
	// llmrequesteventDescInputTokens is the schema descriptor for input_tokens field.
	llmrequesteventDescInputTokens := llmrequesteventFields[3].Descriptor()
	// llmrequestevent.DefaultInputTokens holds the default value on creation for the input_tokens field.
	llmrequestevent.DefaultInputTokens = llmrequesteventDescInputTokens.Default.(int)
	// llmrequesteventDescOutputTokens is the schema descriptor for output_tokens field.
	llmrequesteventDescOutputTokens := llmrequesteventFields[4].Descriptor()
	// llmrequestevent.DefaultOutputTokens holds the default value on creation for the output_tokens field.
	llmrequestevent.DefaultOutputTokens = llmrequesteventDescOutputTokens.Default.(int)
	// llmrequesteventDescLatencyMs is the schema descriptor for latency_ms field.
	llmrequesteventDescLatencyMs := llmrequesteventFields[5].Descriptor()
	// llmrequestevent.DefaultLatencyMs holds the default value on creation for the latency_ms field.
	llmrequestevent.DefaultLatencyMs = llmrequesteventDescLatencyMs.Default.(int64)
	// llmrequesteventDescErrorMessage is the schema descriptor for error_message field.
	llmrequesteventDescErrorMessage := llmrequesteventFields[7].Descriptor()
	// llmrequestevent.DefaultErrorMessage holds the default value on creation for the error_message field.
	llmrequestevent.DefaultErrorMessage = llmrequesteventDescErrorMessage.Default.(string)
	// llmrequesteventDescRequestBody is the schema descriptor for request_body field.
	llmrequesteventDescRequestBody := llmrequesteventFields[8].Descriptor()
	// llmrequestevent.DefaultRequestBody holds the default value on creation for the request_body field.
	llmrequestevent.DefaultRequestBody = llmrequesteventDescRequestBody.Default.(string)
	// llmrequesteventDescResponseBody is the schema descriptor for response_body field.
	llmrequesteventDescResponseBody := llmrequesteventFields[9].Descriptor()
	// llmrequestevent.DefaultResponseBody holds the default value on creation for the response_body field.
	llmrequestevent.DefaultResponseBody = llmrequesteventDescResponseBody.Default.(string)
	masterysnapshotFields := schema.MasterySnapshot{}.Fields()
	_ = masterysnapshotFields
	// masterysnapshotDescTimestamp is the schema descriptor for timestamp field.
	masterysnapshotDescTimestamp := masterysnapshotFields[1].Descriptor()
	// masterysnapshot.DefaultTimestamp holds the default value on creation for the timestamp field.
	masterysnapshot.DefaultTimestamp = masterysnapshotDescTimestamp.Default.(func() time.Time)
	testeventMixin := schema.TestEvent{}.Mixin()
	testeventMixinFields0 := testeventMixin[0].Fields()
	_ = testeventMixinFields0
	testeventFields := schema.TestEvent{}.Fields()
	_ = testeventFields
	// testeventDescTimestamp is the schema descriptor for timestamp field.
	testeventDescTimestamp := testeventMixinFields0[1].Descriptor()
	// testevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	testevent.DefaultTimestamp = testeventDescTimestamp.Default.(func() time.Time)
	// testeventDescSessionID is the schema descriptor for session_id field.
	testeventDescSessionID := testeventFields[0].Descriptor()
	// testevent.SessionIDValidator is a validator for the "session_id" field. It is called by the builders before save.
	testevent.SessionIDValidator = testeventDescSessionID.Validators[0].(func(string) error)
	// testeventDescAction is the schema descriptor for action field.
	testeventDescAction := testeventFields[1].Descriptor()
	// testevent.ActionValidator is a validator for the "action" field. It is called by the builders before save.
	testevent.ActionValidator = testeventDescAction.Validators[0].(func(string) error)
	// testeventDescMode is the schema descriptor for mode field.
	testeventDescMode := testeventFields[2].Descriptor()
	// testevent.DefaultMode holds the default value on creation for the mode field.
	testevent.DefaultMode = testeventDescMode.Default.(string)
	// testeventDescQuestionCount is the schema descriptor for question_count field.
	testeventDescQuestionCount := testeventFields[4].Descriptor()
	// testevent.DefaultQuestionCount holds the default value on creation for the question_count field.
	testevent.DefaultQuestionCount = testeventDescQuestionCount.Default.(int)
	// testeventDescCorrect is the schema descriptor for correct field.
	testeventDescCorrect := testeventFields[5].Descriptor()
	// testevent.DefaultCorrect holds the default value on creation for the correct field.
	testevent.DefaultCorrect = testeventDescCorrect.Default.(int)
	// testeventDescTotal is the schema descriptor for total field.
	testeventDescTotal := testeventFields[6].Descriptor()
	// testevent.DefaultTotal holds the default value on creation for the total field.
	testevent.DefaultTotal = testeventDescTotal.Default.(int)
	// testeventDescScore is the schema descriptor for score field.
	testeventDescScore := testeventFields[7].Descriptor()
	// testevent.DefaultScore holds the default value on creation for the score field.
	testevent.DefaultScore = testeventDescScore.Default.(float64)
	// testeventDescDurationSecs is the schema descriptor for duration_secs field.
	testeventDescDurationSecs := testeventFields[8].Descriptor()
	// testevent.DefaultDurationSecs holds the default value on creation for the duration_secs field.
	testevent.DefaultDurationSecs = testeventDescDurationSecs.Default.(int)
	// testeventDescReadiness is the schema descriptor for readiness field.
	testeventDescReadiness := testeventFields[9].Descriptor()
	// testevent.DefaultReadiness holds the default value on creation for the readiness field.
	testevent.DefaultReadiness = testeventDescReadiness.Default.(string)
}
