// Code generated by ent, DO NOT EDIT.

package predicate

import (
	"entgo.io/ent/dialect/sql"
)

// AttemptEvent is the predicate function for attemptevent builders.
type AttemptEvent func(*sql.Selector)

// Course is the predicate function for course builders.
type Course func(*sql.Selector)

// Document is the predicate function for document builders.
type Document func(*sql.Selector)

// FeedbackEvent is the predicate function for feedbackevent builders.
type FeedbackEvent func(*sql.Selector)

// LLMRequestEvent is the predicate function for llmrequestevent builders.
type LLMRequestEvent func(*sql.Selector)

// MasterySnapshot is the predicate function for masterysnapshot builders.
type MasterySnapshot func(*sql.Selector)

// TestEvent is the predicate function for testevent builders.
type TestEvent func(*sql.Selector)
