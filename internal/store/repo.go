package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// ConceptMasteryData is the persisted mastery state for one concept.
type ConceptMasteryData struct {
	Score    float64 `json:"score"`
	Attempts int     `json:"attempts"`
	Correct  int     `json:"correct"`
}

// SnapshotData captures per-concept mastery at a point in time.
type SnapshotData struct {
	Version  int                           `json:"version"`
	Concepts map[string]ConceptMasteryData `json:"concepts,omitempty"`
}

// Snapshot represents a point-in-time capture of mastery state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages mastery snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// TestEventData captures a self-test lifecycle event.
type TestEventData struct {
	SessionID     string
	Action        string // "start", "end", "timeout", or "reset"
	Mode          string
	Topics        []string
	QuestionCount int
	Correct       int
	Total         int
	Score         float64
	DurationSecs  int
	Readiness     string
}

// TestSummaryRecord is a completed test as shown in history.
type TestSummaryRecord struct {
	SessionID    string
	Timestamp    time.Time
	Mode         string
	Topics       []string
	Correct      int
	Total        int
	Score        float64
	DurationSecs int
	Readiness    string
	TimedOut     bool
}

// AttemptEventData captures a single graded answer.
type AttemptEventData struct {
	SessionID     string
	QuestionID    string
	Concept       string
	Topic         string
	QuestionText  string
	CorrectAnswer string
	LearnerAnswer string
	Transcript    string
	Correct       bool
	Confidence    int
	TimeMs        int64
	Attempt       int
	QuestionType  string
	Practice      bool
}

// AttemptEventRecord is a stored attempt with its timestamp.
type AttemptEventRecord struct {
	AttemptEventData
	Sequence  int64
	Timestamp time.Time
}

// FeedbackEventData captures escalating feedback shown during practice.
type FeedbackEventData struct {
	SessionID  string
	QuestionID string
	Concept    string
	Tier       string
	Attempt    int
	Reveal     bool
	Message    string
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID int
	LLMRequestEventData
	Timestamp time.Time
}

// LLMUsageStat aggregates token usage for one purpose.
type LLMUsageStat struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// ConceptAccuracyRecord is the lifetime answer record for one concept.
type ConceptAccuracyRecord struct {
	Concept string
	Correct int
	Total   int
}

// Accuracy returns correct/total, or 0 when no attempts exist.
func (r ConceptAccuracyRecord) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total)
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendTestEvent records a self-test lifecycle event.
	AppendTestEvent(ctx context.Context, data TestEventData) error

	// QueryTestSummaries returns completed tests, newest first.
	QueryTestSummaries(ctx context.Context, opts QueryOpts) ([]TestSummaryRecord, error)

	// AppendAttemptEvent records a graded answer.
	AppendAttemptEvent(ctx context.Context, data AttemptEventData) error

	// QueryAttempts returns the attempts of one session, oldest first.
	QueryAttempts(ctx context.Context, sessionID string) ([]AttemptEventRecord, error)

	// AppendFeedbackEvent records escalating practice feedback.
	AppendFeedbackEvent(ctx context.Context, data FeedbackEventData) error

	// ConceptAccuracy aggregates lifetime accuracy per concept.
	ConceptAccuracy(ctx context.Context) ([]ConceptAccuracyRecord, error)

	// WeakConcepts returns concepts whose accuracy is below threshold,
	// ignoring concepts with fewer than minAttempts attempts. Weakest first.
	WeakConcepts(ctx context.Context, threshold float64, minAttempts int) ([]string, error)

	// RecentPrompts returns the most recently asked question prompts,
	// newest first, for repeat avoidance in generation.
	RecentPrompts(ctx context.Context, limit int) ([]string, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one LLM request event by ID, or nil if absent.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStat, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}

// DocumentRecord is an imported piece of study material.
type DocumentRecord struct {
	DocID      string
	Title      string
	Topic      string
	Content    string
	SourcePath string
	CreatedAt  time.Time
}

// CourseRecord is a named topic area with its known concepts.
type CourseRecord struct {
	Name        string
	Description string
	Concepts    []string
	CreatedAt   time.Time
}

// ContentRepo manages imported study material.
type ContentRepo interface {
	// PutDocument inserts or replaces a document by DocID.
	PutDocument(ctx context.Context, doc DocumentRecord) error

	// Documents returns all documents, newest first.
	Documents(ctx context.Context) ([]DocumentRecord, error)

	// DocumentsByTopic returns documents for one topic, newest first.
	DocumentsByTopic(ctx context.Context, topic string) ([]DocumentRecord, error)

	// PutCourse inserts or replaces a course by name.
	PutCourse(ctx context.Context, course CourseRecord) error

	// Courses returns all courses ordered by name.
	Courses(ctx context.Context) ([]CourseRecord, error)

	// Topics returns the distinct topics known to the content store:
	// course names plus document topics, sorted.
	Topics(ctx context.Context) ([]string, error)
}
