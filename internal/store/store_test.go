package store

import (
	"context"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// No snapshot yet.
	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	// Save a snapshot.
	now := time.Now().UTC().Truncate(time.Second)
	err = repo.Save(ctx, &Snapshot{
		Sequence:  42,
		Timestamp: now,
		Data: SnapshotData{
			Version: 1,
			Concepts: map[string]ConceptMasteryData{
				"Derivatives": {Score: 0.75, Attempts: 4, Correct: 3},
			},
		},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	// Retrieve it.
	snap, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Sequence != 42 {
		t.Errorf("sequence = %d, want 42", snap.Sequence)
	}
	cm, ok := snap.Data.Concepts["Derivatives"]
	if !ok {
		t.Fatal("expected Derivatives mastery in snapshot data")
	}
	if cm.Score != 0.75 || cm.Attempts != 4 || cm.Correct != 3 {
		t.Errorf("mastery = %+v, want {0.75 4 3}", cm)
	}
}

func TestSnapshotLatestReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: i + 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 3 {
		t.Errorf("sequence = %d, want 3", snap.Sequence)
	}
	if snap.Data.Version != 3 {
		t.Errorf("data.version = %d, want 3", snap.Data.Version)
	}
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 7; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	// Prune to keep 5.
	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	count, err := s.Client().MasterySnapshot.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 5 {
		t.Errorf("remaining snapshots = %d, want 5", count)
	}

	// Latest should still be sequence 7.
	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 7 {
		t.Errorf("latest sequence = %d, want 7", snap.Sequence)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()
	ctx := context.Background()

	sc, err := newSequenceCounter(db)
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i := 1; i < len(seqs); i++ {
		if seqs[i] <= seqs[i-1] {
			t.Errorf("seq[%d] = %d, not greater than seq[%d] = %d", i, seqs[i], i-1, seqs[i-1])
		}
	}
}

func TestTestSummariesSkipStartEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendTestEvent(ctx, TestEventData{
		SessionID:     "s1",
		Action:        "start",
		Mode:          "comprehensive",
		Topics:        []string{"Calculus"},
		QuestionCount: 10,
	})
	if err != nil {
		t.Fatalf("append start: %v", err)
	}
	err = repo.AppendTestEvent(ctx, TestEventData{
		SessionID:    "s1",
		Action:       "end",
		Mode:         "comprehensive",
		Topics:       []string{"Calculus"},
		Correct:      7,
		Total:        10,
		Score:        0.7,
		DurationSecs: 540,
		Readiness:    "Good",
	})
	if err != nil {
		t.Fatalf("append end: %v", err)
	}

	summaries, err := repo.QueryTestSummaries(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query summaries: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("len(summaries) = %d, want 1", len(summaries))
	}
	got := summaries[0]
	if got.SessionID != "s1" || got.Correct != 7 || got.Total != 10 {
		t.Errorf("summary = %+v", got)
	}
	if got.Score != 0.7 {
		t.Errorf("score = %v, want 0.7", got.Score)
	}
	if got.Readiness != "Good" {
		t.Errorf("readiness = %q, want Good", got.Readiness)
	}
	if got.TimedOut {
		t.Error("end event should not be marked timed out")
	}
}

func TestTestSummariesMarkTimeouts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendTestEvent(ctx, TestEventData{
		SessionID: "s2",
		Action:    "timeout",
		Mode:      "custom",
		Correct:   2,
		Total:     5,
		Score:     0.4,
	})
	if err != nil {
		t.Fatalf("append timeout: %v", err)
	}

	summaries, err := repo.QueryTestSummaries(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query summaries: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("len(summaries) = %d, want 1", len(summaries))
	}
	if !summaries[0].TimedOut {
		t.Error("timeout event should be marked timed out")
	}
}

func TestQueryAttemptsReturnsSessionInOrder(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i, qid := range []string{"q1", "q2", "q3"} {
		err := repo.AppendAttemptEvent(ctx, AttemptEventData{
			SessionID:     "sess",
			QuestionID:    qid,
			Concept:       "Derivatives",
			QuestionText:  "prompt " + qid,
			CorrectAnswer: "42",
			LearnerAnswer: "42",
			Correct:       i%2 == 0,
			QuestionType:  "short-answer",
			Attempt:       1,
		})
		if err != nil {
			t.Fatalf("append %s: %v", qid, err)
		}
	}
	// Another session's attempt must not leak in.
	err := repo.AppendAttemptEvent(ctx, AttemptEventData{
		SessionID:     "other",
		QuestionID:    "qx",
		Concept:       "Integrals",
		QuestionText:  "prompt qx",
		CorrectAnswer: "1",
		Correct:       true,
		QuestionType:  "short-answer",
		Attempt:       1,
	})
	if err != nil {
		t.Fatalf("append other: %v", err)
	}

	attempts, err := repo.QueryAttempts(ctx, "sess")
	if err != nil {
		t.Fatalf("query attempts: %v", err)
	}
	if len(attempts) != 3 {
		t.Fatalf("len(attempts) = %d, want 3", len(attempts))
	}
	for i, want := range []string{"q1", "q2", "q3"} {
		if attempts[i].QuestionID != want {
			t.Errorf("attempts[%d].QuestionID = %q, want %q", i, attempts[i].QuestionID, want)
		}
	}
}

func TestConceptAccuracyAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	results := []struct {
		concept string
		correct bool
	}{
		{"Derivatives", true},
		{"Derivatives", true},
		{"Derivatives", false},
		{"Integrals", false},
		{"Integrals", false},
	}
	for i, r := range results {
		err := repo.AppendAttemptEvent(ctx, AttemptEventData{
			SessionID:     "sess",
			QuestionID:    "q",
			Concept:       r.concept,
			QuestionText:  "prompt",
			CorrectAnswer: "a",
			Correct:       r.correct,
			QuestionType:  "short-answer",
			Attempt:       1,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	records, err := repo.ConceptAccuracy(ctx)
	if err != nil {
		t.Fatalf("concept accuracy: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	// Sorted by concept name.
	if records[0].Concept != "Derivatives" || records[0].Correct != 2 || records[0].Total != 3 {
		t.Errorf("records[0] = %+v", records[0])
	}
	if records[1].Concept != "Integrals" || records[1].Correct != 0 || records[1].Total != 2 {
		t.Errorf("records[1] = %+v", records[1])
	}
}

func TestWeakConceptsThresholdAndFloor(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	seed := func(concept string, correct, wrong int) {
		t.Helper()
		for i := 0; i < correct; i++ {
			if err := repo.AppendAttemptEvent(ctx, AttemptEventData{
				SessionID: "s", QuestionID: "q", Concept: concept,
				QuestionText: "p", CorrectAnswer: "a", Correct: true,
				QuestionType: "short-answer", Attempt: 1,
			}); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		for i := 0; i < wrong; i++ {
			if err := repo.AppendAttemptEvent(ctx, AttemptEventData{
				SessionID: "s", QuestionID: "q", Concept: concept,
				QuestionText: "p", CorrectAnswer: "a", Correct: false,
				QuestionType: "short-answer", Attempt: 1,
			}); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
	}

	seed("Limits", 0, 3)      // 0.0 accuracy, 3 attempts
	seed("Integrals", 1, 2)   // 0.33 accuracy, 3 attempts
	seed("Derivatives", 3, 0) // 1.0 accuracy
	seed("Series", 0, 1)      // weak but only 1 attempt

	weak, err := repo.WeakConcepts(ctx, 0.7, 2)
	if err != nil {
		t.Fatalf("weak concepts: %v", err)
	}
	want := []string{"Limits", "Integrals"}
	if len(weak) != len(want) {
		t.Fatalf("weak = %v, want %v", weak, want)
	}
	for i := range want {
		if weak[i] != want[i] {
			t.Errorf("weak[%d] = %q, want %q", i, weak[i], want[i])
		}
	}
}

func TestRecentPromptsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, p := range []string{"first", "second", "third"} {
		err := repo.AppendAttemptEvent(ctx, AttemptEventData{
			SessionID: "s", QuestionID: "q", Concept: "C",
			QuestionText: p, CorrectAnswer: "a", Correct: true,
			QuestionType: "short-answer", Attempt: 1,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	prompts, err := repo.RecentPrompts(ctx, 2)
	if err != nil {
		t.Fatalf("recent prompts: %v", err)
	}
	if len(prompts) != 2 {
		t.Fatalf("len(prompts) = %d, want 2", len(prompts))
	}
	if prompts[0] != "third" || prompts[1] != "second" {
		t.Errorf("prompts = %v, want [third second]", prompts)
	}
}

func TestLLMEventRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "anthropic",
		Model:        "claude-haiku-4-5",
		Purpose:      "question-set",
		InputTokens:  1200,
		OutputTokens: 800,
		LatencyMs:    1500,
		Success:      true,
		RequestBody:  "[user]\nGenerate questions",
		ResponseBody: `{"questions":[]}`,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 10})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	e := events[0]
	if e.Purpose != "question-set" || e.InputTokens != 1200 || !e.Success {
		t.Errorf("event = %+v", e)
	}
	if e.RequestBody == "" || e.ResponseBody == "" {
		t.Error("expected request/response bodies to round-trip")
	}

	got, err := repo.GetLLMEvent(ctx, e.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Model != "claude-haiku-4-5" {
		t.Errorf("get = %+v", got)
	}

	missing, err := repo.GetLLMEvent(ctx, 99999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing event")
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	calls := []LLMRequestEventData{
		{Provider: "anthropic", Model: "m1", Purpose: "question-set", InputTokens: 100, OutputTokens: 50, LatencyMs: 1000, Success: true},
		{Provider: "anthropic", Model: "m1", Purpose: "question-set", InputTokens: 200, OutputTokens: 100, LatencyMs: 3000, Success: true},
		{Provider: "anthropic", Model: "m2", Purpose: "answer-eval", InputTokens: 10, OutputTokens: 5, LatencyMs: 500, Success: true},
	}
	for i, c := range calls {
		if err := repo.AppendLLMRequest(ctx, c); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("len(byPurpose) = %d, want 2", len(byPurpose))
	}
	// Ordered by purpose: answer-eval, question-set.
	if byPurpose[0].Purpose != "answer-eval" || byPurpose[0].Calls != 1 {
		t.Errorf("byPurpose[0] = %+v", byPurpose[0])
	}
	qs := byPurpose[1]
	if qs.Purpose != "question-set" || qs.Calls != 2 || qs.InputTokens != 300 || qs.OutputTokens != 150 {
		t.Errorf("byPurpose[1] = %+v", qs)
	}
	if qs.AvgLatencyMs != 2000 {
		t.Errorf("avg latency = %d, want 2000", qs.AvgLatencyMs)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 {
		t.Fatalf("len(byModel) = %d, want 2", len(byModel))
	}
	if byModel[0].Model != "m1" || byModel[0].Calls != 2 || byModel[0].InputTokens != 300 {
		t.Errorf("byModel[0] = %+v", byModel[0])
	}
}

func TestContentRepoDocuments(t *testing.T) {
	s := openTestStore(t)
	repo := s.ContentRepo()
	ctx := context.Background()

	err := repo.PutDocument(ctx, DocumentRecord{
		DocID:   "doc-1",
		Title:   "Derivative Rules",
		Topic:   "Calculus",
		Content: "The power rule states...",
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	// Upsert by DocID replaces, not duplicates.
	err = repo.PutDocument(ctx, DocumentRecord{
		DocID:   "doc-1",
		Title:   "Derivative Rules v2",
		Topic:   "Calculus",
		Content: "Updated.",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	docs, err := repo.Documents(ctx)
	if err != nil {
		t.Fatalf("documents: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("len(docs) = %d, want 1", len(docs))
	}
	if docs[0].Title != "Derivative Rules v2" {
		t.Errorf("title = %q, want updated title", docs[0].Title)
	}

	byTopic, err := repo.DocumentsByTopic(ctx, "Calculus")
	if err != nil {
		t.Fatalf("by topic: %v", err)
	}
	if len(byTopic) != 1 {
		t.Errorf("len(byTopic) = %d, want 1", len(byTopic))
	}
	none, err := repo.DocumentsByTopic(ctx, "Physics")
	if err != nil {
		t.Fatalf("by topic (none): %v", err)
	}
	if len(none) != 0 {
		t.Errorf("len(none) = %d, want 0", len(none))
	}
}

func TestContentRepoTopics(t *testing.T) {
	s := openTestStore(t)
	repo := s.ContentRepo()
	ctx := context.Background()

	err := repo.PutCourse(ctx, CourseRecord{
		Name:     "Linear Algebra",
		Concepts: []string{"Matrices", "Eigenvalues"},
	})
	if err != nil {
		t.Fatalf("put course: %v", err)
	}
	err = repo.PutDocument(ctx, DocumentRecord{
		DocID: "d1", Title: "Notes", Topic: "Calculus", Content: "x",
	})
	if err != nil {
		t.Fatalf("put document: %v", err)
	}

	topics, err := repo.Topics(ctx)
	if err != nil {
		t.Fatalf("topics: %v", err)
	}
	want := []string{"Calculus", "Linear Algebra"}
	if len(topics) != len(want) {
		t.Fatalf("topics = %v, want %v", topics, want)
	}
	for i := range want {
		if topics[i] != want[i] {
			t.Errorf("topics[%d] = %q, want %q", i, topics[i], want[i])
		}
	}
}

func TestResetKeepsContent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	events := s.EventRepo()
	if err := events.AppendTestEvent(ctx, TestEventData{SessionID: "s", Action: "end"}); err != nil {
		t.Fatalf("append test event: %v", err)
	}
	if err := events.AppendAttemptEvent(ctx, AttemptEventData{
		SessionID: "s", QuestionID: "q", Concept: "C",
		QuestionText: "p", CorrectAnswer: "a", QuestionType: "short-answer", Attempt: 1,
	}); err != nil {
		t.Fatalf("append attempt: %v", err)
	}
	content := s.ContentRepo()
	if err := content.PutDocument(ctx, DocumentRecord{DocID: "d", Title: "T", Content: "c"}); err != nil {
		t.Fatalf("put document: %v", err)
	}

	if err := s.Reset(ctx, false); err != nil {
		t.Fatalf("reset: %v", err)
	}

	summaries, err := events.QueryTestSummaries(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query summaries: %v", err)
	}
	if len(summaries) != 0 {
		t.Errorf("summaries after reset = %d, want 0", len(summaries))
	}
	docs, err := content.Documents(ctx)
	if err != nil {
		t.Fatalf("documents: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("documents after reset = %d, want 1", len(docs))
	}

	if err := s.Reset(ctx, true); err != nil {
		t.Fatalf("reset all: %v", err)
	}
	docs, err = content.Documents(ctx)
	if err != nil {
		t.Fatalf("documents: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("documents after full reset = %d, want 0", len(docs))
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"test_events", "attempt_events", "feedback_events", "llm_request_events", "mastery_snapshots", "documents", "courses"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
			continue
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}
