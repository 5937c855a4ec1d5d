package selftest

import "testing"

func TestAttemptTracker_StrictlyIncreasing(t *testing.T) {
	tr := NewAttemptTracker()

	for want := 1; want <= 4; want++ {
		if got := tr.Increment("q1"); got != want {
			t.Errorf("Increment #%d = %d, want %d", want, got, want)
		}
	}
	if got := tr.Count("q1"); got != 4 {
		t.Errorf("Count(q1) = %d, want 4", got)
	}
}

func TestAttemptTracker_QuestionsIndependent(t *testing.T) {
	tr := NewAttemptTracker()
	tr.Increment("q1")
	tr.Increment("q1")
	tr.Increment("q2")

	if got := tr.Count("q1"); got != 2 {
		t.Errorf("Count(q1) = %d, want 2", got)
	}
	if got := tr.Count("q2"); got != 1 {
		t.Errorf("Count(q2) = %d, want 1", got)
	}
	if got := tr.Count("unseen"); got != 0 {
		t.Errorf("Count(unseen) = %d, want 0", got)
	}
}

func TestAttemptTracker_ResetEmpties(t *testing.T) {
	tr := NewAttemptTracker()
	tr.Increment("q1")
	tr.Increment("q2")

	tr.Reset()

	if tr.Len() != 0 {
		t.Errorf("Len after reset = %d, want 0", tr.Len())
	}
	if got := tr.Count("q1"); got != 0 {
		t.Errorf("Count(q1) after reset = %d, want 0", got)
	}
	// Counting starts over for a fresh question set.
	if got := tr.Increment("q1"); got != 1 {
		t.Errorf("Increment after reset = %d, want 1", got)
	}
}
