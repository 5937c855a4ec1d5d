package speech

import (
	"context"
	"testing"
	"time"
)

func collect(t *testing.T, ch <-chan Chunk, timeout time.Duration) []Chunk {
	t.Helper()
	var got []Chunk
	deadline := time.After(timeout)
	for {
		select {
		case c, ok := <-ch:
			if !ok {
				return got
			}
			got = append(got, c)
		case <-deadline:
			t.Fatalf("stream did not close within %v; got %d chunks", timeout, len(got))
		}
	}
}

func TestScriptedReplaysInOrder(t *testing.T) {
	chunks := []Chunk{
		{Text: "the"},
		{Text: "chain"},
		{Text: "rule", Final: true},
	}
	tr := NewScripted(time.Millisecond, chunks)

	ch, err := tr.Start(context.Background())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	got := collect(t, ch, 2*time.Second)

	if len(got) != 3 {
		t.Fatalf("got %d chunks, want 3", len(got))
	}
	for i, c := range chunks {
		if got[i] != c {
			t.Errorf("chunk %d = %+v, want %+v", i, got[i], c)
		}
	}
	if !got[len(got)-1].Final {
		t.Error("last chunk must be final")
	}
}

func TestScriptedStopClosesStream(t *testing.T) {
	tr := NewScripted(time.Hour, ScriptText("this never finishes on its own"))

	ch, err := tr.Start(context.Background())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	tr.Stop()

	got := collect(t, ch, 2*time.Second)
	if len(got) != 0 {
		t.Errorf("got %d chunks after stop, want 0", len(got))
	}
}

func TestScriptedContextCancelClosesStream(t *testing.T) {
	tr := NewScripted(time.Hour, ScriptText("blocked"))

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := tr.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	cancel()

	collect(t, ch, 2*time.Second)
}

func TestScriptedRestartSupersedes(t *testing.T) {
	tr := NewScripted(time.Hour, ScriptText("first run"))

	first, err := tr.Start(context.Background())
	if err != nil {
		t.Fatalf("first start: %v", err)
	}
	second, err := tr.Start(context.Background())
	if err != nil {
		t.Fatalf("second start: %v", err)
	}

	// The first stream closes; the second stays live until stopped.
	collect(t, first, 2*time.Second)
	tr.Stop()
	collect(t, second, 2*time.Second)
}

func TestScriptText(t *testing.T) {
	chunks := ScriptText("  the power   rule ")
	want := []Chunk{{Text: "the"}, {Text: "power"}, {Text: "rule", Final: true}}
	if len(chunks) != len(want) {
		t.Fatalf("got %d chunks, want %d", len(chunks), len(want))
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d = %+v, want %+v", i, chunks[i], want[i])
		}
	}

	if got := ScriptText(""); len(got) != 0 {
		t.Errorf("empty text produced %d chunks, want 0", len(got))
	}
}
