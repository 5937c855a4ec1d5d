package selftest

import "testing"

func TestTranscriptBuffer_AppendsChunksInOrder(t *testing.T) {
	b := NewTranscriptBuffer()
	b.Append("the derivative")
	b.Append("measures the rate")
	b.Append("of change")

	want := "the derivative measures the rate of change"
	if got := b.Text(); got != want {
		t.Errorf("Text = %q, want %q", got, want)
	}
}

func TestTranscriptBuffer_DropsWhitespaceChunks(t *testing.T) {
	b := NewTranscriptBuffer()
	b.Append("  ")
	b.Append("\n")
	b.Append("")

	if !b.Empty() {
		t.Errorf("expected buffer with only whitespace chunks to stay empty, got %q", b.Text())
	}

	b.Append("  real words  ")
	if got := b.Text(); got != "real words" {
		t.Errorf("Text = %q, want trimmed chunk", got)
	}
}

func TestTranscriptBuffer_Reset(t *testing.T) {
	b := NewTranscriptBuffer()
	b.Append("stale transcript")
	b.Reset()

	if !b.Empty() {
		t.Error("expected buffer to be empty after reset")
	}
	if got := b.Text(); got != "" {
		t.Errorf("Text after reset = %q, want empty", got)
	}
}
