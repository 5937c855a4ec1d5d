package selftest

import "strings"

// TranscriptBuffer accumulates partial speech-to-text results for the
// current question's vocal explanation. Append-only while a question is
// current; reset when a new question becomes current.
type TranscriptBuffer struct {
	parts []string
}

// NewTranscriptBuffer returns an empty buffer.
func NewTranscriptBuffer() *TranscriptBuffer {
	return &TranscriptBuffer{}
}

// Append adds a partial transcript chunk. Whitespace-only chunks are
// dropped so the emptiness check stays meaningful.
func (b *TranscriptBuffer) Append(chunk string) {
	chunk = strings.TrimSpace(chunk)
	if chunk == "" {
		return
	}
	b.parts = append(b.parts, chunk)
}

// Text returns the accumulated transcript, chunks joined by spaces.
func (b *TranscriptBuffer) Text() string {
	return strings.Join(b.parts, " ")
}

// Empty reports whether nothing has been transcribed yet.
func (b *TranscriptBuffer) Empty() bool {
	return len(b.parts) == 0
}

// Reset discards the accumulated transcript.
func (b *TranscriptBuffer) Reset() {
	b.parts = nil
}
