package speech

import (
	"context"
	"strings"
	"sync"
	"time"
)

// defaultInterval paces scripted replay when no interval is configured.
const defaultInterval = 400 * time.Millisecond

// Scripted is a Transcriber that replays configured chunks on a ticker.
// It stands in for a microphone backend: the stream shape is real, the
// audio is not. Safe to restart; a new Start supersedes the previous run.
type Scripted struct {
	interval time.Duration
	chunks   []Chunk

	mu   sync.Mutex
	stop chan struct{}
}

// NewScripted creates a Scripted transcriber that emits the given chunks
// interval apart. interval <= 0 uses a default pace.
func NewScripted(interval time.Duration, chunks []Chunk) *Scripted {
	return &Scripted{interval: interval, chunks: chunks}
}

// Start begins replay. The returned channel closes when the script is
// exhausted, the context is canceled, or Stop is called.
func (s *Scripted) Start(ctx context.Context) (<-chan Chunk, error) {
	s.mu.Lock()
	if s.stop != nil {
		close(s.stop)
	}
	stop := make(chan struct{})
	s.stop = stop
	interval := s.interval
	if interval <= 0 {
		interval = defaultInterval
	}
	chunks := s.chunks
	s.mu.Unlock()

	out := make(chan Chunk)
	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for _, c := range chunks {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case <-ticker.C:
			}
			select {
			case out <- c:
			case <-ctx.Done():
				return
			case <-stop:
				return
			}
		}
	}()
	return out, nil
}

// Stop ends the current replay, closing its channel.
func (s *Scripted) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
}

// ScriptText splits text into word chunks for NewScripted, marking the
// last one final.
func ScriptText(text string) []Chunk {
	words := strings.Fields(text)
	chunks := make([]Chunk, len(words))
	for i, w := range words {
		chunks[i] = Chunk{Text: w, Final: i == len(words)-1}
	}
	return chunks
}
