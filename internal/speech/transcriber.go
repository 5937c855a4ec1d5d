package speech

import "context"

// Chunk is one piece of transcribed speech.
type Chunk struct {
	// Text is the transcribed fragment.
	Text string

	// Final marks the last chunk of an utterance.
	Final bool
}

// Transcriber streams speech-to-text chunks for vocal explanations.
// Start opens the stream; the returned channel closes when the utterance
// ends, the context is canceled, or Stop is called. Implementations never
// block the caller between chunks.
type Transcriber interface {
	Start(ctx context.Context) (<-chan Chunk, error)
	Stop()
}
