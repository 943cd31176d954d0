// Package generation defines the boundary between the application core and
// the question/answer derivation capability, plus a deterministic
// heuristic implementation that needs no external service.
package generation

import "context"

// QAPair is one derived question/answer pair. Pairs keep the order the
// generator produced them in.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Generator derives question/answer pairs from extracted document text.
// Implementations may call an external model or work heuristically; the
// pipeline treats them interchangeably.
type Generator interface {
	// GenerateQAPairs derives up to count pairs from text. Returning fewer
	// pairs than requested is not an error; source text can simply be too
	// short. Implementations must respect ctx cancellation.
	GenerateQAPairs(ctx context.Context, text string, count int) ([]QAPair, error)
}
