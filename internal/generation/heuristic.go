package generation

import (
	"context"
	"strings"
	"unicode"
)

// minSentenceWords is the smallest sentence worth turning into a pair.
// Shorter fragments are usually headings or page furniture.
const minSentenceWords = 4

// HeuristicGenerator derives pairs by sentence splitting: each usable
// sentence becomes a cloze-style question with its leading clause and the
// full sentence as the answer. It is deterministic, needs no network, and
// serves both as the no-API-key fallback and as the test workhorse.
type HeuristicGenerator struct{}

// NewHeuristicGenerator creates a HeuristicGenerator.
func NewHeuristicGenerator() *HeuristicGenerator {
	return &HeuristicGenerator{}
}

var _ Generator = (*HeuristicGenerator)(nil)

// GenerateQAPairs implements Generator. It never fails on short text;
// it just returns however many pairs the text supports, up to count.
func (g *HeuristicGenerator) GenerateQAPairs(ctx context.Context, text string, count int) ([]QAPair, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sentences := splitSentences(text)

	pairs := make([]QAPair, 0, count)
	for _, sentence := range sentences {
		if len(pairs) == count {
			break
		}

		words := strings.Fields(sentence)
		if len(words) < minSentenceWords {
			continue
		}

		pairs = append(pairs, QAPair{
			Question: clozeQuestion(words),
			Answer:   sentence,
		})
	}

	return pairs, nil
}

// splitSentences breaks text on terminal punctuation, trimming whitespace
// and dropping empty fragments.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		s := strings.TrimSpace(current.String())
		current.Reset()
		if s != "" {
			sentences = append(sentences, s)
		}
	}

	for _, r := range text {
		switch r {
		case '.', '!', '?':
			current.WriteRune(r)
			flush()
		case '\n':
			current.WriteRune(' ')
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return sentences
}

// clozeQuestion turns a sentence into a fill-in prompt from its first half.
func clozeQuestion(words []string) string {
	keep := len(words) / 2
	if keep < 2 {
		keep = 2
	}

	prompt := strings.Join(words[:keep], " ")
	prompt = strings.TrimRightFunc(prompt, func(r rune) bool {
		return unicode.IsPunct(r)
	})
	return "Complete the statement: " + prompt + " ..."
}
