// Package gemini implements the generation.Generator interface using
// Google's Gemini API to derive question/answer pairs from document text.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"text/template"
	"time"

	_ "embed"

	"github.com/GarethNobleLFG/brainflip/internal/config"
	"github.com/GarethNobleLFG/brainflip/internal/generation"
	"google.golang.org/genai"
)

//go:embed prompt.tmpl
var defaultPromptTemplate string

// promptData is the input to the prompt template.
type promptData struct {
	Text  string
	Count int
}

// Generator implements generation.Generator against the Gemini API.
type Generator struct {
	logger         *slog.Logger
	config         config.LLMConfig
	promptTemplate *template.Template
	client         *genai.Client
	model          string
}

// NewGenerator creates a Gemini-backed generator.
// Returns generation.ErrInvalidConfig when required settings are missing.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	promptTemplate, err := template.New("qa_pairs").Parse(defaultPromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			generation.ErrInvalidConfig, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger:         logger.With(slog.String("component", "gemini_generator")),
		config:         cfg,
		promptTemplate: promptTemplate,
		client:         client,
		model:          cfg.ModelName,
	}, nil
}

var _ generation.Generator = (*Generator)(nil)

// GenerateQAPairs implements generation.Generator. It prompts the model
// for up to count pairs and parses the JSON response. Transient API
// failures are retried with exponential backoff before surfacing as
// generation.ErrTransientFailure.
func (g *Generator) GenerateQAPairs(ctx context.Context, text string, count int) ([]generation.QAPair, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty source text", generation.ErrGenerationFailed)
	}

	prompt, err := g.createPrompt(text, count)
	if err != nil {
		return nil, err
	}

	raw, err := g.callWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	pairs, err := parsePairs(raw)
	if err != nil {
		g.logger.WarnContext(ctx, "failed to parse model response",
			slog.String("error", err.Error()),
			slog.Int("response_length", len(raw)))
		return nil, err
	}

	if len(pairs) > count {
		pairs = pairs[:count]
	}

	g.logger.InfoContext(ctx, "generated pairs from model",
		slog.Int("requested", count),
		slog.Int("generated", len(pairs)))
	return pairs, nil
}

// createPrompt renders the prompt template with the source text and count.
func (g *Generator) createPrompt(text string, count int) (string, error) {
	var sb strings.Builder
	if err := g.promptTemplate.Execute(&sb, promptData{Text: text, Count: count}); err != nil {
		return "", fmt.Errorf("%w: failed to execute prompt template: %v",
			generation.ErrGenerationFailed, err)
	}
	return sb.String(), nil
}

// callWithRetry calls the Gemini API with exponential backoff and jitter.
// Context cancellation aborts the retry loop immediately.
func (g *Generator) callWithRetry(ctx context.Context, prompt string) (string, error) {
	maxRetries := g.config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 3
	}
	baseDelaySeconds := g.config.RetryDelaySeconds
	if baseDelaySeconds < 1 {
		baseDelaySeconds = 2
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		g.logger.DebugContext(ctx, "calling Gemini API",
			slog.Int("attempt", attempt+1),
			slog.Int("max_attempts", maxRetries+1))

		result, err := g.client.Models.GenerateContent(
			ctx,
			g.model,
			genai.Text(prompt),
			&genai.GenerateContentConfig{
				ResponseMIMEType: "application/json",
			},
		)
		if err == nil {
			text := result.Text()
			if text == "" {
				return "", fmt.Errorf("%w: empty response", generation.ErrInvalidResponse)
			}
			return text, nil
		}

		lastErr = err
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctxErr)
		}

		if attempt < maxRetries {
			delay := backoffDelay(baseDelaySeconds, attempt, rng)
			g.logger.WarnContext(ctx, "Gemini API call failed, retrying",
				slog.String("error", err.Error()),
				slog.Duration("delay", delay))

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
			}
		}
	}

	return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, lastErr)
}

// backoffDelay computes the exponential backoff delay with jitter for the
// given attempt.
func backoffDelay(baseSeconds, attempt int, rng *rand.Rand) time.Duration {
	backoff := float64(baseSeconds) * math.Pow(2, float64(attempt))
	jitter := rng.Float64() * backoff * 0.5
	return time.Duration((backoff + jitter) * float64(time.Second))
}

// parsePairs decodes the model's JSON response. The prompt requests a bare
// array of {question, answer} objects; pairs missing either side are dropped.
func parsePairs(raw string) ([]generation.QAPair, error) {
	// Models occasionally wrap JSON in a markdown fence despite the
	// response MIME type.
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var decoded []generation.QAPair
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	pairs := make([]generation.QAPair, 0, len(decoded))
	for _, p := range decoded {
		if strings.TrimSpace(p.Question) == "" || strings.TrimSpace(p.Answer) == "" {
			continue
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}
