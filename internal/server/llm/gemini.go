// Package llm talks to the Gemini generative API.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fishfarmer/internal/logging"
	"github.com/dmitrijs2005/fishfarmer/internal/server/models"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

// ErrNoAPIKey is returned by NewGeminiClient when no key is configured.
var ErrNoAPIKey = errors.New("gemini API key is not set")

// generateFunc matches genai's Models.GenerateContent.
type generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Options configures a GeminiClient.
type Options struct {
	APIKey        string
	Model         string
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
}

// GeminiClient sends chat histories to Gemini. Every call waits on a shared
// rate limiter and is bounded by Timeout.
type GeminiClient struct {
	model    string
	timeout  time.Duration
	limiter  *rate.Limiter
	generate generateFunc
	logger   logging.Logger
}

// NewGeminiClient creates a client for opts.Model.
func NewGeminiClient(ctx context.Context, opts Options, logger logging.Logger) (*GeminiClient, error) {
	if opts.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return newGeminiClient(client.Models.GenerateContent, opts, logger), nil
}

func newGeminiClient(generate generateFunc, opts Options, logger logging.Logger) *GeminiClient {
	if logger == nil {
		logger = logging.Nop()
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	limit := rate.Inf
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
	}
	if opts.Burst < 1 {
		opts.Burst = 1
	}
	return &GeminiClient{
		model:    opts.Model,
		timeout:  opts.Timeout,
		limiter:  rate.NewLimiter(limit, opts.Burst),
		generate: generate,
		logger:   logger.With("module", "gemini", "model", opts.Model),
	}
}

// Generate sends messages in order and returns the concatenated text of the
// first candidate. An answer without text yields an empty string.
func (c *GeminiClient) Generate(ctx context.Context, messages []models.ChatMessage) (string, error) {
	contents, err := toContents(messages)
	if err != nil {
		return "", err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.generate(ctx, c.model, contents, nil)
	if err != nil {
		c.logger.Warn(ctx, "generate content failed", "error", err.Error(), "elapsed", time.Since(start).String())
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	c.logger.Debug(ctx, "generate content done", "messages", len(contents), "elapsed", time.Since(start).String())

	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}

func toContents(messages []models.ChatMessage) ([]*genai.Content, error) {
	contents := make([]*genai.Content, 0, len(messages))
	for i, m := range messages {
		var role genai.Role
		switch m.Role {
		case models.RoleUser:
			role = genai.RoleUser
		case models.RoleModel:
			role = genai.RoleModel
		default:
			return nil, fmt.Errorf("message %d: unsupported role %q", i, m.Role)
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	return contents, nil
}
