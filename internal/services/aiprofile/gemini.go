package aiprofile

import (
	"context"
	"fmt"
	"time"

	"github.com/MyelinBots/connectmap-go/config"
	"github.com/MyelinBots/connectmap-go/internal/services/tasteprofile"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Generator produces a profile from survey answers using a language model.
type Generator interface {
	Generate(ctx context.Context, r tasteprofile.OnboardingResponses) (Result, error)
}

// contentGenerator is the slice of the genai models API we call.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiGenerator struct {
	models  contentGenerator
	model   string
	timeout time.Duration
	log     *zap.Logger
}

// NewGemini returns nil when no API key is configured, meaning only the
// deterministic computation is used.
func NewGemini(ctx context.Context, cfg config.GeminiConfig, log *zap.Logger) (Generator, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return newGeminiGenerator(client.Models, cfg, log), nil
}

func newGeminiGenerator(models contentGenerator, cfg config.GeminiConfig, log *zap.Logger) *GeminiGenerator {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &GeminiGenerator{models: models, model: cfg.Model, timeout: timeout, log: log}
}

func (g *GeminiGenerator) Generate(ctx context.Context, r tasteprofile.OnboardingResponses) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(BuildPrompt(r)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return Result{}, fmt.Errorf("gemini generate: %w", err)
	}
	if resp == nil {
		return Result{}, ErrEmptyResponse
	}

	res, err := Parse(resp.Text())
	if err != nil {
		return Result{}, err
	}
	g.log.Debug("gemini profile generated",
		zap.String("model", g.model),
		zap.String("persona", string(res.Persona)),
		zap.Duration("took", time.Since(start)))
	return res, nil
}
