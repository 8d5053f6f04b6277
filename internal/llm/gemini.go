package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"google.golang.org/genai"
)

// GeminiCompleter calls Gemini, rotating through API keys on quota errors.
type GeminiCompleter struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	model      string
	baseURL    string
	logger     logger.Logger

	generate func(ctx context.Context, key string, req Request) (string, error)
}

// NewGemini creates a completer over apiKeys. baseURL may be empty.
func NewGemini(apiKeys []string, model, baseURL string, log logger.Logger) *GeminiCompleter {
	g := &GeminiCompleter{
		apiKeys: apiKeys,
		model:   model,
		baseURL: baseURL,
		logger:  log,
	}
	g.generate = g.generateContent
	return g
}

func (g *GeminiCompleter) Complete(ctx context.Context, req Request) (string, error) {
	if len(g.apiKeys) == 0 {
		return "", fmt.Errorf("gemini: no API keys configured")
	}

	var lastErr error
	for range len(g.apiKeys) {
		idx, key := g.key()

		text, err := g.generate(ctx, key, req)
		if err == nil {
			return text, nil
		}
		if !isQuotaError(err) {
			return "", err
		}

		g.logger.Warn(ctx, "Gemini key %d rate limited, rotating...", idx+1)
		g.rotateKey(idx)
		lastErr = err
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *GeminiCompleter) generateContent(ctx context.Context, key string, req Request) (string, error) {
	cc := &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	}
	if g.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	gc := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		MaxOutputTokens: int32(req.MaxTokens),
	}
	if req.System != "" {
		gc.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(req.User), gc)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text string
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text += part.Text
			}
		}
		if text = strings.TrimSpace(text); text != "" {
			return text, nil
		}
	}

	return "", ErrEmptyCompletion
}

func (g *GeminiCompleter) key() (int, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey, g.apiKeys[g.currentKey]
}

// rotateKey advances past idx unless another caller already did.
func (g *GeminiCompleter) rotateKey(idx int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == idx {
		g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	}
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
