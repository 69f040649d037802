package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// geminiCall performs one GenerateContent request with a single key
type geminiCall func(ctx context.Context, apiKey, model string, req Request) (string, error)

// newGeminiCall keeps one client per API key for the life of the process
func newGeminiCall() geminiCall {
	var mu sync.Mutex
	clients := make(map[string]*genai.Client)

	return func(ctx context.Context, apiKey, model string, req Request) (string, error) {
		mu.Lock()
		client, ok := clients[apiKey]
		if !ok {
			var err error
			client, err = genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  apiKey,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				mu.Unlock()
				return "", fmt.Errorf("create client: %w", err)
			}
			clients[apiKey] = client
		}
		mu.Unlock()

		cfg := &genai.GenerateContentConfig{
			Temperature:    genai.Ptr[float32](0),
			CandidateCount: 1,
			ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)},
		}
		if req.MaxTokens > 0 {
			cfg.MaxOutputTokens = int32(req.MaxTokens)
		}
		if req.System != "" {
			cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
		}

		result, err := client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), cfg)
		if err != nil {
			return "", err
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}
}

// Generate sends the request to Gemini and returns the text.
// Rotates API keys on 429 / quota errors.
func (g *implGemini) Generate(ctx context.Context, req Request) (string, error) {
	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		idx, key := g.key()

		text, err := g.call(ctx, key, g.model, req)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			if isQuotaError(err) {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				g.rotateKey(idx)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		return strings.TrimSpace(text), nil
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *implGemini) key() (int, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey, g.apiKeys[g.currentKey]
}

// rotateKey advances past idx unless another caller already did
func (g *implGemini) rotateKey(idx int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == idx {
		g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	}
}

func isQuotaError(err error) bool {
	errMsg := err.Error()
	return strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED")
}
