// Package llm is the HTTP transport to the language-model provider. It
// implements the generation, classification, and extraction capabilities the
// plugin consumes; prompt text belongs to the ai package.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tw-agent/agent/internal/core"
	"tw-agent/shared/logger"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"

	anthropicURL = "https://api.anthropic.com/v1/messages"
	openAIURL    = "https://api.openai.com/v1/chat/completions"
)

// Default models per provider and tier. The large model can be overridden
// through config; the small one tracks the provider's cheap line.
var defaultModels = map[string]map[core.QualityTier]string{
	ProviderAnthropic: {
		core.TierLarge: "claude-sonnet-4-20250514",
		core.TierSmall: "claude-3-5-haiku-20241022",
	},
	ProviderOpenAI: {
		core.TierLarge: "gpt-4o",
		core.TierSmall: "gpt-4o-mini",
	},
}

// Client talks to one provider. It satisfies core.TextGenerator,
// core.BoolClassifier, and core.ObjectExtractor.
type Client struct {
	provider   string
	apiKey     string
	largeModel string
	http       *http.Client
	log        *logger.Logger
}

// New picks the provider from the available keys, Anthropic first. An
// overrideModel replaces the large-tier default when non-empty. Returns nil
// when no key is configured; callers treat a nil client as AI disabled.
func New(anthropicKey, openAIKey, overrideModel string, log *logger.Logger) *Client {
	c := &Client{
		http: &http.Client{Timeout: 120 * time.Second},
		log:  log,
	}
	switch {
	case anthropicKey != "":
		c.provider = ProviderAnthropic
		c.apiKey = anthropicKey
	case openAIKey != "":
		c.provider = ProviderOpenAI
		c.apiKey = openAIKey
	default:
		log.Warn("No AI provider configured, commentary and trending intent disabled")
		return nil
	}

	c.largeModel = defaultModels[c.provider][core.TierLarge]
	if overrideModel != "" {
		c.largeModel = overrideModel
	}
	log.Info("AI client initialized", "provider", c.provider, "model", c.largeModel)
	return c
}

func (c *Client) modelFor(tier core.QualityTier) string {
	if tier == core.TierLarge {
		return c.largeModel
	}
	return defaultModels[c.provider][core.TierSmall]
}

// Generate sends a single-turn prompt and returns the raw completion text.
func (c *Client) Generate(ctx context.Context, prompt string, tier core.QualityTier) (string, error) {
	switch c.provider {
	case ProviderAnthropic:
		return c.callAnthropic(ctx, prompt, c.modelFor(tier))
	case ProviderOpenAI:
		return c.callOpenAI(ctx, prompt, c.modelFor(tier))
	default:
		return "", fmt.Errorf("no AI provider configured")
	}
}

// Classify runs a YES/NO prompt on the small tier. Any answer whose first
// word is not YES counts as false.
func (c *Client) Classify(ctx context.Context, prompt string) (bool, error) {
	resp, err := c.Generate(ctx, prompt, core.TierSmall)
	if err != nil {
		return false, err
	}
	answer := strings.ToUpper(strings.TrimSpace(resp))
	return strings.HasPrefix(answer, "YES"), nil
}

// Extract runs a JSON-extraction prompt on the small tier and unmarshals the
// object into out. Markdown fences around the object are tolerated.
func (c *Client) Extract(ctx context.Context, prompt string, out interface{}) error {
	resp, err := c.Generate(ctx, prompt, core.TierSmall)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(ExtractJSON(resp), out); err != nil {
		return fmt.Errorf("malformed extraction response: %w", err)
	}
	return nil
}

func (c *Client) callAnthropic(ctx context.Context, prompt, model string) (string, error) {
	reqBody := map[string]interface{}{
		"model":      model,
		"max_tokens": 1024,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	respBody, err := c.do(req)
	if err != nil {
		return "", err
	}

	var result struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("decoding anthropic response: %w", err)
	}
	if len(result.Content) == 0 {
		return "", fmt.Errorf("empty response from anthropic")
	}
	return result.Content[0].Text, nil
}

func (c *Client) callOpenAI(ctx context.Context, prompt, model string) (string, error) {
	reqBody := map[string]interface{}{
		"model":      model,
		"max_tokens": 1024,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	respBody, err := c.do(req)
	if err != nil {
		return "", err
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("decoding openai response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty response from openai")
	}
	return result.Choices[0].Message.Content, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Warn("AI provider request failed", "provider", c.provider, "status", resp.StatusCode)
		return nil, fmt.Errorf("%s API error %d: %s", c.provider, resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

// ExtractJSON strips markdown code fences and surrounding prose from a model
// response, returning the outermost JSON object.
func ExtractJSON(s string) []byte {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return []byte(s[start : end+1])
	}
	return []byte(s)
}
