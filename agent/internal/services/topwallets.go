package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"tw-agent/shared/logger"
)

const defaultTopWalletsURL = "https://www.topwallets.ai"

// TopWalletsClient is a thin wrapper over the TopWallets analytics API.
// Construct once and share; it holds only immutable configuration and is
// safe for concurrent use. All calls are single-attempt.
type TopWalletsClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	log     *logger.Logger
}

func NewTopWalletsClient(baseURL, apiKey string, log *logger.Logger) *TopWalletsClient {
	if baseURL == "" {
		baseURL = defaultTopWalletsURL
	}
	return &TopWalletsClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(4.66), 5),
		log:     log,
	}
}

// FetchTokenSnapshot fetches market and risk metrics for a token address.
func (c *TopWalletsClient) FetchTokenSnapshot(ctx context.Context, address string) (*TokenSnapshot, error) {
	var envelope struct {
		Success bool          `json:"success"`
		Message string        `json:"message"`
		Data    TokenSnapshot `json:"data"`
	}
	path := "/api/bot/solana/token?address=" + url.QueryEscape(address)
	if err := c.getJSON(ctx, path, &envelope); err != nil {
		c.log.Error("Token info fetch failed", "address", address, "error", err)
		return nil, err
	}
	if !envelope.Success {
		c.log.Warn("Token info fetch rejected upstream", "address", address, "message", envelope.Message)
		return nil, &UpstreamError{Message: envelope.Message}
	}
	return &envelope.Data, nil
}

// FetchWalletProfile fetches PnL statistics and profile information for a
// wallet address.
func (c *TopWalletsClient) FetchWalletProfile(ctx context.Context, address string) (*WalletProfile, error) {
	var envelope struct {
		Success bool          `json:"success"`
		Message string        `json:"message"`
		Data    WalletProfile `json:"data"`
	}
	body := map[string]string{"address": address}
	if err := c.postJSON(ctx, "/api/bot/solana/scan/wallet", body, &envelope); err != nil {
		c.log.Error("Wallet scan failed", "address", address, "error", err)
		return nil, err
	}
	if !envelope.Success {
		c.log.Warn("Wallet scan rejected upstream", "address", address, "message", envelope.Message)
		return nil, &UpstreamError{Message: envelope.Message}
	}
	return &envelope.Data, nil
}

// FetchTrendingTokens fetches the trending list for a timeframe. The
// timeframe is validated locally first; an invalid one fails without a
// network call.
func (c *TopWalletsClient) FetchTrendingTokens(ctx context.Context, timeframe string, count int) (*TrendingTokenSet, error) {
	if !IsValidTimeframe(timeframe) {
		return nil, ErrInvalidTimeframe
	}
	var envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			Tokens []TrendingToken `json:"tokens"`
		} `json:"data"`
	}
	path := fmt.Sprintf("/api/bot/solana/trending-tokens?timeframe=%s&count=%d", timeframe, count)
	if err := c.getJSON(ctx, path, &envelope); err != nil {
		c.log.Error("Trending tokens fetch failed", "timeframe", timeframe, "error", err)
		return nil, err
	}
	if !envelope.Success {
		c.log.Warn("Trending tokens fetch rejected upstream", "timeframe", timeframe, "message", envelope.Message)
		return nil, &UpstreamError{Message: envelope.Message}
	}
	return &TrendingTokenSet{
		Timeframe: timeframe,
		Count:     count,
		Tokens:    envelope.Data.Tokens,
	}, nil
}

func (c *TopWalletsClient) getJSON(ctx context.Context, path string, out interface{}) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

func (c *TopWalletsClient) postJSON(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}
	return c.doJSON(ctx, http.MethodPost, path, payload, out)
}

func (c *TopWalletsClient) doJSON(ctx context.Context, method, path string, body []byte, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &UpstreamError{Message: fmt.Sprintf("rate limiter wait: %v", err)}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &UpstreamError{Message: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &UpstreamError{Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &UpstreamError{Message: fmt.Sprintf("error reading response body: %v", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return &UpstreamError{Message: fmt.Sprintf("API request failed with status: %s", resp.Status)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &UpstreamError{Message: fmt.Sprintf("JSON parsing failed: %v", err)}
	}
	return nil
}
