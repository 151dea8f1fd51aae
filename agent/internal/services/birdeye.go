package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"tw-agent/shared/logger"
)

const defaultBirdeyeURL = "https://public-api.birdeye.so"

// Candle granularities passed to the OHLCV endpoint. Finer candles for pairs
// younger than a day, daily candles otherwise.
const (
	GranularityFine   = "1H"
	GranularityCoarse = "1D"
)

// GranularityForAge picks the candle granularity from the pair-creation
// timestamp (milliseconds).
func GranularityForAge(pairCreatedAtMillis int64, now time.Time) string {
	if pairCreatedAtMillis > 0 && now.UnixMilli()-pairCreatedAtMillis < 24*time.Hour.Milliseconds() {
		return GranularityFine
	}
	return GranularityCoarse
}

// BirdeyeClient wraps the Birdeye market-data API for supplementary token
// data: candle history and holder concentration. Shared, immutable, safe for
// concurrent use.
type BirdeyeClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	log     *logger.Logger
}

func NewBirdeyeClient(baseURL, apiKey string, log *logger.Logger) *BirdeyeClient {
	if baseURL == "" {
		baseURL = defaultBirdeyeURL
	}
	return &BirdeyeClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(2), 2),
		log:     log,
	}
}

// FetchCandles returns the full OHLCV history for a token at the given
// granularity, oldest first. A response with zero candles is an upstream
// failure.
func (c *BirdeyeClient) FetchCandles(ctx context.Context, address, granularity string) ([]Candle, error) {
	var envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			Items []Candle `json:"items"`
		} `json:"data"`
	}
	path := fmt.Sprintf("/defi/ohlcv?address=%s&type=%s&time_from=0&time_to=10000000000",
		url.QueryEscape(address), granularity)
	if err := c.getJSON(ctx, path, &envelope); err != nil {
		c.log.Error("Candle fetch failed", "address", address, "error", err)
		return nil, err
	}
	if !envelope.Success || len(envelope.Data.Items) == 0 {
		c.log.Warn("Candle fetch returned no data", "address", address, "message", envelope.Message)
		return nil, &UpstreamError{Message: envelope.Message}
	}
	return envelope.Data.Items, nil
}

// FetchTopHolderShares returns the percentage of circulating supply held by
// each of the top holders, rounded to two decimals. Holder data is optional:
// any failure in either constituent call yields an empty result, never an
// error.
func (c *BirdeyeClient) FetchTopHolderShares(ctx context.Context, address string) []float64 {
	supply, err := c.fetchCirculatingSupply(ctx, address)
	if err != nil || supply <= 0 {
		c.log.Warn("Holder data unavailable: no circulating supply", "address", address, "error", err)
		return nil
	}

	var envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			Items []struct {
				UIAmount float64 `json:"ui_amount"`
			} `json:"items"`
		} `json:"data"`
	}
	path := fmt.Sprintf("/defi/v3/token/holder?address=%s&offset=0&limit=10", url.QueryEscape(address))
	if err := c.getJSON(ctx, path, &envelope); err != nil {
		c.log.Warn("Holder data unavailable", "address", address, "error", err)
		return nil
	}
	if !envelope.Success {
		c.log.Warn("Holder data unavailable", "address", address, "message", envelope.Message)
		return nil
	}

	shares := make([]float64, 0, len(envelope.Data.Items))
	for _, item := range envelope.Data.Items {
		share := item.UIAmount / supply * 100
		shares = append(shares, math.Round(share*100)/100)
	}
	return shares
}

func (c *BirdeyeClient) fetchCirculatingSupply(ctx context.Context, address string) (float64, error) {
	var envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			CirculatingSupply float64 `json:"circulating_supply"`
		} `json:"data"`
	}
	path := "/defi/v3/token/market-data?address=" + url.QueryEscape(address)
	if err := c.getJSON(ctx, path, &envelope); err != nil {
		return 0, err
	}
	if !envelope.Success {
		return 0, &UpstreamError{Message: envelope.Message}
	}
	return envelope.Data.CirculatingSupply, nil
}

func (c *BirdeyeClient) getJSON(ctx context.Context, path string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &UpstreamError{Message: fmt.Sprintf("rate limiter wait: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &UpstreamError{Message: err.Error()}
	}
	req.Header.Set("X-API-KEY", c.apiKey)
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
