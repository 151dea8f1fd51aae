package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tw-agent/shared/logger"
)

func TestGranularityForAge(t *testing.T) {
	now := time.Now()
	assert.Equal(t, GranularityFine, GranularityForAge(now.Add(-2*time.Hour).UnixMilli(), now))
	assert.Equal(t, GranularityCoarse, GranularityForAge(now.Add(-48*time.Hour).UnixMilli(), now))
	// Unknown creation time falls back to daily candles.
	assert.Equal(t, GranularityCoarse, GranularityForAge(0, now))
}

func TestFetchCandles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/defi/ohlcv", r.URL.Path)
		assert.Equal(t, "1D", r.URL.Query().Get("type"))
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))
		w.Write([]byte(`{"success":true,"data":{"items":[
			{"o":1,"h":2,"l":0.5,"c":1.5,"v":1000,"unixTime":1700000000},
			{"o":1.5,"h":3,"l":1,"c":2,"v":2000,"unixTime":1700086400}
		]}}`))
	}))
	defer server.Close()

	client := NewBirdeyeClient(server.URL, "test-key", logger.NewNop())
	candles, err := client.FetchCandles(context.Background(), "addr", GranularityCoarse)
	require.NoError(t, err)
	require.Len(t, candles, 2)
	assert.Equal(t, 3.0, candles[1].High)
}

func TestFetchCandlesEmptyIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"items":[]}}`))
	}))
	defer server.Close()

	client := NewBirdeyeClient(server.URL, "test-key", logger.NewNop())
	_, err := client.FetchCandles(context.Background(), "addr", GranularityCoarse)
	require.Error(t, err)
	assert.True(t, IsUpstream(err))
}

func TestFetchTopHolderShares(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/defi/v3/token/market-data":
			w.Write([]byte(`{"success":true,"data":{"circulating_supply":1000000}}`))
		case "/defi/v3/token/holder":
			w.Write([]byte(`{"success":true,"data":{"items":[
				{"ui_amount":125000},{"ui_amount":33333}
			]}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewBirdeyeClient(server.URL, "test-key", logger.NewNop())
	shares := client.FetchTopHolderShares(context.Background(), "addr")
	assert.Equal(t, []float64{12.5, 3.33}, shares)
}

func TestFetchTopHolderSharesFailuresAreEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewBirdeyeClient(server.URL, "test-key", logger.NewNop())
	assert.Nil(t, client.FetchTopHolderShares(context.Background(), "addr"))
}

func TestFetchTopHolderSharesZeroSupplyIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"circulating_supply":0}}`))
	}))
	defer server.Close()

	client := NewBirdeyeClient(server.URL, "test-key", logger.NewNop())
	assert.Nil(t, client.FetchTopHolderShares(context.Background(), "addr"))
}
