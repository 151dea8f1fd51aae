package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tw-agent/agent/internal/services"
)

func TestFormatMagnitude(t *testing.T) {
	assert.Equal(t, "N/A", FormatMagnitude(0))
	assert.Equal(t, "123.46", FormatMagnitude(123.456))
	assert.Equal(t, "1.50K", FormatMagnitude(1500))
	assert.Equal(t, "2.50M", FormatMagnitude(2500000))
}

func TestComputeAllTimeHigh(t *testing.T) {
	assert.Equal(t, AllTimeHigh{}, ComputeAllTimeHigh(nil))

	candles := []services.Candle{
		{High: 3, UnixTime: 50},
		{High: 5, UnixTime: 100},
		{High: 5, UnixTime: 200}, // tie, first max wins
		{High: 4, UnixTime: 300},
	}
	ath := ComputeAllTimeHigh(candles)
	assert.Equal(t, 5.0, ath.High)
	assert.Equal(t, int64(100000), ath.Timestamp)
}

func TestComputeObservationsOrdering(t *testing.T) {
	token := &services.TokenSnapshot{
		IsRugged:    true,
		Liquidity:   5000,
		PriceChange: map[string]float64{"1h": 6},
	}
	obs := ComputeObservations(token)
	require.Len(t, obs, 3)
	assert.Equal(t, "🚨 WARNING: This token has been identified as potentially rugged!", obs[0])
	assert.Equal(t, "📈 6.00% gain in 1h", obs[1])
	assert.Equal(t, "🚨 Very low liquidity - high risk of price impact", obs[2])
}

func TestComputeObservationsIgnoresSmallMoves(t *testing.T) {
	token := &services.TokenSnapshot{
		PriceChange: map[string]float64{"5m": 4.9, "1h": -5.0, "24h": -12.5},
	}
	obs := ComputeObservations(token)
	require.Len(t, obs, 1)
	assert.Equal(t, "📉 12.50% loss in 24h", obs[0])
}

func TestComputeObservationsCanonicalWindowOrder(t *testing.T) {
	token := &services.TokenSnapshot{
		PriceChange: map[string]float64{"24h": 40, "1m": 10, "1h": -20},
	}
	obs := ComputeObservations(token)
	require.Len(t, obs, 3)
	assert.Contains(t, obs[0], "1m")
	assert.Contains(t, obs[1], "1h")
	assert.Contains(t, obs[2], "24h")
}

func TestComputeObservationsRiskTiers(t *testing.T) {
	high := ComputeObservations(&services.TokenSnapshot{RiskScore: 7})
	require.Len(t, high, 1)
	assert.Contains(t, high[0], "High risk score")

	moderate := ComputeObservations(&services.TokenSnapshot{RiskScore: 5})
	require.Len(t, moderate, 1)
	assert.Contains(t, moderate[0], "Moderate risk score")

	assert.Empty(t, ComputeObservations(&services.TokenSnapshot{RiskScore: 4}))
}

func TestComputeObservationsSkipsZeroLiquidity(t *testing.T) {
	// Zero liquidity means the upstream reported null, not a low value.
	assert.Empty(t, ComputeObservations(&services.TokenSnapshot{Liquidity: 0}))
}

func TestFormatShareList(t *testing.T) {
	assert.Equal(t, "12.50%, 3.00%", FormatShareList([]float64{12.5, 3}))
	assert.Equal(t, "", FormatShareList(nil))
}

func TestRelativeAge(t *testing.T) {
	now := int64(10 * 86400 * 1000)
	assert.Equal(t, "just now", RelativeAge(now-30*1000, now))
	assert.Equal(t, "5m ago", RelativeAge(now-5*60*1000, now))
	assert.Equal(t, "3h ago", RelativeAge(now-3*3600*1000, now))
	assert.Equal(t, "yesterday", RelativeAge(now-30*3600*1000, now))
	assert.Equal(t, "4d ago", RelativeAge(now-4*86400*1000, now))
	assert.Equal(t, "just now", RelativeAge(now+1000, now))
}
