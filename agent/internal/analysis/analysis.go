// Package analysis turns raw token metrics into qualitative observations and
// display-ready numbers. Everything here is pure: no I/O, no clocks except
// what the caller passes in.
package analysis

import (
	"fmt"
	"math"
	"strings"

	"tw-agent/agent/internal/services"
)

// ComputeObservations emits the key observations for a token, in fixed
// order: rug flag, significant price moves per canonical window order,
// liquidity tier, risk tier.
func ComputeObservations(token *services.TokenSnapshot) []string {
	var metrics []string

	if token.IsRugged {
		metrics = append(metrics, "🚨 WARNING: This token has been identified as potentially rugged!")
	}

	for _, tf := range services.PriceChangeWindows {
		change, ok := token.PriceChange[tf]
		if !ok || change == 0 || math.Abs(change) <= 5 {
			continue
		}
		direction := "gain"
		icon := "📈"
		if change < 0 {
			direction = "loss"
			icon = "📉"
		}
		metrics = append(metrics, fmt.Sprintf("%s %.2f%% %s in %s", icon, math.Abs(change), direction, tf))
	}

	if token.Liquidity > 0 {
		switch {
		case token.Liquidity < 10000:
			metrics = append(metrics, "🚨 Very low liquidity - high risk of price impact")
		case token.Liquidity < 50000:
			metrics = append(metrics, "⚠️ Low liquidity - moderate risk of price impact")
		case token.Liquidity < 100000:
			metrics = append(metrics, "ℹ️ Moderate liquidity")
		}
	}

	if token.RiskScore >= 7 {
		metrics = append(metrics, "🚨 High risk score - exercise extreme caution")
	} else if token.RiskScore >= 5 {
		metrics = append(metrics, "⚠️ Moderate risk score - proceed with caution")
	}

	return metrics
}

// AllTimeHigh is the maximum high across a candle history. Timestamp is in
// milliseconds.
type AllTimeHigh struct {
	High      float64
	Timestamp int64
}

// ComputeAllTimeHigh scans candles in input order tracking the maximum high.
// The first maximum encountered wins ties. Empty input yields {0, 0}.
func ComputeAllTimeHigh(candles []services.Candle) AllTimeHigh {
	var ath AllTimeHigh
	for _, c := range candles {
		if c.High > ath.High {
			ath.High = c.High
			ath.Timestamp = c.UnixTime * 1000
		}
	}
	return ath
}

// FormatMagnitude renders a large number with a K/M suffix. Zero (an absent
// upstream value) renders as "N/A".
func FormatMagnitude(n float64) string {
	if n == 0 || math.IsNaN(n) {
		return "N/A"
	}
	if n >= 1000000 {
		return fmt.Sprintf("%.2fM", n/1000000)
	}
	if n >= 1000 {
		return fmt.Sprintf("%.2fK", n/1000)
	}
	return fmt.Sprintf("%.2f", n)
}

// FormatShareList renders supply-share percentages for display.
func FormatShareList(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%.2f%%", v)
	}
	return strings.Join(parts, ", ")
}

// RelativeAge renders a coarse "time ago" label for a millisecond timestamp.
func RelativeAge(tsMillis, nowMillis int64) string {
	diff := nowMillis - tsMillis
	if diff < 0 {
		diff = 0
	}
	seconds := diff / 1000
	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", seconds/3600)
	case seconds < 2*86400:
		return "yesterday"
	default:
		return fmt.Sprintf("%dd ago", seconds/86400)
	}
}
