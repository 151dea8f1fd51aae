package analysis

import (
	"fmt"
	"math"
	"regexp"

	"tw-agent/agent/internal/services"
)

// Liquidity tiers, from a liquidity value in USD.
const (
	LiquidityCritical = "CRITICAL"
	LiquidityLow      = "LOW"
	LiquidityDecent   = "DECENT"
	LiquiditySolid    = "SOLID"
)

// Market-cap tiers.
const (
	CapMicro = "MICRO_CAP"
	CapNano  = "NANO_CAP"
	CapSmall = "SMALL_CAP"
	CapBased = "BASED"
)

// Move is one significant price movement (absolute change above 5%).
type Move struct {
	Timeframe string
	Change    float64 // absolute value
	Direction string  // "gain" | "loss"
}

func (m Move) String() string {
	return fmt.Sprintf("%s: %.2f%% %s", m.Timeframe, m.Change, m.Direction)
}

// Context is the normalized view of a TokenSnapshot that drives both the
// textual heuristics and the AI-commentary prompt.
type Context struct {
	LiquidityTier    string
	MarketCapTier    string
	SignificantMoves []Move
	HasKols          bool
	KolNames         []string
}

var twitterHandleRe = regexp.MustCompile(`twitter\.com/([^/]+)`)

// ExtractTwitterHandle pulls an @handle out of a twitter.com profile URL,
// returning "" when the URL does not match.
func ExtractTwitterHandle(url string) string {
	m := twitterHandleRe.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return "@" + m[1]
}

// LiquidityTier buckets a liquidity value. Zero means the upstream reported
// null and lands in the lowest tier.
func LiquidityTier(liquidity float64) string {
	switch {
	case liquidity < 10000:
		return LiquidityCritical
	case liquidity < 50000:
		return LiquidityLow
	case liquidity < 100000:
		return LiquidityDecent
	default:
		return LiquiditySolid
	}
}

// MarketCapTier buckets a market cap value.
func MarketCapTier(marketCap float64) string {
	switch {
	case marketCap < 100000:
		return CapMicro
	case marketCap < 1000000:
		return CapNano
	case marketCap < 5000000:
		return CapSmall
	default:
		return CapBased
	}
}

// BuildContext derives the AnalysisContext for a token: tier labels,
// significant moves in canonical window order, and the KOL wallets with
// resolved display handles (twitter handle, else name, else raw address).
func BuildContext(token *services.TokenSnapshot) Context {
	cx := Context{
		LiquidityTier: LiquidityTier(token.Liquidity),
		MarketCapTier: MarketCapTier(token.MarketCap),
	}

	for _, tf := range services.PriceChangeWindows {
		change, ok := token.PriceChange[tf]
		if !ok || change == 0 || math.Abs(change) <= 5 {
			continue
		}
		direction := "gain"
		if change < 0 {
			direction = "loss"
		}
		cx.SignificantMoves = append(cx.SignificantMoves, Move{
			Timeframe: tf,
			Change:    math.Abs(change),
			Direction: direction,
		})
	}

	for _, w := range token.TopWallets {
		if w.Type != "kols" {
			continue
		}
		cx.HasKols = true
		name := ExtractTwitterHandle(w.TwitterURL)
		if name == "" {
			name = w.Name
		}
		if name == "" {
			name = w.Address
		}
		cx.KolNames = append(cx.KolNames, name)
	}

	return cx
}
