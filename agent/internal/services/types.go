package services

// PriceChangeWindows is the closed set of windows the token endpoint reports
// price changes for, in canonical order. Observation output follows this
// order.
var PriceChangeWindows = []string{
	"1m", "5m", "15m", "30m", "1h", "2h", "3h", "4h", "5h", "6h", "12h", "24h",
}

// ValidTimeframes is the set of windows the trending-tokens endpoint accepts.
// Everything in PriceChangeWindows except "1m".
var ValidTimeframes = []string{
	"5m", "15m", "30m", "1h", "2h", "3h", "4h", "5h", "6h", "12h", "24h",
}

// IsValidTimeframe reports whether tf is an accepted trending window.
func IsValidTimeframe(tf string) bool {
	for _, v := range ValidTimeframes {
		if v == tf {
			return true
		}
	}
	return false
}

type Social struct {
	Twitter  string `json:"twitter,omitempty"`
	Telegram string `json:"telegram,omitempty"`
}

type Historic30d struct {
	RealizedPnl      string  `json:"realizedPnl"`
	RealizedPnlRaw   float64 `json:"realizedPnlRaw"`
	TotalChange      float64 `json:"totalChange"`
	PercentageChange float64 `json:"percentageChange"`
}

// TopWalletEntry is one wallet from the token endpoint's ranked list. Order
// is the API's own ranking and is never re-sorted locally.
type TopWalletEntry struct {
	Address     string       `json:"address"`
	Name        string       `json:"name"`
	TwitterURL  string       `json:"twitter_url"`
	PictureURL  string       `json:"picture_url"`
	Type        string       `json:"type"` // "normal" | "kols"
	RealizedPnl string       `json:"realizedPnl"`
	Winrate     float64      `json:"winrate"`
	Score       float64      `json:"score"`
	Historic30d *Historic30d `json:"historic30d"`
}

// TokenSnapshot is a point-in-time record of a token's market and risk
// metrics. Zero-valued numeric fields mean the upstream reported null.
type TokenSnapshot struct {
	Name          string             `json:"name"`
	Symbol        string             `json:"symbol"`
	Address       string             `json:"address"`
	Decimals      int                `json:"decimals"`
	Description   string             `json:"description"`
	Image         string             `json:"image"`
	Social        Social             `json:"social"`
	Price         float64            `json:"price"`
	MarketCap     float64            `json:"marketCap"`
	FDV           float64            `json:"fdv"`
	Liquidity     float64            `json:"liquidity"`
	Volume24h     float64            `json:"volume24h"`
	PriceChange   map[string]float64 `json:"priceChange"`
	RiskScore     int                `json:"riskScore"`
	IsRugged      bool               `json:"isRugged"`
	PairCreatedAt int64              `json:"pairCreatedAt"` // milliseconds
	TopWallets    []TopWalletEntry   `json:"topWallets"`
}

type RecentToken struct {
	Symbol      string  `json:"symbol"`
	Name        string  `json:"name"`
	Timestamp   string  `json:"timestamp"`
	Holding     float64 `json:"holding"`
	Amount      string  `json:"amount"`
	RealizedPnl string  `json:"realizedPnl"`
	ROI         string  `json:"roi"`
}

// WalletProfile aggregates a wallet's trading performance. Fetched fresh per
// request, never cached.
type WalletProfile struct {
	Address                string        `json:"address"`
	Name                   string        `json:"name"`
	TwitterURL             string        `json:"twitter_url"`
	PictureURL             string        `json:"picture_url"`
	Type                   string        `json:"type"` // "normal" | "kols"
	Winrate                float64       `json:"winrate"`
	TokenTraded            int           `json:"tokenTraded"`
	RealizedPnl            string        `json:"realizedPnl"`
	UnrealizedPnl          string        `json:"unrealizedPnl"`
	CombinedRoi            string        `json:"combinedRoi"`
	TotalInvestedFormatted string        `json:"totalInvestedFormatted"`
	AverageHoldingTime     string        `json:"averageHoldingTime"`
	RecentTokens           []RecentToken `json:"recentTokens"`
}

type TrendingToken struct {
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	Address   string  `json:"address"`
	RiskScore int     `json:"riskScore"`
	Liquidity float64 `json:"liquidity"`
	Price     float64 `json:"price"`
	MarketCap float64 `json:"marketCap"`
}

// TrendingTokenSet is the result of one trending-tokens query, tagged with
// the parameters that produced it.
type TrendingTokenSet struct {
	Timeframe string          `json:"timeframe"`
	Count     int             `json:"count"`
	Tokens    []TrendingToken `json:"tokens"`
}

// Candle is one OHLCV point. UnixTime is in seconds, as Birdeye reports it.
type Candle struct {
	Open     float64 `json:"o"`
	High     float64 `json:"h"`
	Low      float64 `json:"l"`
	Close    float64 `json:"c"`
	Volume   float64 `json:"v"`
	UnixTime int64   `json:"unixTime"`
}
