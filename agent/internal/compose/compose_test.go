package compose

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tw-agent/agent/internal/analysis"
	"tw-agent/agent/internal/core"
	"tw-agent/agent/internal/services"
)

func sampleToken() *services.TokenSnapshot {
	return &services.TokenSnapshot{
		Name:        "Dogwifhat",
		Symbol:      "WIF",
		Address:     "97RggLo3zV5kFGYW4yoQTxr4Xkz4Vg2WPHzNYXXWpump",
		Description: "A dog wearing a hat, the premier headwear memecoin on Solana.",
		Price:       0.000123,
		MarketCap:   50000,
		Liquidity:   20000,
		RiskScore:   3,
		PriceChange: map[string]float64{"24h": -4.2},
		TopWallets: []services.TopWalletEntry{
			{Address: "5yNq2W8XfjjzbGHBWvkeSoPq8cSjy2TqBJ66z1BGpump", Winrate: 80,
				Historic30d: &services.Historic30d{RealizedPnl: "$12K", PercentageChange: 15.5}},
			{Name: "whale", Winrate: 65},
		},
	}
}

func TestComposeTokenReplyTelegram(t *testing.T) {
	reply := ComposeTokenReply(TokenReplyInput{
		Snapshot:     sampleToken(),
		Observations: []string{"⚠️ Low liquidity - moderate risk of price impact"},
		Source:       core.SourceTelegram,
		Now:          time.Now(),
	})

	assert.Contains(t, reply, "📊 Token Analysis:")
	assert.Contains(t, reply, "• Name: Dogwifhat")
	assert.Contains(t, reply, "• Address: 97RggLo3zV5kFGYW4yoQTxr4Xkz4Vg2WPHzNYXXWpump")
	assert.Contains(t, reply, "• Price: $0.000123")
	assert.Contains(t, reply, "• Market Cap: $50.00K")
	assert.Contains(t, reply, "• Liquidity: $20.00K")
	assert.Contains(t, reply, "• Risk Score: 3/10")
	assert.Contains(t, reply, "Key Observations:")
	assert.Contains(t, reply, "📊 Top Wallets Trading This Token:")
	assert.Contains(t, reply, "🥇 5yNq...pump")
	assert.Contains(t, reply, "🥈 whale")
	assert.Contains(t, reply, "dexscreener.com/solana/97RggLo3zV5kFGYW4yoQTxr4Xkz4Vg2WPHzNYXXWpump")
	// The extended view replaces the 24h-change line with the observations.
	assert.NotContains(t, reply, "24h Change")
}

func TestComposeTokenReplyCompactChannel(t *testing.T) {
	reply := ComposeTokenReply(TokenReplyInput{
		Snapshot: sampleToken(),
		Source:   core.SourceTwitter,
		Now:      time.Now(),
	})

	assert.Contains(t, reply, "• Price: $0.000123")
	assert.Contains(t, reply, "• 24h Change: 📉 -4.20%")
	assert.NotContains(t, reply, "• Address:")
	assert.NotContains(t, reply, "• Description:")
	assert.NotContains(t, reply, "Key Observations:")
	// Compact channels show one wallet on a single line.
	assert.Contains(t, reply, "• Top Wallet: 5yNq...pump (80% WR) 📈 15.5%")
	assert.Equal(t, 1, strings.Count(reply, "WR)"))
}

func TestComposeTokenReplyMissingValues(t *testing.T) {
	token := &services.TokenSnapshot{Address: "addr", RiskScore: 8, IsRugged: true}
	reply := ComposeTokenReply(TokenReplyInput{Snapshot: token, Source: core.SourceDiscord, Now: time.Now()})

	assert.Contains(t, reply, "• Price: $N/A")
	assert.Contains(t, reply, "• Market Cap: $N/A")
	assert.Contains(t, reply, "• Liquidity: $N/A")
	assert.Contains(t, reply, "• Risk Score: 8/10")
	assert.Contains(t, reply, "RUG PULL WARNING")
}

func TestComposeTokenReplyCommentaryLeadIn(t *testing.T) {
	reply := ComposeTokenReply(TokenReplyInput{
		Snapshot:   sampleToken(),
		Source:     core.SourceTelegram,
		Commentary: "Liquidity is thin on this one.",
		Now:        time.Now(),
	})
	assert.True(t, strings.HasPrefix(reply, "Liquidity is thin on this one. Here are some details I found about it:\n\n"))
}

func TestComposeTokenReplySupplementarySections(t *testing.T) {
	reply := ComposeTokenReply(TokenReplyInput{
		Snapshot:     sampleToken(),
		ATH:          analysis.AllTimeHigh{High: 0.0045, Timestamp: time.Now().Add(-3 * time.Hour).UnixMilli()},
		HolderShares: []float64{12.5, 3.33},
		Source:       core.SourceTwitter,
		Now:          time.Now(),
	})
	assert.Contains(t, reply, "• All-Time High: $0.004500 (3h ago)")
	assert.Contains(t, reply, "• Top Holders: 12.50%, 3.33% of supply")
}

func TestComposeWalletReply(t *testing.T) {
	profile := &services.WalletProfile{
		Name:        "ansem",
		TwitterURL:  "https://twitter.com/ansem",
		Type:        "kols",
		Winrate:     72,
		TokenTraded: 41,
		RealizedPnl: "$103K",
		CombinedRoi: "88%",
		RecentTokens: []services.RecentToken{
			{Name: "Bonk", Symbol: "BONK", Holding: 12000, ROI: "40%"},
			{Name: "Wif", Symbol: "WIF", Holding: 300, ROI: "-10%"},
			{Name: "Popcat", Symbol: "POPCAT", Holding: 1, ROI: "5%"},
			{Name: "Extra", Symbol: "X", Holding: 9, ROI: "1%"},
		},
	}

	reply := ComposeWalletReply(profile, "walletaddr")
	assert.Contains(t, reply, "👤 Profile:")
	assert.Contains(t, reply, "• Name: ansem")
	assert.Contains(t, reply, "• Known Trader 🌟")
	assert.Contains(t, reply, "• Win Rate: 72%")
	assert.Contains(t, reply, "• Tokens Traded: 41")
	assert.Contains(t, reply, "• Total Invested: Unknown")
	assert.Contains(t, reply, "🔄 Recent Token Activity:")
	assert.Contains(t, reply, "• Bonk (BONK)")
	// Only the first three recent tokens are shown.
	assert.NotContains(t, reply, "Extra")
	assert.Contains(t, reply, "topwallets.ai/solana/wallet/walletaddr")
}

func TestComposeWalletReplyMinimal(t *testing.T) {
	profile := &services.WalletProfile{Winrate: 50, TokenTraded: 2, RealizedPnl: "$0", CombinedRoi: "0%"}
	reply := ComposeWalletReply(profile, "addr")

	assert.NotContains(t, reply, "👤 Profile:")
	assert.NotContains(t, reply, "🔄 Recent Token Activity:")
	assert.Contains(t, reply, "💰 Performance Analysis (Last 30 Days):")
}

func TestComposeTrendingReply(t *testing.T) {
	set := &services.TrendingTokenSet{
		Timeframe: "24h",
		Count:     2,
		Tokens: []services.TrendingToken{
			{Name: "Bonk", Symbol: "BONK", Address: "bonkaddr", RiskScore: 3, Price: 0.000028, MarketCap: 1500000000, Liquidity: 8000000},
			{Name: "Mystery", Symbol: "MYST", Address: "mystaddr", RiskScore: 9},
		},
	}

	reply := ComposeTrendingReply(set, time.Date(2026, 8, 27, 10, 30, 0, 0, time.UTC))
	assert.Contains(t, reply, "🔥 Top 2 Trending Solana Tokens (24h timeframe)")
	assert.Contains(t, reply, "1. Bonk ($BONK)")
	assert.Contains(t, reply, "• Price: $0.0000")
	assert.Contains(t, reply, "• Market Cap: $1500.00M")
	assert.Contains(t, reply, "• Liquidity: $8000.00K")
	assert.Contains(t, reply, "2. Mystery ($MYST)")
	assert.Contains(t, reply, "• Market Cap: N/A")
	assert.Contains(t, reply, "• Risk Score: 9/10")
	assert.Contains(t, reply, "Last updated: 10:30:00")
}

func TestErrorReplies(t *testing.T) {
	assert.Equal(t, "Failed to scan token: Token not found", TokenLookupErrorReply("Token not found"))
	assert.Equal(t, "An unexpected error occurred while scanning the token.", TokenLookupErrorReply(""))
	assert.Equal(t, "Failed to scan wallet: nope", WalletLookupErrorReply("nope"))
}

func TestErrorsVisible(t *testing.T) {
	assert.True(t, ErrorsVisible(core.SourceTelegram))
	assert.False(t, ErrorsVisible(core.SourceTwitter))
	assert.False(t, ErrorsVisible(core.SourceDiscord))
	assert.False(t, ErrorsVisible(core.SourceUnknown))
}
