// Package compose builds the final chat text from fetched token/wallet data
// and analyzer output. Verbosity forks on the requesting channel via a small
// policy table; the composer itself is stateless.
package compose

import (
	"fmt"
	"strings"
	"time"

	"tw-agent/agent/internal/analysis"
	"tw-agent/agent/internal/core"
	"tw-agent/agent/internal/services"
)

const (
	dexScreenerBase = "https://dexscreener.com/solana/"
	topWalletsBase  = "https://www.topwallets.ai/solana"
)

// NoAddressTokenReply is the guidance reply for token queries with no
// address candidate in the text. No API call is made.
const NoAddressTokenReply = "I couldn't find a valid token address. Please provide a valid Solana token address."

// NoAddressWalletReply is the wallet-scan counterpart.
const NoAddressWalletReply = "I couldn't find a valid Solana address in your message. Please provide a valid address."

// TemporarilyUnavailableReply surfaces validation failures without detail.
const TemporarilyUnavailableReply = "Trending token information temporarily unavailable"

// TokenLookupErrorReply renders an upstream failure for channels that show
// errors.
func TokenLookupErrorReply(upstreamMessage string) string {
	if upstreamMessage == "" {
		return "An unexpected error occurred while scanning the token."
	}
	return "Failed to scan token: " + upstreamMessage
}

// WalletLookupErrorReply renders an upstream wallet-scan failure.
func WalletLookupErrorReply(upstreamMessage string) string {
	if upstreamMessage == "" {
		return "An unexpected error occurred while scanning the wallet."
	}
	return "Failed to scan wallet: " + upstreamMessage
}

func medalMarker(index int) string {
	switch index {
	case 0:
		return "🥇"
	case 1:
		return "🥈"
	case 2:
		return "🥉"
	default:
		return "•"
	}
}

// walletDisplayName resolves the display name for a top wallet: its name, or
// a truncated address, star-prefixed for KOL wallets.
func walletDisplayName(w services.TopWalletEntry) string {
	name := w.Name
	if name == "" && len(w.Address) >= 8 {
		name = w.Address[:4] + "..." + w.Address[len(w.Address)-4:]
	} else if name == "" {
		name = w.Address
	}
	if w.Type == "kols" {
		return "⭐ " + name
	}
	return name
}

// TokenReplyInput carries everything the token composer needs. Commentary is
// the optional AI lead-in; ATH and HolderShares are optional supplementary
// data whose sections are omitted when absent.
type TokenReplyInput struct {
	Snapshot     *services.TokenSnapshot
	Observations []string
	ATH          analysis.AllTimeHigh
	HolderShares []float64
	Source       core.Source
	Commentary   string
	Now          time.Time
}

// ComposeTokenReply builds the token-analysis reply. Price, market cap,
// liquidity, and risk score always appear; everything else is gated on the
// channel policy and on data presence.
func ComposeTokenReply(in TokenReplyInput) string {
	token := in.Snapshot
	policy := policyFor(in.Source)
	var b strings.Builder

	if in.Commentary != "" {
		b.WriteString(in.Commentary)
		b.WriteString(" Here are some details I found about it:\n\n")
	}

	b.WriteString("📊 Token Analysis:\n")

	extended := policy.ShowExtended && token.Description != ""
	if extended {
		b.WriteString("Token Information:\n")
		fmt.Fprintf(&b, "• Name: %s\n", token.Name)
		fmt.Fprintf(&b, "• Address: %s\n", token.Address)
		fmt.Fprintf(&b, "• Description: %s\n", token.Description)
		b.WriteString("\nFinancial Metrics:\n")
	}

	if token.Price > 0 {
		fmt.Fprintf(&b, "• Price: $%.6f\n", token.Price)
	} else {
		b.WriteString("• Price: $N/A\n")
	}
	fmt.Fprintf(&b, "• Market Cap: $%s\n", analysis.FormatMagnitude(token.MarketCap))
	fmt.Fprintf(&b, "• Liquidity: $%s\n", analysis.FormatMagnitude(token.Liquidity))
	fmt.Fprintf(&b, "• Risk Score: %d/10\n", token.RiskScore)

	if policy.Show24hChange {
		change := token.PriceChange["24h"]
		icon := "📈"
		if change < 0 {
			icon = "📉"
		}
		fmt.Fprintf(&b, "• 24h Change: %s %.2f%%\n", icon, change)
	}

	if in.ATH.High > 0 {
		fmt.Fprintf(&b, "• All-Time High: $%.6f (%s)\n",
			in.ATH.High, analysis.RelativeAge(in.ATH.Timestamp, in.Now.UnixMilli()))
	}
	if len(in.HolderShares) > 0 {
		fmt.Fprintf(&b, "• Top Holders: %s of supply\n", analysis.FormatShareList(in.HolderShares))
	}

	if token.IsRugged {
		b.WriteString("• 🚨 RUG PULL WARNING: This token has been flagged as potentially rugged!\n")
	}

	if extended && len(in.Observations) > 0 {
		b.WriteString("\nKey Observations:\n")
		for _, m := range in.Observations {
			fmt.Fprintf(&b, "• %s\n", m)
		}
		if token.Social.Telegram != "" || token.Social.Twitter != "" {
			b.WriteString("\nSocial Links:\n")
			if token.Social.Telegram != "" {
				fmt.Fprintf(&b, "• Telegram: %s\n", token.Social.Telegram)
			}
			if token.Social.Twitter != "" {
				fmt.Fprintf(&b, "• Twitter: %s\n", token.Social.Twitter)
			}
		}
	}

	if len(token.TopWallets) > 0 {
		if policy.MaxWallets > 1 {
			b.WriteString("\n📊 Top Wallets Trading This Token:\n")
			for i, w := range token.TopWallets {
				if i >= policy.MaxWallets {
					break
				}
				marker := "•"
				if policy.MedalMarkers {
					marker = medalMarker(i)
				}
				fmt.Fprintf(&b, "%s %s\n", marker, walletDisplayName(w))
				fmt.Fprintf(&b, "   • Win Rate: %.0f%%\n", w.Winrate)
				if w.Historic30d != nil {
					icon := "📈"
					if w.Historic30d.PercentageChange < 0 {
						icon = "📉"
					}
					fmt.Fprintf(&b, "   • 30d PnL: %s\n", w.Historic30d.RealizedPnl)
					fmt.Fprintf(&b, "   • 30d Change: %s %.1f%%\n", icon, w.Historic30d.PercentageChange)
				}
				b.WriteString("\n")
			}
		} else {
			w := token.TopWallets[0]
			fmt.Fprintf(&b, "• Top Wallet: %s (%.0f%% WR)", walletDisplayName(w), w.Winrate)
			if w.Historic30d != nil {
				icon := "📈"
				if w.Historic30d.PercentageChange < 0 {
					icon = "📉"
				}
				fmt.Fprintf(&b, " %s %.1f%%", icon, w.Historic30d.PercentageChange)
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "\n🔍 View more top wallets: %s/token/%s\n", topWalletsBase, token.Address)
	fmt.Fprintf(&b, "\n🔍 View detailed chart: %s%s", dexScreenerBase, token.Address)

	return b.String()
}

// ComposeWalletReply builds the wallet-scan report: an optional profile
// block, a fixed performance block, and an optional recent-activity block,
// blank-line separated with empty blocks omitted entirely.
func ComposeWalletReply(profile *services.WalletProfile, address string) string {
	var profileItems []string
	if profile.Name != "" {
		profileItems = append(profileItems, "• Name: "+profile.Name)
	}
	if profile.TwitterURL != "" {
		profileItems = append(profileItems, "• Twitter: "+profile.TwitterURL)
	}
	if profile.Type == "kols" {
		profileItems = append(profileItems, "• Known Trader 🌟")
	}

	var blocks []string
	if len(profileItems) > 0 {
		blocks = append(blocks, "👤 Profile:\n"+strings.Join(profileItems, "\n"))
	}

	totalInvested := profile.TotalInvestedFormatted
	if totalInvested == "" {
		totalInvested = "Unknown"
	}
	performance := fmt.Sprintf(`💰 Performance Analysis (Last 30 Days):
• Win Rate: %.0f%%
• Tokens Traded: %d
• Realized PnL: %s
• Combined ROI: %s
• Total Invested: %s`,
		profile.Winrate, profile.TokenTraded, profile.RealizedPnl, profile.CombinedRoi, totalInvested)
	blocks = append(blocks, performance)

	if len(profile.RecentTokens) > 0 {
		var rb strings.Builder
		rb.WriteString("🔄 Recent Token Activity:")
		for i, t := range profile.RecentTokens {
			if i >= 3 {
				break
			}
			fmt.Fprintf(&rb, "\n• %s (%s)\n  Holding: %.0f\n  ROI: %s", t.Name, t.Symbol, t.Holding, t.ROI)
		}
		blocks = append(blocks, rb.String())
	}

	body := strings.Join(blocks, "\n\n")
	return fmt.Sprintf("I've analyzed the wallet here is my report:\n\n%s\n\n🔍 View complete analysis: %s/wallet/%s",
		body, topWalletsBase, address)
}

// ComposeTrendingReply renders a trending-token set as a numbered list.
func ComposeTrendingReply(set *services.TrendingTokenSet, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔥 Top %d Trending Solana Tokens (%s timeframe)\n", set.Count, set.Timeframe)

	for i, token := range set.Tokens {
		price := "N/A"
		if token.Price > 0 {
			price = fmt.Sprintf("$%.4f", token.Price)
		}
		marketCap := "N/A"
		if token.MarketCap > 0 {
			marketCap = fmt.Sprintf("$%.2fM", token.MarketCap/1000000)
		}
		liquidity := "N/A"
		if token.Liquidity > 0 {
			liquidity = fmt.Sprintf("$%.2fK", token.Liquidity/1000)
		}
		fmt.Fprintf(&b, "\n%d. %s ($%s)\n", i+1, token.Name, token.Symbol)
		fmt.Fprintf(&b, "    • Price: %s\n", price)
		fmt.Fprintf(&b, "    • Market Cap: %s\n", marketCap)
		fmt.Fprintf(&b, "    • Liquidity: %s\n", liquidity)
		fmt.Fprintf(&b, "    • Risk Score: %d/10\n", token.RiskScore)
		fmt.Fprintf(&b, "    • Chart: %s%s\n", dexScreenerBase, token.Address)
	}

	fmt.Fprintf(&b, "\nLast updated: %s", now.Format("15:04:05"))
	return b.String()
}
