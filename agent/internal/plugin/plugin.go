// Package plugin routes inbound chat messages to the token scanner, the
// wallet scanner, or the trending-tokens path, and drives each pipeline end
// to end. It owns no transport; channels adapt their messages into
// core.Message and pass a sink for the reply.
package plugin

import (
	"context"
	"strings"
	"sync"
	"time"

	"tw-agent/agent/internal/ai"
	"tw-agent/agent/internal/analysis"
	"tw-agent/agent/internal/compose"
	"tw-agent/agent/internal/core"
	"tw-agent/agent/internal/extractor"
	"tw-agent/agent/internal/providers"
	"tw-agent/agent/internal/services"
	"tw-agent/shared/logger"
)

// MarketData is the slice of the TopWallets client the plugin uses.
type MarketData interface {
	FetchTokenSnapshot(ctx context.Context, address string) (*services.TokenSnapshot, error)
	FetchWalletProfile(ctx context.Context, address string) (*services.WalletProfile, error)
}

// CandleSource supplies the supplementary Birdeye data for token replies.
type CandleSource interface {
	FetchCandles(ctx context.Context, address, granularity string) ([]services.Candle, error)
	FetchTopHolderShares(ctx context.Context, address string) []float64
}

// Plugin is the message handler. The AI capabilities are optional; a nil
// generator disables commentary and a nil classifier disables the trending
// path.
type Plugin struct {
	markets   MarketData
	candles   CandleSource
	trending  *providers.TrendingProvider
	gen       core.TextGenerator
	classify  core.BoolClassifier
	extract   core.ObjectExtractor
	agentName string
	log       *logger.Logger
}

type Options struct {
	Markets   MarketData
	Candles   CandleSource
	Trending  *providers.TrendingProvider
	Generator core.TextGenerator
	Classify  core.BoolClassifier
	Extract   core.ObjectExtractor
	AgentName string
	Log       *logger.Logger
}

func New(opts Options) *Plugin {
	return &Plugin{
		markets:   opts.Markets,
		candles:   opts.Candles,
		trending:  opts.Trending,
		gen:       opts.Generator,
		classify:  opts.Classify,
		extract:   opts.Extract,
		agentName: opts.AgentName,
		log:       opts.Log,
	}
}

// HandleMessage routes one message. It reports whether the message was
// handled; unhandled messages fall through to whatever else the channel does
// with them. The routing order is:
//
//  1. a bare address scans the wallet
//  2. an address inside a larger message scans the token when the rest of
//     the text carries token signals, otherwise the wallet
//  3. with no address, the trending classifier gets a chance
//  4. remaining token-flavored questions get address guidance
func (p *Plugin) HandleMessage(ctx context.Context, msg core.Message, sink core.ReplySink) (bool, error) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return false, nil
	}

	if extractor.LooksLikeWalletOnlyQuery(text) {
		return p.handleWalletScan(ctx, msg, sink)
	}

	if addr := extractor.ExtractFirstAddress(text); addr != "" {
		rest := strings.Replace(text, addr, "", 1)
		if extractor.LooksLikeTokenQuery(rest) {
			return p.handleTokenScan(ctx, msg, sink)
		}
		return p.handleWalletScan(ctx, msg, sink)
	}

	if handled, err := p.handleTrending(ctx, msg, sink); handled || err != nil {
		return handled, err
	}

	if extractor.LooksLikeTokenQuery(text) {
		return true, sink.Send(ctx, core.Reply{Text: compose.NoAddressTokenReply})
	}
	return false, nil
}

// handleTokenScan runs the token pipeline: snapshot fetch, concurrent
// supplementary fetches, analysis, optional commentary, composition.
func (p *Plugin) handleTokenScan(ctx context.Context, msg core.Message, sink core.ReplySink) (bool, error) {
	address := extractor.ExtractFirstAddress(msg.Text)
	if address == "" {
		return true, sink.Send(ctx, core.Reply{Text: compose.NoAddressTokenReply})
	}

	p.log.Info("Scanning token", "address", address, "source", msg.Source)
	token, err := p.markets.FetchTokenSnapshot(ctx, address)
	if err != nil {
		p.log.Error("Token scan failed", "address", address, "error", err)
		if compose.ErrorsVisible(msg.Source) {
			return true, sink.Send(ctx, core.Reply{Text: compose.TokenLookupErrorReply(services.UpstreamMessage(err))})
		}
		return true, nil
	}

	now := time.Now()

	// Candles and holder data come from a second upstream and are fetched
	// concurrently. Both are optional; the reply degrades without them.
	var (
		wg     sync.WaitGroup
		ath    analysis.AllTimeHigh
		shares []float64
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		granularity := services.GranularityForAge(token.PairCreatedAt, now)
		candles, err := p.candles.FetchCandles(ctx, address, granularity)
		if err != nil {
			p.log.Warn("Candle history unavailable", "address", address, "error", err)
			return
		}
		ath = analysis.ComputeAllTimeHigh(candles)
	}()
	go func() {
		defer wg.Done()
		shares = p.candles.FetchTopHolderShares(ctx, address)
	}()
	wg.Wait()

	observations := analysis.ComputeObservations(token)
	cx := analysis.BuildContext(token)

	commentary := ""
	if p.gen != nil {
		bindings := ai.BuildPromptBindings(p.agentName, token, cx)
		commentary, err = ai.Commentary(ctx, p.gen, bindings)
		if err != nil {
			p.log.Warn("Commentary generation failed", "address", address, "error", err)
			commentary = ""
		}
	}

	reply := compose.ComposeTokenReply(compose.TokenReplyInput{
		Snapshot:     token,
		Observations: observations,
		ATH:          ath,
		HolderShares: shares,
		Source:       msg.Source,
		Commentary:   commentary,
		Now:          now,
	})
	return true, sink.Send(ctx, core.Reply{Text: reply, Action: "SCAN_SOLANA_TOKEN"})
}

// handleWalletScan runs the wallet pipeline. Upstream failures are reported
// on every channel; a wallet scan has no partial reply to fall back to.
func (p *Plugin) handleWalletScan(ctx context.Context, msg core.Message, sink core.ReplySink) (bool, error) {
	address := extractor.ExtractFirstAddress(msg.Text)
	if address == "" {
		return true, sink.Send(ctx, core.Reply{Text: compose.NoAddressWalletReply})
	}

	p.log.Info("Scanning wallet", "address", address, "source", msg.Source)
	profile, err := p.markets.FetchWalletProfile(ctx, address)
	if err != nil {
		p.log.Error("Wallet scan failed", "address", address, "error", err)
		return true, sink.Send(ctx, core.Reply{Text: compose.WalletLookupErrorReply(services.UpstreamMessage(err))})
	}

	reply := compose.ComposeWalletReply(profile, address)
	return true, sink.Send(ctx, core.Reply{Text: reply, Action: "SCAN_SOLANA_WALLET"})
}

// handleTrending asks the classifier whether the message wants trending
// tokens, extracts the parameters, and serves the list through the cache
// gate. Messages carrying an address never reach this path.
func (p *Plugin) handleTrending(ctx context.Context, msg core.Message, sink core.ReplySink) (bool, error) {
	if p.classify == nil || p.extract == nil || p.trending == nil {
		return false, nil
	}

	wants, err := p.classify.Classify(ctx, ai.TrendingIntentPrompt(msg.Text, msg.History))
	if err != nil {
		p.log.Warn("Trending intent classification failed", "error", err)
		return false, nil
	}
	if !wants {
		return false, nil
	}

	var params providers.Params
	if err := p.extract.Extract(ctx, ai.TrendingParamsPrompt(msg.Text, services.ValidTimeframes), &params); err != nil {
		p.log.Warn("Trending params extraction failed", "error", err)
		return true, sink.Send(ctx, core.Reply{Text: compose.TemporarilyUnavailableReply})
	}
	if err := params.Validate(); err != nil {
		p.log.Warn("Trending params rejected", "error", err)
		return true, sink.Send(ctx, core.Reply{Text: compose.TemporarilyUnavailableReply})
	}

	p.log.Info("Fetching trending tokens", "timeframe", params.Timeframe, "count", params.Count)
	set, err := p.trending.Resolve(ctx, params.Timeframe, params.Count)
	if err != nil {
		p.log.Error("Trending tokens unavailable", "timeframe", params.Timeframe, "error", err)
		return true, sink.Send(ctx, core.Reply{Text: compose.TemporarilyUnavailableReply})
	}

	reply := compose.ComposeTrendingReply(set, time.Now())
	return true, sink.Send(ctx, core.Reply{Text: reply, Action: "GET_TRENDING_TOKENS"})
}
