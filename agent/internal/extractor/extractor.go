package extractor

import (
	"regexp"
	"strings"
)

var (
	solanaAddrRe = regexp.MustCompile(`[1-9A-HJ-NP-Za-km-z]{32,44}`)
	tickerRe     = regexp.MustCompile(`\$[A-Za-z]+`)
	keywordRe    = regexp.MustCompile(`(?i)token|price|analysis`)
)

// ExtractAddresses returns every Solana-shaped address candidate in the text,
// in document order. Matching is shape-only (base58 alphabet, 32-44 chars);
// no checksum or on-chain validation is performed.
func ExtractAddresses(text string) []string {
	return solanaAddrRe.FindAllString(text, -1)
}

// ExtractFirstAddress returns the first address candidate, or "" when the
// text contains none.
func ExtractFirstAddress(text string) string {
	return solanaAddrRe.FindString(text)
}

// LooksLikeTokenQuery reports whether the text plausibly asks about a token:
// it contains an address candidate, a $TICKER mention, or one of the keywords
// token/price/analysis.
func LooksLikeTokenQuery(text string) bool {
	if text == "" {
		return false
	}
	return solanaAddrRe.MatchString(text) ||
		tickerRe.MatchString(text) ||
		keywordRe.MatchString(text)
}

// LooksLikeWalletOnlyQuery reports whether the entire trimmed text is exactly
// one address candidate and nothing else. Bare-address messages route
// preferentially to the wallet scanner.
func LooksLikeWalletOnlyQuery(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	return solanaAddrRe.FindString(trimmed) == trimmed
}
