package ai

import (
	"fmt"
	"strings"
)

// TrendingIntentPrompt asks whether a message is a request for trending
// tokens. The model must answer YES or NO.
func TrendingIntentPrompt(messageText string, history []string) string {
	var sb strings.Builder
	sb.WriteString("Decide whether the user is asking for trending, hot, or popular Solana tokens.\n\n")
	if len(history) > 0 {
		sb.WriteString("Recent conversation:\n")
		for _, line := range history {
			fmt.Fprintf(&sb, "- %s\n", line)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "Message: %s\n\n", messageText)
	sb.WriteString("Questions about a specific token or wallet address are NO.\n")
	sb.WriteString("Answer with exactly YES or NO.")
	return sb.String()
}

// TrendingParamsPrompt asks the model to extract timeframe and count from a
// trending request as a JSON object. The caller validates the result.
func TrendingParamsPrompt(messageText string, validTimeframes []string) string {
	var sb strings.Builder
	sb.WriteString("Extract the timeframe and token count from this trending-tokens request.\n\n")
	fmt.Fprintf(&sb, "Message: %s\n\n", messageText)
	fmt.Fprintf(&sb, "Valid timeframes: %s\n", strings.Join(validTimeframes, ", "))
	sb.WriteString("Count must be between 1 and 20.\n")
	sb.WriteString("Default to timeframe \"24h\" and count 5 when the message does not say.\n\n")
	sb.WriteString(`Respond with only a JSON object: {"timeframe": "...", "count": N}`)
	return sb.String()
}
