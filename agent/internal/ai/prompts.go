// Package ai renders the prompts the agent sends to its language model and
// binds token data into them. Prompt text lives here; the transport lives in
// the llm package.
package ai

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"tw-agent/agent/internal/analysis"
	"tw-agent/agent/internal/core"
	"tw-agent/agent/internal/services"
)

// PromptBindings is the flattened view of a token snapshot fed to the
// commentary template. Numeric fields are pre-formatted so the template
// stays free of formatting logic.
type PromptBindings struct {
	AgentName        string
	TokenName        string
	TokenSymbol      string
	TokenDescription string
	HasDescription   bool
	TokenPrice       string
	MarketCap        string
	Liquidity        string
	RiskScore        int
	IsRugged         bool
	LiquidityTier    string
	MarketCapTier    string
	Moves            []analysis.Move
	HasKols          bool
	KolNames         string
}

// BuildPromptBindings derives bindings from a snapshot and its analysis
// context. Descriptions shorter than 30 characters are treated as absent;
// they are usually a bare symbol repeat and mislead the model.
func BuildPromptBindings(agentName string, token *services.TokenSnapshot, cx analysis.Context) PromptBindings {
	return PromptBindings{
		AgentName:        agentName,
		TokenName:        token.Name,
		TokenSymbol:      token.Symbol,
		TokenDescription: token.Description,
		HasDescription:   len(token.Description) >= 30,
		TokenPrice:       formatPrice(token.Price),
		MarketCap:        "$" + analysis.FormatMagnitude(token.MarketCap),
		Liquidity:        "$" + analysis.FormatMagnitude(token.Liquidity),
		RiskScore:        token.RiskScore,
		IsRugged:         token.IsRugged,
		LiquidityTier:    cx.LiquidityTier,
		MarketCapTier:    cx.MarketCapTier,
		Moves:            cx.SignificantMoves,
		HasKols:          cx.HasKols,
		KolNames:         strings.Join(cx.KolNames, ", "),
	}
}

// formatPrice uses fixed six-decimal notation; K/M rounding would collapse
// every memecoin to $0.00 and exponent notation reads poorly in a prompt.
func formatPrice(price float64) string {
	if price == 0 {
		return "$N/A"
	}
	return fmt.Sprintf("$%.6f", price)
}

var commentaryTmpl = template.Must(template.New("commentary").Parse(
	`You are {{.AgentName}}, a Solana trading analyst. Write a brief opening remark about this token for a chat reply.

Token: {{.TokenName}} (${{.TokenSymbol}})
{{- if .HasDescription}}
Description: {{.TokenDescription}}
{{- end}}
Price: {{.TokenPrice}}
Market Cap: {{.MarketCap}} ({{.MarketCapTier}})
Liquidity: {{.Liquidity}} ({{.LiquidityTier}})
{{- if .IsRugged}}
This token has been flagged as potentially rugged.
{{- end}}
{{- if .Moves}}
Notable price moves:
{{- range .Moves}}
- {{.}}
{{- end}}
{{- end}}
{{- if .HasKols}}
Known traders holding this token: {{.KolNames}}
{{- end}}

Rules:
- At most two sentences and 200 characters.
- Comment on what stands out, not on every number.
- Never restate the risk score as a number.
- No greetings, no hashtags, no emoji.
- Reply with the remark only.`))

// RenderCommentaryPrompt renders the commentary prompt for a token.
func RenderCommentaryPrompt(b PromptBindings) (string, error) {
	var sb strings.Builder
	if err := commentaryTmpl.Execute(&sb, b); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Commentary asks the model for the opening remark. The result is trimmed
// and stripped of wrapping quotes; an empty generation is returned as "".
func Commentary(ctx context.Context, gen core.TextGenerator, b PromptBindings) (string, error) {
	prompt, err := RenderCommentaryPrompt(b)
	if err != nil {
		return "", err
	}
	text, err := gen.Generate(ctx, prompt, core.TierLarge)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	text = strings.Trim(text, `"`)
	return text, nil
}
