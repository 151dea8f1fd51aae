package core

import (
	"context"
	"time"
)

// Source identifies the messaging surface a request arrived on. It drives
// reply verbosity and error visibility.
type Source string

const (
	SourceTelegram Source = "telegram"
	SourceTwitter  Source = "twitter"
	SourceDiscord  Source = "discord"
	SourceUnknown  Source = "unknown"
)

// ParseSource maps a free-form channel tag onto a known Source.
func ParseSource(s string) Source {
	switch Source(s) {
	case SourceTelegram, SourceTwitter, SourceDiscord:
		return Source(s)
	default:
		return SourceUnknown
	}
}

// Message is the inbound request as seen by the plugin. Only Text and Source
// are read by the core; History is available to intent prompts.
type Message struct {
	Text    string
	Source  Source
	History []string
}

// Reply is the outbound payload handed to a ReplySink.
type Reply struct {
	Text   string `json:"text"`
	Action string `json:"action,omitempty"`
}

// ReplySink delivers a reply to the user. Delivery is fire-and-forget from
// the plugin's perspective but is awaited before the request completes.
type ReplySink interface {
	Send(ctx context.Context, reply Reply) error
}

// CacheStore is the minimal key/value contract the trending gate needs.
type CacheStore interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, ttl time.Duration)
}

// QualityTier selects the capability class of the model used for a
// generation call.
type QualityTier string

const (
	TierSmall QualityTier = "small"
	TierLarge QualityTier = "large"
)

// TextGenerator produces free text from a prompt. No retry or streaming
// contract is assumed.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, tier QualityTier) (string, error)
}

// BoolClassifier answers a yes/no question about a prompt.
type BoolClassifier interface {
	Classify(ctx context.Context, prompt string) (bool, error)
}

// ObjectExtractor fills out with structured data pulled from a prompt.
// Callers must validate the result before use.
type ObjectExtractor interface {
	Extract(ctx context.Context, prompt string, out interface{}) error
}
