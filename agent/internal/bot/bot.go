// Package bot adapts Telegram into the plugin's message contract: long-poll
// updates become core.Messages and replies flow back through a rate-limited
// sink.
package bot

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mymmrac/telego"
	"golang.org/x/time/rate"

	"tw-agent/agent/internal/core"
	"tw-agent/shared/logger"
)

// Telegram rejects messages over 4096 characters; longer replies are split.
const maxMessageLen = 4096

// Handler is the plugin-facing contract. Satisfied by plugin.Plugin.
type Handler interface {
	HandleMessage(ctx context.Context, msg core.Message, sink core.ReplySink) (bool, error)
}

// Bot runs the Telegram long-polling loop and dispatches each text message
// to the handler.
type Bot struct {
	api     *telego.Bot
	handler Handler
	limiter *rate.Limiter
	log     *logger.Logger
}

func New(token string, handler Handler, log *logger.Logger) (*Bot, error) {
	api, err := telego.NewBot(token, telego.WithDiscardLogger())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telegram bot: %w", err)
	}
	return &Bot{
		api:     api,
		handler: handler,
		// Telegram allows ~30 messages/second overall; stay well under it.
		limiter: rate.NewLimiter(rate.Limit(20), 5),
		log:     log,
	}, nil
}

// Run blocks consuming updates until the context is canceled.
func (b *Bot) Run(ctx context.Context) error {
	me, err := b.api.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("telegram GetMe failed: %w", err)
	}
	b.log.Info("Telegram bot connected", "username", me.Username)

	updates, err := b.api.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{Timeout: 30})
	if err != nil {
		return fmt.Errorf("telegram long polling failed: %w", err)
	}

	for update := range updates {
		if update.Message == nil || update.Message.Text == "" {
			continue
		}
		go b.dispatch(ctx, update.Message)
	}
	return ctx.Err()
}

func (b *Bot) dispatch(ctx context.Context, tgMsg *telego.Message) {
	msg := core.Message{
		Text:   tgMsg.Text,
		Source: core.SourceTelegram,
	}
	sink := &chatSink{bot: b, chatID: tgMsg.Chat.ID}

	handled, err := b.handler.HandleMessage(ctx, msg, sink)
	if err != nil {
		b.log.Error("Message handling failed", "chat", tgMsg.Chat.ID, "error", err)
		return
	}
	if !handled {
		b.log.Debug("Message not handled", "chat", tgMsg.Chat.ID)
	}
}

// chatSink delivers replies to one chat, splitting oversized messages and
// retrying transient send failures.
type chatSink struct {
	bot    *Bot
	chatID int64
}

func (s *chatSink) Send(ctx context.Context, reply core.Reply) error {
	for _, chunk := range splitMessage(reply.Text) {
		if err := s.sendChunk(ctx, chunk); err != nil {
			return err
		}
	}
	return nil
}

func (s *chatSink) sendChunk(ctx context.Context, text string) error {
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if err := s.bot.limiter.Wait(ctx); err != nil {
			return err
		}
		_, lastErr = s.bot.api.SendMessage(ctx, &telego.SendMessageParams{
			ChatID: telego.ChatID{ID: s.chatID},
			Text:   text,
		})
		if lastErr == nil {
			return nil
		}
		s.bot.log.Warn("Telegram send failed, retrying", "chat", s.chatID, "attempt", attempt+1, "error", lastErr)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(1<<attempt) * time.Second):
		}
	}
	return fmt.Errorf("telegram send failed after retries: %w", lastErr)
}

// splitMessage cuts text into sendable chunks. Cuts never land inside a
// multi-byte rune (the replies are emoji-heavy and a mid-rune cut makes the
// payload invalid UTF-8), and prefer the last newline in the window so lines
// stay intact.
func splitMessage(text string) []string {
	if len(text) <= maxMessageLen {
		return []string{text}
	}
	var chunks []string
	for len(text) > maxMessageLen {
		cut := maxMessageLen
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		if i := strings.LastIndexByte(text[:cut], '\n'); i > 0 {
			cut = i + 1
		}
		chunks = append(chunks, text[:cut])
		text = text[cut:]
	}
	return append(chunks, text)
}
