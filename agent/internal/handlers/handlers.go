// Package handlers exposes the HTTP surface: health and status probes plus a
// message endpoint for channels that integrate over webhooks instead of a
// long-lived bot connection.
package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"tw-agent/agent/internal/bot"
	"tw-agent/agent/internal/core"
	"tw-agent/shared/logger"
)

type messageRequest struct {
	Text    string   `json:"text" binding:"required"`
	Source  string   `json:"source"`
	History []string `json:"history"`
}

type messageResponse struct {
	Handled bool         `json:"handled"`
	Replies []core.Reply `json:"replies"`
}

// bufferSink collects replies for a synchronous HTTP response.
type bufferSink struct {
	mu      sync.Mutex
	replies []core.Reply
}

func (s *bufferSink) Send(_ context.Context, reply core.Reply) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, reply)
	return nil
}

func (s *bufferSink) Replies() []core.Reply {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.replies == nil {
		return []core.Reply{}
	}
	return s.replies
}

// RegisterRoutes wires the API onto the router.
func RegisterRoutes(router *gin.Engine, handler bot.Handler, log *logger.Logger) {
	start := time.Now()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"uptime": time.Since(start).String(),
		})
	})

	router.POST("/api/v1/message", func(c *gin.Context) {
		var req messageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
			return
		}

		msg := core.Message{
			Text:    req.Text,
			Source:  core.ParseSource(req.Source),
			History: req.History,
		}
		sink := &bufferSink{}

		handled, err := handler.HandleMessage(c.Request.Context(), msg, sink)
		if err != nil {
			log.Error("HTTP message handling failed", "source", msg.Source, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "message handling failed"})
			return
		}
		c.JSON(http.StatusOK, messageResponse{Handled: handled, Replies: sink.Replies()})
	})
}
