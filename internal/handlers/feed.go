package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openarrive/traveller-backend/internal/graph"
	"github.com/openarrive/traveller-backend/internal/logger"
	"github.com/openarrive/traveller-backend/internal/services"
	"github.com/openarrive/traveller-backend/internal/types"
)

// FeedHandler streams entry-processed events as SSE. Broadcast is fed by the
// redis forwarder, so every server instance sees every event.
type FeedHandler struct {
	log *logger.Logger

	mu      sync.RWMutex
	clients map[chan services.FeedEvent]bool
}

func NewFeedHandler(log *logger.Logger) *FeedHandler {
	return &FeedHandler{
		log:     log.With("handler", "FeedHandler"),
		clients: make(map[chan services.FeedEvent]bool),
	}
}

func (h *FeedHandler) Broadcast(event services.FeedEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.clients {
		select {
		case ch <- event:
		default:
			// slow consumer, drop rather than block the forwarder
		}
	}
}

func (h *FeedHandler) subscribe() (chan services.FeedEvent, func()) {
	ch := make(chan services.FeedEvent, 16)
	h.mu.Lock()
	h.clients[ch] = true
	h.mu.Unlock()
	return ch, func() {
		h.mu.Lock()
		delete(h.clients, ch)
		h.mu.Unlock()
	}
}

// GET /feed/stream
func (h *FeedHandler) Stream(c *gin.Context) {
	if err := graph.RequireRole(c.Request.Context(), types.RoleOperator); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Flush()

	ch, unsubscribe := h.subscribe()
	defer unsubscribe()

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case <-keepAlive.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			c.Writer.Flush()
		case event := <-ch:
			raw, err := json.Marshal(event)
			if err != nil {
				h.log.Warn("Feed event marshal failed", "error", err)
				continue
			}
			fmt.Fprintf(c.Writer, "event: entryProcessed\ndata: %s\n\n", raw)
			c.Writer.Flush()
		}
	}
}
