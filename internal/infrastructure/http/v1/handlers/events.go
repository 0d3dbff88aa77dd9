package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"gescom/internal/core/events"
)

// EventsHandler streams change notifications to UI clients over SSE.
type EventsHandler struct {
	*BaseHandler
	bus *events.Bus
}

// NewEventsHandler creates an events handler.
func NewEventsHandler(base *BaseHandler, bus *events.Bus) *EventsHandler {
	return &EventsHandler{BaseHandler: base, bus: bus}
}

// Stream handles GET /events. Each published event becomes one SSE message
// named after the entity it concerns. Delivery is best-effort: a client
// that falls behind misses events and is expected to refetch.
func (h *EventsHandler) Stream(c *gin.Context) {
	ch, cancel := h.bus.Subscribe(64)
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(string(ev.Entity), gin.H{
				"action":  ev.Action,
				"payload": ev.Payload,
			})
			return true
		case <-ctx.Done():
			return false
		}
	})
}

// RegisterRoutes registers the event stream route.
func (h *EventsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Stream)
}
