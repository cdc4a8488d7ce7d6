package ws

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/flowframe/embed/internal/embed"
	"github.com/flowframe/embed/internal/infrastructure/logging"
	"github.com/flowframe/embed/internal/infrastructure/monitoring"
	"github.com/flowframe/embed/internal/message"
	"github.com/flowframe/embed/internal/shared/id"
)

var upgrader = websocket.Upgrader{
	// The embed router authenticates origin per message; the upgrader does
	// not pre-filter so that rejection stays silent and uniform.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler bridges frame content to hosted embed instances: one WebSocket
// connection per frame, relaying wire envelopes onto the instance's page bus
// and forwarding dispatched events back down.
type Handler struct {
	manager *embed.Manager
	metrics *monitoring.Metrics
	log     *logging.Logger

	// One live connection per embed: a frame has exactly one content
	// document, and a single peer keeps listener removal unambiguous.
	active sync.Map
}

// NewHandler creates the channel handler. metrics may be nil.
func NewHandler(manager *embed.Manager, metrics *monitoring.Metrics, log *logging.Logger) *Handler {
	if log == nil {
		log = logging.NewNop()
	}
	return &Handler{
		manager: manager,
		metrics: metrics,
		log:     log,
	}
}

// conn wraps a websocket connection with write serialization: forwarded
// events and the welcome frame must not interleave on the wire.
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(v)
}

// HandleChannel upgrades the connection and runs the relay loop until the
// peer disconnects or the instance closes.
func (h *Handler) HandleChannel(c *gin.Context) {
	embedID := id.EmbedID(c.Param("id"))
	inst, ok := h.manager.Get(embedID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "embed not found"})
		return
	}

	if _, loaded := h.active.LoadOrStore(embedID, true); loaded {
		c.JSON(http.StatusConflict, gin.H{"error": "channel already connected"})
		return
	}
	defer h.active.Delete(embedID)

	raw, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("channel upgrade failed", zap.Error(err))
		return
	}
	defer raw.Close()

	channelID := uuid.NewString()
	origin := c.Request.Header.Get("Origin")
	ctrl := inst.Controller
	cc := &conn{ws: raw}

	if h.metrics != nil {
		h.metrics.ChannelConnections.Inc()
		defer h.metrics.ChannelConnections.Dec()
	}

	h.log.Info("channel opened",
		zap.String("embed_id", ctrl.ID().String()),
		zap.String("channel_id", channelID),
		zap.String("origin", origin),
	)

	cc.writeJSON(map[string]interface{}{
		"type":      "connected",
		"embedId":   ctrl.ID().String(),
		"channelId": channelID,
	})

	detach := h.forwardEvents(ctrl, cc)
	defer detach()

	for {
		msgType, data, err := raw.ReadMessage()
		if err != nil {
			break
		}
		if msgType != websocket.TextMessage {
			continue
		}

		if h.metrics != nil {
			h.metrics.ChannelMessages.WithLabelValues("in").Inc()
		}

		// The declared origin is the browser-enforced Origin header of the
		// upgrade request. The embed router decides whether to trust it.
		ctrl.Frame().Window().Post(origin, data)

		if ctrl.Closed() {
			break
		}
	}

	h.log.Info("channel closed",
		zap.String("embed_id", ctrl.ID().String()),
		zap.String("channel_id", channelID),
	)
}

// forwardEvents registers listeners that mirror dispatched events back to
// the channel peer. The returned func removes them by identity.
func (h *Handler) forwardEvents(ctrl *embed.Controller, cc *conn) func() {
	analytics := make(map[message.EventType]embed.AnalyticsListener, len(message.SupportedEvents))
	for _, event := range message.SupportedEvents {
		event := event
		fn := func(answers message.Answers) {
			h.emit(cc, string(event), map[string]interface{}{
				"type":    string(event),
				"answers": answers,
			})
		}
		analytics[event] = fn
		ctrl.AddEventListener(event, fn)
	}

	redirect := func(url string, answers message.Answers) bool {
		h.emit(cc, "redirect", map[string]interface{}{
			"type":    "redirect",
			"url":     url,
			"answers": answers,
		})
		return false
	}
	ctrl.AddRedirectListener(redirect)

	return func() {
		for event, fn := range analytics {
			ctrl.RemoveEventListener(event, fn)
		}
		ctrl.RemoveRedirectListener(redirect)
	}
}

func (h *Handler) emit(cc *conn, event string, payload map[string]interface{}) {
	if h.metrics != nil {
		h.metrics.ChannelMessages.WithLabelValues("out").Inc()
		h.metrics.EventsForwarded.WithLabelValues(event).Inc()
	}
	if err := cc.writeJSON(payload); err != nil {
		h.log.Debug("channel write failed", zap.Error(err))
	}
}
