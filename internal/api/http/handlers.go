package http

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/flowframe/embed/internal/embed"
	"github.com/flowframe/embed/internal/flowhost"
	"github.com/flowframe/embed/internal/infrastructure/logging"
	"github.com/flowframe/embed/internal/manifest"
	"github.com/flowframe/embed/internal/shared/id"
	"github.com/flowframe/embed/internal/version"
)

// Handlers holds the REST endpoint dependencies.
type Handlers struct {
	manager  *embed.Manager
	manifest *manifest.Manifest
	flows    *flowhost.Client
	hostBase string
	log      *logging.Logger
}

// NewHandlers creates the REST handlers. flows may be nil to skip the flow
// host metadata check.
func NewHandlers(manager *embed.Manager, m *manifest.Manifest, flows *flowhost.Client, hostBase string, log *logging.Logger) *Handlers {
	if log == nil {
		log = logging.NewNop()
	}
	return &Handlers{
		manager:  manager,
		manifest: m,
		flows:    flows,
		hostBase: hostBase,
		log:      log,
	}
}

// CreateEmbedRequest is the POST /embeds body.
type CreateEmbedRequest struct {
	Client  string            `json:"client" binding:"required"`
	Flow    string            `json:"flow" binding:"required"`
	Variant string            `json:"variant"`
	Params  map[string]string `json:"params"`
	Options EmbedOptions      `json:"options"`
}

// EmbedOptions mirrors the embed configuration surface.
type EmbedOptions struct {
	UseHistoryAPI bool       `json:"useHistoryAPI"`
	AutoHeight    bool       `json:"autoHeight"`
	Style         EmbedStyle `json:"style"`
}

// EmbedStyle holds initial frame dimensions.
type EmbedStyle struct {
	Width  string `json:"width"`
	Height string `json:"height"`
}

// EmbedSummary is the REST view of a hosted instance.
type EmbedSummary struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Origin string `json:"origin"`
	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`
}

// Health reports gateway liveness.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "flowframe-gateway",
		"version": version.Version,
	})
}

// CreateEmbed validates the requested labels against the manifest (and the
// flow host when configured) and mounts a new instance.
func (h *Handlers) CreateEmbed(c *gin.Context) {
	var req CreateEmbedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, ok := h.manifest.Lookup(req.Client, req.Flow)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown client/flow"})
		return
	}
	if !entry.HasVariant(req.Variant) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown variant"})
		return
	}

	if h.flows != nil {
		info, err := h.flows.Describe(c.Request.Context(), req.Client, req.Flow)
		if err != nil {
			h.log.Warn("flow host lookup failed",
				zap.String("client", req.Client),
				zap.String("flow", req.Flow),
				zap.Error(err),
			)
			c.JSON(http.StatusBadGateway, gin.H{"error": "flow host unavailable"})
			return
		}
		if !info.Published {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "flow not published"})
			return
		}
	}

	origin := entry.Origin
	if origin == "" {
		origin = h.hostBase
	}

	inst := h.manager.Create(embed.Options{
		Origin:        origin,
		UseHistoryAPI: req.Options.UseHistoryAPI,
		AutoHeight:    req.Options.AutoHeight,
		Style: embed.Style{
			Width:  req.Options.Style.Width,
			Height: req.Options.Style.Height,
		},
	})

	params := url.Values{}
	for k, v := range req.Params {
		params.Set(k, v)
	}
	if err := inst.Controller.LoadFlow(req.Client, req.Flow, req.Variant, params); err != nil {
		h.manager.Close(inst.Controller.ID())
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, summarize(inst))
}

// ListEmbeds returns all live instances.
func (h *Handlers) ListEmbeds(c *gin.Context) {
	instances := h.manager.List()
	out := make([]EmbedSummary, 0, len(instances))
	for _, inst := range instances {
		out = append(out, summarize(inst))
	}
	c.JSON(http.StatusOK, gin.H{"embeds": out})
}

// GetEmbed returns one instance.
func (h *Handlers) GetEmbed(c *gin.Context) {
	inst, ok := h.manager.Get(id.EmbedID(c.Param("id")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "embed not found"})
		return
	}
	c.JSON(http.StatusOK, summarize(inst))
}

// CloseEmbed tears an instance down.
func (h *Handlers) CloseEmbed(c *gin.Context) {
	if !h.manager.Close(id.EmbedID(c.Param("id"))) {
		c.JSON(http.StatusNotFound, gin.H{"error": "embed not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func summarize(inst *embed.Instance) EmbedSummary {
	frame := inst.Controller.Frame()
	return EmbedSummary{
		ID:     inst.Controller.ID().String(),
		URL:    frame.Src(),
		Origin: inst.Controller.Origin(),
		Width:  frame.Width(),
		Height: frame.Height(),
	}
}
