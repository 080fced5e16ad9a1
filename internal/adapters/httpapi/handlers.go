package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mikey/phish-trainer/internal/adapters/mailer"
	"github.com/mikey/phish-trainer/internal/core"
	"github.com/mikey/phish-trainer/internal/locale"
	"github.com/mikey/phish-trainer/internal/utils"
	"go.uber.org/zap"
)

// Deliverer sends a sample into a training inbox
type Deliverer interface {
	Deliver(ctx context.Context, to string, sample core.EmailSample) error
}

// Options tunes request handling
type Options struct {
	DefaultLocale core.Locale
	MaxBatch      int
}

// Handler handles HTTP requests
type Handler struct {
	dispenser *core.Dispenser
	generator *core.SampleGenerator
	text      *utils.TextProcessor
	mailer    Deliverer
	opts      Options
	logger    *zap.Logger
}

// NewHandler creates a new API handler. mailer may be nil, which disables
// delivery.
func NewHandler(
	dispenser *core.Dispenser,
	generator *core.SampleGenerator,
	text *utils.TextProcessor,
	mailer Deliverer,
	opts Options,
	logger *zap.Logger,
) *Handler {
	if opts.DefaultLocale == "" {
		opts.DefaultLocale = core.LocaleEN
	}
	if opts.MaxBatch < 1 {
		opts.MaxBatch = 20
	}
	return &Handler{
		dispenser: dispenser,
		generator: generator,
		text:      text,
		mailer:    mailer,
		opts:      opts,
		logger:    logger,
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		// Pool-backed samples
		api.GET("/generate-email", h.GenerateEmail)
		api.GET("/emails", h.Emails)
		api.POST("/pool/reset", h.ResetPool)

		// Live generation
		api.GET("/live-email", h.LiveEmail)
		api.GET("/preload", h.Preload)

		api.POST("/highlights", h.Highlights)
		api.POST("/deliver", h.Deliver)
	}

	r.GET("/health", h.HealthCheck)
}

func (h *Handler) locale(c *gin.Context) core.Locale {
	return locale.Resolve(c.Query("lang"), c.GetHeader("Accept-Language"), h.opts.DefaultLocale)
}

// count reads the count query parameter, clamped to [1, max]
func (h *Handler) count(c *gin.Context, def int) int {
	n, err := strconv.Atoi(c.Query("count"))
	if err != nil {
		n = def
	}
	if n < 1 {
		n = 1
	}
	if n > h.opts.MaxBatch {
		n = h.opts.MaxBatch
	}
	return n
}

// GenerateEmail serves one sample from the persisted pool
func (h *Handler) GenerateEmail(c *gin.Context) {
	c.JSON(http.StatusOK, h.dispenser.Dispense(c.Request.Context(), h.locale(c)))
}

// Emails serves a batch of pool samples drawn one by one
func (h *Handler) Emails(c *gin.Context) {
	c.JSON(http.StatusOK, h.dispenser.DispenseN(c.Request.Context(), h.locale(c), h.count(c, 10)))
}

// ResetPool clears the consumed set of a locale
func (h *Handler) ResetPool(c *gin.Context) {
	loc := h.locale(c)
	h.dispenser.Reset(loc)
	c.JSON(http.StatusOK, h.dispenser.Stats(loc))
}

// LiveEmail generates one sample on demand
func (h *Handler) LiveEmail(c *gin.Context) {
	res := h.generator.Generate(c.Request.Context(), core.GenerationRequest{Locale: h.locale(c)})
	c.Header("X-Generation-Backend", res.Backend)
	c.JSON(http.StatusOK, res.Sample)
}

// Preload generates several live samples concurrently
func (h *Handler) Preload(c *gin.Context) {
	c.JSON(http.StatusOK, h.generator.Preload(c.Request.Context(), h.locale(c), h.count(c, 3)))
}

type highlightRequest struct {
	Content string   `json:"content"`
	Clues   []string `json:"clues"`
}

// Highlights returns the body phrases the clues point at
func (h *Handler) Highlights(c *gin.Context) {
	var req highlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"terms": h.text.Highlights(req.Content, req.Clues)})
}

type deliverRequest struct {
	To   string `json:"to" binding:"required"`
	Lang string `json:"lang"`
}

// Deliver mails one pool sample to a training inbox
func (h *Handler) Deliver(c *gin.Context) {
	if h.mailer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "delivery is disabled"})
		return
	}

	var req deliverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loc := locale.Resolve(req.Lang, c.GetHeader("Accept-Language"), h.opts.DefaultLocale)
	sample := h.dispenser.Dispense(c.Request.Context(), loc)

	if err := h.mailer.Deliver(c.Request.Context(), req.To, sample); err != nil {
		if errors.Is(err, mailer.ErrInvalidRecipient) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to deliver sample", zap.String("to", req.To), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "delivery failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"delivered": true, "id": sample.ID, "locale": loc})
}

// HealthCheck reports the configured backends and pool state
func (h *Handler) HealthCheck(c *gin.Context) {
	pools := make([]core.PoolStats, 0, len(core.Locales))
	for _, loc := range core.Locales {
		pools = append(pools, h.dispenser.Stats(loc))
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"backends": h.generator.Backends(),
		"pools":    pools,
	})
}
