package webhook

import (
	"context"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/jroosing/routeros-dns-webhook/internal/endpoint"
)

// reconciler is the subset of *provider.Provider the webhook depends on,
// narrowed to an interface so the HTTP layer can be tested without a real
// device connection.
type reconciler interface {
	GetDomainFilter() endpoint.DomainFilter
	AdjustEndpoints(endpoints []endpoint.Endpoint) []endpoint.Endpoint
	ListRecords(ctx context.Context) ([]endpoint.Endpoint, error)
	ApplyChanges(ctx context.Context, batch endpoint.Changes) error
}

// Handler holds the dependencies webhook routes need.
type Handler struct {
	provider  reconciler
	logger    *slog.Logger
	startTime time.Time
}

func newHandler(p reconciler, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{provider: p, logger: logger, startTime: time.Now()}
}

// Root godoc
// @Summary Negotiate and report the configured domain filter
// @Description Returns the domain filter the provider was configured with; this is also where the controller negotiates the webhook media type during its initial handshake.
// @Tags webhook
// @Produce json
// @Success 200 {object} endpoint.DomainFilter
// @Router / [get]
func (h *Handler) Root(c *gin.Context) {
	writeJSON(c, http.StatusOK, h.provider.GetDomainFilter())
}

// AdjustEndpoints godoc
// @Summary Let the provider adjust proposed endpoints before a plan
// @Tags webhook
// @Accept json
// @Produce json
// @Param endpoints body []endpoint.Endpoint true "proposed endpoints"
// @Success 200 {array} endpoint.Endpoint
// @Failure 422 {object} map[string]string
// @Router /adjustendpoints [post]
func (h *Handler) AdjustEndpoints(c *gin.Context) {
	var endpoints []endpoint.Endpoint
	if err := c.ShouldBindJSON(&endpoints); err != nil {
		h.respondValidationError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, h.provider.AdjustEndpoints(endpoints))
}

// Healthz godoc
// @Summary Liveness probe
// @Tags webhook
// @Success 200
// @Router /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	c.Status(http.StatusOK)
}

// GetRecords godoc
// @Summary List the current device records as endpoints
// @Tags webhook
// @Produce json
// @Success 200 {array} endpoint.Endpoint
// @Failure 500 {object} map[string]string
// @Router /records [get]
func (h *Handler) GetRecords(c *gin.Context) {
	endpoints, err := h.provider.ListRecords(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	writeJSON(c, http.StatusOK, endpoints)
}

// PostRecords godoc
// @Summary Apply a batch of endpoint changes to the device
// @Tags webhook
// @Accept json
// @Param changes body endpoint.Changes true "create/update/delete batch"
// @Success 204
// @Failure 422 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /records [post]
func (h *Handler) PostRecords(c *gin.Context) {
	var batch endpoint.Changes
	if err := c.ShouldBindJSON(&batch); err != nil {
		h.respondValidationError(c, err)
		return
	}
	if err := h.provider.ApplyChanges(c.Request.Context(), batch); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// DebugStats reports process uptime and host resource usage. It is not
// part of the controller contract; additive, since external-dns never
// queries unlisted paths.
func (h *Handler) DebugStats(c *gin.Context) {
	uptime := time.Since(h.startTime)

	stats := gin.H{
		"uptime":        uptime.Round(time.Second).String(),
		"uptimeSeconds": int64(uptime.Seconds()),
		"goroutines":    runtime.NumGoroutine(),
		"numCPU":        runtime.NumCPU(),
	}

	if vmStat, err := mem.VirtualMemory(); err == nil {
		stats["memoryUsedMB"] = float64(vmStat.Used) / 1024 / 1024
		stats["memoryUsedPercent"] = vmStat.UsedPercent
	}
	if cpuPercent, err := cpu.Percent(100*time.Millisecond, false); err == nil && len(cpuPercent) > 0 {
		stats["cpuUsedPercent"] = cpuPercent[0]
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) respondValidationError(c *gin.Context, err error) {
	h.logger.Warn("webhook request validation failed", "path", c.Request.URL.Path, "error", err)
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
}
