package webhook

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/jroosing/routeros-dns-webhook/internal/webhook/docs" // swagger docs
)

// registerRoutes wires the five external-dns webhook routes plus the
// additive swagger UI and debug-stats endpoints, following the teacher's
// RegisterRoutes grouping style.
func registerRoutes(r *gin.Engine, h *Handler) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/debug/stats", h.DebugStats)

	negotiated := r.Group("/")
	negotiated.Use(ContentNegotiation())
	{
		negotiated.GET("/", h.Root)
		negotiated.POST("/adjustendpoints", h.AdjustEndpoints)
		negotiated.GET("/healthz", h.Healthz)
		negotiated.GET("/records", h.GetRecords)
		negotiated.POST("/records", h.PostRecords)
	}
}
