package webhook

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// mediaTypeKey is the gin.Context key the negotiated content type is stored
// under by ContentNegotiation, for handlers to read back with mediaType.
const mediaTypeKey = "webhook.mediaType"

const (
	mediaTypeJSON    = "application/json"
	mediaTypeWebhook = "application/external.dns.webhook+json;version=1"
)

// ContentNegotiation resolves the Accept header to one of the two media
// types the controller understands and rejects everything else with 400,
// the Gin equivalent of the original response_cls_provider dependency.
// A missing or wildcard Accept header defaults to plain JSON.
func ContentNegotiation() gin.HandlerFunc {
	return func(c *gin.Context) {
		accept := strings.TrimSpace(c.GetHeader("Accept"))

		switch {
		case accept == "", accept == "*/*":
			c.Set(mediaTypeKey, mediaTypeJSON)
		case matchesMediaType(accept, mediaTypeWebhook):
			c.Set(mediaTypeKey, mediaTypeWebhook)
		case matchesMediaType(accept, mediaTypeJSON):
			c.Set(mediaTypeKey, mediaTypeJSON)
		default:
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "unsupported Accept media type: " + accept,
			})
			return
		}
		c.Next()
	}
}

// matchesMediaType compares an Accept header value against a target media
// type, ignoring parameters other than the ones the target itself carries
// (e.g. "application/json, text/plain" matches "application/json").
func matchesMediaType(accept, target string) bool {
	targetBase, _, _ := strings.Cut(target, ";")
	for _, candidate := range strings.Split(accept, ",") {
		candidate = strings.TrimSpace(candidate)
		base, _, _ := strings.Cut(candidate, ";")
		if strings.EqualFold(base, targetBase) {
			if !strings.Contains(target, ";") || strings.EqualFold(candidate, target) {
				return true
			}
		}
	}
	return false
}

// mediaType reads back the content type ContentNegotiation resolved for
// this request.
func mediaType(c *gin.Context) string {
	if v, ok := c.Get(mediaTypeKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return mediaTypeJSON
}

// writeJSON emits body with the negotiated Content-Type rather than gin's
// default application/json, so a controller that asked for the webhook
// media type sees it echoed back.
func writeJSON(c *gin.Context, status int, body any) {
	c.Header("Content-Type", mediaType(c))
	c.JSON(status, body)
}
