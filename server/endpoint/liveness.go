package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// LivenessResponse is the body of GET /alive.
type LivenessResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
}

// Liveness answers as long as the process can serve HTTP. It never checks
// components; /health does that.
func Liveness(serviceName string, started time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		c.JSON(http.StatusOK, LivenessResponse{
			Status:    "alive",
			Service:   serviceName,
			Uptime:    now.Sub(started).Truncate(time.Second).String(),
			Timestamp: now.UTC().Format(time.RFC3339),
		})
	}
}
