// Package endpoint provides operational endpoints mounted next to the API.
package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Check probes a single dependency; nil means healthy.
type Check func(ctx context.Context) error

// Health returns a handler reporting overall service health from the given
// named dependency checks. Any failing check turns the response into a 503.
func Health(serviceName string, checks map[string]Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		httpStatus := http.StatusOK
		results := make(map[string]string, len(checks))

		for name, check := range checks {
			if err := check(c.Request.Context()); err != nil {
				results[name] = err.Error()
				status = "unhealthy"
				httpStatus = http.StatusServiceUnavailable
			} else {
				results[name] = "ok"
			}
		}

		c.JSON(httpStatus, gin.H{
			"status":    status,
			"service":   serviceName,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"checks":    results,
		})
	}
}

// Liveness reports that the process is up. It never touches dependencies.
func Liveness() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "alive"})
	}
}
