// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// Check tests one dependency. A nil error means healthy.
type Check func(ctx context.Context) error

const checkTimeout = 2 * time.Second

// NewHealth returns the /healthz handler. GET runs every check and answers 503 when any fails;
// HEAD and OPTIONS answer immediately without probing.
func NewHealth(checks map[string]Check) gin.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		switch c.Request.Method {
		case http.MethodHead:
			c.Status(http.StatusOK)
			return
		case http.MethodOptions:
			c.Status(http.StatusNoContent)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
		defer cancel()

		status := http.StatusOK
		results := make(gin.H, len(names))
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				status = http.StatusServiceUnavailable
				results[name] = err.Error()
				continue
			}
			results[name] = "ok"
		}

		body := gin.H{"status": "ok"}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		if len(results) > 0 {
			body["checks"] = results
		}
		c.JSON(status, body)
	}
}
