package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// requestContext returns the request context, falling back to Background for bare test contexts.
func requestContext(c *gin.Context) context.Context {
	if c == nil || c.Request == nil {
		return context.Background()
	}
	return c.Request.Context()
}

// parseIntQuery reads an integer query parameter; absent or malformed values yield fallback.
func parseIntQuery(c *gin.Context, key string, fallback int) int {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
