// README: Recovery middleware; converts handler panics into a JSON 500.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/logger"
)

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Logger.WithField("panic", rec).WithField("path", c.Request.URL.Path).Error("handler panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
		}()
		c.Next()
	}
}
