package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SwaggerGate hides the API docs with a 404 unless enabled, and restricts them to staff
func SwaggerGate(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		if !CurrentIdentity(c).IsStaff() {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
