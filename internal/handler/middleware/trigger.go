package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// TriggerTokenHeader carries the shared secret for the periodic trigger
// surface. The external scheduler is the only expected caller.
const TriggerTokenHeader = "X-Scheduler-Token"

func RequireTriggerToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(TriggerTokenHeader)
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid scheduler token",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
