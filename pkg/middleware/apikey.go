package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"maritime-threats-backend/pkg/model"
)

// APIKeyMiddleware guards an endpoint with the X-API-Key header. An empty
// configured secret rejects every request rather than opening the endpoint.
func APIKeyMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-API-Key")
		if secret == "" || subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.Response{
				Msg: "Invalid API Key",
			})
			return
		}
		c.Next()
	}
}
