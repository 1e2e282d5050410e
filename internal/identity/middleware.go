package identity

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Header carries the id of the user acting on the request. Identity is
// resolved upstream; the service trusts the header as-is.
const Header = "X-Sharer-User-Id"

const contextKey = "sharerUserID"

// Required is a Gin middleware that rejects requests without a usable
// X-Sharer-User-Id header and stores the parsed id in the context.
func Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(Header)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "missing " + Header + " header",
			})
			return
		}

		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "invalid " + Header + " header",
			})
			return
		}

		c.Set(contextKey, id)
		c.Next()
	}
}

// GetUserID returns the acting user's id or zero when the middleware did not run.
func GetUserID(c *gin.Context) int64 {
	if v, ok := c.Get(contextKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
