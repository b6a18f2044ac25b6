package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const actorHeader = "X-Actor-ID"

const actorContextKey = "actorID"

// ActorMiddleware requires the caller to identify the acting user. The
// application layer in front of this service resolves authentication and
// forwards the user ID in the X-Actor-ID header; the ledger only records it
// on audit fields and approval stamps.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader(actorHeader)
		if actor == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + actorHeader + " header"})
			return
		}
		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// GetActorFromContext retrieves the acting user ID set by ActorMiddleware.
func GetActorFromContext(c *gin.Context) (string, bool) {
	actor, exists := c.Get(actorContextKey)
	if !exists {
		return "", false
	}
	id, ok := actor.(string)
	return id, ok && id != ""
}
