package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arjun/news_aggregator/internal/auth"
	"github.com/arjun/news_aggregator/internal/store"
)

const (
	ctxUserKey  = "auth.user"
	ctxTokenKey = "auth.token"
)

// AuthRequired resolves the bearer token to an account before any handler
// runs. Requests without a valid token never reach core logic.
func AuthRequired(authSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			sendError(c, http.StatusUnauthorized, "Unauthenticated", nil)
			c.Abort()
			return
		}

		user, err := authSvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			sendError(c, http.StatusInternalServerError, "Something went wrong", nil)
			c.Abort()
			return
		}
		if user == nil {
			sendError(c, http.StatusUnauthorized, "Unauthenticated", nil)
			c.Abort()
			return
		}

		c.Set(ctxUserKey, user)
		c.Set(ctxTokenKey, token)
		c.Next()
	}
}

func currentUser(c *gin.Context) *store.User {
	if v, ok := c.Get(ctxUserKey); ok {
		if u, ok := v.(*store.User); ok {
			return u
		}
	}
	return nil
}

// requirePermission enforces a permission check up front. The denial message
// is the same whether or not the target resource exists.
func requirePermission(c *gin.Context, perm string) bool {
	if !auth.Can(currentUser(c), perm) {
		sendError(c, http.StatusForbidden, "Unauthorized", nil)
		c.Abort()
		return false
	}
	return true
}
