package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fliamecomm/storefront/internal/domain/identity"
	"github.com/fliamecomm/storefront/internal/infrastructure/logger"
	"github.com/fliamecomm/storefront/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdentityKey is the gin context key holding the request identity
const IdentityKey = "identity"

// LoginPath is where unauthenticated browsers are sent
const LoginPath = "/login/"

// SessionResolver turns a session cookie value into an identity
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (identity.Identity, error)
}

// SessionIdentity resolves the caller from the session cookie once per request.
// A missing, invalid or revoked session yields the anonymous identity.
func SessionIdentity(resolver SessionResolver, cookieName string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		who := identity.Anonymous

		if token, err := c.Cookie(cookieName); err == nil && token != "" {
			resolved, err := resolver.ResolveSession(c.Request.Context(), token)
			if err != nil {
				log.Debug("Ignoring session cookie", zap.Error(err))
			} else {
				who = resolved
			}
		}

		c.Set(IdentityKey, who)
		if who.IsAuthenticated() {
			ctx, _ := logger.WithUserID(c.Request.Context(), logger.GetGinLogger(c), who.UserID().String())
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// CurrentIdentity returns the identity resolved by SessionIdentity
func CurrentIdentity(c *gin.Context) identity.Identity {
	if v, ok := c.Get(IdentityKey); ok {
		if who, ok := v.(identity.Identity); ok {
			return who
		}
	}
	return identity.Anonymous
}

// RequireLogin redirects anonymous callers to the login page, remembering where they were going
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c).IsAuthenticated() {
			c.Next()
			return
		}
		c.Redirect(http.StatusFound, LoginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
	}
}

// RequireLoginJSON rejects anonymous callers of JSON endpoints with 401
func RequireLoginJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c).IsAuthenticated() {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, "Authentication required", c.GetString(RequestIDKey)))
	}
}

// RequireStaff sends everyone but signed-in staff back to the login page
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c).IsStaff() {
			c.Next()
			return
		}
		c.Redirect(http.StatusFound, LoginPath)
		c.Abort()
	}
}
