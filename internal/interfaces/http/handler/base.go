package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/fliamecomm/storefront/internal/domain/shared"
	"github.com/fliamecomm/storefront/internal/infrastructure/auth"
	"github.com/fliamecomm/storefront/internal/infrastructure/config"
	"github.com/fliamecomm/storefront/internal/infrastructure/logger"
	"github.com/fliamecomm/storefront/internal/interfaces/http/dto"
	"github.com/fliamecomm/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler provides page rendering, flashes, the session cookie and error mapping
type BaseHandler struct {
	flashes *FlashStore
	cookie  config.SessionConfig
}

// NewBaseHandler creates the shared handler helpers
func NewBaseHandler(flashes *FlashStore, cookie config.SessionConfig) BaseHandler {
	if cookie.CookieName == "" {
		cookie.CookieName = "sessionid"
	}
	if cookie.CookiePath == "" {
		cookie.CookiePath = "/"
	}
	return BaseHandler{flashes: flashes, cookie: cookie}
}

func getRequestID(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// Render executes a page template with the caller, flashes and request id filled in
func (h *BaseHandler) Render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["User"] = middleware.CurrentIdentity(c)
	data["RequestID"] = getRequestID(c)
	if h.flashes != nil {
		data["Flashes"] = h.flashes.Pop(c)
	}
	c.HTML(status, page, data)
}

// Flash queues a message for the next rendered page
func (h *BaseHandler) Flash(c *gin.Context, kind, message string) {
	if h.flashes != nil {
		h.flashes.Add(c, kind, message)
	}
}

// Redirect answers with 302 Found
func (h *BaseHandler) Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// SetSession writes the session cookie for a freshly issued token
func (h *BaseHandler) SetSession(c *gin.Context, token *auth.SessionToken) {
	maxAge := int(time.Until(token.ExpiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = int(h.cookie.TTL.Seconds())
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.CookieName, token.Value, maxAge, h.cookie.CookiePath, h.cookie.CookieDomain, h.cookie.CookieSecure, true)
}

// ClearSession expires the session cookie
func (h *BaseHandler) ClearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.CookieName, "", -1, h.cookie.CookiePath, h.cookie.CookieDomain, h.cookie.CookieSecure, true)
}

// SessionToken returns the raw session cookie, or "" when absent
func (h *BaseHandler) SessionToken(c *gin.Context) string {
	token, err := c.Cookie(h.cookie.CookieName)
	if err != nil {
		return ""
	}
	return token
}

// HandleDomainError renders the error page with the status derived from the error code
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	status, code, message := classify(err)
	if status >= http.StatusInternalServerError {
		logger.GetGinLogger(c).Error("Request failed", zap.Error(err))
	}
	_ = c.Error(err)
	h.Render(c, status, "error.html", gin.H{
		"Title":      http.StatusText(status),
		"Status":     status,
		"StatusText": http.StatusText(status),
		"Code":       code,
		"Message":    message,
	})
}

// HandleJSONError answers JSON endpoints with the standard error envelope
func (h *BaseHandler) HandleJSONError(c *gin.Context, err error) {
	status, code, message := classify(err)
	if status >= http.StatusInternalServerError {
		logger.GetGinLogger(c).Error("Request failed", zap.Error(err))
	}
	_ = c.Error(err)
	c.JSON(status, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// NotFound renders the 404 page
func (h *BaseHandler) NotFound(c *gin.Context) {
	h.HandleDomainError(c, shared.NewDomainError(shared.ErrNotFound.Code, "Page not found"))
}

// classify maps an error onto status, public code and a message safe to show
func classify(err error) (int, string, string) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		status := dto.GetHTTPStatus(code)
		if status >= http.StatusInternalServerError {
			return status, code, "An unexpected error occurred"
		}
		return status, code, domainErr.Message
	}
	return http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred"
}

// pathUUID parses a uuid route parameter; a malformed id is reported as not found
func pathUUID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, shared.NewDomainError(shared.ErrNotFound.Code, "Product not found")
	}
	return id, nil
}
