package handler

import (
	"encoding/gob"
	"net/http"

	"github.com/fliamecomm/storefront/internal/infrastructure/config"
	"github.com/fliamecomm/storefront/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Flash message levels, used as CSS classes by the templates
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

const flashSessionName = "storefront-flash"

// FlashMessage is a one-shot notice shown on the next rendered page
type FlashMessage struct {
	Type    string
	Message string
}

func init() {
	gob.Register(FlashMessage{})
}

// FlashStore keeps flash messages in a signed cookie that is separate from the auth session
type FlashStore struct {
	store sessions.Store
}

// NewFlashStore creates a cookie-backed flash store
func NewFlashStore(cfg config.SessionConfig) *FlashStore {
	store := sessions.NewCookieStore([]byte(cfg.FlashSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		Domain:   cfg.CookieDomain,
		MaxAge:   3600,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	return &FlashStore{store: store}
}

// Add queues a message for the next page. It must run before the response is written.
func (f *FlashStore) Add(c *gin.Context, kind, message string) {
	session, err := f.store.Get(c.Request, flashSessionName)
	if err != nil && session == nil {
		return
	}
	session.AddFlash(FlashMessage{Type: kind, Message: message})
	if err := session.Save(c.Request, c.Writer); err != nil {
		logger.GetGinLogger(c).Warn("Failed to save flash message", zap.String("type", kind), zap.Error(err))
	}
}

// Pop returns and clears every queued message
func (f *FlashStore) Pop(c *gin.Context) []FlashMessage {
	session, err := f.store.Get(c.Request, flashSessionName)
	if err != nil && session == nil {
		return nil
	}
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(c.Request, c.Writer); err != nil {
		logger.GetGinLogger(c).Warn("Failed to clear flash messages", zap.Error(err))
	}

	messages := make([]FlashMessage, 0, len(raw))
	for _, v := range raw {
		if msg, ok := v.(FlashMessage); ok {
			messages = append(messages, msg)
		}
	}
	return messages
}
