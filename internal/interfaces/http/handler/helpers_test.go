package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/fliamecomm/storefront/internal/domain/identity"
	"github.com/fliamecomm/storefront/internal/infrastructure/config"
	"github.com/fliamecomm/storefront/internal/interfaces/http/middleware"
	"github.com/fliamecomm/storefront/internal/interfaces/http/web"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

var testSessionConfig = config.SessionConfig{
	TTL:         time.Hour,
	CookieName:  "sessionid",
	CookiePath:  "/",
	FlashSecret: "flash-secret-for-tests-only-0123456789",
}

var (
	shopperID = uuid.MustParse("7c0a4b55-5f4a-4e0c-9a55-2f1d3c1a0b01")
	staffID   = uuid.MustParse("7c0a4b55-5f4a-4e0c-9a55-2f1d3c1a0b02")
	shopper   = identity.NewUserIdentity(shopperID, "alice", false)
	staff     = identity.NewUserIdentity(staffID, "root", true)
)

func newTestBase() BaseHandler {
	return NewBaseHandler(NewFlashStore(testSessionConfig), testSessionConfig)
}

// newTestEngine returns an engine with the real templates whose requests run as who
func newTestEngine(t *testing.T, who identity.Identity) *gin.Engine {
	t.Helper()
	tmpl, err := web.Templates("")
	require.NoError(t, err)

	engine := gin.New()
	engine.SetHTMLTemplate(tmpl)
	engine.Use(func(c *gin.Context) {
		c.Set(middleware.IdentityKey, who)
		c.Next()
	})
	return engine
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

type nopReadCloser struct {
	io.Reader
}

func (nopReadCloser) Close() error { return nil }
