package handler

import (
	"net/http"
	"strings"

	appcatalog "github.com/fliamecomm/storefront/internal/application/catalog"
	"github.com/fliamecomm/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the product listing and product images
type CatalogHandler struct {
	BaseHandler
	catalog CatalogService
}

// NewCatalogHandler creates a CatalogHandler
func NewCatalogHandler(base BaseHandler, catalog CatalogService) *CatalogHandler {
	return &CatalogHandler{BaseHandler: base, catalog: catalog}
}

// Home godoc
// @Summary      Product listing
// @Description  Lists products filtered by a case-insensitive name search and an optional category
// @Tags         catalog
// @Produce      html
// @Param        q         query  string  false  "Name contains"
// @Param        category  query  string  false  "Category id"
// @Success      200
// @Success      302 "Redirect to login"
// @Router       /home/ [get]
func (h *CatalogHandler) Home(c *gin.Context) {
	query := appcatalog.ParseProductQuery(c.Query("q"), c.Query("category"))
	page, err := h.catalog.Search(c.Request.Context(), middleware.CurrentIdentity(c), query)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Render(c, http.StatusOK, "home.html", gin.H{
		"Title": "Home",
		"Page":  page,
	})
}

// Media godoc
// @Summary      Product image
// @Tags         catalog
// @Produce      jpeg
// @Param        key  path  string  true  "Object key"
// @Success      200
// @Failure      404
// @Router       /media/{key} [get]
func (h *CatalogHandler) Media(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" || strings.Contains(key, "..") {
		h.NotFound(c)
		return
	}

	body, obj, err := h.catalog.OpenImage(c.Request.Context(), key)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	defer body.Close()

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	size := obj.Size
	if size <= 0 {
		size = -1
	}
	c.DataFromReader(http.StatusOK, size, contentType, body, map[string]string{
		"Cache-Control": "public, max-age=86400",
	})
}
