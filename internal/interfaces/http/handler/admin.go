package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	appcatalog "github.com/fliamecomm/storefront/internal/application/catalog"
	"github.com/fliamecomm/storefront/internal/domain/shared"
	"github.com/fliamecomm/storefront/internal/infrastructure/logger"
	"github.com/fliamecomm/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	msgProductAdded = "Product added successfully!"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ProductForm is the add-product form
type ProductForm struct {
	Name        string `form:"name" binding:"required,max=100"`
	Description string `form:"description"`
	Brand       string `form:"brand" binding:"required,uuid"`
	Category    string `form:"category" binding:"required,uuid"`
	RAM         string `form:"ram" binding:"max=50"`
	Storage     string `form:"storage" binding:"max=50"`
	Battery     string `form:"battery" binding:"max=50"`
	Price       string `form:"price" binding:"required"`
}

// productFieldByCode maps domain validation codes onto form fields
var productFieldByCode = map[string]string{
	"INVALID_NAME":     "name",
	"INVALID_BRAND":    "brand",
	"INVALID_CATEGORY": "category",
	"INVALID_PRICE":    "price",
	"INVALID_IMAGE":    "image",
}

// AdminHandler serves the staff-only pages
type AdminHandler struct {
	BaseHandler
	catalog CatalogService
}

// NewAdminHandler creates an AdminHandler
func NewAdminHandler(base BaseHandler, catalog CatalogService) *AdminHandler {
	return &AdminHandler{BaseHandler: base, catalog: catalog}
}

// Dashboard godoc
// @Summary      Staff dashboard
// @Description  Lists every product
// @Tags         admin
// @Produce      html
// @Success      200
// @Success      302 "Redirect to login for non-staff callers"
// @Router       /admin-dashboard/ [get]
func (h *AdminHandler) Dashboard(c *gin.Context) {
	products, err := h.catalog.ListAllProducts(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Render(c, http.StatusOK, "admin_dashboard.html", gin.H{
		"Title":    "Admin dashboard",
		"Products": products,
	})
}

// ExportProducts godoc
// @Summary      Export products
// @Description  Downloads every product as an Excel sheet
// @Tags         admin
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200 {file} file
// @Router       /admin-dashboard/export.xlsx [get]
func (h *AdminHandler) ExportProducts(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.catalog.ExportProducts(c.Request.Context(), &buf); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="products.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// AddProductPage godoc
// @Summary      Add-product form
// @Tags         admin
// @Produce      html
// @Success      200
// @Router       /add-product/ [get]
func (h *AdminHandler) AddProductPage(c *gin.Context) {
	h.renderProductForm(c, http.StatusOK, ProductForm{}, nil)
}

// AddProduct godoc
// @Summary      Create a product
// @Description  Creates a product from multipart form fields and an optional JPEG or PNG image
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      html
// @Param        name         formData  string  true   "Name"
// @Param        description  formData  string  false  "Description"
// @Param        brand        formData  string  true   "Brand ID"
// @Param        category     formData  string  true   "Category ID"
// @Param        ram          formData  string  false  "RAM"
// @Param        storage      formData  string  false  "Storage"
// @Param        battery      formData  string  false  "Battery"
// @Param        price        formData  string  true   "Price"
// @Param        image        formData  file    false  "Product image"
// @Success      302 "Redirect to the dashboard"
// @Failure      400 "Form errors"
// @Router       /add-product/ [post]
func (h *AdminHandler) AddProduct(c *gin.Context) {
	var form ProductForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderProductForm(c, http.StatusBadRequest, form, middleware.FieldMessages(err))
		return
	}

	price, err := decimal.NewFromString(form.Price)
	if err != nil {
		h.renderProductForm(c, http.StatusBadRequest, form, map[string]string{"price": "Enter a number."})
		return
	}

	input := appcatalog.CreateProductInput{
		Name:        form.Name,
		Description: form.Description,
		BrandID:     uuid.MustParse(form.Brand),
		CategoryID:  uuid.MustParse(form.Category),
		RAM:         form.RAM,
		Storage:     form.Storage,
		Battery:     form.Battery,
		Price:       price,
	}

	fileHeader, err := c.FormFile("image")
	switch {
	case err == nil:
		file, err := fileHeader.Open()
		if err != nil {
			h.renderProductForm(c, http.StatusBadRequest, form, map[string]string{"image": "The upload could not be read."})
			return
		}
		defer file.Close()
		input.Image = file
	case !errors.Is(err, http.ErrMissingFile):
		h.renderProductForm(c, http.StatusBadRequest, form, map[string]string{"image": "The upload could not be read."})
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), input)
	if err != nil {
		if fields, ok := productFieldErrors(err); ok {
			h.renderProductForm(c, http.StatusBadRequest, form, fields)
			return
		}
		h.HandleDomainError(c, err)
		return
	}

	logger.GetGinLogger(c).Info("Product added from dashboard", zap.String("product_id", product.ID.String()))
	h.Flash(c, FlashSuccess, msgProductAdded)
	h.Redirect(c, "/admin-dashboard/")
}

func (h *AdminHandler) renderProductForm(c *gin.Context, status int, form ProductForm, errs map[string]string) {
	ctx := c.Request.Context()
	brands, err := h.catalog.ListBrands(ctx)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	categories, err := h.catalog.ListCategories(ctx)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Render(c, status, "add_product.html", gin.H{
		"Title":      "Add product",
		"Form":       form,
		"Errors":     errs,
		"Brands":     brands,
		"Categories": categories,
	})
}

// productFieldErrors turns a rejected submission into form messages.
// Errors that are not about the submission return false.
func productFieldErrors(err error) (map[string]string, bool) {
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		return nil, false
	}
	if field, ok := productFieldByCode[domainErr.Code]; ok {
		return map[string]string{field: domainErr.Message}, true
	}
	switch domainErr.Code {
	case "INVALID_SPEC":
		return map[string]string{"__all__": domainErr.Message}, true
	case shared.ErrNotFound.Code:
		// the brand or category was deleted while the form was open
		return map[string]string{"__all__": fmt.Sprintf("%s. Pick another one.", domainErr.Message)}, true
	}
	return nil, false
}
