package router

import (
	"github.com/fliamecomm/storefront/internal/interfaces/http/handler"
	"github.com/fliamecomm/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers are the handlers mounted by Storefront
type Handlers struct {
	Auth     *handler.AuthHandler
	Catalog  *handler.CatalogHandler
	Shopping *handler.ShoppingHandler
	Admin    *handler.AdminHandler
	Health   *handler.HealthHandler

	// AuthRateLimit throttles login and registration submissions; nil disables it
	AuthRateLimit gin.HandlerFunc
}

// Storefront lays out the shop's routes. The engine must run middleware.SessionIdentity first.
func Storefront(h Handlers) []RouteRegistrar {
	public := NewDomainGroup("public", "").
		GET("/", h.Auth.Root).
		GET("/media/*key", h.Catalog.Media).
		GET("/health", h.Health.Health)

	accounts := NewDomainGroup("accounts", "")
	if h.AuthRateLimit != nil {
		accounts.Use(middleware.PostOnly(h.AuthRateLimit))
	}
	accounts.
		GET("/login/", h.Auth.LoginPage).
		POST("/login/", h.Auth.Login).
		GET("/register/", h.Auth.RegisterPage).
		POST("/register/", h.Auth.Register)

	shop := NewDomainGroup("shop", "").
		Use(middleware.RequireLogin()).
		GET("/home/", h.Catalog.Home).
		GET("/profile/", h.Auth.Profile).
		GET("/logout/", h.Auth.Logout).
		POST("/logout/", h.Auth.Logout).
		POST("/add-to-cart/:product_id/", h.Shopping.AddToCart).
		GET("/cart/", h.Shopping.Cart).
		POST("/cart/remove/:product_id/", h.Shopping.RemoveFromCart).
		GET("/favorites/", h.Shopping.Favorites)

	likes := NewDomainGroup("likes", "").
		Use(middleware.RequireLoginJSON()).
		POST("/like/:product_id/", h.Shopping.ToggleLike)

	admin := NewDomainGroup("admin", "").
		Use(middleware.RequireStaff()).
		GET("/admin-dashboard/", h.Admin.Dashboard).
		GET("/admin-dashboard/export.xlsx", h.Admin.ExportProducts).
		GET("/add-product/", h.Admin.AddProductPage).
		POST("/add-product/", h.Admin.AddProduct)

	return []RouteRegistrar{public, accounts, shop, likes, admin}
}
