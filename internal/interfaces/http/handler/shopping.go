package handler

import (
	"net/http"

	"github.com/fliamecomm/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// ShoppingHandler serves likes, the cart and the favorites page
type ShoppingHandler struct {
	BaseHandler
	likes     LikeService
	cart      CartService
	favorites FavoritesService
}

// NewShoppingHandler creates a ShoppingHandler
func NewShoppingHandler(base BaseHandler, likes LikeService, cart CartService, favorites FavoritesService) *ShoppingHandler {
	return &ShoppingHandler{BaseHandler: base, likes: likes, cart: cart, favorites: favorites}
}

// ToggleLike godoc
// @Summary      Like or unlike a product
// @Description  Flips the caller's like on the product and returns the new state
// @Tags         shopping
// @Produce      json
// @Param        product_id  path  string  true  "Product ID"
// @Success      200 {object} shopping.LikeResult
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /like/{product_id}/ [post]
func (h *ShoppingHandler) ToggleLike(c *gin.Context) {
	productID, err := pathUUID(c, "product_id")
	if err != nil {
		h.HandleJSONError(c, err)
		return
	}

	result, err := h.likes.Toggle(c.Request.Context(), middleware.CurrentIdentity(c).UserID(), productID)
	if err != nil {
		h.HandleJSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AddToCart godoc
// @Summary      Add a product to the cart
// @Description  Adds one unit; repeated adds increase the quantity
// @Tags         shopping
// @Param        product_id  path  string  true  "Product ID"
// @Success      302 "Redirect to the shop"
// @Failure      404
// @Router       /add-to-cart/{product_id}/ [post]
func (h *ShoppingHandler) AddToCart(c *gin.Context) {
	productID, err := pathUUID(c, "product_id")
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if _, err := h.cart.Add(c.Request.Context(), middleware.CurrentIdentity(c).UserID(), productID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Redirect(c, defaultLandingPath)
}

// Cart godoc
// @Summary      Cart page
// @Tags         shopping
// @Produce      html
// @Success      200
// @Router       /cart/ [get]
func (h *ShoppingHandler) Cart(c *gin.Context) {
	view, err := h.cart.List(c.Request.Context(), middleware.CurrentIdentity(c).UserID())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Render(c, http.StatusOK, "cart.html", gin.H{
		"Title": "Cart",
		"Cart":  view,
	})
}

// RemoveFromCart godoc
// @Summary      Remove a product from the cart
// @Description  Deletes the cart line. Removing a product that is not in the cart is not an error.
// @Tags         shopping
// @Param        product_id  path  string  true  "Product ID"
// @Success      302 "Redirect to the cart"
// @Router       /cart/remove/{product_id}/ [post]
func (h *ShoppingHandler) RemoveFromCart(c *gin.Context) {
	productID, err := pathUUID(c, "product_id")
	if err != nil {
		// nothing can be in the cart under a malformed id
		h.Redirect(c, "/cart/")
		return
	}

	if err := h.cart.Remove(c.Request.Context(), middleware.CurrentIdentity(c).UserID(), productID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Redirect(c, "/cart/")
}

// Favorites godoc
// @Summary      Favorites page
// @Description  Liked products and products in the cart
// @Tags         shopping
// @Produce      html
// @Success      200
// @Router       /favorites/ [get]
func (h *ShoppingHandler) Favorites(c *gin.Context) {
	favorites, err := h.favorites.Get(c.Request.Context(), middleware.CurrentIdentity(c).UserID())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Render(c, http.StatusOK, "favorites.html", gin.H{
		"Title":     "Favorites",
		"Favorites": favorites,
	})
}
