package handler

import (
	"errors"
	"net/http"
	"strings"

	appidentity "github.com/fliamecomm/storefront/internal/application/identity"
	"github.com/fliamecomm/storefront/internal/domain/identity"
	"github.com/fliamecomm/storefront/internal/domain/shared"
	"github.com/fliamecomm/storefront/internal/infrastructure/config"
	"github.com/fliamecomm/storefront/internal/infrastructure/logger"
	"github.com/fliamecomm/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Flash texts shown around authentication
const (
	msgLoginSuccess    = "Login successful!"
	msgRegistered      = "Registration successful! Welcome to Mobile Shopy."
	msgCorrectErrors   = "Please correct the errors below."
	msgInvalidLogin    = "Invalid username or password."
	msgNotAdmin        = "You are not authorized as admin."
	msgLoggedOut       = "You have been logged out."
	msgUsernameTaken   = "Username already taken."
	defaultLandingPath = "/home/"
)

// AuthHandler serves login, registration, logout and the profile page
type AuthHandler struct {
	BaseHandler
	auth  AuthService
	shop  config.ShopConfig
	clock shared.Clock
}

// NewAuthHandler creates an AuthHandler. A nil clock means the system clock.
func NewAuthHandler(base BaseHandler, auth AuthService, shop config.ShopConfig, clock shared.Clock) *AuthHandler {
	if clock == nil {
		clock = shared.SystemClock
	}
	return &AuthHandler{BaseHandler: base, auth: auth, shop: shop, clock: clock}
}

// Root sends signed-in users to the shop and everyone else to registration
func (h *AuthHandler) Root(c *gin.Context) {
	if middleware.CurrentIdentity(c).IsAuthenticated() {
		h.Redirect(c, defaultLandingPath)
		return
	}
	h.Redirect(c, "/register/")
}

// LoginPage godoc
// @Summary      Login page
// @Description  Renders the login form. The register link is only shown inside the opening hours.
// @Tags         auth
// @Produce      html
// @Success      200
// @Success      302 "Already signed in"
// @Router       /login/ [get]
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if middleware.CurrentIdentity(c).IsAuthenticated() {
		h.Redirect(c, defaultLandingPath)
		return
	}
	h.renderLogin(c, http.StatusOK, "", nil)
}

// Login godoc
// @Summary      Sign in
// @Description  Checks the credentials and the chosen role. A role the account does not hold still signs the user in and redirects back to the login page.
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        username  formData  string  true   "Username"
// @Param        password  formData  string  true   "Password"
// @Param        role      formData  string  false  "admin or user"
// @Success      302 "Redirect to the dashboard, the shop, or back to login"
// @Failure      400 "Form errors"
// @Failure      401 "Invalid credentials"
// @Router       /login/ [post]
func (h *AuthHandler) Login(c *gin.Context) {
	if middleware.CurrentIdentity(c).IsAuthenticated() {
		h.Redirect(c, defaultLandingPath)
		return
	}

	var input appidentity.LoginInput
	if err := c.ShouldBind(&input); err != nil {
		h.Flash(c, FlashError, msgInvalidLogin)
		h.renderLogin(c, http.StatusBadRequest, input.Username, middleware.FieldMessages(err))
		return
	}

	result, err := h.auth.Login(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			h.Flash(c, FlashError, msgInvalidLogin)
			h.renderLogin(c, http.StatusUnauthorized, input.Username, nil)
			return
		}
		h.HandleDomainError(c, err)
		return
	}

	h.SetSession(c, result.Session)
	h.Flash(c, FlashSuccess, msgLoginSuccess)

	// the session stays established on a mismatch
	if mismatch := result.Mismatch(); errors.Is(mismatch, shared.ErrAuthorizationMismatch) {
		logger.GetGinLogger(c).Info("Login role mismatch",
			zap.String("username", result.User.Username),
			zap.String("role", input.Role),
		)
		h.Flash(c, FlashError, msgNotAdmin)
		h.Redirect(c, middleware.LoginPath)
		return
	}

	if result.Destination == identity.DestinationAdminDashboard {
		h.Redirect(c, "/admin-dashboard/")
		return
	}
	h.Redirect(c, safeNext(c.Query("next")))
}

func (h *AuthHandler) renderLogin(c *gin.Context, status int, username string, errs map[string]string) {
	h.Render(c, status, "login.html", gin.H{
		"Title":        "Login",
		"Username":     username,
		"Errors":       errs,
		"Next":         safeNextParam(c.Query("next")),
		"ShowRegister": identity.ShowRegisterWithin(h.clock().Hour(), h.shop.RegisterOpensAtHour, h.shop.RegisterClosesAtHour),
	})
}

// RegisterPage godoc
// @Summary      Registration page
// @Tags         auth
// @Produce      html
// @Success      200
// @Success      302 "Already signed in"
// @Router       /register/ [get]
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	if middleware.CurrentIdentity(c).IsAuthenticated() {
		h.Redirect(c, defaultLandingPath)
		return
	}
	h.renderRegister(c, http.StatusOK, appidentity.RegisterInput{}, nil)
}

// Register godoc
// @Summary      Create an account
// @Description  Creates a regular account and signs it in
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        username   formData  string  true   "Username"
// @Param        email      formData  string  false  "Email"
// @Param        password1  formData  string  true   "Password"
// @Param        password2  formData  string  true   "Password confirmation"
// @Success      302 "Redirect to the shop"
// @Failure      400 "Form errors"
// @Router       /register/ [post]
func (h *AuthHandler) Register(c *gin.Context) {
	if middleware.CurrentIdentity(c).IsAuthenticated() {
		h.Redirect(c, defaultLandingPath)
		return
	}

	var input appidentity.RegisterInput
	if err := c.ShouldBind(&input); err != nil {
		h.Flash(c, FlashError, msgCorrectErrors)
		h.renderRegister(c, http.StatusBadRequest, input, middleware.FieldMessages(err))
		return
	}

	result, err := h.auth.Register(c.Request.Context(), input)
	if err != nil {
		var fields appidentity.FieldErrors
		switch {
		case errors.As(err, &fields):
			h.Flash(c, FlashError, msgCorrectErrors)
			h.renderRegister(c, http.StatusBadRequest, input, fields)
		case errors.Is(err, shared.ErrAlreadyExists):
			h.Flash(c, FlashError, msgCorrectErrors)
			h.renderRegister(c, http.StatusBadRequest, input, map[string]string{"username": msgUsernameTaken})
		default:
			h.HandleDomainError(c, err)
		}
		return
	}

	h.SetSession(c, result.Session)
	h.Flash(c, FlashSuccess, msgRegistered)
	h.Redirect(c, defaultLandingPath)
}

func (h *AuthHandler) renderRegister(c *gin.Context, status int, input appidentity.RegisterInput, errs map[string]string) {
	input.Password, input.ConfirmPassword = "", ""
	h.Render(c, status, "register.html", gin.H{
		"Title":  "Register",
		"Form":   input,
		"Errors": errs,
	})
}

// Logout godoc
// @Summary      Sign out
// @Description  Revokes the session token and clears the cookie
// @Tags         auth
// @Success      302 "Redirect to the login page"
// @Router       /logout/ [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := h.SessionToken(c); token != "" {
		if err := h.auth.Logout(c.Request.Context(), token); err != nil {
			logger.GetGinLogger(c).Warn("Failed to revoke session", zap.Error(err))
		}
	}
	h.ClearSession(c)
	h.Flash(c, FlashInfo, msgLoggedOut)
	h.Redirect(c, middleware.LoginPath)
}

// Profile godoc
// @Summary      Profile page
// @Tags         auth
// @Produce      html
// @Success      200
// @Router       /profile/ [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	who := middleware.CurrentIdentity(c)
	user, err := h.auth.GetUser(c.Request.Context(), who.UserID())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Render(c, http.StatusOK, "profile.html", gin.H{
		"Title":   "Profile",
		"Account": user,
	})
}

// safeNext keeps post-login redirects on this site
func safeNext(next string) string {
	if p := safeNextParam(next); p != "" {
		return p
	}
	return defaultLandingPath
}

func safeNextParam(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return ""
	}
	return next
}
