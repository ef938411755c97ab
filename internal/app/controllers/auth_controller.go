package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/services"
	"github.com/RachidAzrou/madrassa-sub000/internal/middleware"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/auth"
)

// AuthController handles login, logout and profile retrieval.
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login authenticates a user and opens a session
// @Summary Log in
// @Description Verifies credentials and sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.ProfileResponse "Authenticated profile"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Invalid email or password"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	user, token, err := c.authService.Login(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.SetCookie(auth.SessionCookieName, token, c.authService.CookieTTLSeconds(),
		"/", "", c.authService.SecureCookie(), true)
	ctx.Header(auth.SessionHeaderName, token)
	ctx.JSON(http.StatusOK, services.NewProfileResponse(user))
}

// Logout closes the current session
// @Summary Log out
// @Description Revokes the session and clears the cookie; idempotent
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse "Logged out"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.authService.Logout(ctx.Request.Context(), middleware.SessionToken(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.SetCookie(auth.SessionCookieName, "", -1, "/", "", c.authService.SecureCookie(), true)
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}

// Me returns the authenticated profile
// @Summary Current user
// @Description Returns the profile behind the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} dto.ProfileResponse "Authenticated profile"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if user == nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}
	ctx.JSON(http.StatusOK, services.NewProfileResponse(user))
}
