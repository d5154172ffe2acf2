package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/SscSPs/expense_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles authentication related requests.
type authHandler struct {
	authService portssvc.AuthSvc
}

// registerAuthRoutes sets up the public authentication routes; both logins share one rate limit.
func registerAuthRoutes(rg *gin.RouterGroup, authService portssvc.AuthSvc, loginLimit gin.HandlerFunc) {
	h := &authHandler{authService: authService}

	auth := rg.Group("/auth")
	{
		auth.POST("/login", loginLimit, h.login)
		auth.POST("/google", loginLimit, h.loginWithGoogle)
	}
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, "login request", err)
		return
	}

	user, token, expiresAt, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondWithError(c, err, "Failed to log in")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User logged in", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt, User: dto.ToUserResponse(user)})
}

// loginWithGoogle godoc
// @Summary Google sign-in
// @Description Validates a Google ID token and logs in the active user with the same email.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/google [post]
func (h *authHandler) loginWithGoogle(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, "google login request", err)
		return
	}

	user, token, expiresAt, err := h.authService.LoginWithGoogle(c.Request.Context(), req.IDToken)
	if err != nil {
		respondWithError(c, err, "Failed to log in")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User logged in with Google", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt, User: dto.ToUserResponse(user)})
}
