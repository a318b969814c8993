package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NH-Portal/portal-service/internal/models"
	"github.com/NH-Portal/portal-service/internal/services"
	"github.com/NH-Portal/portal-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
	}
}

// Register handles student self-registration.
// @Summary Register a student account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration data"
// @Success 201 {object} models.Account
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Registering account", "account_id", req.ID)

	account, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, account.Public())
}

// Login verifies credentials and issues a session token.
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout invalidates the current session.
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString("session_token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "not authenticated"})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		h.RespondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Me returns the session of the calling account. Clients use it to pick
// the landing view for the role.
// @Summary Current session
// @Tags auth
// @Produce json
// @Success 200 {object} models.Session
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	sess, err := SessionFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "not authenticated"})
		return
	}

	c.JSON(http.StatusOK, sess)
}
