package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NH-Portal/portal-service/internal/models"
	"github.com/NH-Portal/portal-service/internal/services"
	"github.com/NH-Portal/portal-service/internal/utils"
)

type AccountHandler struct {
	BaseHandler
	accountService services.AccountService
}

func NewAccountHandler(accountService services.AccountService, logger utils.Logger) *AccountHandler {
	return &AccountHandler{
		BaseHandler:    NewBaseHandler(logger),
		accountService: accountService,
	}
}

// CreateAccount creates a single account.
// @Summary Create account
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body models.AccountCreateRequest true "Account data"
// @Success 201 {object} models.Account
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req models.AccountCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	createdBy, err := AccountIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "not authenticated"})
		return
	}

	h.LogRequest(c, "Creating account", "account_id", req.ID)

	account, err := h.accountService.Create(c.Request.Context(), &req, createdBy)
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, account.Public())
}

// ListAccounts lists every account.
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	h.LogRequest(c, "Listing accounts")

	accounts, err := h.accountService.List(c.Request.Context())
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}

	public := make([]models.Account, len(accounts))
	for i, account := range accounts {
		public[i] = account.Public()
	}

	c.JSON(http.StatusOK, gin.H{
		"accounts": public,
		"total":    len(public),
	})
}

// GetAccount retrieves one account by ID.
// @Summary Get account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} models.Account
// @Failure 404 {object} ErrorResponse
// @Router /accounts/{id} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	id := c.Param("id")

	account, err := h.accountService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, account.Public())
}

// UpdateAccount applies a partial update. An empty password field leaves
// the stored credential unchanged.
// @Summary Update account
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body models.AccountUpdateRequest true "Fields to update"
// @Success 200 {object} models.Account
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /accounts/{id} [put]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	id := c.Param("id")

	var req models.AccountUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	updatedBy, err := AccountIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "not authenticated"})
		return
	}

	h.LogRequest(c, "Updating account", "account_id", id)

	account, err := h.accountService.Update(c.Request.Context(), id, &req, updatedBy)
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, account.Public())
}

// DeleteAccount removes an account permanently.
// @Summary Delete account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /accounts/{id} [delete]
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id := c.Param("id")

	h.LogRequest(c, "Deleting account", "account_id", id)

	if err := h.accountService.Delete(c.Request.Context(), id); err != nil {
		h.RespondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
