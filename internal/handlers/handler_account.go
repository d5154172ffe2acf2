package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/SscSPs/expense_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := &accountHandler{accountService: accountService}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deleteAccount)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Opens an account. A non-zero initial amount is recorded as an initial credit.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ForbiddenResponse "Elevated role required"
// @Failure 409 {object} ErrorResponse "An active account already has this name"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, "create account request", err)
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to create account", slog.String("account_name", req.AccountName), slog.String("account_type", string(req.AccountType)))

	account, err := h.accountService.CreateAccount(c.Request.Context(), actor, req)
	if err != nil {
		respondWithError(c, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists the accounts visible to the caller. Directors only see the accounts assigned to them.
// @Tags accounts
// @Produce  json
// @Param type query string false "Account type"
// @Param include_inactive query bool false "Include deactivated accounts"
// @Param limit query int false "Limit" default(100)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, "list accounts query", err)
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), actor, params)
	if err != nil {
		respondWithError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Account not found or not visible"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	account, err := h.accountService.GetAccountByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates name, type, owner or active flag. Balances cannot be edited.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ForbiddenResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, "update account request", err)
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to update account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Deactivate or delete an account
// @Description Deactivates the account. With hard=true the account and its credits are removed, which is only allowed when nothing was spent.
// @Tags accounts
// @Param   id path string true "Account ID"
// @Param   hard query bool false "Remove the account instead of deactivating it"
// @Success 204 "No Content"
// @Failure 403 {object} ForbiddenResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Account has recorded spending"
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	hard, err := strconv.ParseBool(c.DefaultQuery("hard", "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "hard must be a boolean"})
		return
	}

	accountID := c.Param("id")
	if hard {
		err = h.accountService.DeleteAccount(c.Request.Context(), actor, accountID)
	} else {
		err = h.accountService.DeactivateAccount(c.Request.Context(), actor, accountID)
	}
	if err != nil {
		respondWithError(c, err, "Failed to delete account")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account removed", slog.String("account_id", accountID), slog.Bool("hard", hard))
	c.Status(http.StatusNoContent)
}
