package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/SscSPs/expense_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type creditHandler struct {
	creditService portssvc.CreditSvcFacade
}

func registerCreditRoutes(rg *gin.RouterGroup, creditService portssvc.CreditSvcFacade) {
	h := &creditHandler{creditService: creditService}

	rg.POST("/accounts/:id/credits", h.createCredit)
	rg.GET("/accounts/:id/credits", h.listCredits)
	rg.DELETE("/credits/:kind/:id", h.deleteCredit)
}

// createCredit godoc
// @Summary Credit an account
// @Description Records an ordinary or special credit (elevated roles only).
// @Tags credits
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param credit body dto.CreateCreditRequest true "Credit details"
// @Success 201 {object} dto.CreditResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ForbiddenResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id}/credits [post]
func (h *creditHandler) createCredit(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, "create credit request", err)
		return
	}

	credit, err := h.creditService.RecordCredit(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to record credit")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Credit recorded",
		slog.String("credit_id", credit.CreditID), slog.String("account_id", credit.AccountID), slog.Int64("amount", credit.Amount))
	c.JSON(http.StatusCreated, dto.ToCreditResponse(credit))
}

// listCredits godoc
// @Summary List the credits of an account
// @Description Ordinary and special credits merged, newest first.
// @Tags credits
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.ListCreditsResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id}/credits [get]
func (h *creditHandler) listCredits(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	credits, err := h.creditService.ListCredits(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to list credits")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCreditsResponse(credits))
}

// deleteCredit godoc
// @Summary Delete a credit
// @Description Removes a credit. Refused with 422 when the amount has already been spent.
// @Tags credits
// @Param kind path string true "Credit kind" Enums(ordinary, special)
// @Param id path string true "Credit ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ForbiddenResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} InsufficientBalanceResponse
// @Security BearerAuth
// @Router /credits/{kind}/{id} [delete]
func (h *creditHandler) deleteCredit(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	kind := domain.CreditKind(c.Param("kind"))
	if !kind.IsValid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "kind must be ordinary or special"})
		return
	}

	if err := h.creditService.DeleteCredit(c.Request.Context(), actor, kind, c.Param("id")); err != nil {
		respondWithError(c, err, "Failed to delete credit")
		return
	}
	c.Status(http.StatusNoContent)
}
