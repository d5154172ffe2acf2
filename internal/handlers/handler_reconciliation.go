package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvc
}

func registerReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvc) {
	h := &reconciliationHandler{reconciliationService: reconciliationService}

	recon := rg.Group("/reconciliation", middleware.RequireElevated())
	{
		recon.POST("/run", h.runAll)
		recon.POST("/accounts/:id", h.runAccount)
	}
}

func dryRunParam(c *gin.Context) (bool, bool) {
	dryRun, err := strconv.ParseBool(c.DefaultQuery("dry_run", "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "dry_run must be a boolean"})
		return false, false
	}
	return dryRun, true
}

// runAll godoc
// @Summary Reconcile every account
// @Description Recomputes each account's totals from its expenses and credits and overwrites drifted aggregates.
// @Tags reconciliation
// @Produce json
// @Param dry_run query bool false "Report without writing"
// @Success 200 {object} domain.ReconciliationReport
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /reconciliation/run [post]
func (h *reconciliationHandler) runAll(c *gin.Context) {
	dryRun, ok := dryRunParam(c)
	if !ok {
		return
	}

	report, err := h.reconciliationService.ReconcileAll(c.Request.Context(), dryRun)
	if err != nil {
		respondWithError(c, err, "Reconciliation failed")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Reconciliation run finished",
		slog.Bool("dry_run", dryRun), slog.Int("accounts", len(report.Accounts)), slog.Int("corrected", report.CorrectedCount))
	c.JSON(http.StatusOK, report)
}

// runAccount godoc
// @Summary Reconcile one account
// @Tags reconciliation
// @Produce json
// @Param id path string true "Account ID"
// @Param dry_run query bool false "Report without writing"
// @Success 200 {object} domain.AccountCorrection
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reconciliation/accounts/{id} [post]
func (h *reconciliationHandler) runAccount(c *gin.Context) {
	dryRun, ok := dryRunParam(c)
	if !ok {
		return
	}

	correction, err := h.reconciliationService.ReconcileAccount(c.Request.Context(), c.Param("id"), dryRun)
	if err != nil {
		respondWithError(c, err, "Reconciliation failed")
		return
	}
	c.JSON(http.StatusOK, correction)
}
