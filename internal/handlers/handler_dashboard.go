package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

type dashboardHandler struct {
	dashboardService portssvc.DashboardSvc
}

func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvc) {
	h := &dashboardHandler{dashboardService: dashboardService}
	rg.GET("/dashboard/summary", h.summary)
}

// summary godoc
// @Summary Dashboard summary
// @Description Totals overall and per account type, with the budget utilisation of each visible account.
// @Tags dashboard
// @Produce json
// @Success 200 {object} domain.DashboardSummary
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/summary [get]
func (h *dashboardHandler) summary(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	summary, err := h.dashboardService.Summary(c.Request.Context(), actor)
	if err != nil {
		respondWithError(c, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, summary)
}
