package handlers

import (
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/SscSPs/expense_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the generic error body returned by every handler.
type ErrorResponse struct {
	Error string `json:"error"`
}

// InsufficientBalanceResponse is returned with 422 when a debit exceeds the balance.
type InsufficientBalanceResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Available int64  `json:"available"`
	Requested int64  `json:"requested"`
	Shortfall int64  `json:"shortfall"`
}

// BudgetExceededResponse is returned with 422 when a debit would exceed the credited budget.
type BudgetExceededResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Budget    int64  `json:"budget"`
	Used      int64  `json:"used"`
	Requested int64  `json:"requested"`
}

// ForbiddenResponse is returned with 403; the window fields are only set for edit-window refusals.
type ForbiddenResponse struct {
	Error            string `json:"error"`
	Expired          bool   `json:"expired,omitempty"`
	RemainingSeconds *int64 `json:"remainingSeconds,omitempty"`
}

// respondWithError maps service errors onto HTTP responses and logs them at the matching level.
// fallback is the message sent for unexpected errors.
func respondWithError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var (
		insufficient *apperrors.InsufficientBalanceError
		budget       *apperrors.BudgetExceededError
		forbidden    *apperrors.ForbiddenError
		appErr       *apperrors.AppError
	)

	switch {
	case errors.As(err, &insufficient):
		logger.Warn("Debit rejected: insufficient balance", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, InsufficientBalanceResponse{
			Error:     "Insufficient balance",
			Code:      "INSUFFICIENT_BALANCE",
			Available: insufficient.Available,
			Requested: insufficient.Requested,
			Shortfall: insufficient.Shortfall(),
		})
	case errors.As(err, &budget):
		logger.Warn("Debit rejected: budget exceeded", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, BudgetExceededResponse{
			Error:     "Budget exceeded",
			Code:      "BUDGET_EXCEEDED",
			Budget:    budget.Budget,
			Used:      budget.Used,
			Requested: budget.Requested,
		})
	case errors.As(err, &forbidden):
		logger.Warn("Action forbidden", slog.String("error", err.Error()))
		resp := ForbiddenResponse{Error: err.Error(), Expired: forbidden.Expired}
		if forbidden.Expired || forbidden.Remaining > 0 {
			secs := int64(math.Ceil(forbidden.Remaining.Seconds()))
			resp.RemainingSeconds = &secs
		}
		c.JSON(http.StatusForbidden, resp)
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		logger.Warn("Unauthorized", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	case errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 500:
		logger.Warn("Request rejected", slog.String("error", err.Error()))
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}

// bindError answers 400 for a request body or query that failed binding.
func bindError(c *gin.Context, what string, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
}

// actorOrAbort returns the authenticated actor, answering 401 when there is none.
func actorOrAbort(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return domain.Actor{}, false
	}
	return actor, true
}
