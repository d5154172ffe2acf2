package handlers

import (
	"encoding/csv"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/SscSPs/expense_tracker_app/internal/middleware"
	"github.com/SscSPs/expense_tracker_app/internal/utils"
	"github.com/gin-gonic/gin"
)

var allowedJustificationExt = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// expenseHandler handles HTTP requests related to expenses.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
	uploadDir      string
	maxUploadBytes int64
	currencyLabel  string
}

// expenseHandlerConfig carries the file and formatting settings of the expense routes.
type expenseHandlerConfig struct {
	UploadDir      string
	MaxUploadBytes int64
	CurrencyLabel  string
}

func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade, cfg expenseHandlerConfig) {
	h := &expenseHandler{
		expenseService: expenseService,
		uploadDir:      cfg.UploadDir,
		maxUploadBytes: cfg.MaxUploadBytes,
		currencyLabel:  cfg.CurrencyLabel,
	}

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/selected", h.listSelectedExpenses)
		expenses.GET("/export.csv", h.exportExpenses)
		expenses.POST("/invoice-selection", h.setInvoiceSelection)
		expenses.GET("/:id", h.getExpense)
		expenses.PUT("/:id", h.updateExpense)
		expenses.DELETE("/:id", h.deleteExpense)
		expenses.POST("/:id/justification", h.uploadJustification)
	}
}

// createExpense godoc
// @Summary Record an expense
// @Description Debits an account. Rejected with 422 when the amount exceeds the balance or the credited budget.
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ForbiddenResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 422 {object} InsufficientBalanceResponse
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, "create expense request", err)
		return
	}

	expense, err := h.expenseService.RecordExpense(c.Request.Context(), actor, req)
	if err != nil {
		respondWithError(c, err, "Failed to record expense")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Expense recorded",
		slog.String("expense_id", expense.ExpenseID), slog.String("account_id", expense.AccountID), slog.Int64("total", expense.Total))
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List expenses
// @Description Lists visible expenses, newest first, with cursor pagination.
// @Tags expenses
// @Produce json
// @Param account_id query string false "Account ID"
// @Param created_by query string false "Creator user ID"
// @Param category query string false "Category"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param selected_for_invoice query bool false "Invoice selection flag"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token of the next page"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, "list expenses query", err)
		return
	}

	resp, err := h.expenseService.ListExpenses(c.Request.Context(), actor, params)
	if err != nil {
		respondWithError(c, err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// listSelectedExpenses godoc
// @Summary List expenses selected for invoicing
// @Tags expenses
// @Produce json
// @Param account_id query string false "Account ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token of the next page"
// @Success 200 {object} dto.ListExpensesResponse
// @Security BearerAuth
// @Router /expenses/selected [get]
func (h *expenseHandler) listSelectedExpenses(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, "list selected expenses query", err)
		return
	}
	selected := true
	params.SelectedForInvoice = &selected

	resp, err := h.expenseService.ListExpenses(c.Request.Context(), actor, params)
	if err != nil {
		respondWithError(c, err, "Failed to list selected expenses")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// exportExpenses godoc
// @Summary Export expenses as CSV
// @Description Same filters as the listing, without pagination. Amounts use French grouping and the currency label.
// @Tags expenses
// @Produce text/csv
// @Param account_id query string false "Account ID"
// @Param category query string false "Category"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param selected_for_invoice query bool false "Invoice selection flag"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/export.csv [get]
func (h *expenseHandler) exportExpenses(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, "export expenses query", err)
		return
	}

	expenses, err := h.expenseService.ExportExpenses(c.Request.Context(), actor, params.ToExpenseFilter())
	if err != nil {
		respondWithError(c, err, "Failed to export expenses")
		return
	}

	filename := "expenses-" + time.Now().UTC().Format("20060102") + ".csv"
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	w.Comma = ';'
	_ = w.Write([]string{"Date", "Compte", "Désignation", "Fournisseur", "Catégorie", "Sous-catégorie", "Type", "Quantité", "Prix unitaire", "Total", "Saisi par", "Facture"})
	for i := range expenses {
		_ = w.Write(h.csvRow(&expenses[i]))
	}
	w.Flush()
	if err := w.Error(); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to write CSV export", slog.String("error", err.Error()))
	}
}

func (h *expenseHandler) csvRow(e *domain.ExpenseExportRow) []string {
	optional := func(v *int64) string {
		if v == nil {
			return ""
		}
		return utils.FormatAmount(*v, "")
	}
	unitPrice := ""
	if e.UnitPrice != nil {
		unitPrice = utils.FormatAmount(*e.UnitPrice, h.currencyLabel)
	}
	invoice := "non"
	if e.SelectedForInvoice {
		invoice = "oui"
	}
	return []string{
		e.ExpenseDate.Format("02/01/2006"),
		e.AccountName,
		e.Designation,
		e.Supplier,
		e.Category,
		e.Subcategory,
		e.ExpenseType,
		optional(e.Quantity),
		unitPrice,
		utils.FormatAmount(e.Total, h.currencyLabel),
		e.CreatedBy,
		invoice,
	}
}

// setInvoiceSelection godoc
// @Summary Select or unselect expenses for invoicing
// @Description Expenses the caller cannot see are ignored.
// @Tags expenses
// @Accept json
// @Produce json
// @Param selection body dto.InvoiceSelectionRequest true "Expense IDs and flag"
// @Success 200 {object} dto.InvoiceSelectionResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/invoice-selection [post]
func (h *expenseHandler) setInvoiceSelection(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.InvoiceSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, "invoice selection request", err)
		return
	}

	updated, err := h.expenseService.SetInvoiceSelection(c.Request.Context(), actor, req)
	if err != nil {
		respondWithError(c, err, "Failed to update invoice selection")
		return
	}
	c.JSON(http.StatusOK, dto.InvoiceSelectionResponse{Updated: updated})
}

// getExpense godoc
// @Summary Get an expense by ID
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// updateExpense godoc
// @Summary Update an expense
// @Description The amount difference is applied to the account. An increase goes through the balance and budget checks.
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param expense body dto.UpdateExpenseRequest true "Fields to update"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ForbiddenResponse "Not the creator, or edit window elapsed"
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} InsufficientBalanceResponse
// @Security BearerAuth
// @Router /expenses/{id} [put]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, "update expense request", err)
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to update expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// deleteExpense godoc
// @Summary Delete an expense
// @Description Removes the expense and gives its amount back to the account.
// @Tags expenses
// @Param id path string true "Expense ID"
// @Success 204 "No Content"
// @Failure 403 {object} ForbiddenResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	if err := h.expenseService.DeleteExpense(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondWithError(c, err, "Failed to delete expense")
		return
	}
	c.Status(http.StatusNoContent)
}

// uploadJustification godoc
// @Summary Attach a justification
// @Description Uploads a PDF or image and links it to the expense. Only the stored file name is kept.
// @Tags expenses
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Expense ID"
// @Param file formData file true "Justification document"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ForbiddenResponse
// @Failure 404 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id}/justification [post]
func (h *expenseHandler) uploadJustification(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "file exceeds " + strconv.FormatInt(h.maxUploadBytes, 10) + " bytes"})
			return
		}
		bindError(c, "justification upload", err)
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedJustificationExt[ext] {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unsupported file type " + ext})
		return
	}

	name, err := utils.RandomFileName(fileHeader.Filename)
	if err != nil {
		respondWithError(c, err, "Failed to store justification")
		return
	}
	if err := os.MkdirAll(h.uploadDir, 0o750); err != nil {
		respondWithError(c, err, "Failed to store justification")
		return
	}
	dst := filepath.Join(h.uploadDir, name)
	if err := c.SaveUploadedFile(fileHeader, dst); err != nil {
		respondWithError(c, err, "Failed to store justification")
		return
	}

	expense, err := h.expenseService.AttachJustification(c.Request.Context(), actor, c.Param("id"), name)
	if err != nil {
		if rmErr := os.Remove(dst); rmErr != nil {
			logger.Warn("Failed to remove orphan upload", slog.String("path", dst), slog.String("error", rmErr.Error()))
		}
		respondWithError(c, err, "Failed to attach justification")
		return
	}

	logger.Info("Justification attached", slog.String("expense_id", expense.ExpenseID), slog.String("file", name))
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}
