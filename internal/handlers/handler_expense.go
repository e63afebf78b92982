package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/marcostaira/travel-expense/internal/core/ports/services"
	"github.com/marcostaira/travel-expense/internal/dto"
	"github.com/marcostaira/travel-expense/internal/middleware"
)

// expenseHandler handles HTTP requests for the expense lifecycle.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: es}
}

// registerExpenseRoutes registers the expense CRUD, workflow and attachment routes.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:id", h.getExpense)
		expenses.PUT("/:id", h.updateExpense)
		expenses.DELETE("/:id", h.removeExpense)

		expenses.POST("/:id/submit", h.submitExpense)
		expenses.POST("/:id/approve", h.approveExpense)
		expenses.POST("/:id/reject", h.rejectExpense)
		expenses.POST("/:id/adjust", h.adjustExpense)
		expenses.POST("/:id/reimburse", h.reimburseExpense)

		expenses.POST("/:id/files", h.uploadExpenseFile)
		expenses.DELETE("/:id/files/:fileID", h.deleteExpenseFile)
	}
}

// createExpense godoc
// @Summary Create a new expense
// @Description Creates a draft expense, normalizing its amount to BRL and evaluating policy compliance.
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse "Invalid input or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), actor, req)
	if err != nil {
		respondWithError(c, err, "Failed to create expense")
		return
	}

	logger.Info("Expense created", slog.String("expense_id", expense.ExpenseID))
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List expenses
// @Description Lists expenses visible to the caller's access scope, with filters and pagination.
// @Tags expenses
// @Produce json
// @Param status query string false "Filter by status"
// @Param category query string false "Filter by category"
// @Param dateFrom query string false "Filter by date (inclusive, YYYY-MM-DD)"
// @Param dateTo query string false "Filter by date (inclusive, YYYY-MM-DD)"
// @Param tripID query string false "Filter by trip"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	expenses, total, err := h.expenseService.ListExpenses(c.Request.Context(), actor, params)
	if err != nil {
		respondWithError(c, err, "Failed to list expenses")
		return
	}

	c.JSON(http.StatusOK, dto.ToListExpensesResponse(expenses, total, params.Page, params.Limit))
}

// getExpense godoc
// @Summary Get an expense
// @Description Retrieves a single expense with its attachments and audit trail.
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} ErrorResponse "Expense not found"
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.GetExpense(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve expense")
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// updateExpense godoc
// @Summary Update an expense
// @Description Updates a draft expense, recomputing the BRL amount and policy verdict when relevant fields change.
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param expense body dto.UpdateExpenseRequest true "Fields to update"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} ErrorResponse "Expense not found"
// @Failure 422 {object} ErrorResponse "Expense is not editable in its current state"
// @Security BearerAuth
// @Router /expenses/{id} [put]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to update expense")
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// removeExpense godoc
// @Summary Delete an expense
// @Description Deletes a draft expense and its stored attachments.
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} ErrorResponse "Expense not found"
// @Failure 422 {object} ErrorResponse "Expense is not a draft"
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (h *expenseHandler) removeExpense(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	if err := h.expenseService.RemoveExpense(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondWithError(c, err, "Failed to delete expense")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Despesa excluída"})
}

// submitExpense godoc
// @Summary Submit an expense for approval
// @Description Re-evaluates policy compliance and moves the draft into the approval queue. Policy errors block submission.
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} ErrorResponse "Expense not found"
// @Failure 422 {object} ErrorResponse "Expense is not submittable"
// @Security BearerAuth
// @Router /expenses/{id}/submit [post]
func (h *expenseHandler) submitExpense(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.SubmitExpense(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to submit expense")
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// approveExpense godoc
// @Summary Approve a submitted expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param decision body dto.ApproveExpenseRequest false "Optional approval notes"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 403 {object} ErrorResponse "Caller is not an approver"
// @Failure 404 {object} ErrorResponse "Expense not found"
// @Security BearerAuth
// @Router /expenses/{id}/approve [post]
func (h *expenseHandler) approveExpense(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.ApproveExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	expense, err := h.expenseService.ApproveExpense(c.Request.Context(), actor, c.Param("id"), req.Notes)
	if err != nil {
		respondWithError(c, err, "Failed to approve expense")
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// rejectExpense godoc
// @Summary Reject a submitted expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param decision body dto.RejectExpenseRequest true "Rejection reason"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 403 {object} ErrorResponse "Caller is not an approver"
// @Failure 404 {object} ErrorResponse "Expense not found"
// @Security BearerAuth
// @Router /expenses/{id}/reject [post]
func (h *expenseHandler) rejectExpense(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.RejectExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	expense, err := h.expenseService.RejectExpense(c.Request.Context(), actor, c.Param("id"), req.Reason)
	if err != nil {
		respondWithError(c, err, "Failed to reject expense")
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// adjustExpense godoc
// @Summary Adjust a submitted expense
// @Description Approves the expense with a corrected BRL amount, recording the original value in the audit trail.
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param adjustment body dto.AdjustExpenseRequest true "Adjusted amount and reason"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 403 {object} ErrorResponse "Caller is not an approver"
// @Failure 404 {object} ErrorResponse "Expense not found"
// @Security BearerAuth
// @Router /expenses/{id}/adjust [post]
func (h *expenseHandler) adjustExpense(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.AdjustExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	expense, err := h.expenseService.AdjustExpense(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to adjust expense")
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// reimburseExpense godoc
// @Summary Mark an approved expense as reimbursed
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 403 {object} ErrorResponse "Caller is not an administrator"
// @Failure 404 {object} ErrorResponse "Expense not found"
// @Security BearerAuth
// @Router /expenses/{id}/reimburse [post]
func (h *expenseHandler) reimburseExpense(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.ReimburseExpense(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to reimburse expense")
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// uploadExpenseFile godoc
// @Summary Attach a receipt file to an expense
// @Description Uploads a receipt (JPEG, PNG, WebP or PDF, up to 10MB). The first attachment marks the expense as having a receipt.
// @Tags expenses
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Expense ID"
// @Param file formData file true "Receipt file"
// @Success 201 {object} dto.ExpenseFileResponse
// @Failure 400 {object} ErrorResponse "Missing or unsupported file"
// @Failure 404 {object} ErrorResponse "Expense not found"
// @Security BearerAuth
// @Router /expenses/{id}/files [post]
func (h *expenseHandler) uploadExpenseFile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Arquivo é obrigatório"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Falha ao ler o arquivo enviado"})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		logger.Error("Failed to read uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Falha ao ler o arquivo enviado"})
		return
	}

	upload := dto.FileUpload{
		FileName: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Size:     fileHeader.Size,
		Data:     data,
	}

	file, err := h.expenseService.UploadExpenseFile(c.Request.Context(), actor, c.Param("id"), upload)
	if err != nil {
		respondWithError(c, err, "Failed to upload file")
		return
	}

	logger.Info("Expense file uploaded", slog.String("expense_id", c.Param("id")), slog.String("file_id", file.FileID))
	c.JSON(http.StatusCreated, dto.ExpenseFileResponse{
		FileID:     file.FileID,
		URL:        file.URL,
		MimeType:   file.MimeType,
		Size:       file.Size,
		CreatedAt:  file.CreatedAt,
		StorageKey: file.StorageKey,
	})
}

// deleteExpenseFile godoc
// @Summary Remove a receipt file from an expense
// @Description Deletes an attachment. Removing the last attachment clears the expense's receipt flag.
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Param fileID path string true "File ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} ErrorResponse "Expense or file not found"
// @Security BearerAuth
// @Router /expenses/{id}/files/{fileID} [delete]
func (h *expenseHandler) deleteExpenseFile(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpenseFile(c.Request.Context(), actor, c.Param("id"), c.Param("fileID")); err != nil {
		respondWithError(c, err, "Failed to delete file")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Anexo removido"})
}
