package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marcostaira/travel-expense/internal/apperrors"
	"github.com/marcostaira/travel-expense/internal/core/domain"
	portsrepo "github.com/marcostaira/travel-expense/internal/core/ports/repositories"
	portssvc "github.com/marcostaira/travel-expense/internal/core/ports/services"
	"github.com/marcostaira/travel-expense/internal/dto"
	"github.com/marcostaira/travel-expense/internal/middleware"
)

// expenseService orchestrates the expense lifecycle: creation in DRAFT with a
// derived base amount and policy verdict, the submit/approve/reject/adjust
// workflow, reimbursement, and receipt file handling.
type expenseService struct {
	expenseRepo portsrepo.ExpenseRepositoryFacade
	ccRepo      portsrepo.CostCenterRepository
	projectRepo portsrepo.ProjectRepository
	tripRepo    portsrepo.TripReader
	fxSvc       portssvc.FxSvcFacade
	policySvc   portssvc.PolicyEvaluator
	userSvc     portssvc.UserSvcFacade
	storage     portssvc.FileStorage
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	ccRepo portsrepo.CostCenterRepository,
	projectRepo portsrepo.ProjectRepository,
	tripRepo portsrepo.TripReader,
	fxSvc portssvc.FxSvcFacade,
	policySvc portssvc.PolicyEvaluator,
	userSvc portssvc.UserSvcFacade,
	storage portssvc.FileStorage,
) portssvc.ExpenseSvcFacade {
	return &expenseService{
		expenseRepo: expenseRepo,
		ccRepo:      ccRepo,
		projectRepo: projectRepo,
		tripRepo:    tripRepo,
		fxSvc:       fxSvc,
		policySvc:   policySvc,
		userSvc:     userSvc,
		storage:     storage,
	}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// findExpenseForActor loads an expense and enforces the actor's access scope.
// A record the scope does not allow is reported as not found, so callers
// cannot distinguish foreign records from missing ones.
func (s *expenseService) findExpenseForActor(ctx context.Context, actor domain.Actor, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, actor.TenantID, expenseID)
	if err != nil {
		return nil, err
	}

	scope, err := s.userSvc.ScopeFor(ctx, actor)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve access scope: %w", err)
	}
	if !scope.Allows(expense.UserID, expense.CostCenterID) {
		return nil, apperrors.ErrNotFound
	}
	return expense, nil
}

// validateReferences checks that the cost center, project and trip an expense
// points to exist, are active, and belong to the actor's tenant.
func (s *expenseService) validateReferences(ctx context.Context, tenantID, costCenterID string, projectID, tripID *string) error {
	if _, err := s.ccRepo.FindActiveCostCenterByID(ctx, tenantID, costCenterID); err != nil {
		return apperrors.NewValidationError("Centro de custo não encontrado ou inativo")
	}
	if projectID != nil {
		if _, err := s.projectRepo.FindActiveProjectByID(ctx, tenantID, *projectID); err != nil {
			return apperrors.NewValidationError("Projeto não encontrado ou inativo")
		}
	}
	if tripID != nil {
		if _, err := s.tripRepo.FindTripByID(ctx, tenantID, *tripID); err != nil {
			return apperrors.NewValidationError("Viagem não encontrada")
		}
	}
	return nil
}

// CreateExpense creates a new expense in DRAFT. The base-currency amount and
// the policy verdict are computed at creation time.
func (s *expenseService) CreateExpense(ctx context.Context, actor domain.Actor, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationError("Valor deve ser positivo")
	}
	if req.KmDriven != nil && req.Category != domain.CategoryTransport {
		return nil, apperrors.NewValidationError("Quilometragem só é permitida para despesas de transporte")
	}
	if err := s.validateReferences(ctx, actor.TenantID, req.CostCenterID, req.ProjectID, req.TripID); err != nil {
		return nil, err
	}

	amount := req.Amount.Round(2)
	amountBrl, err := s.fxSvc.ConvertToBase(ctx, amount, req.Currency)
	if err != nil {
		return nil, fmt.Errorf("failed to convert amount to base currency: %w", err)
	}

	check, err := s.policySvc.Evaluate(ctx, actor.TenantID, req.Category, req.Date, actor.UserID, amountBrl, req.HasReceipt)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate policy: %w", err)
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:    uuid.NewString(),
		TenantID:     actor.TenantID,
		UserID:       actor.UserID,
		CostCenterID: req.CostCenterID,
		ProjectID:    req.ProjectID,
		TripID:       req.TripID,
		Category:     req.Category,
		Date:         req.Date,
		Currency:     strings.ToUpper(req.Currency),
		Amount:       amount,
		AmountBrl:    amountBrl,
		HasReceipt:   req.HasReceipt,
		Vendor:       req.Vendor,
		KmDriven:     req.KmDriven,
		Status:       domain.ExpenseDraft,
		PolicyCheck:  check,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		logger.Error("Failed to save expense", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	logger.Info("Expense created",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("category", string(expense.Category)),
		slog.String("amount_brl", expense.AmountBrl.String()))
	return &expense, nil
}

// GetExpense retrieves one expense within the actor's scope.
func (s *expenseService) GetExpense(ctx context.Context, actor domain.Actor, expenseID string) (*domain.Expense, error) {
	return s.findExpenseForActor(ctx, actor, expenseID)
}

// ListExpenses retrieves a page of expenses visible to the actor.
func (s *expenseService) ListExpenses(ctx context.Context, actor domain.Actor, params dto.ListExpensesParams) ([]domain.Expense, int, error) {
	scope, err := s.userSvc.ScopeFor(ctx, actor)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to resolve access scope: %w", err)
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := portsrepo.ExpenseFilter{
		TenantID: actor.TenantID,
		Scope:    scope,
		Status:   params.Status,
		Category: params.Category,
		DateFrom: params.DateFrom,
		DateTo:   params.DateTo,
		TripID:   params.TripID,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}
	return s.expenseRepo.ListExpenses(ctx, filter)
}

// UpdateExpense edits an expense. Only DRAFT expenses are editable (admins may
// edit regardless of status); the base amount and policy verdict are recomputed
// when a relevant field changes.
func (s *expenseService) UpdateExpense(ctx context.Context, actor domain.Actor, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	expense, err := s.findExpenseForActor(ctx, actor, expenseID)
	if err != nil {
		return nil, err
	}

	if expense.Status != domain.ExpenseDraft && actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewBusinessRuleError("Apenas despesas em rascunho podem ser editadas")
	}

	recompute := false
	if req.Category != nil && *req.Category != expense.Category {
		expense.Category = *req.Category
		recompute = true
	}
	if req.Date != nil && !req.Date.Equal(expense.Date) {
		expense.Date = *req.Date
		recompute = true
	}
	if req.Currency != nil && strings.ToUpper(*req.Currency) != expense.Currency {
		expense.Currency = strings.ToUpper(*req.Currency)
		recompute = true
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, apperrors.NewValidationError("Valor deve ser positivo")
		}
		expense.Amount = req.Amount.Round(2)
		recompute = true
	}
	if req.HasReceipt != nil && *req.HasReceipt != expense.HasReceipt {
		expense.HasReceipt = *req.HasReceipt
		recompute = true
	}
	if req.ProjectID != nil || req.TripID != nil {
		projectID := expense.ProjectID
		if req.ProjectID != nil {
			projectID = req.ProjectID
		}
		tripID := expense.TripID
		if req.TripID != nil {
			tripID = req.TripID
		}
		if err := s.validateReferences(ctx, actor.TenantID, expense.CostCenterID, projectID, tripID); err != nil {
			return nil, err
		}
		expense.ProjectID = projectID
		expense.TripID = tripID
	}
	if req.Vendor != nil {
		expense.Vendor = *req.Vendor
	}
	if req.KmDriven != nil {
		if expense.Category != domain.CategoryTransport {
			return nil, apperrors.NewValidationError("Quilometragem só é permitida para despesas de transporte")
		}
		expense.KmDriven = req.KmDriven
	}

	if recompute {
		amountBrl, err := s.fxSvc.ConvertToBase(ctx, expense.Amount, expense.Currency)
		if err != nil {
			return nil, fmt.Errorf("failed to convert amount to base currency: %w", err)
		}
		expense.AmountBrl = amountBrl

		check, err := s.policySvc.Evaluate(ctx, actor.TenantID, expense.Category, expense.Date, expense.UserID, amountBrl, expense.HasReceipt)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate policy: %w", err)
		}
		expense.PolicyCheck = check
	}

	expense.LastUpdatedAt = time.Now()
	expense.LastUpdatedBy = actor.UserID

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return expense, nil
}

// RemoveExpense deletes a DRAFT expense along with its attached files; admins
// may delete regardless of status. Storage deletions are best effort; a failed
// object removal never blocks the delete.
func (s *expenseService) RemoveExpense(ctx context.Context, actor domain.Actor, expenseID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.findExpenseForActor(ctx, actor, expenseID)
	if err != nil {
		return err
	}
	if expense.Status != domain.ExpenseDraft && actor.Role != domain.RoleAdmin {
		return apperrors.NewBusinessRuleError("Apenas despesas em rascunho podem ser excluídas")
	}

	for _, file := range expense.Files {
		if err := s.storage.Delete(ctx, file.StorageKey); err != nil {
			logger.Warn("Failed to delete expense file from storage",
				slog.String("expense_id", expenseID),
				slog.String("storage_key", file.StorageKey),
				slog.String("error", err.Error()))
		}
	}

	if err := s.expenseRepo.DeleteExpense(ctx, actor.TenantID, expenseID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	logger.Info("Expense deleted", slog.String("expense_id", expenseID))
	return nil
}

// SubmitExpense moves a DRAFT expense to SUBMITTED. The policy verdict is
// recomputed first; an invalid verdict blocks submission.
func (s *expenseService) SubmitExpense(ctx context.Context, actor domain.Actor, expenseID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.findExpenseForActor(ctx, actor, expenseID)
	if err != nil {
		return nil, err
	}
	if !expense.CanTransitionTo(domain.ExpenseSubmitted) {
		return nil, apperrors.NewBusinessRuleError("Apenas despesas em rascunho podem ser enviadas")
	}

	check, err := s.policySvc.Evaluate(ctx, actor.TenantID, expense.Category, expense.Date, expense.UserID, expense.AmountBrl, expense.HasReceipt)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate policy: %w", err)
	}
	expense.PolicyCheck = check

	if !check.Valid {
		return nil, apperrors.NewBusinessRuleError(fmt.Sprintf("Despesa não está em conformidade com a política: %s", strings.Join(check.Errors, "; ")))
	}

	expense.Status = domain.ExpenseSubmitted
	expense.LastUpdatedAt = time.Now()
	expense.LastUpdatedBy = actor.UserID

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		return nil, fmt.Errorf("failed to submit expense: %w", err)
	}

	logger.Info("Expense submitted", slog.String("expense_id", expenseID))
	return expense, nil
}

// ApproveExpense moves a SUBMITTED expense to APPROVED. Managers and admins only.
func (s *expenseService) ApproveExpense(ctx context.Context, actor domain.Actor, expenseID string, notes string) (*domain.Expense, error) {
	return s.decide(ctx, actor, expenseID, domain.ExpenseApproved, domain.NoteApproval, func(e *domain.Expense) (string, error) {
		return notes, nil
	})
}

// RejectExpense moves a SUBMITTED expense to REJECTED. A reason is mandatory.
func (s *expenseService) RejectExpense(ctx context.Context, actor domain.Actor, expenseID string, reason string) (*domain.Expense, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.NewValidationError("Motivo da rejeição é obrigatório")
	}
	return s.decide(ctx, actor, expenseID, domain.ExpenseRejected, domain.NoteRejection, func(e *domain.Expense) (string, error) {
		return reason, nil
	})
}

// AdjustExpense approves with a reduced base amount. The adjusted value and a
// reason are mandatory; for base-currency expenses the original amount is
// updated too, so both stay consistent.
func (s *expenseService) AdjustExpense(ctx context.Context, actor domain.Actor, expenseID string, req dto.AdjustExpenseRequest) (*domain.Expense, error) {
	if strings.TrimSpace(req.Reason) == "" {
		return nil, apperrors.NewValidationError("Motivo do ajuste é obrigatório")
	}
	if req.AdjustedAmount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationError("Valor ajustado deve ser positivo")
	}

	return s.decide(ctx, actor, expenseID, domain.ExpenseAdjusted, domain.NoteAdjustment, func(e *domain.Expense) (string, error) {
		previous := e.AmountBrl
		adjusted := req.AdjustedAmount.Round(2)
		e.AmountBrl = adjusted
		if e.Currency == domain.BaseCurrencyCode {
			e.Amount = adjusted
		}
		return fmt.Sprintf("[Ajuste] Valor alterado de %s para %s. Motivo: %s",
			previous.StringFixed(2), adjusted.StringFixed(2), req.Reason), nil
	})
}

// decide applies one approver decision to a SUBMITTED expense: permission and
// transition checks, the mutation, the status change, and the audit note the
// mutation composed.
func (s *expenseService) decide(ctx context.Context, actor domain.Actor, expenseID string, target domain.ExpenseStatus, action domain.NoteAction, mutate func(*domain.Expense) (string, error)) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsApprover() {
		return nil, apperrors.ErrForbidden
	}

	expense, err := s.findExpenseForActor(ctx, actor, expenseID)
	if err != nil {
		return nil, err
	}
	if !expense.CanTransitionTo(target) {
		return nil, apperrors.NewBusinessRuleError("Apenas despesas enviadas podem ser avaliadas")
	}

	message, err := mutate(expense)
	if err != nil {
		return nil, err
	}

	expense.Status = target
	expense.LastUpdatedAt = time.Now()
	expense.LastUpdatedBy = actor.UserID

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	if message != "" {
		note := domain.WorkflowNote{
			NoteID:    uuid.NewString(),
			ActorID:   actor.UserID,
			Action:    action,
			Message:   message,
			CreatedAt: time.Now(),
		}
		if err := s.expenseRepo.SaveExpenseNote(ctx, expense.ExpenseID, note); err != nil {
			return nil, fmt.Errorf("failed to save expense note: %w", err)
		}
		expense.Notes = append(expense.Notes, note)
	}

	logger.Info("Expense decision applied",
		slog.String("expense_id", expenseID),
		slog.String("status", string(target)))
	return expense, nil
}

// ReimburseExpense moves an APPROVED or ADJUSTED expense to REIMBURSED.
// Admin only.
func (s *expenseService) ReimburseExpense(ctx context.Context, actor domain.Actor, expenseID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if actor.Role != domain.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	expense, err := s.findExpenseForActor(ctx, actor, expenseID)
	if err != nil {
		return nil, err
	}
	if !expense.CanTransitionTo(domain.ExpenseReimbursed) {
		return nil, apperrors.NewBusinessRuleError("Apenas despesas aprovadas podem ser reembolsadas")
	}

	expense.Status = domain.ExpenseReimbursed
	expense.LastUpdatedAt = time.Now()
	expense.LastUpdatedBy = actor.UserID

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		return nil, fmt.Errorf("failed to reimburse expense: %w", err)
	}

	note := domain.WorkflowNote{
		NoteID:    uuid.NewString(),
		ActorID:   actor.UserID,
		Action:    domain.NoteReimbursed,
		Message:   fmt.Sprintf("Reembolso de R$ %s efetuado", expense.AmountBrl.StringFixed(2)),
		CreatedAt: time.Now(),
	}
	if err := s.expenseRepo.SaveExpenseNote(ctx, expense.ExpenseID, note); err != nil {
		return nil, fmt.Errorf("failed to save expense note: %w", err)
	}
	expense.Notes = append(expense.Notes, note)

	logger.Info("Expense reimbursed", slog.String("expense_id", expenseID))
	return expense, nil
}

// UploadExpenseFile stores a receipt file and attaches it to the expense. The
// first attached file marks the expense as having a receipt, and the policy
// verdict is recomputed so a missing-receipt error clears.
func (s *expenseService) UploadExpenseFile(ctx context.Context, actor domain.Actor, expenseID string, upload dto.FileUpload) (*domain.ExpenseFile, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.findExpenseForActor(ctx, actor, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.Status == domain.ExpenseRejected || expense.Status == domain.ExpenseReimbursed {
		return nil, apperrors.NewBusinessRuleError("Despesa em estado final não aceita anexos")
	}

	result, err := s.storage.Upload(ctx, upload.Data, upload.FileName, upload.MimeType, "expenses", actor.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	file := domain.ExpenseFile{
		FileID:     uuid.NewString(),
		ExpenseID:  expense.ExpenseID,
		URL:        result.URL,
		StorageKey: result.StorageKey,
		MimeType:   upload.MimeType,
		Size:       upload.Size,
		CreatedAt:  time.Now(),
	}
	if err := s.expenseRepo.SaveExpenseFile(ctx, file); err != nil {
		return nil, fmt.Errorf("failed to save expense file: %w", err)
	}

	if !expense.HasReceipt {
		if err := s.refreshReceiptFlag(ctx, expense, true, actor.UserID); err != nil {
			return nil, err
		}
	}

	logger.Info("Expense file uploaded",
		slog.String("expense_id", expenseID),
		slog.String("file_id", file.FileID))
	return &file, nil
}

// DeleteExpenseFile detaches a receipt file and removes the stored object.
// When the last file goes, the receipt flag clears and the verdict is
// recomputed.
func (s *expenseService) DeleteExpenseFile(ctx context.Context, actor domain.Actor, expenseID, fileID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.findExpenseForActor(ctx, actor, expenseID)
	if err != nil {
		return err
	}

	var target *domain.ExpenseFile
	for i := range expense.Files {
		if expense.Files[i].FileID == fileID {
			target = &expense.Files[i]
			break
		}
	}
	if target == nil {
		return apperrors.ErrNotFound
	}

	if err := s.storage.Delete(ctx, target.StorageKey); err != nil {
		logger.Warn("Failed to delete expense file from storage",
			slog.String("storage_key", target.StorageKey),
			slog.String("error", err.Error()))
	}

	remaining, err := s.expenseRepo.DeleteExpenseFile(ctx, expense.ExpenseID, fileID)
	if err != nil {
		return fmt.Errorf("failed to delete expense file: %w", err)
	}

	if remaining == 0 && expense.HasReceipt {
		if err := s.refreshReceiptFlag(ctx, expense, false, actor.UserID); err != nil {
			return err
		}
	}

	logger.Info("Expense file deleted",
		slog.String("expense_id", expenseID),
		slog.String("file_id", fileID))
	return nil
}

// refreshReceiptFlag flips the receipt flag and recomputes the policy verdict
// so a verdict never disagrees with the receipt state it was computed from.
func (s *expenseService) refreshReceiptFlag(ctx context.Context, expense *domain.Expense, hasReceipt bool, actorUserID string) error {
	expense.HasReceipt = hasReceipt

	check, err := s.policySvc.Evaluate(ctx, expense.TenantID, expense.Category, expense.Date, expense.UserID, expense.AmountBrl, hasReceipt)
	if err != nil {
		return fmt.Errorf("failed to evaluate policy: %w", err)
	}
	expense.PolicyCheck = check
	expense.LastUpdatedAt = time.Now()
	expense.LastUpdatedBy = actorUserID

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return nil
}
