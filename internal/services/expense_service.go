package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"jobsite-tracker/internal/domain"
	"jobsite-tracker/internal/draft"
	"jobsite-tracker/internal/errors"
	"jobsite-tracker/internal/receipts"
	"jobsite-tracker/internal/report"
	"jobsite-tracker/internal/repository/sqlite"
	"jobsite-tracker/internal/validation"
)

// expenseWriter saves one expense: retailer lookup, receipt upload, then the row.
// Time entry submission and ExpenseService share it.
type expenseWriter struct {
	repo   sqlite.Repository
	mapper *domain.Mapper
	store  receipts.Store
	logger logrus.FieldLogger
}

func (w *expenseWriter) save(ctx context.Context, ownerID int64, x domain.Expense, receipt *draft.Attachment) (*domain.Expense, error) {
	retailer, err := w.repo.GetOrCreateRetailer(ctx, strings.TrimSpace(x.RetailerName))
	if err != nil {
		return nil, err
	}
	x.RetailerID = retailer.ID
	x.RetailerName = retailer.Name
	x.OwnerID = ownerID
	x.Date = domain.DateOf(x.Date)

	if receipt != nil {
		if w.store == nil {
			return nil, errors.NewStorageError("upload receipt", nil)
		}
		url, err := w.store.Put(ctx, ownerID, receipt.Filename, receipt.Data)
		if err != nil {
			return nil, err
		}
		x.ReceiptURL = url
	}

	row := w.mapper.Expense.ToDatabase(x)
	if err := w.repo.CreateExpense(ctx, &row); err != nil {
		w.removeReceipt(ctx, x)
		return nil, err
	}

	saved := w.mapper.Expense.FromDatabase(row)
	return &saved, nil
}

// removeReceipt deletes a stored receipt, logging instead of failing
func (w *expenseWriter) removeReceipt(ctx context.Context, x domain.Expense) {
	if !x.HasReceipt() || w.store == nil {
		return
	}
	if err := w.store.Delete(ctx, x.ReceiptURL); err != nil {
		w.logger.WithError(err).WithField("receipt_url", x.ReceiptURL).Warn("could not remove receipt file")
	}
}

// expenseServiceImpl implements the ExpenseService interface
type expenseServiceImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	writer    *expenseWriter
	validator *validation.ExpenseValidator
	logger    logrus.FieldLogger
}

// NewExpenseService creates a new ExpenseService instance
func NewExpenseService(repo sqlite.Repository, store receipts.Store, v *validation.Validator, logger logrus.FieldLogger) ExpenseService {
	mapper := domain.NewMapper()
	return &expenseServiceImpl{
		repo:      repo,
		mapper:    mapper,
		writer:    &expenseWriter{repo: repo, mapper: mapper, store: store, logger: logger},
		validator: validation.NewExpenseValidator(v),
		logger:    logger,
	}
}

// AddExpense validates and saves an expense with its optional receipt
func (s *expenseServiceImpl) AddExpense(ctx context.Context, actor domain.Profile, x domain.Expense, receipt *draft.Attachment) (*domain.Expense, error) {
	ve := validation.NewValidationError()
	ve.Merge("", s.validator.ValidateExpense(x))
	if x.Date.IsZero() {
		ve.AddRequiredError("date")
	}
	if receipt != nil {
		_, err := s.validator.ValidateReceipt(receipt.Data)
		ve.Merge("", err)
	}
	if err := ve.OrNil(); err != nil {
		return nil, invalid(err)
	}

	// An entry-bound expense belongs to whoever owns the entry
	ownerID := actor.ID
	if x.TimeEntryID != nil {
		entry, err := s.repo.GetTimeEntry(ctx, *x.TimeEntryID)
		if err != nil {
			return nil, err
		}
		if !actor.CanAccess(entry.OwnerID) {
			return nil, denied("add expense", "time entry", entry.ID)
		}
		ownerID = entry.OwnerID
	}

	saved, err := s.writer.save(ctx, ownerID, x, receipt)
	if err != nil {
		if errors.ShouldLogError(err) {
			s.logger.WithError(err).WithField("owner_id", ownerID).Error("failed to save expense")
		}
		return nil, err
	}
	return saved, nil
}

// ListStandalone lists expenses without a time entry, newest first
func (s *expenseServiceImpl) ListStandalone(ctx context.Context, actor domain.Profile, f report.Filter) ([]domain.Expense, error) {
	opts := domain.ExpenseSearchOptions{
		From:           f.From,
		To:             f.To,
		OwnerID:        actor.OwnerScope(),
		StandaloneOnly: true,
	}

	rows, err := s.repo.SearchExpenses(ctx, s.mapper.SearchOptions.ExpensesToDatabase(opts))
	if err != nil {
		return nil, err
	}
	return s.mapper.Expense.FromDatabaseSlice(rows), nil
}

// DeleteExpense deletes an expense and its receipt file
func (s *expenseServiceImpl) DeleteExpense(ctx context.Context, actor domain.Profile, id int64) error {
	if id <= 0 {
		return errors.NewValidationError("invalid expense ID", nil)
	}

	row, err := s.repo.GetExpense(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanAccess(row.OwnerID) {
		return denied("delete", "expense", id)
	}

	if err := s.repo.DeleteExpense(ctx, id); err != nil {
		s.logger.WithError(err).WithField("expense_id", id).Error("failed to delete expense")
		return err
	}

	s.writer.removeReceipt(ctx, s.mapper.Expense.FromDatabase(*row))
	return nil
}

// ListRetailers lists every known retailer by name
func (s *expenseServiceImpl) ListRetailers(ctx context.Context) ([]domain.Retailer, error) {
	rows, err := s.repo.ListRetailers(ctx)
	if err != nil {
		return nil, err
	}

	retailers := make([]domain.Retailer, len(rows))
	for i, r := range rows {
		retailers[i] = domain.Retailer{ID: r.ID, Name: r.Name}
	}
	return retailers, nil
}
