package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"jobsite-tracker/internal/calc"
	"jobsite-tracker/internal/domain"
	"jobsite-tracker/internal/draft"
	"jobsite-tracker/internal/errors"
	"jobsite-tracker/internal/receipts"
	"jobsite-tracker/internal/report"
	"jobsite-tracker/internal/repository/sqlite"
	"jobsite-tracker/internal/validation"
)

// timeEntryServiceImpl implements the TimeEntryService interface
type timeEntryServiceImpl struct {
	repo             sqlite.Repository
	mapper           *domain.Mapper
	writer           *expenseWriter
	validator        *validation.TimeEntryValidator
	receiptValidator *validation.ExpenseValidator
	logger           logrus.FieldLogger
}

// NewTimeEntryService creates a new TimeEntryService instance
func NewTimeEntryService(repo sqlite.Repository, store receipts.Store, v *validation.Validator, logger logrus.FieldLogger) TimeEntryService {
	mapper := domain.NewMapper()
	return &timeEntryServiceImpl{
		repo:             repo,
		mapper:           mapper,
		writer:           &expenseWriter{repo: repo, mapper: mapper, store: store, logger: logger},
		validator:        validation.NewTimeEntryValidator(v),
		receiptValidator: validation.NewExpenseValidator(v),
		logger:           logger,
	}
}

// SubmitBatch saves a draft batch for the actor. On a BatchError the result
// still lists the entries that reached the database.
func (s *timeEntryServiceImpl) SubmitBatch(ctx context.Context, actor domain.Profile, batch draft.Batch, confirm Confirmer) (*SubmitResult, error) {
	rows := batch.Rows()
	entries := batch.Entries()

	if err := s.validateRows(rows, entries); err != nil {
		return nil, err
	}

	overages := calc.FindOverages(entries)
	if len(overages) > 0 {
		if confirm == nil {
			return nil, errors.NewCancelledError("submit time entries")
		}
		ok, err := confirm.ConfirmOverages(ctx, overages)
		if err != nil {
			return nil, err
		}
		if !ok {
			s.logger.WithField("overages", len(overages)).Info("batch declined at overage confirmation")
			return nil, errors.NewCancelledError("submit time entries")
		}
	}

	result := &SubmitResult{Entries: make([]domain.TimeEntry, 0, len(rows)), Overages: overages}
	for i, row := range rows {
		saved, err := s.writeRow(ctx, actor, row)
		if saved != nil {
			result.Entries = append(result.Entries, *saved)
		}
		if err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"row":     i,
				"written": len(result.Entries),
				"total":   len(rows),
			}).Error("batch submission stopped")
			return result, &errors.BatchError{Written: len(result.Entries), Total: len(rows), Cause: err}
		}
	}

	s.logger.WithFields(logrus.Fields{
		"owner_id": actor.ID,
		"entries":  len(result.Entries),
	}).Info("batch submitted")
	return result, nil
}

// validateRows checks every entry and every attached receipt before any write
func (s *timeEntryServiceImpl) validateRows(rows []draft.Row, entries []domain.TimeEntry) error {
	ve := validation.NewValidationError()
	ve.Merge("", s.validator.ValidateBatch(entries))

	for i, row := range rows {
		for j, x := range row.Expenses {
			if x.Receipt == nil {
				continue
			}
			_, err := s.receiptValidator.ValidateReceipt(x.Receipt.Data)
			ve.Merge(fmt.Sprintf("entries[%d].expenses[%d]", i, j), err)
		}
	}

	if err := ve.OrNil(); err != nil {
		return invalid(err)
	}
	return nil
}

// writeRow creates the entry, then each of its expenses once the entry ID is known.
// An entry without an employee is saved under the actor's name.
// The returned entry is non-nil whenever the entry row itself was written.
func (s *timeEntryServiceImpl) writeRow(ctx context.Context, actor domain.Profile, row draft.Row) (*domain.TimeEntry, error) {
	te := row.Entry
	te.OwnerID = actor.ID
	te.Date = domain.DateOf(te.Date)
	if strings.TrimSpace(te.EmployeeName) == "" {
		te.EmployeeName = actor.Name
		te.EmployeeID = actor.ID
	}

	dbEntry := s.mapper.TimeEntry.ToDatabase(te)
	if err := s.repo.CreateTimeEntry(ctx, &dbEntry); err != nil {
		return nil, err
	}
	te.ID = dbEntry.ID
	te.Expenses = make([]domain.Expense, 0, len(row.Expenses))

	for _, xr := range row.Expenses {
		x := xr.Expense
		entryID := te.ID
		x.TimeEntryID = &entryID
		if x.Date.IsZero() {
			x.Date = te.Date
		}

		saved, err := s.writer.save(ctx, te.OwnerID, x, xr.Receipt)
		if err != nil {
			return &te, err
		}
		te.Expenses = append(te.Expenses, *saved)
	}

	return &te, nil
}

// ListEntries lists the entries the actor may see, newest first
func (s *timeEntryServiceImpl) ListEntries(ctx context.Context, actor domain.Profile, f report.Filter) ([]domain.TimeEntry, error) {
	if err := s.validator.ValidateDateRange(f.From, f.To); err != nil {
		return nil, invalid(err)
	}

	opts := s.mapper.SearchOptions.ToDatabase(f.SearchOptions(actor.OwnerScope()))
	rows, err := s.repo.SearchTimeEntries(ctx, opts)
	if err != nil {
		return nil, err
	}
	return s.mapper.TimeEntry.FromDatabaseSlice(rows), nil
}

// GetEntry retrieves an entry with its expenses
func (s *timeEntryServiceImpl) GetEntry(ctx context.Context, actor domain.Profile, id int64) (*domain.TimeEntry, error) {
	if err := s.validator.ValidateTimeEntryID(id); err != nil {
		return nil, invalid(err)
	}

	row, err := s.repo.GetTimeEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(row.OwnerID) {
		return nil, denied("read", "time entry", id)
	}

	te := s.mapper.TimeEntry.FromDatabase(*row)
	return &te, nil
}

// DeleteEntry deletes an entry; its expenses go with it
func (s *timeEntryServiceImpl) DeleteEntry(ctx context.Context, actor domain.Profile, id int64) error {
	te, err := s.GetEntry(ctx, actor, id)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypePermission) {
			return denied("delete", "time entry", id)
		}
		return err
	}

	if err := s.repo.DeleteTimeEntry(ctx, id); err != nil {
		s.logger.WithError(err).WithField("time_entry_id", id).Error("failed to delete time entry")
		return err
	}

	for _, x := range te.Expenses {
		s.writer.removeReceipt(ctx, x)
	}
	return nil
}
