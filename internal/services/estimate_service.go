package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"jobsite-tracker/internal/calc"
	"jobsite-tracker/internal/domain"
	"jobsite-tracker/internal/errors"
	"jobsite-tracker/internal/repository/sqlite"
	"jobsite-tracker/internal/validation"
)

// estimateServiceImpl implements the EstimateService interface
type estimateServiceImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	validator *validation.WorksheetValidator
	logger    logrus.FieldLogger
}

// NewEstimateService creates a new EstimateService instance
func NewEstimateService(repo sqlite.Repository, v *validation.Validator, logger logrus.FieldLogger) EstimateService {
	return &estimateServiceImpl{
		repo:      repo,
		mapper:    domain.NewMapper(),
		validator: validation.NewWorksheetValidator(v),
		logger:    logger,
	}
}

func view(ws domain.EstimateWorksheet) *WorksheetView {
	return &WorksheetView{
		Worksheet: ws,
		Cost:      calc.Cost(ws.Costs(), ws.OverheadPercentage),
	}
}

// CreateWorksheet saves a new worksheet owned by the actor
func (e *estimateServiceImpl) CreateWorksheet(ctx context.Context, actor domain.Profile, ws domain.EstimateWorksheet) (*WorksheetView, error) {
	ws.JobName = strings.TrimSpace(ws.JobName)
	if err := e.validator.ValidateWorksheet(ws); err != nil {
		return nil, invalid(err)
	}

	ws.ID = 0
	ws.OwnerID = actor.ID
	row := e.mapper.Worksheet.ToDatabase(ws)
	if err := e.repo.CreateWorksheet(ctx, &row); err != nil {
		e.logger.WithError(err).WithField("job_name", ws.JobName).Error("failed to create worksheet")
		return nil, err
	}

	return view(e.mapper.Worksheet.FromDatabase(row)), nil
}

// UpdateWorksheet replaces the name, overhead and rows of a saved worksheet
func (e *estimateServiceImpl) UpdateWorksheet(ctx context.Context, actor domain.Profile, ws domain.EstimateWorksheet) (*WorksheetView, error) {
	existing, err := e.load(ctx, actor, ws.ID, "update")
	if err != nil {
		return nil, err
	}

	ws.JobName = strings.TrimSpace(ws.JobName)
	if err := e.validator.ValidateWorksheet(ws); err != nil {
		return nil, invalid(err)
	}

	ws.OwnerID = existing.OwnerID
	ws.CreatedAt = existing.CreatedAt
	row := e.mapper.Worksheet.ToDatabase(ws)
	if err := e.repo.UpdateWorksheet(ctx, &row); err != nil {
		e.logger.WithError(err).WithField("worksheet_id", ws.ID).Error("failed to update worksheet")
		return nil, err
	}

	return view(e.mapper.Worksheet.FromDatabase(row)), nil
}

// GetWorksheet retrieves a worksheet with its totals
func (e *estimateServiceImpl) GetWorksheet(ctx context.Context, actor domain.Profile, id int64) (*WorksheetView, error) {
	ws, err := e.load(ctx, actor, id, "read")
	if err != nil {
		return nil, err
	}
	return view(*ws), nil
}

// ReviseWorksheet copies a worksheet into the next free version of its job
func (e *estimateServiceImpl) ReviseWorksheet(ctx context.Context, actor domain.Profile, id int64) (*WorksheetView, error) {
	ws, err := e.load(ctx, actor, id, "revise")
	if err != nil {
		return nil, err
	}

	lineage, err := e.lineage(ctx, ws.OwnerID, ws.JobName)
	if err != nil {
		return nil, err
	}

	base, _ := domain.SplitVersion(ws.JobName)
	latest := 1
	for _, w := range lineage {
		if _, v := domain.SplitVersion(w.JobName); v > latest {
			latest = v
		}
	}

	revision := ws.Revise()
	revision.JobName = fmt.Sprintf("%s v%d", base, latest+1)

	row := e.mapper.Worksheet.ToDatabase(revision)
	if err := e.repo.CreateWorksheet(ctx, &row); err != nil {
		e.logger.WithError(err).WithField("worksheet_id", id).Error("failed to save revision")
		return nil, err
	}

	e.logger.WithFields(logrus.Fields{
		"from":     ws.JobName,
		"revision": revision.JobName,
	}).Debug("worksheet revised")
	return view(e.mapper.Worksheet.FromDatabase(row)), nil
}

// ListWorksheets lists worksheets visible to the actor
func (e *estimateServiceImpl) ListWorksheets(ctx context.Context, actor domain.Profile, jobName string) ([]WorksheetView, error) {
	var worksheets []domain.EstimateWorksheet

	if strings.TrimSpace(jobName) != "" {
		var owner int64
		if scope := actor.OwnerScope(); scope != nil {
			owner = *scope
		}
		lineage, err := e.lineage(ctx, owner, jobName)
		if err != nil {
			return nil, err
		}
		worksheets = lineage
	} else {
		opts := domain.WorksheetSearchOptions{OwnerID: actor.OwnerScope()}
		rows, err := e.repo.ListWorksheets(ctx, e.mapper.SearchOptions.WorksheetsToDatabase(opts))
		if err != nil {
			return nil, err
		}
		worksheets = e.mapper.Worksheet.FromDatabaseSlice(rows)
	}

	views := make([]WorksheetView, len(worksheets))
	for i, ws := range worksheets {
		views[i] = *view(ws)
	}
	return views, nil
}

// DeleteWorksheet deletes a worksheet and its rows
func (e *estimateServiceImpl) DeleteWorksheet(ctx context.Context, actor domain.Profile, id int64) error {
	if _, err := e.load(ctx, actor, id, "delete"); err != nil {
		return err
	}

	if err := e.repo.DeleteWorksheet(ctx, id); err != nil {
		e.logger.WithError(err).WithField("worksheet_id", id).Error("failed to delete worksheet")
		return err
	}
	return nil
}

// load fetches a worksheet and checks the actor may perform operation on it
func (e *estimateServiceImpl) load(ctx context.Context, actor domain.Profile, id int64, operation string) (*domain.EstimateWorksheet, error) {
	if id <= 0 {
		return nil, errors.NewValidationError("invalid worksheet ID", nil)
	}

	row, err := e.repo.GetWorksheet(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(row.OwnerID) {
		return nil, denied(operation, "worksheet", id)
	}

	ws := e.mapper.Worksheet.FromDatabase(*row)
	return &ws, nil
}

// lineage returns every version of jobName's base job, oldest first.
// An ownerID of zero matches every owner.
func (e *estimateServiceImpl) lineage(ctx context.Context, ownerID int64, jobName string) ([]domain.EstimateWorksheet, error) {
	base, _ := domain.SplitVersion(strings.TrimSpace(jobName))
	opts := domain.WorksheetSearchOptions{BaseName: &base}
	if ownerID != 0 {
		opts.OwnerID = &ownerID
	}

	rows, err := e.repo.ListWorksheets(ctx, e.mapper.SearchOptions.WorksheetsToDatabase(opts))
	if err != nil {
		return nil, err
	}

	// The LIKE match also catches names such as "Deck v2b"; keep exact lineage members only
	var worksheets []domain.EstimateWorksheet
	for _, ws := range e.mapper.Worksheet.FromDatabaseSlice(rows) {
		if b, _ := domain.SplitVersion(ws.JobName); b == base {
			worksheets = append(worksheets, ws)
		}
	}

	sort.SliceStable(worksheets, func(i, j int) bool {
		_, vi := domain.SplitVersion(worksheets[i].JobName)
		_, vj := domain.SplitVersion(worksheets[j].JobName)
		return vi < vj
	})
	return worksheets, nil
}
