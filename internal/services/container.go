package services

import (
	"github.com/sirupsen/logrus"

	"jobsite-tracker/internal/config"
	"jobsite-tracker/internal/receipts"
	"jobsite-tracker/internal/repository/sqlite"
	"jobsite-tracker/internal/validation"
)

// Container holds every service, wired to one repository and receipt store
type Container struct {
	Profiles  ProfileService
	Entries   TimeEntryService
	Expenses  ExpenseService
	Reporting ReportingService
	Estimates EstimateService
	Exports   ExportService
	Receipts  receipts.Store
}

// NewContainer builds the services from configuration. Receipts are kept
// on disk under cfg.Receipts.Dir.
func NewContainer(repo sqlite.Repository, cfg *config.Config, logger logrus.FieldLogger) *Container {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	v := validation.NewValidatorWithConfig(cfg)
	store := receipts.NewLocalStore(cfg.Receipts.Dir, cfg.Receipts.BaseURL, v, logger.WithField("component", "receipts"))

	c := &Container{Receipts: store}
	c.Profiles = NewProfileService(repo, v)
	c.Entries = NewTimeEntryService(repo, store, v, logger.WithField("component", "time_entries"))
	c.Expenses = NewExpenseService(repo, store, v, logger.WithField("component", "expenses"))
	c.Reporting = NewReportingService(c.Entries, c.Expenses, cfg)
	c.Estimates = NewEstimateService(repo, v, logger.WithField("component", "estimates"))
	c.Exports = NewExportService(c.Entries, c.Expenses, c.Reporting, c.Estimates, cfg)
	return c
}
