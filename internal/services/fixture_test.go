package services

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"jobsite-tracker/internal/config"
	"jobsite-tracker/internal/domain"
	"jobsite-tracker/internal/draft"
	"jobsite-tracker/internal/logging"
	"jobsite-tracker/internal/repository/sqlite"
)

var (
	day1     = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	day2     = day1.AddDate(0, 0, 1)
	day3     = day1.AddDate(0, 0, 2)
	pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
)

type fixture struct {
	repo        sqlite.Repository
	services    *Container
	receiptsDir string
	admin       domain.Profile
	ann         domain.Profile
	ben         domain.Profile
}

// failingRepo fails the nth CreateTimeEntry call
type failingRepo struct {
	sqlite.Repository
	failOn  int
	creates int
}

func (r *failingRepo) CreateTimeEntry(ctx context.Context, entry *sqlite.TimeEntry) error {
	r.creates++
	if r.creates == r.failOn {
		return fmt.Errorf("disk I/O error")
	}
	return r.Repository.CreateTimeEntry(ctx, entry)
}

// failingExpenseRepo fails every CreateExpense call
type failingExpenseRepo struct {
	sqlite.Repository
}

func (r *failingExpenseRepo) CreateExpense(ctx context.Context, x *sqlite.Expense) error {
	return fmt.Errorf("database is locked")
}

// receiptFiles lists the files under the receipts directory
func (f *fixture) receiptFiles(t *testing.T) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(f.receiptsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	require.NoError(t, err)
	return files
}

func setupServices(t *testing.T) *fixture {
	return setupServicesWithRepo(t, nil)
}

func setupServicesWithRepo(t *testing.T, wrap func(sqlite.Repository) sqlite.Repository) *fixture {
	t.Helper()

	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	var r sqlite.Repository = repo
	if wrap != nil {
		r = wrap(repo)
	}

	cfg := config.NewConfig()
	cfg.Receipts.Dir = t.TempDir()
	cfg.Billing.DefaultOverhead = decimal.NewFromInt(15)

	f := &fixture{
		repo:        r,
		services:    NewContainer(r, cfg, logging.Discard()),
		receiptsDir: cfg.Receipts.Dir,
	}
	f.admin = f.profile(t, "Olive", "olive@example.com", domain.RoleAdmin)
	f.ann = f.profile(t, "Ann", "ann@example.com", domain.RoleUser)
	f.ben = f.profile(t, "Ben", "ben@example.com", domain.RoleUser)
	return f
}

func (f *fixture) profile(t *testing.T, name, email string, role domain.Role) domain.Profile {
	t.Helper()
	p, err := f.services.Profiles.CreateProfile(context.Background(), domain.NewProfile(name, email, role))
	require.NoError(t, err)
	return *p
}

// submit saves entries for actor without asking about overages
func (f *fixture) submit(t *testing.T, actor domain.Profile, entries ...domain.TimeEntry) []domain.TimeEntry {
	t.Helper()
	batch := draft.New()
	for _, te := range entries {
		batch, _ = batch.Add(te)
	}
	result, err := f.services.Entries.SubmitBatch(context.Background(), actor, batch, AlwaysConfirm)
	require.NoError(t, err)
	return result.Entries
}

func clock(s string) domain.ClockTime {
	c, err := domain.ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return c
}

func partial(name, location string, date time.Time, start, end string, lunch int) domain.TimeEntry {
	te := domain.NewPartialDayEntry(name, date, location, clock(start), clock(end))
	if lunch > 0 {
		te = te.WithLunchBreak(domain.LunchBreak(lunch))
	}
	return te
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func datePtr(t time.Time) *time.Time {
	return &t
}
