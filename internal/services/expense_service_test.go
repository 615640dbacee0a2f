package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobsite-tracker/internal/domain"
	"jobsite-tracker/internal/draft"
	"jobsite-tracker/internal/errors"
	"jobsite-tracker/internal/report"
	"jobsite-tracker/internal/repository/sqlite"
)

func TestExpenseService_AddExpense(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()
	entry := f.submit(t, f.ann, partial("Ann", "Elm St", day1, "09:00", "17:00", 0))[0]

	tests := []struct {
		name           string
		actor          domain.Profile
		expense        func() domain.Expense
		receipt        *draft.Attachment
		expectedOwner  int64
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:  "should add a standalone expense",
			actor: f.ann,
			expense: func() domain.Expense {
				return domain.NewExpense(day2, money("20.00"), "Permit", "City Hall")
			},
			expectedOwner: f.ann.ID,
		},
		{
			name:  "should add a standalone expense with a receipt",
			actor: f.ann,
			expense: func() domain.Expense {
				return domain.NewExpense(day2, money("4.99"), "Gloves", "Hardware Co")
			},
			receipt:       &draft.Attachment{Filename: "gloves.png", Data: pngBytes},
			expectedOwner: f.ann.ID,
		},
		{
			name:  "should let an admin add to another user's entry",
			actor: f.admin,
			expense: func() domain.Expense {
				x := domain.NewExpense(day1, money("7"), "Screws", "Hardware Co")
				x.TimeEntryID = &entry.ID
				return x
			},
			expectedOwner: f.ann.ID,
		},
		{
			name:  "should refuse another user's entry",
			actor: f.ben,
			expense: func() domain.Expense {
				x := domain.NewExpense(day1, money("7"), "Screws", "Hardware Co")
				x.TimeEntryID = &entry.ID
				return x
			},
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypePermission))
			},
		},
		{
			name:  "should reject a negative amount",
			actor: f.ann,
			expense: func() domain.Expense {
				return domain.NewExpense(day1, money("-1"), "Refund", "Hardware Co")
			},
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
				assert.Contains(t, err.Error(), "amount")
			},
		},
		{
			name:  "should reject a missing retailer",
			actor: f.ann,
			expense: func() domain.Expense {
				return domain.NewExpense(day1, money("1"), "Nails", "  ")
			},
			errorAssertion: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "retailer")
			},
		},
		{
			name:  "should reject a receipt that is not an image",
			actor: f.ann,
			expense: func() domain.Expense {
				return domain.NewExpense(day1, money("1"), "Nails", "Hardware Co")
			},
			receipt: &draft.Attachment{Filename: "r.pdf", Data: []byte("%PDF-1.7\n")},
			errorAssertion: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "receipt")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := f.services.Expenses.AddExpense(ctx, tt.actor, tt.expense(), tt.receipt)

			if tt.errorAssertion != nil {
				require.Error(t, err)
				tt.errorAssertion(t, err)
				assert.Nil(t, result)
				return
			}

			require.NoError(t, err)
			assert.Greater(t, result.ID, int64(0))
			assert.Greater(t, result.RetailerID, int64(0))
			assert.Equal(t, tt.expectedOwner, result.OwnerID)
			assert.Equal(t, tt.receipt != nil, result.HasReceipt())
		})
	}
}

func TestExpenseService_RetailersAreSharedByName(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()

	first, err := f.services.Expenses.AddExpense(ctx, f.ann, domain.NewExpense(day1, money("1"), "Nails", "Hardware Co"), nil)
	require.NoError(t, err)
	second, err := f.services.Expenses.AddExpense(ctx, f.ben, domain.NewExpense(day1, money("2"), "Glue", " Hardware Co "), nil)
	require.NoError(t, err)
	third, err := f.services.Expenses.AddExpense(ctx, f.ben, domain.NewExpense(day1, money("3"), "Tape", "hardware co"), nil)
	require.NoError(t, err)

	assert.Equal(t, first.RetailerID, second.RetailerID)
	assert.NotEqual(t, first.RetailerID, third.RetailerID, "names match exactly")

	retailers, err := f.services.Expenses.ListRetailers(ctx)
	require.NoError(t, err)
	assert.Len(t, retailers, 2)
}

func TestExpenseService_ListStandalone(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()

	entry := partial("Ann", "Elm St", day1, "09:00", "17:00", 0)
	entry.Expenses = []domain.Expense{domain.NewExpense(day1, money("12.50"), "Lumber", "Home Depot")}
	f.submit(t, f.ann, entry)

	_, err := f.services.Expenses.AddExpense(ctx, f.ann, domain.NewExpense(day2, money("20"), "Permit", "City Hall"), nil)
	require.NoError(t, err)
	_, err = f.services.Expenses.AddExpense(ctx, f.ben, domain.NewExpense(day3, money("9"), "Fuel", "Gas Stop"), nil)
	require.NoError(t, err)

	tests := []struct {
		name     string
		actor    domain.Profile
		filter   report.Filter
		expected []string
	}{
		{"user sees own standalone expenses", f.ann, report.Filter{}, []string{"Permit"}},
		{"admin sees all, newest first", f.admin, report.Filter{}, []string{"Fuel", "Permit"}},
		{"date range applies", f.admin, report.Filter{To: datePtr(day2)}, []string{"Permit"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expenses, err := f.services.Expenses.ListStandalone(ctx, tt.actor, tt.filter)
			require.NoError(t, err)

			var names []string
			for _, x := range expenses {
				assert.True(t, x.IsStandalone())
				names = append(names, x.Description)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestExpenseService_DeleteExpense(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()

	x, err := f.services.Expenses.AddExpense(ctx, f.ann, domain.NewExpense(day1, money("4"), "Gloves", "Hardware Co"),
		&draft.Attachment{Filename: "g.png", Data: pngBytes})
	require.NoError(t, err)
	path := filepath.Join(f.receiptsDir, filepath.FromSlash(strings.TrimPrefix(x.ReceiptURL, "/receipts/")))

	err = f.services.Expenses.DeleteExpense(ctx, f.ben, x.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypePermission))

	require.NoError(t, f.services.Expenses.DeleteExpense(ctx, f.ann, x.ID))

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	err = f.services.Expenses.DeleteExpense(ctx, f.ann, x.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestExpenseService_AddExpenseRemovesReceiptWhenSaveFails(t *testing.T) {
	f := setupServicesWithRepo(t, func(r sqlite.Repository) sqlite.Repository {
		return &failingExpenseRepo{Repository: r}
	})
	ctx := context.Background()

	x := domain.NewExpense(day1, money("4.99"), "Gloves", "Hardware Co")
	saved, err := f.services.Expenses.AddExpense(ctx, f.ben, x, &draft.Attachment{Filename: "gloves.png", Data: pngBytes})

	require.Error(t, err)
	assert.Nil(t, saved)
	assert.Contains(t, err.Error(), "database is locked")
	assert.Empty(t, f.receiptFiles(t), "no receipt file should outlive a failed insert")
}
