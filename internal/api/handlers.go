package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"jobsite-tracker/internal/domain"
	"jobsite-tracker/internal/draft"
	apperrors "jobsite-tracker/internal/errors"
)

const (
	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// GET /api/me
func (s *Server) me(c *gin.Context) {
	c.JSON(http.StatusOK, actor(c))
}

// GET /api/entries
func (s *Server) listEntries(c *gin.Context) {
	f, ok := s.bindFilter(c)
	if !ok {
		return
	}

	entries, err := s.services.Entries.ListEntries(c.Request.Context(), actor(c), f)
	if err != nil {
		s.fail(c, err)
		return
	}
	if entries == nil {
		entries = []domain.TimeEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// GET /api/entries/:id
func (s *Server) getEntry(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}

	te, err := s.services.Entries.GetEntry(c.Request.Context(), actor(c), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, te)
}

// addExpenseForm is the multipart form for POST /api/expenses. The receipt
// file part is optional.
type addExpenseForm struct {
	Date        string `form:"date" binding:"required"`
	Amount      string `form:"amount" binding:"required"`
	Description string `form:"description"`
	Retailer    string `form:"retailer"`
	EntryID     int64  `form:"entry_id"`
}

// POST /api/expenses
func (s *Server) addExpense(c *gin.Context) {
	var form addExpenseForm
	if err := c.ShouldBind(&form); err != nil {
		s.fail(c, apperrors.NewInvalidInputError("form", "", err.Error()))
		return
	}

	date, err := domain.ParseDate(form.Date)
	if err != nil {
		s.fail(c, apperrors.NewInvalidInputError("date", form.Date, err.Error()))
		return
	}
	amount, err := decimal.NewFromString(form.Amount)
	if err != nil {
		s.fail(c, apperrors.NewInvalidInputError("amount", form.Amount, "must be a number"))
		return
	}

	x := domain.NewExpense(date, amount, strings.TrimSpace(form.Description), form.Retailer)
	if form.EntryID > 0 {
		x.TimeEntryID = &form.EntryID
	}

	receipt, err := s.readReceipt(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	saved, err := s.services.Expenses.AddExpense(c.Request.Context(), actor(c), x, receipt)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// readReceipt returns the uploaded receipt part, or nil when none was sent
func (s *Server) readReceipt(c *gin.Context) (*draft.Attachment, error) {
	header, err := c.FormFile("receipt")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInvalidInputError("receipt", "", err.Error())
	}

	limit := s.config.Receipts.MaxBytes
	if limit > 0 && header.Size > limit {
		return nil, apperrors.NewInvalidInputError("receipt", header.Filename,
			fmt.Sprintf("must be at most %d bytes", limit))
	}

	file, err := header.Open()
	if err != nil {
		return nil, apperrors.NewInvalidInputError("receipt", header.Filename, err.Error())
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("receipt", header.Filename, err.Error())
	}
	return &draft.Attachment{Filename: filepath.Base(header.Filename), Data: data}, nil
}

// GET /api/reports/summary
func (s *Server) summary(c *gin.Context) {
	f, ok := s.bindFilter(c)
	if !ok {
		return
	}

	sum, err := s.services.Reporting.Summary(c.Request.Context(), actor(c), f)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// GET /api/reports/groups
func (s *Server) groups(c *gin.Context) {
	f, ok := s.bindFilter(c)
	if !ok {
		return
	}

	groups, err := s.services.Reporting.Groups(c.Request.Context(), actor(c), f)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// GET /api/reports/daily?from=&to=
func (s *Server) daily(c *gin.Context) {
	f, ok := s.bindFilter(c)
	if !ok {
		return
	}

	chart, err := s.services.Reporting.Daily(c.Request.Context(), actor(c), f)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, chart)
}

// GET /api/reports/invoice
func (s *Server) invoice(c *gin.Context) {
	f, ok := s.bindFilter(c)
	if !ok {
		return
	}
	opts, ok := s.bindPricing(c)
	if !ok {
		return
	}

	inv, err := s.services.Reporting.Invoice(c.Request.Context(), actor(c), f, opts)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

// GET /api/exports/entries.csv
func (s *Server) exportEntries(c *gin.Context) {
	f, ok := s.bindFilter(c)
	if !ok {
		return
	}
	s.download(c, "entries.csv", csvContentType, func(w io.Writer) error {
		return s.services.Exports.ExportEntries(c.Request.Context(), actor(c), f, w)
	})
}

// GET /api/exports/expenses.csv
func (s *Server) exportExpenses(c *gin.Context) {
	f, ok := s.bindFilter(c)
	if !ok {
		return
	}
	s.download(c, "expenses.csv", csvContentType, func(w io.Writer) error {
		return s.services.Exports.ExportExpenses(c.Request.Context(), actor(c), f, w)
	})
}

// GET /api/exports/invoice.csv
func (s *Server) exportInvoice(c *gin.Context) {
	f, ok := s.bindFilter(c)
	if !ok {
		return
	}
	opts, ok := s.bindPricing(c)
	if !ok {
		return
	}
	s.download(c, "invoice.csv", csvContentType, func(w io.Writer) error {
		return s.services.Exports.ExportInvoice(c.Request.Context(), actor(c), f, opts, w)
	})
}

// GET /api/worksheets?job=
func (s *Server) listWorksheets(c *gin.Context) {
	views, err := s.services.Estimates.ListWorksheets(c.Request.Context(), actor(c), c.Query("job"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"worksheets": views})
}

// GET /api/worksheets/:id
func (s *Server) getWorksheet(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}

	view, err := s.services.Estimates.GetWorksheet(c.Request.Context(), actor(c), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GET /api/worksheets/:id/export.xlsx
func (s *Server) exportWorksheet(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}
	s.download(c, fmt.Sprintf("worksheet-%d.xlsx", id), xlsxContentType, func(w io.Writer) error {
		return s.services.Exports.ExportWorksheet(c.Request.Context(), actor(c), id, w)
	})
}

// download buffers write's output so a failure can still be reported as JSON
func (s *Server) download(c *gin.Context, filename, contentType string, write func(w io.Writer) error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		s.fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
