package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"jobsite-tracker/internal/config"
	"jobsite-tracker/internal/domain"
	"jobsite-tracker/internal/errors"
	"jobsite-tracker/internal/services"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App represents the main CLI application
type App struct {
	services     *services.Container
	config       *config.Config
	logger       logrus.FieldLogger
	errorHandler *ErrorHandler
	in           io.Reader
	out          io.Writer
}

// NewApp creates a new CLI application reading stdin and writing stdout
func NewApp(container *services.Container, cfg *config.Config, logger logrus.FieldLogger) *App {
	return &App{
		services:     container,
		config:       cfg,
		logger:       logger,
		errorHandler: NewErrorHandler(),
		in:           os.Stdin,
		out:          os.Stdout,
	}
}

// WithIO replaces the input and output streams
func (a *App) WithIO(in io.Reader, out io.Writer) *App {
	a.in = in
	a.out = out
	return a
}

// actor loads the profile the command runs as
func (a *App) actor(ctx context.Context) (domain.Profile, error) {
	id := a.config.Application.ProfileID
	if id <= 0 {
		return domain.Profile{}, errors.NewInvalidInputError("profile", id, "no profile selected, pass --profile or set JT_PROFILE_ID")
	}

	p, err := a.services.Profiles.GetProfile(ctx, id)
	if err != nil {
		return domain.Profile{}, err
	}
	return *p, nil
}

// openOutput returns stdout for an empty path or "-", otherwise it creates the file
func (a *App) openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return a.out, func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.NewInvalidInputError("out", path, err.Error())
	}
	return f, f.Close, nil
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...interface{}) {
	fmt.Fprintln(a.out, args...)
}

// parseID parses a positive numeric id argument
func parseID(field, s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError(field, s, "must be a positive number")
	}
	return id, nil
}

// parseOptionalDate parses a YYYY-MM-DD flag value. Empty means unset.
func parseOptionalDate(field, s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.NewInvalidInputError(field, s, "expected YYYY-MM-DD")
	}
	return &d, nil
}

// parseOptionalDecimal parses a number flag value. Empty means unset.
func parseOptionalDecimal(field, s string) (*decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.NewInvalidInputError(field, s, "must be a number")
	}
	return &d, nil
}
