package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"jobsite-tracker/internal/domain"
	apperrors "jobsite-tracker/internal/errors"
	"jobsite-tracker/internal/report"
	"jobsite-tracker/internal/validation"
)

const actorKey = "actor"

// withActor resolves the acting profile from the header or the configured default
func (s *Server) withActor(c *gin.Context) {
	id := s.config.Application.ProfileID
	if raw := strings.TrimSpace(c.GetHeader(ProfileHeader)); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ProfileHeader + " must be a positive number"})
			return
		}
		id = parsed
	}
	if id <= 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no profile selected, send " + ProfileHeader})
		return
	}

	p, err := s.services.Profiles.GetProfile(c.Request.Context(), id)
	if err != nil {
		if apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown profile"})
			return
		}
		s.fail(c, err)
		c.Abort()
		return
	}

	c.Set(actorKey, *p)
	c.Next()
}

func actor(c *gin.Context) domain.Profile {
	return c.MustGet(actorKey).(domain.Profile)
}

// statusFor maps an application error to an HTTP status
func statusFor(err error) int {
	if validation.IsValidationError(err) {
		return http.StatusBadRequest
	}
	if apperrors.IsBatchError(err) {
		return http.StatusInternalServerError
	}

	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Type {
	case apperrors.ErrorTypeValidation, apperrors.ErrorTypeInvalidInput:
		return http.StatusBadRequest
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorTypePermission:
		return http.StatusForbidden
	case apperrors.ErrorTypeCancelled:
		return http.StatusConflict
	case apperrors.ErrorTypeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a JSON body. Field errors are listed when present.
func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	body := gin.H{"code": apperrors.GetErrorCode(err)}

	var ve *validation.ValidationError
	switch {
	case errors.As(err, &ve):
		body["error"] = ve.GetUserFriendlyMessage()
		body["fields"] = ve.Errors
	case status == http.StatusInternalServerError && !apperrors.IsAppError(err) && !apperrors.IsBatchError(err):
		body["error"] = "An unexpected error occurred. Please try again."
	default:
		body["error"] = apperrors.GetUserMessage(err)
	}

	if status >= http.StatusInternalServerError {
		s.logger.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	}
	c.JSON(status, body)
}

// filterQuery is the query string shared by list, report and export endpoints
type filterQuery struct {
	From     string `form:"from"`
	To       string `form:"to"`
	Employee string `form:"employee"`
	Location string `form:"location"`
}

func (q filterQuery) filter() (report.Filter, error) {
	f := report.Filter{Employee: q.Employee, Location: q.Location}
	if q.From != "" {
		d, err := domain.ParseDate(q.From)
		if err != nil {
			return report.Filter{}, apperrors.NewInvalidInputError("from", q.From, err.Error())
		}
		f.From = &d
	}
	if q.To != "" {
		d, err := domain.ParseDate(q.To)
		if err != nil {
			return report.Filter{}, apperrors.NewInvalidInputError("to", q.To, err.Error())
		}
		f.To = &d
	}
	return f, nil
}

// pricingQuery overrides the configured invoice pricing
type pricingQuery struct {
	Rate     string `form:"rate"`
	Overhead string `form:"overhead"`
}

// options returns nil when neither parameter is set
func (q pricingQuery) options(defaults report.InvoiceOptions) (*report.InvoiceOptions, error) {
	if q.Rate == "" && q.Overhead == "" {
		return nil, nil
	}

	opts := defaults
	if q.Rate != "" {
		rate, err := decimal.NewFromString(q.Rate)
		if err != nil {
			return nil, apperrors.NewInvalidInputError("rate", q.Rate, "must be a number")
		}
		opts.Rate = &rate
	}
	if q.Overhead != "" {
		overhead, err := decimal.NewFromString(q.Overhead)
		if err != nil {
			return nil, apperrors.NewInvalidInputError("overhead", q.Overhead, "must be a number")
		}
		opts.OverheadPercentage = overhead
	}
	return &opts, nil
}

// bindFilter reads the filter query, writing a 400 when it is malformed
func (s *Server) bindFilter(c *gin.Context) (report.Filter, bool) {
	var q filterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.fail(c, apperrors.NewInvalidInputError("query", c.Request.URL.RawQuery, err.Error()))
		return report.Filter{}, false
	}
	f, err := q.filter()
	if err != nil {
		s.fail(c, err)
		return report.Filter{}, false
	}
	return f, true
}

// bindPricing reads the invoice pricing query over the billing defaults
func (s *Server) bindPricing(c *gin.Context) (*report.InvoiceOptions, bool) {
	var q pricingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.fail(c, apperrors.NewInvalidInputError("query", c.Request.URL.RawQuery, err.Error()))
		return nil, false
	}
	opts, err := q.options(report.InvoiceOptions{
		Rate:               s.config.Billing.HourlyRate,
		OverheadPercentage: s.config.Billing.DefaultOverhead,
	})
	if err != nil {
		s.fail(c, err)
		return nil, false
	}
	return opts, true
}

// pathID reads a positive :id path parameter
func (s *Server) pathID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		s.fail(c, apperrors.NewInvalidInputError("id", raw, "must be a positive number"))
		return 0, false
	}
	return id, true
}
