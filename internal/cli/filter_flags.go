package cli

import (
	"github.com/spf13/pflag"

	"jobsite-tracker/internal/report"
)

// filterFlags are the report filters shared by list, report and export commands
type filterFlags struct {
	From     string
	To       string
	Employee string
	Location string
}

func (f *filterFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.From, "from", "", "First day to include (YYYY-MM-DD)")
	flags.StringVar(&f.To, "to", "", "Last day to include (YYYY-MM-DD)")
	flags.StringVar(&f.Employee, "employee", "", "Only this employee name (exact match)")
	flags.StringVar(&f.Location, "location", "", "Only this job site (exact match)")
}

func (f filterFlags) filter() (report.Filter, error) {
	from, err := parseOptionalDate("from", f.From)
	if err != nil {
		return report.Filter{}, err
	}
	to, err := parseOptionalDate("to", f.To)
	if err != nil {
		return report.Filter{}, err
	}

	return report.Filter{
		From:     from,
		To:       to,
		Employee: f.Employee,
		Location: f.Location,
	}, nil
}

// pricingFlags override the configured invoice pricing
type pricingFlags struct {
	Rate     string
	Overhead string
}

func (p *pricingFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&p.Rate, "rate", "", "Hourly labor rate (default from billing.hourly_rate)")
	flags.StringVar(&p.Overhead, "overhead", "", "Overhead percentage (default from billing.default_overhead)")
}

// options returns nil when neither flag is set so the configured defaults apply
func (p pricingFlags) options(defaults report.InvoiceOptions) (*report.InvoiceOptions, error) {
	rate, err := parseOptionalDecimal("rate", p.Rate)
	if err != nil {
		return nil, err
	}
	overhead, err := parseOptionalDecimal("overhead", p.Overhead)
	if err != nil {
		return nil, err
	}
	if rate == nil && overhead == nil {
		return nil, nil
	}

	opts := defaults
	if rate != nil {
		opts.Rate = rate
	}
	if overhead != nil {
		opts.OverheadPercentage = *overhead
	}
	return &opts, nil
}
