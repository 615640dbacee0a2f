package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"jobsite-tracker/internal/calc"
	"jobsite-tracker/internal/domain"
)

// promptConfirmer lists entries over eight hours and asks on the terminal
// whether to submit anyway.
type promptConfirmer struct {
	in  io.Reader
	out io.Writer
}

func newPromptConfirmer(in io.Reader, out io.Writer) *promptConfirmer {
	return &promptConfirmer{in: in, out: out}
}

func (p *promptConfirmer) ConfirmOverages(ctx context.Context, overages []calc.Overage) (bool, error) {
	fmt.Fprintln(p.out, warningStyle.Render("These entries are over 8 hours:"))
	for _, o := range overages {
		fmt.Fprintf(p.out, "  %s  %-20s %s h\n", o.Date.Format(domain.DateLayout), o.Employee, calc.FormatHours(o.Hours))
	}
	fmt.Fprint(p.out, "Submit anyway? [y/N]: ")

	if err := ctx.Err(); err != nil {
		return false, err
	}

	var input string
	fmt.Fscanln(p.in, &input)

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
