package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"jobsite-tracker/internal/calc"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	totalStyle = lipgloss.NewStyle().
			Bold(true)
)

func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, titleStyle.Render(title))
	fmt.Fprintln(w, dimStyle.Render(strings.Repeat("─", lipgloss.Width(title))))
}

// swatch renders a name in its chart color
func swatch(name, color string) string {
	if color == "" {
		return name
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(name)
}

func money(d decimal.Decimal) string {
	return calc.FormatCurrency(d)
}

func hours(d decimal.Decimal) string {
	return calc.FormatHours(d)
}
