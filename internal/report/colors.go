package report

import "sort"

// DefaultPalette is used when no chart palette is configured.
var DefaultPalette = []string{
	"#2563eb",
	"#16a34a",
	"#dc2626",
	"#d97706",
	"#7c3aed",
	"#0891b2",
	"#db2777",
	"#65a30d",
}

// AssignColors maps each name to a palette color. Names are sorted first so
// the same set of people always gets the same colors regardless of input
// order. The palette wraps when there are more names than colors.
func AssignColors(names []string, palette []string) map[string]string {
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	sorted := make([]string, 0, len(names))
	dupe := make(map[string]bool, len(names))
	for _, n := range names {
		if dupe[n] {
			continue
		}
		dupe[n] = true
		sorted = append(sorted, n)
	}
	sort.Strings(sorted)

	colors := make(map[string]string, len(sorted))
	for i, n := range sorted {
		colors[n] = palette[i%len(palette)]
	}
	return colors
}
