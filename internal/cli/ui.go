package cli

import (
	"cmp"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/ursisterbtw/gh-analyzer/pkg/analyzer"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// =============================================================================
// Key-Value Output
// =============================================================================

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Summary Display
// =============================================================================

// printSummary prints a short overview of an analysis result.
func printSummary(s *analyzer.Summary) {
	fmt.Println(StyleTitle.Render(s.Repo.Name))
	if s.Repo.Description != nil && *s.Repo.Description != "" {
		printDetail("%s", *s.Repo.Description)
	}
	if s.Repo.HTMLURL != "" {
		printKeyValue("url", StyleLink.Render(s.Repo.HTMLURL))
	}
	printKeyValue("stars", StyleNumber.Render(fmt.Sprint(s.Repo.Stars)))
	printKeyValue("forks", StyleNumber.Render(fmt.Sprint(s.Repo.Forks)))
	printKeyValue("issues", StyleNumber.Render(fmt.Sprint(s.Stats.OpenIssues)))
	if s.Repo.License != nil {
		printKeyValue("license", s.Repo.License.Name)
	}
	if langs := topLanguages(s, 3); langs != "" {
		printKeyValue("languages", langs)
	}
	if files := s.Files(); len(files) > 0 {
		printKeyValue("files", strings.Join(files, ", "))
	} else {
		printWarning("none of the candidate files were found")
	}
	if len(s.Languages) > 0 {
		fmt.Println()
		if err := renderLanguageTable(os.Stdout, s); err != nil {
			printWarning("language table: %v", err)
		}
	}
}

// languageShare is one row of the language breakdown.
type languageShare struct {
	Name    string
	Bytes   int64
	Percent float64
}

// rankLanguages orders languages by byte count, largest first, ties by name.
// Languages with no bytes are omitted. n <= 0 keeps every language.
func rankLanguages(s *analyzer.Summary, n int) []languageShare {
	var total int64
	for _, b := range s.Languages {
		total += b
	}
	if total == 0 {
		return nil
	}

	names := slices.Collect(maps.Keys(s.Languages))
	slices.SortFunc(names, func(a, b string) int {
		if c := cmp.Compare(s.Languages[b], s.Languages[a]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	var out []languageShare
	for _, name := range names {
		if s.Languages[name] == 0 || (n > 0 && len(out) == n) {
			break
		}
		out = append(out, languageShare{
			Name:    name,
			Bytes:   s.Languages[name],
			Percent: float64(s.Languages[name]) * 100 / float64(total),
		})
	}
	return out
}

// topLanguages formats the n largest languages as "Go 82.1%, Shell 17.9%".
func topLanguages(s *analyzer.Summary, n int) string {
	shares := rankLanguages(s, n)
	parts := make([]string, len(shares))
	for i, l := range shares {
		parts[i] = fmt.Sprintf("%s %.1f%%", l.Name, l.Percent)
	}
	return strings.Join(parts, ", ")
}

// renderLanguageTable writes the full language breakdown as a table.
// Nothing is written when the repository reports no language bytes.
func renderLanguageTable(w io.Writer, s *analyzer.Summary) error {
	shares := rankLanguages(s, 0)
	if len(shares) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("LANGUAGE", "BYTES", "SHARE")
	for _, l := range shares {
		if err := table.Append(l.Name, strconv.FormatInt(l.Bytes, 10), fmt.Sprintf("%.1f%%", l.Percent)); err != nil {
			return err
		}
	}
	return table.Render()
}
