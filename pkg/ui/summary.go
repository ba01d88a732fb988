package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SummaryRow is one category line of the download summary.
type SummaryRow struct {
	Label string
	Count int
}

// DownloadSummary is what PrintSummary renders.
type DownloadSummary struct {
	Rows     []SummaryRow
	Total    int
	Existing int
	Failed   int
	Dir      string
	// Empty means no attachment matched the requested types.
	Empty bool
}

// PrintSummary writes the end of run report to w.
func PrintSummary(w io.Writer, s DownloadSummary) {
	if s.Empty {
		fmt.Fprintln(w, "No media files found in this channel.")
		return
	}

	rule := strings.Repeat("-", 40)
	fmt.Fprintf(w, "\n%s\n", Cyan("Download Summary:"))
	fmt.Fprintln(w, rule)
	for _, row := range s.Rows {
		if row.Count > 0 {
			fmt.Fprintf(w, "%s: %d files\n", Capitalize(row.Label), row.Count)
		}
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total: %d files\n", s.Total)
	if s.Existing > 0 {
		fmt.Fprintf(w, "Already present: %d files\n", s.Existing)
	}
	if s.Failed > 0 {
		fmt.Fprintln(w, Red(fmt.Sprintf("Failed: %d files", s.Failed)))
	}
	fmt.Fprintf(w, "Files saved to: %s\n", s.Dir)
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
