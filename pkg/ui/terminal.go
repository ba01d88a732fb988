package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	dimStyle       = lipgloss.NewStyle().Faint(true)
)

var (
	mu        sync.Mutex
	out       io.Writer = os.Stdout
	errOut    io.Writer = os.Stderr
	colorOn             = true
	quietMode           = false
)

// SetOutput redirects normal and error output. Nil keeps the current writer.
func SetOutput(stdout, stderr io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if stdout != nil {
		out = stdout
	}
	if stderr != nil {
		errOut = stderr
	}
}

// Output returns the writer used for normal output.
func Output() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return out
}

// SetColorEnabled toggles styling. NO_COLOR and --no-color turn it off.
func SetColorEnabled(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	colorOn = enabled
}

// SetQuietMode suppresses informational output. Errors are still printed.
func SetQuietMode(quiet bool) {
	mu.Lock()
	defer mu.Unlock()
	quietMode = quiet
}

// IsQuietMode reports whether informational output is suppressed.
func IsQuietMode() bool {
	mu.Lock()
	defer mu.Unlock()
	return quietMode
}

func render(style lipgloss.Style, text string) string {
	mu.Lock()
	enabled := colorOn
	mu.Unlock()
	if !enabled {
		return text
	}
	return style.Render(text)
}

// Red renders text in the error style
func Red(text string) string { return render(errorStyle, text) }

// Green renders text in the success style
func Green(text string) string { return render(successStyle, text) }

// Cyan renders text in the label style
func Cyan(text string) string { return render(labelStyle, text) }

// Yellow renders text in the warning style
func Yellow(text string) string { return render(warningStyle, text) }

// Magenta renders text in the highlight style
func Magenta(text string) string { return render(highlightStyle, text) }

// Dim renders text faint
func Dim(text string) string { return render(dimStyle, text) }

// PrintError prints an error message to stderr, followed by an optional detail
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		msg = fmt.Sprintf("%s: %v", msg, args[0])
	}
	mu.Lock()
	w := errOut
	mu.Unlock()
	fmt.Fprintln(w, Red(msg))
}

// PrintSuccess prints a success message
func PrintSuccess(msg string) {
	if IsQuietMode() {
		return
	}
	fmt.Fprintln(Output(), Green(msg))
}

// PrintInfo prints a label and value pair
func PrintInfo(label string, value string) {
	if IsQuietMode() {
		return
	}
	fmt.Fprintf(Output(), "%s: %s\n", render(labelStyle, label), render(valueStyle, value))
}

// PrintWarning prints a warning message to stderr
func PrintWarning(msg string, args ...interface{}) {
	if len(args) > 0 {
		msg = fmt.Sprintf("%s: %v", msg, args[0])
	}
	mu.Lock()
	w := errOut
	mu.Unlock()
	fmt.Fprintln(w, Yellow(msg))
}

// PrintHighlight prints a highlighted message
func PrintHighlight(msg string) {
	if IsQuietMode() {
		return
	}
	fmt.Fprintln(Output(), Magenta(msg))
}
