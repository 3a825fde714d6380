package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/talentops/ninebox/schema"
)

// Color variables for console output.
var (
	RedColor    = color.New(color.FgRed, color.Bold)   // statistically significant at the red threshold
	YellowColor = color.New(color.FgYellow)            // significant at the yellow threshold
	GreenColor  = color.New(color.FgGreen)             // no anomaly detected
	ErrorColor  = color.New(color.FgMagenta)           // analysis could not run
	HighColor   = color.New(color.FgRed, color.Bold)   // high priority insight
	MedColor    = color.New(color.FgYellow)            // medium priority insight
	LowColor    = color.New(color.FgCyan)              // low priority insight
	DimColor    = color.New(color.FgWhite, color.Faint) // secondary detail
)

// GetPlainStatusLabel returns the plain text label for an analysis status.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainStatusLabel(status schema.AnalysisStatus) string {
	switch status {
	case schema.StatusRed:
		return "Red"
	case schema.StatusYellow:
		return "Yellow"
	case schema.StatusGreen:
		return "Green"
	default:
		return "Error"
	}
}

// GetColorStatusLabel returns a colored status label for console output.
func GetColorStatusLabel(status schema.AnalysisStatus) string {
	text := GetPlainStatusLabel(status)
	switch status {
	case schema.StatusRed:
		return RedColor.Sprint(text)
	case schema.StatusYellow:
		return YellowColor.Sprint(text)
	case schema.StatusGreen:
		return GreenColor.Sprint(text)
	default:
		return ErrorColor.Sprint(text)
	}
}

// GetPlainPriorityLabel returns the plain text label for an insight priority.
func GetPlainPriorityLabel(priority schema.InsightPriority) string {
	switch priority {
	case schema.PriorityHigh:
		return "High"
	case schema.PriorityMedium:
		return "Medium"
	default:
		return "Low"
	}
}

// GetColorPriorityLabel returns a colored priority label for console output.
func GetColorPriorityLabel(priority schema.InsightPriority) string {
	text := GetPlainPriorityLabel(priority)
	switch priority {
	case schema.PriorityHigh:
		return HighColor.Sprint(text)
	case schema.PriorityMedium:
		return MedColor.Sprint(text)
	default:
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when the path is empty.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetSessionDBFilePath returns the path to the SQLite DB file for session storage.
func GetSessionDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".ninebox_sessions.db"
	}
	return filepath.Join(homeDir, ".ninebox_sessions.db")
}

// TruncateText truncates a string to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and content.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
