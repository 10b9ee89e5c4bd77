package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/schooltools/rankbook/schema"
)

// Color variables for console output.
var (
	GradeAColor  = color.New(color.FgGreen, color.Bold) // top band
	GradeBColor  = color.New(color.FgCyan)              // strong performance
	GradeCColor  = color.New(color.FgYellow)            // average performance
	GradeDColor  = color.New(color.FgMagenta)           // below average
	GradeFColor  = color.New(color.FgRed, color.Bold)   // failing band
	RankedColor  = color.New(color.FgGreen)             // fully ranked record
	PartialColor = color.New(color.FgYellow)            // incomplete record
	NoDataColor  = color.New(color.FgRed)               // no gradable data
)

// GetColorGrade returns a colored letter grade for console output.
// Letters outside the default five bands render uncolored.
func GetColorGrade(letter string) string {
	switch letter {
	case "A":
		return GradeAColor.Sprint(letter)
	case "B":
		return GradeBColor.Sprint(letter)
	case "C":
		return GradeCColor.Sprint(letter)
	case "D":
		return GradeDColor.Sprint(letter)
	case "F":
		return GradeFColor.Sprint(letter)
	default:
		return letter
	}
}

// GetColorStatus returns a colored status label for console output.
func GetColorStatus(status schema.Status) string {
	switch status {
	case schema.StatusRanked:
		return RankedColor.Sprint(string(status))
	case schema.StatusIncomplete:
		return PartialColor.Sprint(string(status))
	case schema.StatusNoData:
		return NoDataColor.Sprint(string(status))
	default:
		return string(status)
	}
}

// SelectOutputFile returns the appropriate file handle for output,
// based on the provided file path. It falls back to os.Stdout when no
// path is given.
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

// GetGradebookDBFilePath returns the path to the SQLite DB file for gradebook storage.
func GetGradebookDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".rankbook_gradebook.db"
	}
	return filepath.Join(homeDir, ".rankbook_gradebook.db")
}

// GetResultsDBFilePath returns the path to the SQLite DB file for result storage.
func GetResultsDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".rankbook_results.db"
	}
	return filepath.Join(homeDir, ".rankbook_results.db")
}

// TruncateName truncates an identifier to a maximum width with ellipsis suffix.
// Requires maxWidth > 3 so there is room for both content and the "...".
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
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
