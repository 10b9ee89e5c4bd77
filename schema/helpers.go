package schema

import (
	"fmt"
	"sort"
	"strings"
)

// CountGrades tallies letter grades across a student's graded subjects.
// Incomplete subjects carry no grade and are skipped.
func CountGrades(subjects []SubjectResult) map[string]int {
	counts := make(map[string]int)
	for _, s := range subjects {
		if s.Status == StatusRanked && s.Grade != "" {
			counts[s.Grade]++
		}
	}
	return counts
}

// FormatGradeCounts renders a distribution like "3A 2B 1F" with letters
// in scale order so the output is stable across runs.
func FormatGradeCounts(counts map[string]int, scale GradeScale) string {
	var parts []string
	for _, b := range scale {
		if n, ok := counts[b.Letter]; ok && n > 0 {
			parts = append(parts, fmt.Sprintf("%d%s", n, b.Letter))
		}
	}
	// letters outside the scale (e.g. after a scale retune) still show up
	var extra []string
	for letter, n := range counts {
		if !scale.hasLetter(letter) && n > 0 {
			extra = append(extra, fmt.Sprintf("%d%s", n, letter))
		}
	}
	sort.Strings(extra)
	return strings.Join(append(parts, extra...), " ")
}

func (gs GradeScale) hasLetter(letter string) bool {
	for _, b := range gs {
		if b.Letter == letter {
			return true
		}
	}
	return false
}

// RemarkForAverage produces the report-card summary remark for an
// average score under the given scale.
func RemarkForAverage(avg float64, scale GradeScale) string {
	switch scale.Classify(avg) {
	case "A":
		return "Excellent performance"
	case "B":
		return "Very good performance"
	case "C":
		return "Good performance"
	case "D":
		return "Fair performance, needs improvement"
	default:
		return "Poor performance, needs serious attention"
	}
}
