// Package main provides a performance benchmarking tool for the rankbook engine.
// It measures full computation passes over synthetic cohorts of increasing size,
// running each case multiple times, treating the first run as cold and averaging
// the rest as warm, generating CSV output for performance documentation.
//
// Usage: go run benchmark/main.go [output-csv]
//
//	output-csv: Optional path for the CSV report (defaults to stdout)
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/schooltools/rankbook/core"
	"github.com/schooltools/rankbook/internal/contract"
	"github.com/schooltools/rankbook/internal/gradebook"
	"github.com/schooltools/rankbook/schema"
)

// BenchmarkResult holds the result of one benchmark case.
type BenchmarkResult struct {
	Students  int
	Subjects  int
	Marks     int
	ColdTime  string
	WarmTime  string
	PerPass   string
	RunsTotal int
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Workers  int
	Runs     int
	Cohorts  []int // student counts per case
	Subjects int
	MarksPer int // marks per student per subject
}

func main() {
	out := os.Stdout
	if len(os.Args) == 2 {
		f, err := os.Create(os.Args[1])
		if err != nil {
			fmt.Printf("Cannot create output file: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	config := BenchmarkConfig{
		Workers:  8,
		Runs:     5,
		Cohorts:  []int{50, 500, 5000},
		Subjects: 10,
		MarksPer: 4,
	}

	var results []BenchmarkResult
	for _, students := range config.Cohorts {
		result, err := runCase(config, students)
		if err != nil {
			fmt.Printf("Benchmark case with %d students failed: %v\n", students, err)
			os.Exit(1)
		}
		results = append(results, result)
		fmt.Printf("Cohort %5d: cold %s, warm %s\n", students, result.ColdTime, result.WarmTime)
	}

	if err := writeCSV(out, results); err != nil {
		fmt.Printf("Cannot write CSV report: %v\n", err)
		os.Exit(1)
	}
}

// runCase seeds one synthetic cohort and times repeated passes over it.
func runCase(config BenchmarkConfig, students int) (BenchmarkResult, error) {
	gb := seedCohort(students, config.Subjects, config.MarksPer)
	cfg := &contract.Config{
		ClassID:        "BENCH",
		Term:           schema.FirstTerm,
		AcademicYear:   "2025/2026",
		FormulaID:      schema.ActiveFormulaID,
		Workers:        config.Workers,
		StudentTimeout: contract.DefaultStudentTimeout,
		Scale:          schema.DefaultGradeScale(),
	}

	ctx := context.Background()
	var cold, warmTotal time.Duration
	for run := range config.Runs {
		start := time.Now()
		set, err := core.RunClassPass(ctx, cfg, gb)
		if err != nil {
			return BenchmarkResult{}, err
		}
		elapsed := time.Since(start)
		if len(set.Results) != students {
			return BenchmarkResult{}, fmt.Errorf("expected %d results, got %d", students, len(set.Results))
		}
		if run == 0 {
			cold = elapsed
		} else {
			warmTotal += elapsed
		}
	}

	warm := warmTotal / time.Duration(config.Runs-1)
	return BenchmarkResult{
		Students:  students,
		Subjects:  config.Subjects,
		Marks:     students * config.Subjects * config.MarksPer,
		ColdTime:  cold.Round(time.Microsecond).String(),
		WarmTime:  warm.Round(time.Microsecond).String(),
		PerPass:   (warm / time.Duration(students)).Round(time.Microsecond).String(),
		RunsTotal: config.Runs,
	}, nil
}

// seedCohort builds an in-memory gradebook with a deterministic spread of marks.
func seedCohort(students, subjects, marksPer int) *gradebook.MemoryGradebook {
	gb := gradebook.NewMemory()
	gb.AddFormula(schema.Formula{
		ID:   "bench",
		Name: "Benchmark formula",
		Weights: map[string]float64{
			schema.TestTypeMidterm: 0.3,
			schema.TestTypeEndterm: 0.7,
		},
		PassingScore: 50,
		IsActive:     true,
	})

	testTypes := []string{schema.TestTypeMidterm, schema.TestTypeEndterm}
	testDate := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	for s := range subjects {
		gb.AddAssignment(schema.Assignment{
			ID:           fmt.Sprintf("A%03d", s),
			TeacherID:    fmt.Sprintf("T%03d", s),
			SubjectID:    fmt.Sprintf("SUBJ%03d", s),
			ClassID:      "BENCH",
			AcademicYear: "2025/2026",
			Term:         schema.FirstTerm,
		})
	}

	for i := range students {
		studentID := fmt.Sprintf("S%05d", i)
		gb.Enroll("BENCH", schema.FirstTerm, "2025/2026", studentID)
		for s := range subjects {
			assignmentID := fmt.Sprintf("A%03d", s)
			for m := range marksPer {
				gb.AddMark(schema.AssessmentMark{
					AssignmentID: assignmentID,
					StudentID:    studentID,
					TestType:     testTypes[m%len(testTypes)],
					TestDate:     testDate,
					Score:        float64((i*7 + s*3 + m*11) % 101),
					MaxScore:     100,
				})
			}
		}
	}

	return gb
}

// writeCSV emits the benchmark report.
func writeCSV(out *os.File, results []BenchmarkResult) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	if err := w.Write([]string{"students", "subjects", "marks", "cold", "warm_avg", "warm_per_student", "runs"}); err != nil {
		return err
	}
	for _, r := range results {
		record := []string{
			fmt.Sprintf("%d", r.Students),
			fmt.Sprintf("%d", r.Subjects),
			fmt.Sprintf("%d", r.Marks),
			r.ColdTime,
			r.WarmTime,
			r.PerPass,
			fmt.Sprintf("%d", r.RunsTotal),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Error()
}
