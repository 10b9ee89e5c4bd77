// Package parquet provides data structures and functions for exporting stored
// result records to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/schooltools/rankbook/internal/contract"
)

// ResultRecord represents a single persisted student result row.
// This struct maps to the rankbook_student_results database table.
type ResultRecord struct {
	// PassID identifies the computation pass that produced this row
	PassID string `parquet:"pass_id,snappy"`

	// ClassID is the class this result was computed for
	ClassID string `parquet:"class_id,snappy"`

	// StudentID is the student this row belongs to
	StudentID string `parquet:"student_id,snappy"`

	// AcademicYear is the school year the result covers
	AcademicYear string `parquet:"academic_year,snappy"`

	// Term is the school term the result covers
	Term string `parquet:"term,snappy"`

	// TotalScore is the sum of normalized subject scores
	TotalScore float64 `parquet:"total_score,snappy"`

	// AverageScore is the mean over graded subjects
	AverageScore float64 `parquet:"average_score,snappy"`

	// PositionInClass is the competition rank (0 when unranked)
	PositionInClass int32 `parquet:"position_in_class,snappy"`

	// TotalStudentsInClass is the full cohort size, unranked students included
	TotalStudentsInClass int32 `parquet:"total_students_in_class,snappy"`

	// Status is the record status: Ranked, Incomplete or No Data
	Status string `parquet:"status,snappy"`

	// RecordedAt is when the pass was persisted (stored as TIMESTAMP with nanosecond precision)
	RecordedAt time.Time `parquet:"recorded_at,snappy"`
}

// ConvertStoredResults converts stored rows to the Parquet export shape.
func ConvertStoredResults(records []contract.StoredResult) []ResultRecord {
	converted := make([]ResultRecord, 0, len(records))
	for _, record := range records {
		converted = append(converted, ResultRecord{
			PassID:               record.PassID,
			ClassID:              record.ClassID,
			StudentID:            record.StudentID,
			AcademicYear:         record.AcademicYear,
			Term:                 string(record.Term),
			TotalScore:           record.TotalScore,
			AverageScore:         record.AverageScore,
			PositionInClass:      int32(record.PositionInClass),
			TotalStudentsInClass: int32(record.TotalStudentsInClass),
			Status:               string(record.Status),
			RecordedAt:           record.RecordedAt,
		})
	}
	return converted
}

// WriteResultRecordsParquet writes a slice of ResultRecord structs to a Parquet file.
func WriteResultRecordsParquet(data []ResultRecord, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the ResultRecord struct tags
	writer := parquet.NewGenericWriter[ResultRecord](file)

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	// Close flushes the footer; its error matters
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	return nil
}

// ReadResultRecordsParquet reads all ResultRecord rows back from a Parquet file.
func ReadResultRecordsParquet(inputPath string) ([]ResultRecord, error) {
	rows, err := parquet.ReadFile[ResultRecord](inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet file: %w", err)
	}
	return rows, nil
}
