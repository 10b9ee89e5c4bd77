package resultstore

import (
	"errors"
	"fmt"

	"github.com/schooltools/rankbook/internal/contract"
	"github.com/schooltools/rankbook/internal/parquet"
)

// ExecuteResultsExport exports every stored result record to a Parquet file.
func ExecuteResultsExport(store contract.ResultStore, outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Check if there's any data to export
	status, err := store.Status()
	if err != nil {
		return fmt.Errorf("failed to get result store status: %w", err)
	}

	if status.Records == 0 {
		return errors.New("no result records found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total passes: %d\n", status.Passes)
	fmt.Printf("Total result records: %d\n", status.Records)

	// Retrieve all stored result rows
	records, err := store.AllRecords()
	if err != nil {
		return fmt.Errorf("failed to retrieve result records: %w", err)
	}

	// Convert to Parquet format and write
	converted := parquet.ConvertStoredResults(records)
	if err := parquet.WriteResultRecordsParquet(converted, outputFile); err != nil {
		return fmt.Errorf("failed to write result records: %w", err)
	}
	fmt.Printf("Exported %d result records to: %s\n", len(converted), outputFile)

	return nil
}
