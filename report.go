package spellcsv

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// errorSheetName is the worksheet holding the flattened error records.
const errorSheetName = "errors"

// WriteErrorReportText renders all logs into one plain-text report at path.
// A ".gz", ".xz" or ".zst" extension compresses the output transparently.
// Every file contributes its summary line followed by its rendered errors.
func WriteErrorReportText(path string, logs []*FileErrorLog) (err error) {
	writer, cleanup, err := CreateDataFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if cleanupErr := cleanup(); cleanupErr != nil && err == nil {
			err = cleanupErr
		}
	}()

	for _, log := range logs {
		if _, err = fmt.Fprintln(writer, log.Summary()); err != nil {
			return fmt.Errorf("failed to write error report: %w", err)
		}
		if err = log.Render(writer); err != nil {
			return err
		}
	}
	return nil
}

// WriteErrorReportXLSX exports all logs as a spreadsheet for manual review,
// one row per error with the file name, line number, failing field and byte
// position, and the raw line content.
func WriteErrorReportXLSX(path string, logs []*FileErrorLog) (err error) {
	book := excelize.NewFile()
	defer func() {
		if closeErr := book.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", closeErr)
		}
	}()

	// Rename the default sheet instead of juggling a second one.
	if err = book.SetSheetName(book.GetSheetName(0), errorSheetName); err != nil {
		return fmt.Errorf("failed to create error sheet: %w", err)
	}

	header := []any{"file", "line", "field", "byte", "content"}
	if err = book.SetSheetRow(errorSheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	row := 2
	for _, log := range logs {
		for _, e := range log.Errors() {
			cell := fmt.Sprintf("A%d", row)
			values := []any{
				log.Filename(),
				e.Line,
				e.FieldIndex,
				e.BytePos,
				strings.TrimSuffix(string(e.Content), "\n"),
			}
			if err = book.SetSheetRow(errorSheetName, cell, &values); err != nil {
				return fmt.Errorf("failed to write report row %d: %w", row, err)
			}
			row++
		}
	}

	if err = book.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save error report %s: %w", path, err)
	}
	return nil
}
