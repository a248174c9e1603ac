package spellcsv

import (
	"fmt"
	"strings"
)

// ColumnSpec binds a header column name to the accumulator that should
// process it. Specs must be declared in the order the columns appear in the
// file; unlisted columns in between receive a Skip accumulator.
type ColumnSpec struct {
	Name        string
	Accumulator Accumulator
}

// validateColumnNames checks for duplicate column names. Comparison is
// case-sensitive after trimming whitespace.
func validateColumnNames(columns []string) error {
	columnsSeen := make(map[string]bool)
	for _, col := range columns {
		trimmedCol := strings.TrimSpace(col)
		if columnsSeen[trimmedCol] {
			return fmt.Errorf("%w: %s", ErrDuplicateColumnName, col)
		}
		columnsSeen[trimmedCol] = true
	}
	return nil
}

// ResolveColumns resolves each spec's column name against the header and
// returns the accumulator sequence for the line driver: one accumulator per
// column up to and including the last declared one, with Skip filling the
// gaps. Header columns after the last declared spec are not represented and
// therefore ignored by the line driver.
//
// Resolution fails when the header contains duplicate names, a spec names an
// unknown column, or the specs are not in strictly increasing header order.
// These are caller programming errors and are fatal before any line is
// processed.
func ResolveColumns(header []string, specs []ColumnSpec) ([]Accumulator, error) {
	if err := validateColumnNames(header); err != nil {
		return nil, err
	}

	indexOf := make(map[string]int, len(header))
	for i, name := range header {
		indexOf[strings.TrimSpace(name)] = i
	}

	accs := make([]Accumulator, 0, len(specs))
	prev := -1
	for _, spec := range specs {
		idx, ok := indexOf[spec.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, spec.Name)
		}
		if idx <= prev {
			return nil, fmt.Errorf("%w: %s (column %d after column %d)",
				ErrColumnOrder, spec.Name, idx+1, prev+1)
		}
		for gap := prev + 1; gap < idx; gap++ {
			accs = append(accs, Skip())
		}
		accs = append(accs, spec.Accumulator)
		prev = idx
	}
	return accs, nil
}

// ParseHeader splits the first line of a cols.txt sidecar file into column
// names. The trailing line terminator, if present, is stripped.
func ParseHeader(line string) []string {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return strings.Split(line, string(fieldSeparator))
}
