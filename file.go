package spellcsv

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dataset file naming conventions. Yearly files cover 2000-2014 with a
// two-digit year offset; 2015 and 2016 ship as one combined file.
const (
	datasetBaseName   = "mon_ew_xt_uni_bus"
	datasetFirstYear  = 2000
	datasetLastSingle = 2014
	combinedSuffix    = "1516"
	colsFileSuffix    = ".cols.txt"
	dataFileSuffix    = ".csv.gz"
)

// SpellFileName returns the dataset file name for the given year. Years 2015
// and 2016 map to the combined "1516" file.
func SpellFileName(year int) (string, error) {
	switch {
	case year >= datasetFirstYear && year <= datasetLastSingle:
		return fmt.Sprintf("%s_%02d%s", datasetBaseName, year-datasetFirstYear, dataFileSuffix), nil
	case year == 2015 || year == 2016:
		return fmt.Sprintf("%s_%s%s", datasetBaseName, combinedSuffix, dataFileSuffix), nil
	default:
		return "", fmt.Errorf("%w: no dataset file for year %d", ErrUnsupportedFile, year)
	}
}

// SpellFileNames returns all dataset file names in year order: the fifteen
// yearly files followed by the combined 2015-2016 file.
func SpellFileNames() []string {
	names := make([]string, 0, datasetLastSingle-datasetFirstYear+2)
	for year := datasetFirstYear; year <= datasetLastSingle; year++ {
		name, _ := SpellFileName(year)
		names = append(names, name)
	}
	combined, _ := SpellFileName(2015)
	return append(names, combined)
}

// ColsFileName returns the name of the sidecar file carrying the
// semicolon-joined column names on its first line.
func ColsFileName() string {
	return datasetBaseName + colsFileSuffix
}

// IsSpellFile reports whether the base name of path follows the dataset
// naming convention.
func IsSpellFile(path string) bool {
	base := filepath.Base(path)
	for _, name := range SpellFileNames() {
		if base == name {
			return true
		}
	}
	return false
}

// LoadHeader reads the column names from the cols.txt sidecar in dir. Only
// the first line is consulted; it holds the semicolon-joined names.
func LoadHeader(dir string) ([]string, error) {
	path := filepath.Join(dir, ColsFileName())
	file, err := os.Open(path) //nolint:gosec // Path is derived from the dataset directory
	if err != nil {
		return nil, fmt.Errorf("failed to open column file %s: %w", path, err)
	}
	defer func() {
		_ = file.Close() // Ignore close error on a read-only file
	}()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, initialLineBufferSize), maxLineBufferSize)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read column file %s: %w", path, err)
		}
		return nil, fmt.Errorf("%w: %s", ErrEmptyData, path)
	}

	header := ParseHeader(scanner.Text())
	if len(header) == 1 && strings.TrimSpace(header[0]) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyData, path)
	}
	return header, nil
}
