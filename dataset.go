package spellcsv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Dataset is one directory holding the yearly dump files and their cols.txt
// sidecar. The header is loaded once at open time; all column resolution for
// the dataset goes through it.
type Dataset struct {
	dir    string
	header []string
}

// OpenDataset opens the dataset rooted at dir and loads its header from the
// cols.txt sidecar.
func OpenDataset(dir string) (*Dataset, error) {
	header, err := LoadHeader(dir)
	if err != nil {
		return nil, err
	}
	if err := validateColumnNames(header); err != nil {
		return nil, err
	}
	return &Dataset{dir: dir, header: header}, nil
}

// Header returns the dataset's column names in file order.
func (d *Dataset) Header() []string {
	return d.header
}

// Files returns the full paths of the dataset files present in the
// directory, in year order. Missing years are skipped; an empty result means
// the directory holds no dataset files at all.
func (d *Dataset) Files() []string {
	var paths []string
	for _, name := range SpellFileNames() {
		path := filepath.Join(d.dir, name)
		if _, err := os.Stat(path); err == nil {
			paths = append(paths, path)
		}
	}
	return paths
}

// ProcessFile opens one dataset file with transparent decompression and runs
// the stream driver over it. The config's Filename is filled from the path.
func (d *Dataset) ProcessFile(ctx context.Context, path string, cfg StreamConfig) (*FileErrorLog, error) {
	reader, cleanup, err := OpenDataFile(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cleanup() // Ignore close error after a completed read
	}()

	cfg.Filename = filepath.Base(path)
	return ProcessLines(ctx, reader, cfg)
}

// columnBinding kinds of the orchestration passes.
type bindingKind int

const (
	bindID bindingKind = iota
	bindDate
	bindString
)

// columnBinding ties one selected column to its role and output position.
type columnBinding struct {
	name      string
	headerIdx int
	kind      bindingKind
	out       int
}

// FirstPassOptions selects the columns of interest for the initial scan.
type FirstPassOptions struct {
	// IDColumn is the unsigned identifier column; its values feed the
	// deduplicating set, the AutoIndex and the IDCounter.
	IDColumn string

	// DateColumns are YYYYMMDD columns collected into one shared DateSet.
	DateColumns []string

	// StringColumns are categorical byte columns, each collected into its
	// own ByteSet.
	StringColumns []string

	// StrictDates rejects a day of month of 0 instead of coercing it to 1.
	StrictDates bool

	// IndexWidth bounds the AutoIndex capacity; zero selects Width32.
	IndexWidth IntWidth

	// MaxLines caps the lines processed per file. Zero or negative means
	// unbounded.
	MaxLines int64

	// Progress, if set, is invoked once per line of every file.
	Progress func(file string, line int64)
}

// FirstPassResult carries everything the first pass observed.
type FirstPassResult struct {
	IDs     UintSet
	Dates   DateSet
	Strings map[string]ByteSet
	Index   *AutoIndex[uint64]
	Counter IDCounter
	Logs    []*FileErrorLog
}

// TotalErrors returns the number of malformed lines across all files.
func (r *FirstPassResult) TotalErrors() int {
	total := 0
	for _, log := range r.Logs {
		total += log.Len()
	}
	return total
}

// bindColumns resolves the selected column names against the header and
// orders them by header position, assigning output positions along the way.
func (d *Dataset) bindColumns(idColumn string, dateColumns, stringColumns []string) ([]columnBinding, error) {
	indexOf := make(map[string]int, len(d.header))
	for i, name := range d.header {
		indexOf[strings.TrimSpace(name)] = i
	}

	var bindings []columnBinding
	add := func(name string, kind bindingKind) error {
		idx, ok := indexOf[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrColumnNotFound, name)
		}
		bindings = append(bindings, columnBinding{name: name, headerIdx: idx, kind: kind})
		return nil
	}

	if idColumn != "" {
		if err := add(idColumn, bindID); err != nil {
			return nil, err
		}
	}
	for _, name := range dateColumns {
		if err := add(name, bindDate); err != nil {
			return nil, err
		}
	}
	for _, name := range stringColumns {
		if err := add(name, bindString); err != nil {
			return nil, err
		}
	}

	sort.Slice(bindings, func(i, j int) bool { return bindings[i].headerIdx < bindings[j].headerIdx })
	for i := range bindings {
		bindings[i].out = i
	}
	return bindings, nil
}

// FirstPass scans every dataset file in year order, accumulating the unique
// identifiers, dates and categorical values, assigning dense integers to the
// identifiers in encounter order, and tallying spells per identifier.
// Malformed lines are collected per file; only schema or capacity errors
// abort the pass.
func (d *Dataset) FirstPass(ctx context.Context, opts FirstPassOptions) (*FirstPassResult, error) {
	width := opts.IndexWidth
	if width == 0 {
		width = Width32
	}

	bindings, err := d.bindColumns(opts.IDColumn, opts.DateColumns, opts.StringColumns)
	if err != nil {
		return nil, err
	}

	result := &FirstPassResult{
		IDs:     NewUintSet(),
		Dates:   NewDateSet(),
		Strings: make(map[string]ByteSet),
		Index:   NewAutoIndex[uint64](width),
		Counter: NewIDCounter(),
	}

	var indexErr error
	specs := make([]ColumnSpec, 0, len(bindings))
	for _, b := range bindings {
		switch b.kind {
		case bindID:
			specs = append(specs, ColumnSpec{Name: b.name, Accumulator: ConvertUint(func(v uint64) {
				result.IDs.Add(v)
				result.Counter.Add(v)
				if _, err := result.Index.Index(v); err != nil && indexErr == nil {
					indexErr = err
				}
			})})
		case bindDate:
			specs = append(specs, ColumnSpec{Name: b.name, Accumulator: CollectDate(result.Dates, opts.StrictDates)})
		case bindString:
			set := NewByteSet()
			result.Strings[b.name] = set
			specs = append(specs, ColumnSpec{Name: b.name, Accumulator: CollectBytes(set)})
		}
	}

	accs, err := ResolveColumns(d.header, specs)
	if err != nil {
		return nil, err
	}

	for _, path := range d.Files() {
		file := filepath.Base(path)
		cfg := StreamConfig{
			Accumulators: accs,
			MaxLines:     opts.MaxLines,
			OnRecord:     func() error { return indexErr },
		}
		if opts.Progress != nil {
			cfg.Progress = func(line int64) { opts.Progress(file, line) }
		}

		errLog, err := d.ProcessFile(ctx, path, cfg)
		if errLog != nil {
			result.Logs = append(result.Logs, errLog)
		}
		if err != nil {
			return result, err
		}
	}
	return result, nil
}

// ConvertOptions configures the conversion pass that writes the columnar
// Parquet streams.
type ConvertOptions struct {
	// Column selection, same semantics as FirstPassOptions. The identifier
	// column is written as its dense AutoIndex integer, not its raw value.
	IDColumn      string
	DateColumns   []string
	StringColumns []string
	StrictDates   bool

	// OutputDir receives one <input-base>.parquet file per dataset file.
	OutputDir string

	// RowsPerGroup sets the Parquet row group size; <= 0 selects
	// DefaultRowsPerGroup.
	RowsPerGroup int

	// MaxLines caps the lines processed per file.
	MaxLines int64
}

// Convert re-reads every dataset file and writes the selected columns as
// zstd-compressed Parquet, remapping identifiers through the given
// AutoIndex. The index is extended on the fly when it meets an identifier
// the first pass never saw (for example when the passes ran with different
// line caps); an extension that outgrows the id column's width fails the
// run instead of truncating. Returns the written file paths and the
// per-file error logs.
func (d *Dataset) Convert(ctx context.Context, index *AutoIndex[uint64], opts ConvertOptions) ([]string, []*FileErrorLog, error) {
	bindings, err := d.bindColumns(opts.IDColumn, opts.DateColumns, opts.StringColumns)
	if err != nil {
		return nil, nil, err
	}
	if index == nil {
		index = NewAutoIndex[uint64](Width32)
	}

	defs := make([]ColumnDef, len(bindings))
	idWidth := SelectUintWidth(uint64(index.Len()))
	for _, b := range bindings {
		switch b.kind {
		case bindID:
			defs[b.out] = UintColumn(b.name, idWidth)
		case bindDate:
			defs[b.out] = DateColumn(b.name)
		case bindString:
			defs[b.out] = StringColumn(b.name)
		}
	}

	// Row staging area. Convert callbacks fill the slots; OnRecord flushes
	// them to the writer only when the whole line parsed, so partially
	// decoded malformed lines leave no trace in the output.
	type slot struct {
		id   uint64
		date Date
		str  string
	}
	pending := make([]slot, len(bindings))

	var indexErr error
	specs := make([]ColumnSpec, 0, len(bindings))
	for _, b := range bindings {
		out := b.out
		switch b.kind {
		case bindID:
			specs = append(specs, ColumnSpec{Name: b.name, Accumulator: ConvertUint(func(v uint64) {
				idx, err := index.Index(v)
				if err != nil && indexErr == nil {
					indexErr = err
				}
				pending[out].id = idx
			})})
		case bindDate:
			acc := ConvertDate(func(dt Date) { pending[out].date = dt })
			if opts.StrictDates {
				acc = ConvertDateStrict(func(dt Date) { pending[out].date = dt })
			}
			specs = append(specs, ColumnSpec{Name: b.name, Accumulator: acc})
		case bindString:
			specs = append(specs, ColumnSpec{Name: b.name, Accumulator: ConvertBytes(func(bs []byte) {
				pending[out].str = string(bs) // copy out of the reused line buffer
			})})
		}
	}

	accs, err := ResolveColumns(d.header, specs)
	if err != nil {
		return nil, nil, err
	}

	var written []string
	var logs []*FileErrorLog
	for _, path := range d.Files() {
		base := filepath.Base(path)
		outPath := filepath.Join(opts.OutputDir, strings.TrimSuffix(base, dataFileSuffix)+".parquet")

		writer, err := NewColumnWriter(outPath, defs, opts.RowsPerGroup)
		if err != nil {
			return written, logs, err
		}

		cfg := StreamConfig{
			Accumulators: accs,
			MaxLines:     opts.MaxLines,
			OnRecord: func() error {
				if indexErr != nil {
					return indexErr
				}
				for _, b := range bindings {
					var appendErr error
					switch b.kind {
					case bindID:
						appendErr = writer.AppendUint(b.out, pending[b.out].id)
					case bindDate:
						appendErr = writer.AppendDate(b.out, pending[b.out].date)
					case bindString:
						appendErr = writer.AppendString(b.out, pending[b.out].str)
					}
					if appendErr != nil {
						return appendErr
					}
				}
				return writer.EndRow()
			},
		}

		errLog, processErr := d.ProcessFile(ctx, path, cfg)
		if errLog != nil {
			logs = append(logs, errLog)
		}
		closeErr := writer.Close()
		if processErr != nil {
			return written, logs, processErr
		}
		if closeErr != nil {
			return written, logs, closeErr
		}
		written = append(written, outPath)
	}
	return written, logs, nil
}
