package spellcsv

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/apache/arrow/go/v18/parquet"
	"github.com/apache/arrow/go/v18/parquet/compress"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
)

// DefaultRowsPerGroup is the default number of rows buffered before a
// Parquet row group is flushed.
const DefaultRowsPerGroup = 65536

// ColumnDef describes one output column of the columnar stream.
type ColumnDef struct {
	Name string
	Type arrow.DataType
}

// UintColumn defines an unsigned integer column of the given width,
// typically selected with SelectUintWidth from the observed value range.
func UintColumn(name string, width IntWidth) ColumnDef {
	return ColumnDef{Name: name, Type: width.ArrowType(true)}
}

// IntColumn defines a signed integer column of the given width.
func IntColumn(name string, width IntWidth) ColumnDef {
	return ColumnDef{Name: name, Type: width.ArrowType(false)}
}

// DateColumn defines a calendar date column stored as Arrow date32.
func DateColumn(name string) ColumnDef {
	return ColumnDef{Name: name, Type: arrow.FixedWidthTypes.Date32}
}

// StringColumn defines a variable-length string column.
func StringColumn(name string) ColumnDef {
	return ColumnDef{Name: name, Type: arrow.BinaryTypes.String}
}

// ColumnWriter writes typed rows to a zstd-compressed Parquet file, one row
// group per DefaultRowsPerGroup rows. Values are appended column by column
// and EndRow seals one record; the writer does not validate that every
// column received a value, that is the Convert accumulators' contract.
type ColumnWriter struct {
	schema    *arrow.Schema
	builder   *array.RecordBuilder
	writer    *pqarrow.FileWriter
	rowsGroup int
	pending   int
	total     int64
}

// NewColumnWriter creates a Parquet column writer at path. rowsPerGroup <= 0
// selects DefaultRowsPerGroup.
func NewColumnWriter(path string, defs []ColumnDef, rowsPerGroup int) (*ColumnWriter, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: no columns defined", ErrEmptyData)
	}
	if rowsPerGroup <= 0 {
		rowsPerGroup = DefaultRowsPerGroup
	}

	fields := make([]arrow.Field, len(defs))
	for i, def := range defs {
		fields[i] = arrow.Field{Name: def.Name, Type: def.Type}
	}
	schema := arrow.NewSchema(fields, nil)

	file, err := os.Create(path) //nolint:gosec // Output path is caller-chosen
	if err != nil {
		return nil, fmt.Errorf("failed to create column file %s: %w", path, err)
	}

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Zstd))
	// Store the Arrow schema so readers reconstruct the exact column types.
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())
	writer, err := pqarrow.NewFileWriter(schema, file, props, arrowProps)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to create parquet writer: %w", err)
	}

	return &ColumnWriter{
		schema:    schema,
		builder:   array.NewRecordBuilder(memory.DefaultAllocator, schema),
		writer:    writer,
		rowsGroup: rowsPerGroup,
	}, nil
}

// AppendUint appends v to the integer column col. The value must fit the
// column's width; an overflowing value fails the append instead of being
// silently truncated, so a run that outgrows its chosen widths stops.
func (w *ColumnWriter) AppendUint(col int, v uint64) error {
	if col < 0 || col >= len(w.schema.Fields()) {
		return fmt.Errorf("%w: %d", ErrColumnCount, col)
	}
	switch b := w.builder.Field(col).(type) {
	case *array.Uint8Builder:
		if v > math.MaxUint8 {
			return fmt.Errorf("%w: value %d overflows 8-bit column %d", ErrNoIntegerWidth, v, col)
		}
		b.Append(uint8(v))
	case *array.Uint16Builder:
		if v > math.MaxUint16 {
			return fmt.Errorf("%w: value %d overflows 16-bit column %d", ErrNoIntegerWidth, v, col)
		}
		b.Append(uint16(v))
	case *array.Uint32Builder:
		if v > math.MaxUint32 {
			return fmt.Errorf("%w: value %d overflows 32-bit column %d", ErrNoIntegerWidth, v, col)
		}
		b.Append(uint32(v))
	case *array.Uint64Builder:
		b.Append(v)
	case *array.Int8Builder:
		if v > math.MaxInt8 {
			return fmt.Errorf("%w: value %d overflows 8-bit column %d", ErrNoIntegerWidth, v, col)
		}
		b.Append(int8(v))
	case *array.Int16Builder:
		if v > math.MaxInt16 {
			return fmt.Errorf("%w: value %d overflows 16-bit column %d", ErrNoIntegerWidth, v, col)
		}
		b.Append(int16(v))
	case *array.Int32Builder:
		if v > math.MaxInt32 {
			return fmt.Errorf("%w: value %d overflows 32-bit column %d", ErrNoIntegerWidth, v, col)
		}
		b.Append(int32(v))
	case *array.Int64Builder:
		if v > math.MaxInt64 {
			return fmt.Errorf("%w: value %d overflows 64-bit column %d", ErrNoIntegerWidth, v, col)
		}
		b.Append(int64(v))
	default:
		return fmt.Errorf("spellcsv: column %d is not an integer column", col)
	}
	return nil
}

// AppendDate appends d to the date32 column col.
func (w *ColumnWriter) AppendDate(col int, d Date) error {
	if col < 0 || col >= len(w.schema.Fields()) {
		return fmt.Errorf("%w: %d", ErrColumnCount, col)
	}
	b, ok := w.builder.Field(col).(*array.Date32Builder)
	if !ok {
		return fmt.Errorf("spellcsv: column %d is not a date column", col)
	}
	t := time.Date(int(d.Year), time.Month(d.Month), int(d.Day), 0, 0, 0, 0, time.UTC)
	b.Append(arrow.Date32FromTime(t))
	return nil
}

// AppendString appends s to the string column col.
func (w *ColumnWriter) AppendString(col int, s string) error {
	if col < 0 || col >= len(w.schema.Fields()) {
		return fmt.Errorf("%w: %d", ErrColumnCount, col)
	}
	b, ok := w.builder.Field(col).(*array.StringBuilder)
	if !ok {
		return fmt.Errorf("spellcsv: column %d is not a string column", col)
	}
	b.Append(s)
	return nil
}

// EndRow seals the current row and flushes a row group when the buffer is full.
func (w *ColumnWriter) EndRow() error {
	w.pending++
	w.total++
	if w.pending >= w.rowsGroup {
		return w.flush()
	}
	return nil
}

// Rows returns the number of rows written so far, including buffered ones.
func (w *ColumnWriter) Rows() int64 {
	return w.total
}

// flush writes the buffered rows as one Parquet row group.
func (w *ColumnWriter) flush() error {
	if w.pending == 0 {
		return nil
	}
	record := w.builder.NewRecord()
	defer record.Release()

	if err := w.writer.Write(record); err != nil {
		return fmt.Errorf("failed to write parquet row group: %w", err)
	}
	w.pending = 0
	return nil
}

// Close flushes pending rows and finalizes the Parquet footer. The parquet
// writer owns the sink and closes the underlying file itself; closing it
// again here would fail every successful write cycle with os.ErrClosed.
func (w *ColumnWriter) Close() error {
	flushErr := w.flush()
	w.builder.Release()

	closeErr := w.writer.Close()

	if flushErr != nil {
		return flushErr
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close parquet writer: %w", closeErr)
	}
	return nil
}
