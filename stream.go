package spellcsv

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// Line scanning limits. Spell lines are short, but the scanner buffer must
// accommodate the occasional oversized malformed line.
const (
	initialLineBufferSize = 64 * 1024
	maxLineBufferSize     = 4 * 1024 * 1024
)

// StreamConfig drives one file's pass over a decompressed byte stream.
type StreamConfig struct {
	// Filename labels the returned error log.
	Filename string

	// Accumulators is the per-column sequence produced by ResolveColumns.
	Accumulators []Accumulator

	// MaxLines caps the number of parsed data lines. A skipped header line
	// does not count toward the cap. Zero or negative means unbounded.
	MaxLines int64

	// SkipHeader drops the first line before parsing. The yearly dump files
	// carry no header (it lives in the cols.txt sidecar), so this is off by
	// default.
	SkipHeader bool

	// OnRecord, if set, is invoked after each successfully parsed line,
	// once all accumulators have run. Returning an error aborts the run.
	OnRecord func() error

	// Progress, if set, is invoked once per line regardless of parse
	// outcome, with the 1-based line number.
	Progress func(line int64)
}

// ProcessLines reads the stream line by line, applies the accumulator
// sequence to each line and logs failures with their exact byte position.
// Malformed lines never abort the run; the returned error log holds them
// all. The context is checked once per line, making it the sole cancellation
// checkpoint.
func ProcessLines(ctx context.Context, r io.Reader, cfg StreamConfig) (*FileErrorLog, error) {
	errLog := NewFileErrorLog(cfg.Filename)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, initialLineBufferSize), maxLineBufferSize)

	var lineNo int64
	var parsed int64
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return errLog, fmt.Errorf("spellcsv: processing %s cancelled: %w", cfg.Filename, err)
		}

		lineNo++
		if cfg.SkipHeader && lineNo == 1 {
			continue
		}
		if cfg.MaxLines > 0 && parsed >= cfg.MaxLines {
			break
		}
		parsed++

		line := scanner.Bytes()
		if cfg.Progress != nil {
			cfg.Progress(lineNo)
		}

		bytePos, fieldIndex := applyLine(line, cfg.Accumulators)
		if fieldIndex != 0 {
			// The scanner reuses its buffer; Record copies the line.
			errLog.Record(int(lineNo), line, bytePos, fieldIndex)
			continue
		}

		if cfg.OnRecord != nil {
			if err := cfg.OnRecord(); err != nil {
				return errLog, fmt.Errorf("spellcsv: record callback failed at line %d: %w", lineNo, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return errLog, fmt.Errorf("spellcsv: failed to read %s: %w", cfg.Filename, err)
	}
	return errLog, nil
}
