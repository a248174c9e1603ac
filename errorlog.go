package spellcsv

import (
	"fmt"
	"io"
	"strings"
)

// FileError pinpoints one malformed line. Content is an owned copy of the
// raw line bytes, taken at record time because the stream driver reuses its
// line buffer. BytePos and FieldIndex are 1-based.
type FileError struct {
	Line       int
	Content    []byte
	BytePos    int
	FieldIndex int
}

// FileErrorLog accumulates the decode errors of one file run in encounter
// order. The zero value is not usable; create one with NewFileErrorLog.
type FileErrorLog struct {
	filename string
	errors   []FileError
}

// NewFileErrorLog creates an empty error log for the named file.
func NewFileErrorLog(filename string) *FileErrorLog {
	return &FileErrorLog{filename: filename}
}

// Filename returns the name of the file the log belongs to.
func (l *FileErrorLog) Filename() string {
	return l.filename
}

// Record appends one error. The raw line bytes are copied so the caller may
// reuse its buffer. Append-only; never fails.
func (l *FileErrorLog) Record(line int, raw []byte, bytePos, fieldIndex int) {
	content := make([]byte, len(raw))
	copy(content, raw)
	l.errors = append(l.errors, FileError{
		Line:       line,
		Content:    content,
		BytePos:    bytePos,
		FieldIndex: fieldIndex,
	})
}

// Len returns the number of recorded errors.
func (l *FileErrorLog) Len() int {
	return len(l.errors)
}

// Errors returns the recorded errors in encounter order. The slice is shared
// with the log and must not be modified.
func (l *FileErrorLog) Errors() []FileError {
	return l.errors
}

// Summary returns a one-line count with correct pluralization, e.g.
// "data.csv.gz: 1 error" or "data.csv.gz: 0 errors".
func (l *FileErrorLog) Summary() string {
	if len(l.errors) == 1 {
		return fmt.Sprintf("%s: 1 error", l.filename)
	}
	return fmt.Sprintf("%s: %d errors", l.filename, len(l.errors))
}

// Render writes each error as the raw line (trailing newline stripped), a
// caret line pointing at the failing byte, and a "line <n>, field <k>,
// byte <p>" locator.
func (l *FileErrorLog) Render(w io.Writer) error {
	for _, e := range l.errors {
		content := strings.TrimSuffix(string(e.Content), "\n")
		caret := strings.Repeat(" ", e.BytePos-1) + "^"
		if _, err := fmt.Fprintf(w, "%s\n%s\nline %d, field %d, byte %d\n",
			content, caret, e.Line, e.FieldIndex, e.BytePos); err != nil {
			return fmt.Errorf("spellcsv: failed to render error log: %w", err)
		}
	}
	return nil
}

// String renders the log to a string.
func (l *FileErrorLog) String() string {
	var sb strings.Builder
	_ = l.Render(&sb) // strings.Builder never fails
	return sb.String()
}
