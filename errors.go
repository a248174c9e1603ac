package spellcsv

import "errors"

// Sentinel errors returned by the parsing core and its collaborators.
var (
	// ErrInvalidByte indicates an unexpected character for the expected
	// field grammar (e.g. a letter where a digit was required).
	ErrInvalidByte = errors.New("spellcsv: invalid byte")

	// ErrEndOfLine indicates the line ended while a field was still
	// being decoded.
	ErrEndOfLine = errors.New("spellcsv: unexpected end of line")

	// ErrEmptyField indicates a zero-length field where a value was expected.
	ErrEmptyField = errors.New("spellcsv: empty field")

	// ErrInvalidDate indicates a syntactically well-formed date with an
	// out-of-range month or day.
	ErrInvalidDate = errors.New("spellcsv: invalid calendar date")

	// ErrColumnNotFound indicates a declared column name missing from the header.
	ErrColumnNotFound = errors.New("spellcsv: column not found in header")

	// ErrDuplicateColumnName indicates a header with duplicate column names.
	ErrDuplicateColumnName = errors.New("spellcsv: duplicate column name")

	// ErrColumnOrder indicates column specs declared out of header order.
	ErrColumnOrder = errors.New("spellcsv: columns must be declared in header order")

	// ErrIndexCapacity indicates an AutoIndex whose configured integer
	// width cannot hold another distinct key.
	ErrIndexCapacity = errors.New("spellcsv: auto-index capacity exceeded")

	// ErrNoIntegerWidth indicates that no integer width in the ladder
	// covers the requested range.
	ErrNoIntegerWidth = errors.New("spellcsv: no integer width covers range")

	// ErrUnsupportedFile indicates a file that is not part of the dataset
	// naming convention or has an unsupported extension.
	ErrUnsupportedFile = errors.New("spellcsv: unsupported file")

	// ErrEmptyData indicates that the data source contains no records.
	ErrEmptyData = errors.New("spellcsv: empty data source")

	// ErrColumnCount indicates a writer row with a value bound to an
	// unknown column.
	ErrColumnCount = errors.New("spellcsv: column index out of range")
)
