package spellcsv

import "fmt"

// Field and line delimiters of the dataset. The format has no quoting or
// escaping, so both bytes are unconditional delimiters.
const (
	fieldSeparator = ';'
	lineTerminator = '\n'
)

// failKind classifies why a decoder stopped before producing a value.
type failKind int

const (
	// failNone means the decoder succeeded.
	failNone failKind = iota
	// failInvalidByte means an unexpected byte for the field grammar.
	failInvalidByte
	// failEndOfLine means the line ended mid-field.
	failEndOfLine
	// failEmptyField means the separator was found immediately.
	failEmptyField
	// failCalendar means a well-formed date with invalid month or day.
	failCalendar
)

// err maps a fail kind to its sentinel error.
func (k failKind) err() error {
	switch k {
	case failInvalidByte:
		return ErrInvalidByte
	case failEndOfLine:
		return ErrEndOfLine
	case failEmptyField:
		return ErrEmptyField
	case failCalendar:
		return ErrInvalidDate
	default:
		return nil
	}
}

// cursor is the outcome of one decode step: either a valid 0-based position
// into the line (fail == failNone) or a failure kind with the position of
// the offending byte. It replaces the original design's negative sentinel
// positions with an explicit result type.
type cursor struct {
	pos  int
	fail failKind
}

// valid reports whether the cursor carries a usable position.
func (c cursor) valid() bool {
	return c.fail == failNone
}

func validCursor(pos int) cursor {
	return cursor{pos: pos}
}

func failCursor(pos int, kind failKind) cursor {
	return cursor{pos: pos, fail: kind}
}

// Date is a calendar date decoded from an 8-byte YYYYMMDD field. It is
// comparable and therefore usable as a map key in deduplicating sets.
type Date struct {
	Year  uint16
	Month uint8
	Day   uint8
}

// String returns the date in ISO 8601 form, e.g. "1980-01-01".
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// daysInMonth returns the number of days in the given month, accounting for
// leap years in February.
func daysInMonth(year uint16, month uint8) uint8 {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

// decodeUintToSep accumulates ASCII digits starting at start until the field
// separator and returns the decoded value together with the separator's
// position. Overflow wraps around naturally; the dataset's identifier
// columns fit in 64 bits with room to spare, so no explicit check is made.
// Zero digits before the separator is an empty field, a non-digit
// non-separator byte is invalid, and a missing separator is end of line.
func decodeUintToSep(line []byte, start int) (uint64, cursor) {
	var v uint64
	for pos := start; pos < len(line); pos++ {
		b := line[pos]
		switch {
		case b >= '0' && b <= '9':
			v = v*10 + uint64(b-'0')
		case b == fieldSeparator:
			if pos == start {
				return 0, failCursor(pos, failEmptyField)
			}
			return v, validCursor(pos)
		default:
			return 0, failCursor(pos, failInvalidByte)
		}
	}
	return 0, failCursor(len(line), failEndOfLine)
}

// decodeUintFixed accumulates ASCII digits over the closed range
// [start, stop]. On success the returned position is exactly stop+1; the
// caller validates whatever follows. Used for the fixed-width components of
// a date field.
func decodeUintFixed(line []byte, start, stop int) (uint64, cursor) {
	if stop >= len(line) {
		return 0, failCursor(len(line), failEndOfLine)
	}
	var v uint64
	for pos := start; pos <= stop; pos++ {
		b := line[pos]
		if b < '0' || b > '9' {
			return 0, failCursor(pos, failInvalidByte)
		}
		v = v*10 + uint64(b-'0')
	}
	return v, validCursor(stop + 1)
}

// decodeDate parses an 8-byte YYYYMMDD field starting at start and requires
// the byte immediately following to be the field separator. Month must be in
// [1,12] and day at most the month's length. The dataset encodes an unknown
// day of month as 0; in non-strict mode that day is coerced to 1, in strict
// mode it is rejected. Month 0 is rejected in both modes. On success the
// returned position is the separator's.
func decodeDate(line []byte, start int, strict bool) (Date, cursor) {
	year, c := decodeUintFixed(line, start, start+3)
	if !c.valid() {
		return Date{}, c
	}
	month, c := decodeUintFixed(line, c.pos, c.pos+1)
	if !c.valid() {
		return Date{}, c
	}
	day, c := decodeUintFixed(line, c.pos, c.pos+1)
	if !c.valid() {
		return Date{}, c
	}
	sep := c.pos
	if sep >= len(line) {
		return Date{}, failCursor(len(line), failEndOfLine)
	}
	if line[sep] != fieldSeparator {
		return Date{}, failCursor(sep, failInvalidByte)
	}
	if month < 1 || month > 12 {
		return Date{}, failCursor(start+4, failCalendar)
	}
	if day == 0 {
		if strict {
			return Date{}, failCursor(start+6, failCalendar)
		}
		day = 1
	}
	d := Date{Year: uint16(year), Month: uint8(month), Day: uint8(day)}
	if uint8(day) > daysInMonth(d.Year, d.Month) {
		return Date{}, failCursor(start+6, failCalendar)
	}
	return d, validCursor(sep)
}

// skipToSep advances over arbitrary bytes until the field separator and
// returns its position.
func skipToSep(line []byte, start int) cursor {
	for pos := start; pos < len(line); pos++ {
		if line[pos] == fieldSeparator {
			return validCursor(pos)
		}
	}
	return failCursor(len(line), failEndOfLine)
}

// captureToSep is skipToSep returning the borrowed byte span [start, sep)
// alongside the separator's position. The span aliases the line buffer and
// must be copied before the buffer is reused.
func captureToSep(line []byte, start int) ([]byte, cursor) {
	c := skipToSep(line, start)
	if !c.valid() {
		return nil, c
	}
	return line[start:c.pos], c
}
