package sqlitec

import "fmt"

// Primary result codes.
//
// https://www.sqlite.org/rescode.html
const (
	SQLITE_OK         = 0
	SQLITE_ERROR      = 1
	SQLITE_INTERNAL   = 2
	SQLITE_PERM       = 3
	SQLITE_ABORT      = 4
	SQLITE_BUSY       = 5
	SQLITE_LOCKED     = 6
	SQLITE_NOMEM      = 7
	SQLITE_READONLY   = 8
	SQLITE_INTERRUPT  = 9
	SQLITE_IOERR      = 10
	SQLITE_CORRUPT    = 11
	SQLITE_NOTFOUND   = 12
	SQLITE_FULL       = 13
	SQLITE_CANTOPEN   = 14
	SQLITE_PROTOCOL   = 15
	SQLITE_EMPTY      = 16
	SQLITE_SCHEMA     = 17
	SQLITE_TOOBIG     = 18
	SQLITE_CONSTRAINT = 19
	SQLITE_MISMATCH   = 20
	SQLITE_MISUSE     = 21
	SQLITE_NOLFS      = 22
	SQLITE_AUTH       = 23
	SQLITE_FORMAT     = 24
	SQLITE_RANGE      = 25
	SQLITE_NOTADB     = 26
	SQLITE_NOTICE     = 27
	SQLITE_WARNING    = 28
	SQLITE_ROW        = 100
	SQLITE_DONE       = 101
)

var resCodeNames = map[int]string{
	SQLITE_OK:         "SQLITE_OK",
	SQLITE_ERROR:      "SQLITE_ERROR",
	SQLITE_INTERNAL:   "SQLITE_INTERNAL",
	SQLITE_PERM:       "SQLITE_PERM",
	SQLITE_ABORT:      "SQLITE_ABORT",
	SQLITE_BUSY:       "SQLITE_BUSY",
	SQLITE_LOCKED:     "SQLITE_LOCKED",
	SQLITE_NOMEM:      "SQLITE_NOMEM",
	SQLITE_READONLY:   "SQLITE_READONLY",
	SQLITE_INTERRUPT:  "SQLITE_INTERRUPT",
	SQLITE_IOERR:      "SQLITE_IOERR",
	SQLITE_CORRUPT:    "SQLITE_CORRUPT",
	SQLITE_NOTFOUND:   "SQLITE_NOTFOUND",
	SQLITE_FULL:       "SQLITE_FULL",
	SQLITE_CANTOPEN:   "SQLITE_CANTOPEN",
	SQLITE_PROTOCOL:   "SQLITE_PROTOCOL",
	SQLITE_EMPTY:      "SQLITE_EMPTY",
	SQLITE_SCHEMA:     "SQLITE_SCHEMA",
	SQLITE_TOOBIG:     "SQLITE_TOOBIG",
	SQLITE_CONSTRAINT: "SQLITE_CONSTRAINT",
	SQLITE_MISMATCH:   "SQLITE_MISMATCH",
	SQLITE_MISUSE:     "SQLITE_MISUSE",
	SQLITE_NOLFS:      "SQLITE_NOLFS",
	SQLITE_AUTH:       "SQLITE_AUTH",
	SQLITE_FORMAT:     "SQLITE_FORMAT",
	SQLITE_RANGE:      "SQLITE_RANGE",
	SQLITE_NOTADB:     "SQLITE_NOTADB",
	SQLITE_NOTICE:     "SQLITE_NOTICE",
	SQLITE_WARNING:    "SQLITE_WARNING",
	SQLITE_ROW:        "SQLITE_ROW",
	SQLITE_DONE:       "SQLITE_DONE",
}

// ResultCodeName returns the symbolic name of a result code. Extended codes
// are reported by their primary code name.
func ResultCodeName(code int) string {
	if name, ok := resCodeNames[code]; ok {
		return name
	}
	if name, ok := resCodeNames[code&0xff]; ok {
		return name
	}
	return fmt.Sprintf("SQLITE_UNKNOWN(%d)", code)
}

// Error is an error reported by the SQLite library.
type Error struct {
	// Code is the primary result code.
	Code int
	// ExtendedCode is the extended result code, equal to Code when SQLite
	// did not report a more specific one.
	ExtendedCode int
	// Msg is the message reported by SQLite.
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", ResultCodeName(e.ExtendedCode), e.Msg)
}
