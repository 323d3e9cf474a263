package sqlitec

/*
#cgo CFLAGS: -I${SRCDIR}
#include <stdlib.h>
#include "sqlite3api.h"

static int cust_sqlite3_bind_text(sqlite3_stmt *stmt, int n, const char *p, int np) {
  return sqlite3_bind_text(stmt, n, p, np, SQLITE_TRANSIENT);
}

static int cust_sqlite3_bind_blob(sqlite3_stmt *stmt, int n, const void *p, int np) {
  return sqlite3_bind_blob(stmt, n, p, np, SQLITE_TRANSIENT);
}
*/
import "C"
import (
	"errors"
	"fmt"
	"time"
	"unsafe"

	// Links the SQLite amalgamation declared in sqlite3api.h.
	_ "github.com/mattn/go-sqlite3"
)

// Column datatypes as reported by ColumnDataType.
//
// https://www.sqlite.org/c3ref/c_blob.html
const (
	TypeInteger = C.SQLITE_INTEGER
	TypeFloat   = C.SQLITE_FLOAT
	TypeText    = C.SQLITE_TEXT
	TypeBlob    = C.SQLITE_BLOB
	TypeNull    = C.SQLITE_NULL
)

// Conn represents a high-level connection to a SQLite database.
//
// A Conn must not be used by more than one goroutine at a time.
//
// https://www.sqlite.org/c3ref/sqlite3.html
type Conn struct {
	cDB     *C.sqlite3
	onClose []func()
}

// Stmt represents a prepared statement in SQLite.
//
// https://www.sqlite.org/c3ref/stmt.html
type Stmt struct {
	conn  *Conn
	cStmt *C.sqlite3_stmt
}

// LibVersion returns the version string of the linked SQLite library.
//
// https://www.sqlite.org/c3ref/libversion.html
func LibVersion() string {
	return C.GoString(C.sqlite3_libversion())
}

// LibVersionNumber returns the version of the linked SQLite library as
// X*1000000 + Y*1000 + Z.
//
// https://www.sqlite.org/c3ref/libversion.html
func LibVersionNumber() int {
	return int(C.sqlite3_libversion_number())
}

// SourceID returns the check-in identifier of the linked SQLite library.
//
// https://www.sqlite.org/c3ref/libversion.html
func SourceID() string {
	return C.GoString(C.sqlite3_sourceid())
}

// newError builds an *Error for resCode, using the connection message when
// the connection still reports the same code.
func newError(resCode C.int, cDB *C.sqlite3) error {
	code := int(resCode)
	if cDB != nil && C.sqlite3_errcode(cDB)&0xff == resCode&0xff {
		return &Error{
			Code:         code & 0xff,
			ExtendedCode: int(C.sqlite3_extended_errcode(cDB)),
			Msg:          C.GoString(C.sqlite3_errmsg(cDB)),
		}
	}
	return &Error{
		Code:         code & 0xff,
		ExtendedCode: code,
		Msg:          C.GoString(C.sqlite3_errstr(resCode)),
	}
}

// Open opens a new SQLite database connection using the given path. URI
// filenames such as "file:test.db?mode=ro" are accepted.
//
// https://www.sqlite.org/c3ref/open.html
func Open(filePath string) (*Conn, error) {
	cFilePath := C.CString(filePath)
	defer C.free(unsafe.Pointer(cFilePath))

	flags := C.int(C.SQLITE_OPEN_READWRITE | C.SQLITE_OPEN_CREATE | C.SQLITE_OPEN_URI)

	var db *C.sqlite3
	resCode := C.sqlite3_open_v2(cFilePath, &db, flags, nil)
	if resCode != SQLITE_OK {
		err := newError(resCode, db)
		_ = C.sqlite3_close_v2(db)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	C.sqlite3_extended_result_codes(db, 1)

	return &Conn{cDB: db}, nil
}

// DBHandle returns the underlying sqlite3* handle. It is nil once the
// connection has been closed.
func (conn *Conn) DBHandle() unsafe.Pointer {
	return unsafe.Pointer(conn.cDB)
}

// Close finalizes the connection to the SQLite database.
//
// https://www.sqlite.org/c3ref/close.html
func (conn *Conn) Close() error {
	if conn.cDB == nil {
		return nil
	}

	// The sqlite3_close_v2() interface is intended for use with host
	// languages that are garbage collected, and where the order in which
	// destructors are called is arbitrary.
	resCode := C.sqlite3_close_v2(conn.cDB)
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to close database: %w", newError(resCode, conn.cDB))
	}
	conn.cDB = nil

	for _, fn := range conn.onClose {
		fn()
	}
	conn.onClose = nil

	return nil
}

// LastInsertRowID returns the row ID of the most recent successful INSERT
// into the database from the current connection.
//
// https://www.sqlite.org/c3ref/last_insert_rowid.html
func (conn *Conn) LastInsertRowID() int64 {
	return int64(C.sqlite3_last_insert_rowid(conn.cDB))
}

// RowsAffected returns the number of rows modified, inserted, or deleted by
// the most recent successful INSERT, UPDATE, or DELETE statement from the
// current connection.
//
// https://www.sqlite.org/c3ref/changes.html
func (conn *Conn) RowsAffected() int64 {
	return int64(C.sqlite3_changes(conn.cDB))
}

// AutoCommit reports whether the connection is outside an explicit
// transaction.
//
// https://www.sqlite.org/c3ref/get_autocommit.html
func (conn *Conn) AutoCommit() bool {
	return C.sqlite3_get_autocommit(conn.cDB) != 0
}

// SetBusyTimeout sets the busy handler timeout of the connection.
//
// https://www.sqlite.org/c3ref/busy_timeout.html
func (conn *Conn) SetBusyTimeout(d time.Duration) error {
	resCode := C.sqlite3_busy_timeout(conn.cDB, C.int(d/time.Millisecond))
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to set busy timeout: %w", newError(resCode, conn.cDB))
	}
	return nil
}

// Exec executes the given SQL on the SQLite database connection from start
// to finish, without returning any data. Multiple statements separated by
// semicolons are allowed.
//
// https://www.sqlite.org/c3ref/exec.html
func (conn *Conn) Exec(query string) error {
	if conn.cDB == nil {
		return errors.New("failed to execute query: database connection is nil")
	}

	cQuery := C.CString(query)
	defer C.free(unsafe.Pointer(cQuery))

	var errMsg *C.char
	resCode := C.sqlite3_exec(conn.cDB, cQuery, nil, nil, &errMsg)
	if resCode != SQLITE_OK {
		err := newError(resCode, conn.cDB)
		if errMsg != nil {
			C.sqlite3_free(unsafe.Pointer(errMsg))
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

// Prepare compiles the given SQL query into a prepared statement. Only the
// first statement of query is compiled.
//
// https://www.sqlite.org/c3ref/prepare.html
func (conn *Conn) Prepare(query string) (*Stmt, error) {
	if conn.cDB == nil {
		return nil, errors.New("failed to prepare statement: database connection is nil")
	}

	cQuery := C.CString(query)
	defer C.free(unsafe.Pointer(cQuery))

	var cStmt *C.sqlite3_stmt
	resCode := C.sqlite3_prepare_v2(conn.cDB, cQuery, C.int(-1), &cStmt, nil)
	if resCode != SQLITE_OK {
		return nil, fmt.Errorf("failed to prepare statement: %w", newError(resCode, conn.cDB))
	}
	if cStmt == nil {
		return nil, errors.New("failed to prepare statement: query is empty")
	}
	return &Stmt{conn: conn, cStmt: cStmt}, nil
}

// Conn returns the connection the statement was prepared on.
func (stmt *Stmt) Conn() *Conn {
	return stmt.conn
}

// ReadOnly returns true if the statement makes no direct changes to the
// database file.
//
// https://www.sqlite.org/c3ref/stmt_readonly.html
func (stmt *Stmt) ReadOnly() bool {
	return C.sqlite3_stmt_readonly(stmt.cStmt) != 0
}

// BindParameterCount returns the largest parameter index of the statement.
//
// https://www.sqlite.org/c3ref/bind_parameter_count.html
func (stmt *Stmt) BindParameterCount() int {
	return int(C.sqlite3_bind_parameter_count(stmt.cStmt))
}

// BindParameterIndex returns the index of the named parameter, or zero when
// no parameter has that name. The name includes its prefix (":", "@", "$"
// or "?").
//
// https://www.sqlite.org/c3ref/bind_parameter_index.html
func (stmt *Stmt) BindParameterIndex(name string) int {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	return int(C.sqlite3_bind_parameter_index(stmt.cStmt, cName))
}

// BindInt64 binds an int64 parameter at the given index.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindInt64(index int, value int64) error {
	if stmt.cStmt == nil {
		return fmt.Errorf("cannot bind to a nil statement")
	}

	resCode := C.sqlite3_bind_int64(stmt.cStmt, C.int(index), C.sqlite3_int64(value))
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to bind int64: %w", newError(resCode, stmt.conn.cDB))
	}
	return nil
}

// BindFloat64 binds a float64 parameter at the given index.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindFloat64(index int, value float64) error {
	if stmt.cStmt == nil {
		return fmt.Errorf("cannot bind to a nil statement")
	}

	resCode := C.sqlite3_bind_double(stmt.cStmt, C.int(index), C.double(value))
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to bind float64: %w", newError(resCode, stmt.conn.cDB))
	}
	return nil
}

// BindText binds a string parameter at the given index.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindText(index int, value string) error {
	if stmt.cStmt == nil {
		return fmt.Errorf("cannot bind to a nil statement")
	}
	cStr := C.CString(value)
	defer C.free(unsafe.Pointer(cStr))

	resCode := C.cust_sqlite3_bind_text(stmt.cStmt, C.int(index), cStr, C.int(len(value)))
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to bind text: %w", newError(resCode, stmt.conn.cDB))
	}
	return nil
}

// BindBlob binds a byte slice parameter at the given index. A nil slice is
// bound as NULL and an empty one as a zero-length blob.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindBlob(index int, data []byte) error {
	if stmt.cStmt == nil {
		return fmt.Errorf("cannot bind to a nil statement")
	}
	if data == nil {
		return stmt.BindNull(index)
	}

	var resCode C.int
	if len(data) == 0 {
		resCode = C.sqlite3_bind_zeroblob(stmt.cStmt, C.int(index), 0)
	} else {
		resCode = C.cust_sqlite3_bind_blob(stmt.cStmt, C.int(index), unsafe.Pointer(&data[0]), C.int(len(data)))
	}
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to bind blob: %w", newError(resCode, stmt.conn.cDB))
	}
	return nil
}

// BindNull binds a NULL value at the given index.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindNull(index int) error {
	if stmt.cStmt == nil {
		return fmt.Errorf("cannot bind to a nil statement")
	}

	resCode := C.sqlite3_bind_null(stmt.cStmt, C.int(index))
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to bind null: %w", newError(resCode, stmt.conn.cDB))
	}
	return nil
}

// Step advances the statement to the next row of data, returning true if a new row
// is available, or false if there are no more rows. If an error occurs, it is returned.
//
// https://www.sqlite.org/c3ref/step.html
func (stmt *Stmt) Step() (bool, error) {
	resCode := C.sqlite3_step(stmt.cStmt)

	if resCode == SQLITE_DONE {
		return false, nil
	}

	if resCode == SQLITE_ROW {
		return true, nil
	}

	return false, fmt.Errorf("failed to step statement: %w", newError(resCode, stmt.conn.cDB))
}

// Reset rewinds the statement so it can be stepped again. Bindings are kept.
//
// https://www.sqlite.org/c3ref/reset.html
func (stmt *Stmt) Reset() error {
	resCode := C.sqlite3_reset(stmt.cStmt)
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to reset statement: %w", newError(resCode, stmt.conn.cDB))
	}
	return nil
}

// ClearBindings sets every parameter of the statement back to NULL.
//
// https://www.sqlite.org/c3ref/clear_bindings.html
func (stmt *Stmt) ClearBindings() error {
	resCode := C.sqlite3_clear_bindings(stmt.cStmt)
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to clear bindings: %w", newError(resCode, stmt.conn.cDB))
	}
	return nil
}

// ColumnCount returns the number of columns in the current result row.
//
// https://www.sqlite.org/c3ref/column_count.html
func (stmt *Stmt) ColumnCount() int {
	return int(C.sqlite3_column_count(stmt.cStmt))
}

// ColumnName returns the name of the column at the given index.
//
// https://www.sqlite.org/c3ref/column_name.html
func (stmt *Stmt) ColumnName(colIndex int) string {
	return C.GoString(C.sqlite3_column_name(stmt.cStmt, C.int(colIndex)))
}

// ColumnType returns the declared type of the column at the given index, or
// an empty string for expressions.
//
// https://www.sqlite.org/c3ref/column_decltype.html
func (stmt *Stmt) ColumnType(colIndex int) string {
	return C.GoString(C.sqlite3_column_decltype(stmt.cStmt, C.int(colIndex)))
}

// ColumnDataType returns the datatype of the value at the given index in
// the current row, one of the Type constants.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnDataType(colIndex int) int {
	return int(C.sqlite3_column_type(stmt.cStmt, C.int(colIndex)))
}

// ColumnInt64 returns the column value at the given index as int64.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnInt64(colIndex int) int64 {
	return int64(C.sqlite3_column_int64(stmt.cStmt, C.int(colIndex)))
}

// ColumnFloat64 returns the column value at the given index as float64.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnFloat64(colIndex int) float64 {
	return float64(C.sqlite3_column_double(stmt.cStmt, C.int(colIndex)))
}

// ColumnText returns the column value at the given index as a string.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnText(colIndex int) string {
	text := (*C.char)(unsafe.Pointer(C.sqlite3_column_text(stmt.cStmt, C.int(colIndex))))
	if text == nil {
		return ""
	}
	length := C.sqlite3_column_bytes(stmt.cStmt, C.int(colIndex))
	return C.GoStringN(text, length)
}

// ColumnBlob returns the column value at the given index as a byte slice.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnBlob(colIndex int) []byte {
	dataPtr := C.sqlite3_column_blob(stmt.cStmt, C.int(colIndex))
	size := C.sqlite3_column_bytes(stmt.cStmt, C.int(colIndex))
	if dataPtr == nil || size <= 0 {
		if stmt.ColumnDataType(colIndex) == TypeBlob {
			return []byte{}
		}
		return nil
	}
	return C.GoBytes(dataPtr, size)
}

// ColumnValue returns the value at the given index converted by its
// datatype: int64, float64, string, []byte or nil.
func (stmt *Stmt) ColumnValue(colIndex int) any {
	switch stmt.ColumnDataType(colIndex) {
	case TypeInteger:
		return stmt.ColumnInt64(colIndex)
	case TypeFloat:
		return stmt.ColumnFloat64(colIndex)
	case TypeText:
		return stmt.ColumnText(colIndex)
	case TypeBlob:
		return stmt.ColumnBlob(colIndex)
	default:
		return nil
	}
}

// Finalize frees the resources associated with this statement.
//
// https://www.sqlite.org/c3ref/finalize.html
func (stmt *Stmt) Finalize() error {
	if stmt.cStmt == nil {
		return nil
	}

	resCode := C.sqlite3_finalize(stmt.cStmt)
	stmt.cStmt = nil
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to finalize statement: %w", newError(resCode, stmt.conn.cDB))
	}

	return nil
}
