package shim

/*
#cgo CFLAGS: -I${SRCDIR}/../sqlitec
#include "shim.h"
*/
import "C"
import "unsafe"

// Handle is a SQLite connection that exposes its sqlite3* pointer.
type Handle interface {
	DBHandle() unsafe.Pointer
}

// dqsMinVersion is the first SQLite release with SQLITE_DBCONFIG_DQS_DDL and
// SQLITE_DBCONFIG_DQS_DML.
const dqsMinVersion = 3029000

type quoteStrategy interface {
	set(h Handle, enabled bool)
	get(h Handle) (ddl, dml bool)
}

// dbConfigQuotes toggles the flags through sqlite3_db_config.
type dbConfigQuotes struct{}

// legacyQuotes does nothing. Older libraries always accept double-quoted
// string literals.
type legacyQuotes struct{}

var quotes = quoteStrategyFor(LibVersionNumber())

func quoteStrategyFor(version int) quoteStrategy {
	if version >= dqsMinVersion {
		return dbConfigQuotes{}
	}
	return legacyQuotes{}
}

func connHandle(h Handle) *C.sqlite3 {
	if h == nil {
		return nil
	}
	return (*C.sqlite3)(h.DBHandle())
}

func (dbConfigQuotes) set(h Handle, enabled bool) {
	db := connHandle(h)
	if db == nil {
		return
	}

	value := C.int(0)
	if enabled {
		value = 1
	}
	C.shim_db_config_set(db, C.SQLITE_DBCONFIG_DQS_DDL, value)
	C.shim_db_config_set(db, C.SQLITE_DBCONFIG_DQS_DML, value)
}

func (dbConfigQuotes) get(h Handle) (bool, bool) {
	db := connHandle(h)
	if db == nil {
		return false, false
	}

	var ddl, dml C.int
	C.shim_db_config_get(db, C.SQLITE_DBCONFIG_DQS_DDL, &ddl)
	C.shim_db_config_get(db, C.SQLITE_DBCONFIG_DQS_DML, &dml)
	return ddl != 0, dml != 0
}

func (legacyQuotes) set(Handle, bool) {}

func (legacyQuotes) get(Handle) (bool, bool) {
	return true, true
}

// DisableDoubleQuotedStringLiterals makes the connection reject
// double-quoted string literals in both DDL and DML, so a misspelled
// identifier is an error instead of a string.
//
// https://www.sqlite.org/quirks.html#dblquote
func DisableDoubleQuotedStringLiterals(h Handle) {
	quotes.set(h, false)
}

// EnableDoubleQuotedStringLiterals restores the legacy behaviour of
// accepting double-quoted string literals in both DDL and DML.
func EnableDoubleQuotedStringLiterals(h Handle) {
	quotes.set(h, true)
}

// SetDoubleQuotedStringLiterals enables or disables double-quoted string
// literals on the connection.
func SetDoubleQuotedStringLiterals(h Handle, enabled bool) {
	quotes.set(h, enabled)
}

// DoubleQuotedStringLiterals reports whether the connection accepts
// double-quoted string literals in DDL and DML.
func DoubleQuotedStringLiterals(h Handle) (ddl, dml bool) {
	return quotes.get(h)
}
