package shim

/*
#cgo CFLAGS: -I${SRCDIR}/../sqlitec
#include "sqlite3api.h"
*/
import "C"
import (
	// Links the SQLite amalgamation declared in sqlite3api.h.
	_ "github.com/mattn/go-sqlite3"
)

// LibVersion returns the version string of the linked SQLite library.
func LibVersion() string {
	return C.GoString(C.sqlite3_libversion())
}

// LibVersionNumber returns the version of the linked SQLite library as
// X*1000000 + Y*1000 + Z.
func LibVersionNumber() int {
	return int(C.sqlite3_libversion_number())
}

// MemoryUsed returns the number of bytes currently allocated by SQLite.
//
// https://www.sqlite.org/c3ref/memory_highwater.html
func MemoryUsed() int64 {
	return int64(C.sqlite3_memory_used())
}
