package shim

/*
#cgo CFLAGS: -I${SRCDIR}/../sqlitec
#include <stdlib.h>
#include "shim.h"
*/
import "C"
import (
	"unsafe"

	"go.uber.org/atomic"
)

// ErrorLogFunc receives every event SQLite writes to its error log.
type ErrorLogFunc func(code int, msg string)

var errorLogCallback atomic.Pointer[ErrorLogFunc]

// RegisterErrorLogCallback installs cb as the process-wide SQLite error log
// callback. A nil cb uninstalls it.
//
// The callback runs on whichever thread SQLite reports from, synchronously,
// and must not call back into SQLite.
//
// https://www.sqlite.org/errlog.html
func RegisterErrorLogCallback(cb ErrorLogFunc) {
	if cb == nil {
		C.shim_config_log(0)
		errorLogCallback.Store(nil)
		return
	}

	errorLogCallback.Store(&cb)
	C.shim_config_log(1)
}

// Log writes msg to the SQLite error log with the given result code.
//
// https://www.sqlite.org/c3ref/log.html
func Log(code int, msg string) {
	cMsg := C.CString(msg)
	defer C.free(unsafe.Pointer(cMsg))

	C.shim_log(C.int(code), cMsg)
}
