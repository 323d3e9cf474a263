package shim

/*
#cgo CFLAGS: -I${SRCDIR}/../sqlitec
#include "shim.h"
*/
import "C"

//export goSQLiteErrorLog
func goSQLiteErrorLog(code C.int, msg *C.char) {
	if cb := errorLogCallback.Load(); cb != nil {
		(*cb)(int(code), C.GoString(msg))
	}
}

//export goVecInitFailed
func goVecInitFailed(code C.int, msg *C.char) {
	reportVecFailure(int(code), C.GoString(msg))
}
