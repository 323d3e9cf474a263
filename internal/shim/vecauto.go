package shim

/*
#cgo CFLAGS: -I${SRCDIR}/../sqlitec
#include "shim.h"
*/
import "C"
import (
	"fmt"
	"sync"

	"go.uber.org/atomic"
)

// VecInitDiagnosticFunc receives the result code and message of a failed
// vector extension initialization.
type VecInitDiagnosticFunc func(code int, msg string)

var (
	// vecMu serializes registration changes so the flag always matches the
	// auto-extension list.
	vecMu         sync.Mutex
	vecRegistered = atomic.NewBool(false)
	vecDiagnostic atomic.Pointer[VecInitDiagnosticFunc]
)

// VecAutoInit makes every connection opened from now on initialize the
// sqlite-vec extension. Calling it again has no effect.
//
// A connection whose extension fails to initialize still opens; the failure
// is only passed to the hook set with SetVecInitDiagnostic.
func VecAutoInit() {
	vecMu.Lock()
	defer vecMu.Unlock()

	if vecRegistered.Load() {
		return
	}

	resCode := C.shim_register_vec_auto_init()
	if resCode == C.SQLITE_OK {
		vecRegistered.Store(true)
	} else {
		reportVecFailure(int(resCode), fmt.Sprintf(
			"failed to register vector extension: %s", C.GoString(C.sqlite3_errstr(resCode)),
		))
	}
}

// CancelVecAutoInit stops initializing the extension on new connections.
// Connections already open keep it.
func CancelVecAutoInit() {
	vecMu.Lock()
	defer vecMu.Unlock()

	if !vecRegistered.Load() {
		return
	}
	C.shim_cancel_vec_auto_init()
	vecRegistered.Store(false)
}

// VecAutoInitEnabled reports whether new connections initialize the
// extension.
func VecAutoInitEnabled() bool {
	return vecRegistered.Load()
}

// SetVecInitDiagnostic sets the hook that receives vector extension
// initialization failures. With a nil fn, the default, failures are silent.
func SetVecInitDiagnostic(fn VecInitDiagnosticFunc) {
	if fn == nil {
		vecDiagnostic.Store(nil)
		return
	}
	vecDiagnostic.Store(&fn)
}

// VecCompiledIn reports whether this build links the sqlite-vec extension.
func VecCompiledIn() bool {
	return vecCompiledIn
}

func reportVecFailure(code int, msg string) {
	if fn := vecDiagnostic.Load(); fn != nil {
		(*fn)(code, msg)
	}
}

// useUnavailableVecEntry makes initialization fail as in a build without the
// extension until the returned func is called.
func useUnavailableVecEntry() (restore func()) {
	prev := C.shim_swap_vec_entry((*[0]byte)(C.shim_vec_unavailable_init))
	return func() {
		C.shim_swap_vec_entry(prev)
	}
}

// runVecAutoInit runs the initialization of a single connection without one.
// Only valid with an entry point that does not touch the connection.
func runVecAutoInit() int {
	return int(C.shim_vec_auto_init(nil, nil, nil))
}
