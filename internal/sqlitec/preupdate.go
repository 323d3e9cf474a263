//go:build sqlite_preupdate_hook

package sqlitec

/*
#cgo CFLAGS: -I${SRCDIR}
#include <stdint.h>
#include <stdlib.h>
#include "sqlite3api.h"

// Available when the amalgamation is compiled with
// SQLITE_ENABLE_PREUPDATE_HOOK, which github.com/mattn/go-sqlite3 does
// under the same build tag.
void *sqlite3_preupdate_hook(
  sqlite3 *db,
  void(*xPreUpdate)(void *, sqlite3 *, int, char const *, char const *, sqlite3_int64, sqlite3_int64),
  void *
);
int sqlite3_preupdate_old(sqlite3 *, int, sqlite3_value **);
int sqlite3_preupdate_count(sqlite3 *);
int sqlite3_preupdate_depth(sqlite3 *);
int sqlite3_preupdate_new(sqlite3 *, int, sqlite3_value **);

extern void goPreUpdateHook(void *, sqlite3 *, int, char *, char *, sqlite3_int64, sqlite3_int64);
*/
import "C"
import (
	"fmt"
	"runtime/cgo"
	"unsafe"
)

// Operation codes reported in PreUpdate.Op.
//
// https://www.sqlite.org/c3ref/c_alter_table.html
const (
	OpDelete = 9
	OpInsert = 18
	OpUpdate = 23
)

// PreUpdate describes a change about to be made to a rowid table. Its
// methods are only valid during the hook invocation.
//
// https://www.sqlite.org/c3ref/preupdate_blobwrite.html
type PreUpdate struct {
	Op       int
	Database string
	Table    string
	OldRowID int64
	NewRowID int64

	cDB *C.sqlite3
}

// PreUpdateFunc is invoked before each INSERT, UPDATE and DELETE.
type PreUpdateFunc func(PreUpdate)

// RegisterPreUpdateHook installs fn as the preupdate hook of the
// connection, replacing any previous one. A nil fn removes the hook.
//
// https://www.sqlite.org/c3ref/preupdate_blobwrite.html
func (conn *Conn) RegisterPreUpdateHook(fn PreUpdateFunc) {
	if fn == nil {
		C.sqlite3_preupdate_hook(conn.cDB, nil, nil)
		return
	}

	// The handle lives in C memory so SQLite never holds a Go pointer.
	handle := cgo.NewHandle(fn)
	ctx := C.malloc(C.size_t(unsafe.Sizeof(C.uintptr_t(0))))
	*(*C.uintptr_t)(ctx) = C.uintptr_t(handle)

	C.sqlite3_preupdate_hook(conn.cDB, (*[0]byte)(C.goPreUpdateHook), ctx)
	conn.onClose = append(conn.onClose, func() {
		handle.Delete()
		C.free(ctx)
	})
}

//export goPreUpdateHook
func goPreUpdateHook(ctx unsafe.Pointer, cDB *C.sqlite3, op C.int, zDb *C.char, zName *C.char, key1, key2 C.sqlite3_int64) {
	fn := cgo.Handle(*(*C.uintptr_t)(ctx)).Value().(PreUpdateFunc)
	fn(PreUpdate{
		Op:       int(op),
		Database: C.GoString(zDb),
		Table:    C.GoString(zName),
		OldRowID: int64(key1),
		NewRowID: int64(key2),
		cDB:      cDB,
	})
}

// Count returns the number of columns in the row being changed.
func (p PreUpdate) Count() int {
	return int(C.sqlite3_preupdate_count(p.cDB))
}

// Depth returns 0 for a direct change and the trigger depth otherwise.
func (p PreUpdate) Depth() int {
	return int(C.sqlite3_preupdate_depth(p.cDB))
}

// Old returns the value of column i before an UPDATE or DELETE.
func (p PreUpdate) Old(i int) (any, error) {
	var value *C.sqlite3_value
	if resCode := C.sqlite3_preupdate_old(p.cDB, C.int(i), &value); resCode != SQLITE_OK {
		return nil, fmt.Errorf("failed to read old value: %w", newError(resCode, p.cDB))
	}
	return goValue(value), nil
}

// New returns the value of column i after an INSERT or UPDATE.
func (p PreUpdate) New(i int) (any, error) {
	var value *C.sqlite3_value
	if resCode := C.sqlite3_preupdate_new(p.cDB, C.int(i), &value); resCode != SQLITE_OK {
		return nil, fmt.Errorf("failed to read new value: %w", newError(resCode, p.cDB))
	}
	return goValue(value), nil
}

func goValue(value *C.sqlite3_value) any {
	switch C.sqlite3_value_type(value) {
	case C.SQLITE_INTEGER:
		return int64(C.sqlite3_value_int64(value))
	case C.SQLITE_FLOAT:
		return float64(C.sqlite3_value_double(value))
	case C.SQLITE_TEXT:
		text := (*C.char)(unsafe.Pointer(C.sqlite3_value_text(value)))
		return C.GoStringN(text, C.sqlite3_value_bytes(value))
	case C.SQLITE_BLOB:
		size := C.sqlite3_value_bytes(value)
		if size == 0 {
			return []byte{}
		}
		return C.GoBytes(C.sqlite3_value_blob(value), size)
	default:
		return nil
	}
}
