//go:build !sqlite_omit_vec

package shim

/*
#cgo CFLAGS: -I${SRCDIR}/../sqlitec
#include "shim.h"

int sqlite3_vec_init(sqlite3 *db, char **pzErrMsg, const sqlite3_api_routines *pApi);
*/
import "C"
import (
	// Compiles sqlite3_vec_init against the same amalgamation.
	_ "github.com/asg017/sqlite-vec-go-bindings/cgo"
)

const vecCompiledIn = true

func init() {
	C.shim_swap_vec_entry((*[0]byte)(C.sqlite3_vec_init))
}
