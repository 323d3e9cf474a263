// Package sqlitec provides a lightweight wrapper for the SQLite C library.
// It allows direct interaction with SQLite's low-level API and hands out the
// raw connection handle that the configuration shim operates on.
//
// The library itself is the amalgamation compiled by
// github.com/mattn/go-sqlite3; this package only declares the functions it
// calls (see sqlite3api.h).
//
//   - https://www.sqlite.org/cintro.html
//   - https://www.sqlite.org/c3ref/intro.html
package sqlitec
