// Package shim exposes the SQLite configuration entry points that Go code
// linked against the github.com/mattn/go-sqlite3 amalgamation cannot reach
// through database/sql: the process-wide error log, the per-connection
// double-quoted string literal flags and the automatic initialization of the
// sqlite-vec extension for every new connection.
//
// Every operation forwards to SQLite and surfaces nothing. Failures of the
// vector extension are reported only to an optional diagnostic hook.
//
// The extension is not initialized once globally with a NULL connection and
// API table. Instead, SQLite runs the entry point for each new connection,
// passing that connection's handle and API table, through
// sqlite3_auto_extension. The effect is the same: vec0 and vec_version()
// exist on every later connection.
//
//   - https://www.sqlite.org/c3ref/config.html
//   - https://www.sqlite.org/c3ref/db_config.html
//   - https://www.sqlite.org/c3ref/auto_extension.html
package shim
