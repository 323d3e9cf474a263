package sqlitedrv

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/nsqlite/sqliteshim/internal/sqlitec"
)

// Conn implements the database/sql/driver.Conn interface
type Conn struct {
	conn *sqlitec.Conn
}

// RawConn returns the underlying SQLite C API connection
func (conn *Conn) RawConn() *sqlitec.Conn {
	return conn.conn
}

// Close closes the connection to the SQLite database
func (conn *Conn) Close() error {
	if err := conn.conn.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}
	return nil
}

// Prepare compiles the first statement of query.
func (conn *Conn) Prepare(query string) (driver.Stmt, error) {
	return conn.PrepareContext(context.Background(), query)
}

// PrepareContext compiles the first statement of query.
func (conn *Conn) PrepareContext(ctx context.Context, query string) (driver.Stmt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stmt, err := conn.conn.Prepare(query)
	if err != nil {
		return nil, err
	}
	return &Stmt{stmt: stmt}, nil
}

// Begin starts a deferred transaction.
func (conn *Conn) Begin() (driver.Tx, error) {
	return conn.BeginTx(context.Background(), driver.TxOptions{})
}

// BeginTx starts a deferred transaction. SQLite transactions are
// serializable, so only the default and serializable isolation levels are
// accepted. Read-only transactions are not enforced.
func (conn *Conn) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch sql.IsolationLevel(opts.Isolation) {
	case sql.LevelDefault, sql.LevelSerializable:
	default:
		return nil, fmt.Errorf("unsupported isolation level: %s", sql.IsolationLevel(opts.Isolation))
	}

	if err := conn.conn.Exec("BEGIN"); err != nil {
		return nil, err
	}
	return &Tx{conn: conn}, nil
}

// ExecContext runs argument-less SQL directly, which allows several
// statements separated by semicolons. Queries with arguments go through a
// prepared statement.
func (conn *Conn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	if len(args) > 0 {
		return nil, driver.ErrSkip
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := conn.conn.Exec(query); err != nil {
		return nil, err
	}
	return &Result{
		lastInsertID: conn.conn.LastInsertRowID(),
		rowsAffected: conn.conn.RowsAffected(),
	}, nil
}

// ResetSession rejects connections returned to the pool with a transaction
// still open.
func (conn *Conn) ResetSession(_ context.Context) error {
	if conn.conn.DBHandle() == nil {
		return driver.ErrBadConn
	}
	if !conn.conn.AutoCommit() {
		return driver.ErrBadConn
	}
	return nil
}

// IsValid reports whether the connection is still open.
func (conn *Conn) IsValid() bool {
	return conn.conn.DBHandle() != nil
}

// Tx implements the database/sql/driver.Tx interface
type Tx struct {
	conn *Conn
}

// Commit commits the transaction.
func (tx *Tx) Commit() error {
	if err := tx.conn.conn.Exec("COMMIT"); err != nil {
		return err
	}
	return nil
}

// Rollback rolls the transaction back. It is not an error when SQLite
// already rolled it back after a failure.
func (tx *Tx) Rollback() error {
	if tx.conn.conn.AutoCommit() {
		return nil
	}
	if err := tx.conn.conn.Exec("ROLLBACK"); err != nil {
		return err
	}
	return nil
}

// Result implements the database/sql/driver.Result interface
type Result struct {
	lastInsertID int64
	rowsAffected int64
}

// LastInsertId returns the rowid of the most recent successful INSERT.
func (r *Result) LastInsertId() (int64, error) {
	return r.lastInsertID, nil
}

// RowsAffected returns the number of rows changed by the statement.
func (r *Result) RowsAffected() (int64, error) {
	return r.rowsAffected, nil
}
