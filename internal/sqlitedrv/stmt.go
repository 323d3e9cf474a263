package sqlitedrv

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nsqlite/sqliteshim/internal/sqlitec"
)

var (
	_ driver.Stmt                           = (*Stmt)(nil)
	_ driver.StmtExecContext                = (*Stmt)(nil)
	_ driver.StmtQueryContext               = (*Stmt)(nil)
	_ driver.Rows                           = (*Rows)(nil)
	_ driver.RowsColumnTypeDatabaseTypeName = (*Rows)(nil)
)

var errStmtClosed = errors.New("statement is closed")

// Stmt implements the database/sql/driver.Stmt interface
type Stmt struct {
	stmt   *sqlitec.Stmt
	closed bool
}

// Close finalizes the statement.
func (s *Stmt) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.stmt.Finalize()
}

// NumInput returns the number of parameters of the statement.
func (s *Stmt) NumInput() int {
	return s.stmt.BindParameterCount()
}

// Exec executes the statement with positional arguments.
func (s *Stmt) Exec(args []driver.Value) (driver.Result, error) {
	return s.ExecContext(context.Background(), toNamedValues(args))
}

// Query executes the statement with positional arguments.
func (s *Stmt) Query(args []driver.Value) (driver.Rows, error) {
	return s.QueryContext(context.Background(), toNamedValues(args))
}

// ExecContext executes the statement, discarding any rows it returns.
func (s *Stmt) ExecContext(ctx context.Context, args []driver.NamedValue) (driver.Result, error) {
	if err := s.bind(ctx, args); err != nil {
		return nil, err
	}
	defer func() {
		_ = s.stmt.Reset()
	}()

	for {
		hasRow, err := s.stmt.Step()
		if err != nil {
			return nil, err
		}
		if !hasRow {
			break
		}
	}

	conn := s.stmt.Conn()
	return &Result{
		lastInsertID: conn.LastInsertRowID(),
		rowsAffected: conn.RowsAffected(),
	}, nil
}

// QueryContext executes the statement and returns its rows. The statement
// is reset when the rows are closed.
func (s *Stmt) QueryContext(ctx context.Context, args []driver.NamedValue) (driver.Rows, error) {
	if err := s.bind(ctx, args); err != nil {
		return nil, err
	}

	columns := make([]string, s.stmt.ColumnCount())
	for i := range columns {
		columns[i] = s.stmt.ColumnName(i)
	}
	return &Rows{stmt: s.stmt, columns: columns}, nil
}

func (s *Stmt) bind(ctx context.Context, args []driver.NamedValue) error {
	if s.closed {
		return errStmtClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	_ = s.stmt.Reset()
	if err := s.stmt.ClearBindings(); err != nil {
		return err
	}

	for _, arg := range args {
		index := arg.Ordinal
		if arg.Name != "" {
			index = s.stmt.ParamIndex(arg.Name)
			if index == 0 {
				return fmt.Errorf("failed to bind parameter: unknown parameter name %q", arg.Name)
			}
		}
		if err := s.stmt.Bind(index, arg.Value); err != nil {
			return err
		}
	}
	return nil
}

func toNamedValues(args []driver.Value) []driver.NamedValue {
	named := make([]driver.NamedValue, len(args))
	for i, arg := range args {
		named[i] = driver.NamedValue{Ordinal: i + 1, Value: arg}
	}
	return named
}

// Rows implements the database/sql/driver.Rows interface
type Rows struct {
	stmt    *sqlitec.Stmt
	columns []string
	done    bool
}

// Columns returns the column names.
func (r *Rows) Columns() []string {
	return r.columns
}

// ColumnTypeDatabaseTypeName returns the declared type of the column, upper
// cased, or an empty string for expressions.
func (r *Rows) ColumnTypeDatabaseTypeName(index int) string {
	return strings.ToUpper(r.stmt.ColumnType(index))
}

// Next steps to the next row and copies its values into dest.
func (r *Rows) Next(dest []driver.Value) error {
	if r.done {
		return io.EOF
	}

	hasRow, err := r.stmt.Step()
	if err != nil {
		r.done = true
		return err
	}
	if !hasRow {
		r.done = true
		return io.EOF
	}

	for i := range dest {
		dest[i] = r.stmt.ColumnValue(i)
	}
	return nil
}

// Close resets the statement so it can be executed again.
func (r *Rows) Close() error {
	r.done = true
	_ = r.stmt.Reset()
	return nil
}
