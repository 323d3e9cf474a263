package sqlitec

import (
	"fmt"
	"strings"
	"time"
)

// QueryParam is a parameter for Query. An empty Name binds the parameter by
// position; otherwise Name may be given with or without its prefix.
type QueryParam struct {
	Name  string
	Value any
}

// QueryResult represents the result for Query.
type QueryResult struct {
	Time         time.Duration
	LastInsertID int64
	RowsAffected int64
	Columns      []string
	Types        []string
	Rows         [][]any
}

// Query executes the given SQL query on the SQLite database connection
// from start to finish, returning the result of the query for both write and
// read operations.
func (conn *Conn) Query(query string, params []QueryParam) (*QueryResult, error) {
	start := time.Now()

	stmt, err := conn.Prepare(query)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = stmt.Finalize()
	}()

	if err := stmt.bindParams(params); err != nil {
		return nil, err
	}

	columnCount := stmt.ColumnCount()
	res := &QueryResult{}

	if columnCount > 0 {
		res.Columns = make([]string, columnCount)
		res.Types = make([]string, columnCount)
		res.Rows = make([][]any, 0)

		for i := 0; i < columnCount; i++ {
			res.Columns[i] = stmt.ColumnName(i)
			res.Types[i] = stmt.ColumnType(i)
		}
	}

	for {
		hasRow, err := stmt.Step()
		if err != nil {
			return nil, err
		}
		if !hasRow {
			break
		}

		row := make([]any, columnCount)
		for i := 0; i < columnCount; i++ {
			row[i] = stmt.ColumnValue(i)
		}
		res.Rows = append(res.Rows, row)
	}

	if columnCount == 0 {
		res.LastInsertID = conn.LastInsertRowID()
		res.RowsAffected = conn.RowsAffected()
	}

	res.Time = time.Since(start)
	return res, nil
}

// bindParams binds params to the statement, by name when given and by
// position otherwise.
func (stmt *Stmt) bindParams(params []QueryParam) error {
	for i, param := range params {
		index := i + 1
		if param.Name != "" {
			index = stmt.ParamIndex(param.Name)
			if index == 0 {
				return fmt.Errorf("failed to bind parameter: unknown parameter name %q", param.Name)
			}
		}

		if err := stmt.Bind(index, param.Value); err != nil {
			return err
		}
	}
	return nil
}

// ParamIndex returns the index of a named parameter given with or without
// its prefix, or zero when the statement has no such parameter.
//
// https://www.sqlite.org/lang_expr.html#varparam
func (stmt *Stmt) ParamIndex(name string) int {
	if name == "" {
		return 0
	}
	if strings.ContainsAny(name[:1], "?:@$") {
		return stmt.BindParameterIndex(name)
	}
	for _, prefix := range []string{":", "@", "$"} {
		if index := stmt.BindParameterIndex(prefix + name); index != 0 {
			return index
		}
	}
	return 0
}

// Bind binds a Go value at the given index choosing the SQLite type from
// the value type.
func (stmt *Stmt) Bind(index int, value any) error {
	switch v := value.(type) {
	case nil:
		return stmt.BindNull(index)
	case int:
		return stmt.BindInt64(index, int64(v))
	case int32:
		return stmt.BindInt64(index, int64(v))
	case int64:
		return stmt.BindInt64(index, v)
	case uint32:
		return stmt.BindInt64(index, int64(v))
	case bool:
		if v {
			return stmt.BindInt64(index, 1)
		}
		return stmt.BindInt64(index, 0)
	case float32:
		return stmt.BindFloat64(index, float64(v))
	case float64:
		return stmt.BindFloat64(index, v)
	case string:
		return stmt.BindText(index, v)
	case []byte:
		return stmt.BindBlob(index, v)
	case time.Time:
		return stmt.BindText(index, v.Format(time.RFC3339Nano))
	default:
		return fmt.Errorf("failed to bind parameter %d: unsupported type %T", index, value)
	}
}
