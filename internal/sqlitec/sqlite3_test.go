package sqlitec

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteC(t *testing.T) {
	t.Run("OpenClose", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		assert.NotNil(t, conn)
		assert.NoError(t, conn.Close())
	})

	t.Run("CreateTable", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		_, err = conn.Query("CREATE TABLE test (id INTEGER PRIMARY KEY, val TEXT)", nil)
		assert.NoError(t, err)
	})

	t.Run("InsertMultipleTypes", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		_, err = conn.Query(`
			CREATE TABLE test_types (
				id INTEGER PRIMARY KEY,
				flag BOOLEAN,
				num_int INTEGER,
				num_float REAL,
				txt TEXT,
				bytes BLOB,
				nullable TEXT
			)
		`, nil)
		assert.NoError(t, err)

		res, err := conn.Query(
			`
				INSERT INTO test_types (flag, num_int, num_float, txt, bytes, nullable)
				VALUES (?, ?, ?, ?, ?, ?)
			`,
			[]QueryParam{
				{Value: true},
				{Value: 123},
				{Value: 3.14},
				{Value: "hola"},
				{Value: []byte("raw")},
				{Value: nil},
			},
		)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), res.RowsAffected)

		selRes, err := conn.Query("SELECT flag, num_int, num_float, txt, bytes, nullable FROM test_types", nil)
		assert.NoError(t, err)
		assert.Len(t, selRes.Rows, 1)
		row := selRes.Rows[0]

		assert.Equal(t, int64(1), row[0])
		assert.Equal(t, int64(123), row[1])
		assert.Equal(t, 3.14, row[2])
		assert.Equal(t, "hola", row[3])
		assert.Equal(t, []byte("raw"), row[4])
		assert.Nil(t, row[5])
	})

	t.Run("InsertNamedParameter", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		_, err = conn.Query("CREATE TABLE named_test (id INTEGER PRIMARY KEY, value TEXT)", nil)
		assert.NoError(t, err)

		runTest := func(nameForQuery string, nameForParam string) {
			value := uuid.NewString()

			_, err = conn.Query(
				fmt.Sprintf("INSERT INTO named_test (value) VALUES (%s)", nameForQuery),
				[]QueryParam{
					{Name: nameForParam, Value: value},
				},
			)
			assert.NoError(t, err)

			res, err := conn.Query(
				"SELECT value FROM named_test ORDER BY id DESC LIMIT 1",
				nil,
			)
			assert.NoError(t, err)
			assert.Len(t, res.Rows, 1)
			assert.Equal(t, value, res.Rows[0][0])
		}

		// Support for all the variants: https://www.sqlite.org/lang_expr.html#varparam
		runTest("?123", "?123")
		runTest("?1", "")
		runTest("?", "")
		runTest(":val", ":val")
		runTest(":val", "val")
		runTest("@val", "@val")
		runTest("@val", "val")
		runTest("$val", "$val")
		runTest("$val", "val")
		runTest("$val::test", "$val::test")
		runTest("$val::test", "val::test")
		runTest("$val(test)", "$val(test)")
		runTest("$val(test)", "val(test)")
	})

	t.Run("MultipleRows", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		_, err = conn.Query("CREATE TABLE multi (id INTEGER PRIMARY KEY, val TEXT)", nil)
		assert.NoError(t, err)

		for i := 1; i <= 3; i++ {
			params := []QueryParam{{Value: i}}
			_, err = conn.Query("INSERT INTO multi (val) VALUES (?)", params)
			assert.NoError(t, err)
		}

		res, err := conn.Query("SELECT id, val FROM multi", nil)
		assert.NoError(t, err)
		assert.Equal(t, 3, len(res.Rows))
	})

	t.Run("UpdateAndRowsAffected", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		_, err = conn.Query("CREATE TABLE upd (id INTEGER PRIMARY KEY, val TEXT)", nil)
		assert.NoError(t, err)
		_, err = conn.Query("INSERT INTO upd (val) VALUES ('original')", nil)
		assert.NoError(t, err)

		res, err := conn.Query("UPDATE upd SET val='nuevo' WHERE id=1", nil)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), res.RowsAffected)
	})

	t.Run("DeleteAndRowsAffectedZero", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		_, err = conn.Query("CREATE TABLE del (id INTEGER PRIMARY KEY, val TEXT)", nil)
		assert.NoError(t, err)
		_, err = conn.Query("INSERT INTO del (val) VALUES ('abc')", nil)
		assert.NoError(t, err)

		res, err := conn.Query("DELETE FROM del WHERE id=999", nil)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), res.RowsAffected)
	})

	t.Run("StepNoColumnCount", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		res, err := conn.Query("CREATE TABLE step_test (id INTEGER PRIMARY KEY)", nil)
		assert.NoError(t, err)
		assert.NotNil(t, res)
		assert.Equal(t, 0, len(res.Columns))
	})

	t.Run("ReadOnlyCheck", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		_, err = conn.Query("CREATE TABLE test (id INTEGER PRIMARY KEY, val TEXT)", nil)
		assert.NoError(t, err)

		stmt, err := conn.Prepare("INSERT INTO test (val) VALUES (?)")
		assert.NoError(t, err)
		assert.False(t, stmt.ReadOnly())
		assert.NoError(t, stmt.Finalize())

		stmt, err = conn.Prepare("SELECT * FROM test")
		assert.NoError(t, err)
		assert.True(t, stmt.ReadOnly())
		assert.NoError(t, stmt.Finalize())
	})

	t.Run("FinalizeError", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		// Simulate a nil stmt to check that it doesn't crash
		stmt := &Stmt{}
		err = stmt.Finalize()
		assert.NoError(t, err)
	})

	t.Run("LargeBlob", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		_, err = conn.Query("CREATE TABLE blobtest (id INTEGER PRIMARY KEY, data BLOB)", nil)
		assert.NoError(t, err)

		largeData := make([]byte, 1024*1024) // 1MB
		for i := range largeData {
			largeData[i] = byte(i % 256)
		}

		params := []QueryParam{{Value: largeData}}
		_, err = conn.Query("INSERT INTO blobtest(data) VALUES(?)", params)
		assert.NoError(t, err)

		sel, err := conn.Query("SELECT data FROM blobtest", nil)
		assert.NoError(t, err)
		assert.Len(t, sel.Rows, 1)
		assert.Equal(t, largeData, sel.Rows[0][0])
	})

	t.Run("Transactions", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		recreateTable := func() {
			_, err = conn.Query("DROP TABLE IF EXISTS test", nil)
			assert.NoError(t, err)
			_, err = conn.Query("CREATE TABLE test (id INTEGER PRIMARY KEY, val TEXT)", nil)
			assert.NoError(t, err)
		}

		t.Run("Successful", func(t *testing.T) {
			recreateTable()

			_, err := conn.Query("BEGIN TRANSACTION", nil)
			assert.NoError(t, err)

			for range 20 {
				_, err = conn.Query(
					"INSERT INTO test (val) VALUES (?)",
					[]QueryParam{{Value: uuid.NewString()}},
				)
				assert.NoError(t, err)
			}

			_, err = conn.Query("COMMIT", nil)
			assert.NoError(t, err)

			sel, err := conn.Query("SELECT val FROM test", nil)
			assert.NoError(t, err)
			assert.Len(t, sel.Rows, 20)
		})

		t.Run("Rollback", func(t *testing.T) {
			recreateTable()

			_, err := conn.Query("BEGIN TRANSACTION", nil)
			assert.NoError(t, err)

			for range 20 {
				_, err = conn.Query(
					"INSERT INTO test (val) VALUES (?)",
					[]QueryParam{{Value: uuid.NewString()}},
				)
				assert.NoError(t, err)
			}

			_, err = conn.Query("ROLLBACK", nil)
			assert.NoError(t, err)

			sel, err := conn.Query("SELECT val FROM test", nil)
			assert.NoError(t, err)
			assert.Len(t, sel.Rows, 0)
		})
	})
	t.Run("ExpressionColumnsUseDynamicType", func(t *testing.T) {
		conn, err := Open(":memory:")
		require.NoError(t, err)
		defer conn.Close()

		res, err := conn.Query("SELECT 1 + 1, 2.5, 'x', x'00ff', NULL", nil)
		require.NoError(t, err)
		require.Len(t, res.Rows, 1)
		assert.Equal(t, []any{int64(2), 2.5, "x", []byte{0x00, 0xff}, nil}, res.Rows[0])
		assert.Equal(t, []string{"", "", "", "", ""}, res.Types)
	})

	t.Run("EmptyBlobIsNotNull", func(t *testing.T) {
		conn, err := Open(":memory:")
		require.NoError(t, err)
		defer conn.Close()

		res, err := conn.Query("SELECT typeof(?), typeof(?)", []QueryParam{
			{Value: []byte{}},
			{Value: []byte(nil)},
		})
		require.NoError(t, err)
		assert.Equal(t, []any{"blob", "null"}, res.Rows[0])
	})

	t.Run("UnknownNamedParameter", func(t *testing.T) {
		conn, err := Open(":memory:")
		require.NoError(t, err)
		defer conn.Close()

		_, err = conn.Query("SELECT :a", []QueryParam{{Name: "b", Value: 1}})
		assert.ErrorContains(t, err, `unknown parameter name "b"`)
	})

	t.Run("UnsupportedParameterType", func(t *testing.T) {
		conn, err := Open(":memory:")
		require.NoError(t, err)
		defer conn.Close()

		_, err = conn.Query("SELECT ?", []QueryParam{{Value: struct{}{}}})
		assert.ErrorContains(t, err, "unsupported type struct {}")
	})

	t.Run("PrepareErrorCarriesResultCode", func(t *testing.T) {
		conn, err := Open(":memory:")
		require.NoError(t, err)
		defer conn.Close()

		_, err = conn.Prepare("SELECT * FROM missing_table")
		require.Error(t, err)

		var sqliteErr *Error
		require.True(t, errors.As(err, &sqliteErr))
		assert.Equal(t, SQLITE_ERROR, sqliteErr.Code)
		assert.Contains(t, sqliteErr.Msg, "no such table: missing_table")
	})

	t.Run("ConstraintExtendedCode", func(t *testing.T) {
		conn, err := Open(":memory:")
		require.NoError(t, err)
		defer conn.Close()

		require.NoError(t, conn.Exec("CREATE TABLE uniq (v TEXT UNIQUE); INSERT INTO uniq VALUES ('a');"))
		_, err = conn.Query("INSERT INTO uniq VALUES ('a')", nil)

		var sqliteErr *Error
		require.True(t, errors.As(err, &sqliteErr))
		assert.Equal(t, SQLITE_CONSTRAINT, sqliteErr.Code)
		assert.Equal(t, SQLITE_CONSTRAINT|(8<<8), sqliteErr.ExtendedCode) // SQLITE_CONSTRAINT_UNIQUE
	})

	t.Run("ExecMultipleStatements", func(t *testing.T) {
		conn, err := Open(":memory:")
		require.NoError(t, err)
		defer conn.Close()

		err = conn.Exec(`
			CREATE TABLE multi_exec (id INTEGER PRIMARY KEY);
			INSERT INTO multi_exec DEFAULT VALUES;
			INSERT INTO multi_exec DEFAULT VALUES;
		`)
		require.NoError(t, err)
		assert.Equal(t, int64(2), conn.LastInsertRowID())

		err = conn.Exec("INSERT INTO nowhere VALUES (1)")
		assert.ErrorContains(t, err, "no such table: nowhere")
	})

	t.Run("AutoCommit", func(t *testing.T) {
		conn, err := Open(":memory:")
		require.NoError(t, err)
		defer conn.Close()

		assert.True(t, conn.AutoCommit())
		require.NoError(t, conn.Exec("BEGIN"))
		assert.False(t, conn.AutoCommit())
		require.NoError(t, conn.Exec("ROLLBACK"))
		assert.True(t, conn.AutoCommit())
	})

	t.Run("ResetAndRebind", func(t *testing.T) {
		conn, err := Open(":memory:")
		require.NoError(t, err)
		defer conn.Close()

		stmt, err := conn.Prepare("SELECT ? * 2")
		require.NoError(t, err)
		defer stmt.Finalize()
		assert.Equal(t, 1, stmt.BindParameterCount())

		for _, v := range []int64{1, 21} {
			require.NoError(t, stmt.Reset())
			require.NoError(t, stmt.ClearBindings())
			require.NoError(t, stmt.BindInt64(1, v))
			hasRow, err := stmt.Step()
			require.NoError(t, err)
			require.True(t, hasRow)
			assert.Equal(t, v*2, stmt.ColumnInt64(0))
		}
	})

	t.Run("FileDatabaseAndHandle", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "handle.sqlite")
		conn, err := Open("file:" + path)
		require.NoError(t, err)
		assert.NotNil(t, conn.DBHandle())
		require.NoError(t, conn.SetBusyTimeout(0))

		require.NoError(t, conn.Close())
		assert.Nil(t, conn.DBHandle())
		assert.NoError(t, conn.Close())

		_, err = conn.Prepare("SELECT 1")
		assert.Error(t, err)
	})
}

func TestLibVersion(t *testing.T) {
	assert.NotEmpty(t, LibVersion())
	assert.NotEmpty(t, SourceID())
	assert.GreaterOrEqual(t, LibVersionNumber(), 3029000)
	assert.Equal(t, fmt.Sprint(LibVersionNumber()/1000000), LibVersion()[:1])
}

func TestResultCodeName(t *testing.T) {
	tests := []struct {
		name string
		code int
		want string
	}{
		{name: "ok", code: SQLITE_OK, want: "SQLITE_OK"},
		{name: "primary", code: SQLITE_BUSY, want: "SQLITE_BUSY"},
		{name: "extended", code: SQLITE_IOERR | (3 << 8), want: "SQLITE_IOERR"},
		{name: "done", code: SQLITE_DONE, want: "SQLITE_DONE"},
		{name: "unknown", code: 99, want: "SQLITE_UNKNOWN(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResultCodeName(tt.code))
		})
	}
}
