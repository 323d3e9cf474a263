package repl

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nsqlite/sqliteshim/internal/log"
	"github.com/nsqlite/sqliteshim/internal/sqliteshim/styled"
)

func cmdQuery(r *Repl, input string) {
	res, err := r.Conn.Query(input, nil)
	if err != nil {
		r.Logger.DebugNs(log.NsRepl, "query failed", log.KV{"error": err})
		fmt.Fprintln(r.Out, styled.NewErrorTable(cleanError(err)).Render())
		return
	}

	tw := styled.NewTableWriter()

	if len(res.Columns) == 0 {
		tw.AppendHeader(table.Row{"-", "Rows Affected", "Last Insert ID"})
		tw.AppendRow(table.Row{"OK", res.RowsAffected, res.LastInsertID})
	} else {
		header := table.Row{}
		for _, col := range res.Columns {
			header = append(header, col)
		}
		tw.AppendHeader(header)

		for _, values := range res.Rows {
			row := table.Row{}
			for _, value := range values {
				row = append(row, formatValue(value))
			}
			tw.AppendRow(row)
		}
	}

	fmt.Fprintln(r.Out, tw.Render())
	styled.DimmedColor().Fprintf(r.Out, "%d row(s) in %s\n", len(res.Rows), res.Time)
}

// formatValue renders a column value the way the sqlite3 shell does for
// NULL and BLOB values.
func formatValue(value any) any {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case []byte:
		return fmt.Sprintf("x'%X'", v)
	default:
		return v
	}
}
