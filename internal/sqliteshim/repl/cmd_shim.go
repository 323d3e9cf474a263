package repl

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nsqlite/sqliteshim/internal/log"
	"github.com/nsqlite/sqliteshim/internal/shim"
	"github.com/nsqlite/sqliteshim/internal/sqlitec"
	"github.com/nsqlite/sqliteshim/internal/sqliteshim/config"
	"github.com/nsqlite/sqliteshim/internal/sqliteshim/styled"
	"github.com/nsqlite/sqliteshim/internal/util/numutil"
	"github.com/nsqlite/sqliteshim/internal/version"
)

func cmdQuotes(r *Repl, args []string) {
	if len(args) > 1 {
		fmt.Fprintln(r.Out, "Usage: .quotes [strict|lenient]")
		return
	}

	if len(args) == 1 {
		mode, err := config.ParseQuoteMode(args[0])
		if err != nil {
			fmt.Fprintln(r.Out, styled.NewErrorTable(err.Error()).Render())
			return
		}
		shim.SetDoubleQuotedStringLiterals(r.Conn, mode.Lenient())
		r.Logger.InfoNs(log.NsShim, "double-quoted string literal mode changed", log.KV{"mode": mode.Value})
	}

	ddl, dml := shim.DoubleQuotedStringLiterals(r.Conn)

	tw := styled.NewTableWriter()
	tw.AppendHeader(table.Row{"Mode", "DDL", "DML"})
	tw.AppendRow(table.Row{quoteModeName(ddl, dml), onOff(ddl), onOff(dml)})
	fmt.Fprintln(r.Out, tw.Render())
}

func quoteModeName(ddl, dml bool) string {
	switch {
	case ddl && dml:
		return config.QuoteModeLenient.Value
	case !ddl && !dml:
		return config.QuoteModeStrict.Value
	default:
		return "mixed"
	}
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}

// vecVersion returns the version of the extension loaded on the REPL
// connection, or an empty string when it is not loaded.
func vecVersion(r *Repl) string {
	res, err := r.Conn.Query("SELECT vec_version()", nil)
	if err != nil || len(res.Rows) == 0 {
		return ""
	}
	v, _ := res.Rows[0][0].(string)
	return v
}

func cmdVec(r *Repl) {
	loaded := vecVersion(r)
	if loaded == "" {
		loaded = "not loaded"
	}

	tw := styled.NewTableWriter()
	tw.AppendHeader(table.Row{"Compiled In", "Auto Init", "Connection"})
	tw.AppendRow(table.Row{
		yesNo(shim.VecCompiledIn()),
		yesNo(shim.VecAutoInitEnabled()),
		loaded,
	})
	fmt.Fprintln(r.Out, tw.Render())
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func cmdVersion(r *Repl) {
	vec := vecVersion(r)
	if vec == "" {
		vec = "-"
	}

	tw := styled.NewTableWriter()
	tw.AppendHeader(table.Row{"Component", "Version"})
	tw.AppendRows([]table.Row{
		{"sqliteshim", version.Version},
		{"SQLite", shim.LibVersion()},
		{"SQLite source", sqlitec.SourceID()},
		{"sqlite-vec", vec},
	})
	fmt.Fprintln(r.Out, tw.Render())
}

func cmdMemory(r *Repl) {
	fmt.Fprintf(r.Out, "SQLite memory in use: %s\n", numutil.Bytes(shim.MemoryUsed()))
}
