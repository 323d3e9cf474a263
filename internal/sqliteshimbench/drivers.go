package sqliteshimbench

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/nsqlite/sqliteshim/internal/sqlitedrv"
)

// target is a database/sql pool to benchmark.
type target struct {
	name string
	db   *sql.DB
}

// openTargets opens the same schema through the mattn/go-sqlite3 driver and
// through sqlitedrv, each on its own file in dir.
func openTargets(dir string) ([]target, error) {
	mattnPath := filepath.Join(dir, "mattn", "bench.db")
	shimPath := filepath.Join(dir, "sqliteshim", "bench.db")
	for _, p := range []string{mattnPath, shimPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			return nil, err
		}
	}

	mattnDB, err := sql.Open("sqlite3", fmt.Sprintf(
		"file:%s?_busy_timeout=5000&_journal_mode=WAL", mattnPath,
	))
	if err != nil {
		return nil, fmt.Errorf("error opening mattn/go-sqlite3 db: %w", err)
	}

	shimDB := sql.OpenDB(sqlitedrv.NewConnector(shimPath,
		sqlitedrv.WithBusyTimeout(5*time.Second),
		sqlitedrv.WithPostConnectQueries([]string{"PRAGMA journal_mode = WAL;"}),
	))

	targets := []target{
		{name: "mattn/go-sqlite3", db: mattnDB},
		{name: "sqliteshim", db: shimDB},
	}
	for _, t := range targets {
		if err := t.db.Ping(); err != nil {
			closeTargets(targets)
			return nil, fmt.Errorf("error opening %s db: %w", t.name, err)
		}
	}
	return targets, nil
}

func closeTargets(targets []target) {
	for _, t := range targets {
		_ = t.db.Close()
	}
}
