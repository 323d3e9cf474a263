package sqliteshimbench

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nsqlite/sqliteshim/internal/sqliteshimbench/benchbar"
	"golang.org/x/sync/errgroup"
)

// runBenchmarkMany inserts the users in a single transaction and then reads
// all of them Queries times from concurrent workers. This simulates a
// read-heavy workload.
func runBenchmarkMany(db *sql.DB, conf Config) (benchmarkResult, error) {
	start := time.Now()

	writes := benchbar.NewBar(fmt.Sprintf("Inserting %d users", conf.Users), conf.Users, conf.Silent)
	if err := insertUsersTx(db, conf.Users, writes.Inc); err != nil {
		return benchmarkResult{}, err
	}
	writes.Finish()

	queries := benchbar.NewBar(
		fmt.Sprintf("Querying all users %d times", conf.Queries), conf.Queries, conf.Silent,
	)
	group := errgroup.Group{}
	group.SetLimit(conf.Goroutines)

	var rowsRead int64
	rowCounts := make([]int64, conf.Queries)
	for i := range conf.Queries {
		group.Go(func() error {
			if err := readUsers(db, func() { rowCounts[i]++ }); err != nil {
				return err
			}
			queries.Inc()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return benchmarkResult{}, err
	}
	queries.Finish()

	for _, n := range rowCounts {
		rowsRead += n
	}

	return benchmarkResult{
		Name:        "Many",
		Duration:    time.Since(start),
		TotalReads:  rowsRead,
		TotalWrites: writes.Count(),
	}, nil
}

func insertUsersTx(db *sql.DB, users int, onRow func()) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare("INSERT INTO users (created, email, active) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for idx := range users {
		if _, err := stmt.Exec(time.Now().Unix(), fmt.Sprintf("user%d@example.com", idx), 1); err != nil {
			return fmt.Errorf("error when inserting: %w", err)
		}
		onRow()
	}

	return tx.Commit()
}
