package sqliteshimbench

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nsqlite/sqliteshim/internal/sqliteshimbench/benchbar"
	"golang.org/x/sync/errgroup"
)

// runBenchmarkSimple inserts the users one statement at a time from
// concurrent workers and then reads all of them in a single query.
func runBenchmarkSimple(db *sql.DB, conf Config) (benchmarkResult, error) {
	start := time.Now()

	writes := benchbar.NewBar(fmt.Sprintf("Inserting %d users", conf.Users), conf.Users, conf.Silent)
	group := errgroup.Group{}
	group.SetLimit(conf.Goroutines)

	for idx := range conf.Users {
		group.Go(func() error {
			_, err := db.Exec(
				"INSERT INTO users (created, email, active) VALUES (?, ?, ?)",
				time.Now().Unix(), fmt.Sprintf("user%d@example.com", idx), 1,
			)
			if err != nil {
				return fmt.Errorf("error when inserting: %w", err)
			}
			writes.Inc()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return benchmarkResult{}, err
	}
	writes.Finish()

	reads := benchbar.NewBar("Reading users", conf.Users, conf.Silent)
	if err := readUsers(db, reads.Inc); err != nil {
		return benchmarkResult{}, err
	}
	reads.Finish()

	return benchmarkResult{
		Name:        "Simple",
		Duration:    time.Since(start),
		TotalReads:  reads.Count(),
		TotalWrites: writes.Count(),
	}, nil
}

// readUsers scans every user, calling onRow after each one.
func readUsers(db *sql.DB, onRow func()) error {
	rows, err := db.Query("SELECT id, created, email, active FROM users ORDER BY id")
	if err != nil {
		return fmt.Errorf("error when querying: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, created, active int64
		var email string
		if err := rows.Scan(&id, &created, &email, &active); err != nil {
			return fmt.Errorf("error when scanning: %w", err)
		}
		onRow()
	}
	return rows.Err()
}
