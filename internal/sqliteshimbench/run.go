// Package sqliteshimbench benchmarks the sqliteshim database/sql driver
// against mattn/go-sqlite3 on the same SQLite library.
package sqliteshimbench

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nsqlite/sqliteshim/internal/shim"
	"github.com/nsqlite/sqliteshim/internal/sqliteshim/styled"
)

// benchmarkResult stores the outcome of a benchmark.
type benchmarkResult struct {
	Name        string
	Duration    time.Duration
	TotalReads  int64
	TotalWrites int64
}

type benchmark func(*sql.DB, Config) (benchmarkResult, error)

// targetResults holds the results of every benchmark run on one target.
type targetResults struct {
	Name    string
	Results []benchmarkResult
}

// Run executes the benchmarks for both drivers and prints the results.
func Run(_ context.Context) error {
	conf := MustParse(os.Args)
	fmt.Println(conf.Version())

	results, err := run(conf, os.Stdout)
	if err != nil {
		return err
	}
	printReport(os.Stdout, results)
	return nil
}

// run executes every benchmark on every target, in the order the targets
// were opened.
func run(conf Config, out io.Writer) ([]targetResults, error) {
	// Registered before any connection opens so both drivers get vec0.
	shim.VecAutoInit()

	tmpDir, err := os.MkdirTemp("", "sqliteshimbench_*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	targets, err := openTargets(tmpDir)
	if err != nil {
		return nil, err
	}
	defer closeTargets(targets)

	benchs := []benchmark{runBenchmarkSimple, runBenchmarkMany}
	benchs = append(benchs, vecBenchmarks()...)

	results := make([]targetResults, 0, len(targets))
	for _, t := range targets {
		tr := targetResults{Name: t.name}
		if !conf.Silent {
			fmt.Fprintf(out, "\nRunning benchmarks for %s\n", t.name)
		}
		for _, bench := range benchs {
			if err := recreateSchema(t.db); err != nil {
				return nil, err
			}

			res, err := bench(t.db, conf)
			if err != nil {
				return nil, fmt.Errorf("error benchmarking %s: %w", t.name, err)
			}
			tr.Results = append(tr.Results, res)
		}
		results = append(results, tr)
	}

	return results, nil
}

func printReport(out io.Writer, results []targetResults) {
	for _, tr := range results {
		fmt.Fprintf(out, "\n--- Benchmarks for %s ---\n", tr.Name)
		printResults(out, tr.Results)
	}
}

func printResults(out io.Writer, results []benchmarkResult) {
	tw := styled.NewTableWriter()
	tw.AppendHeader(table.Row{"Name", "Reads", "Writes", "Duration"})

	for _, r := range results {
		tw.AppendRow(table.Row{r.Name, r.TotalReads, r.TotalWrites, r.Duration})
	}

	fmt.Fprintln(out, tw.Render())
}
