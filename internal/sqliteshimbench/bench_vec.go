//go:build !sqlite_omit_vec

package sqliteshimbench

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/nsqlite/sqliteshim/internal/shim"
	"github.com/nsqlite/sqliteshim/internal/sqliteshimbench/benchbar"
	"github.com/nsqlite/sqliteshim/internal/vecindex"
	"golang.org/x/sync/errgroup"
)

// searchesPerVector is how many k-NN queries run per stored vector.
const searchesPerVector = 10

func vecBenchmarks() []benchmark {
	if !shim.VecCompiledIn() {
		return nil
	}
	return []benchmark{runBenchmarkVec}
}

// runBenchmarkVec stores Vectors random vectors in a vec0 table and runs
// k-NN searches against it from concurrent workers.
func runBenchmarkVec(db *sql.DB, conf Config) (benchmarkResult, error) {
	ctx := context.Background()
	start := time.Now()
	rnd := rand.New(rand.NewPCG(1, 2))

	idx, err := vecindex.Open(ctx, db, "embeddings", conf.Dims)
	if err != nil {
		return benchmarkResult{}, err
	}

	writes := benchbar.NewBar(fmt.Sprintf("Storing %d vectors", conf.Vectors), conf.Vectors, conf.Silent)
	for id := range conf.Vectors {
		if err := idx.Upsert(ctx, int64(id+1), randomVector(rnd, conf.Dims)); err != nil {
			return benchmarkResult{}, err
		}
		writes.Inc()
	}
	writes.Finish()

	searches := max(conf.Vectors/searchesPerVector, 1)
	queries := make([][]float32, searches)
	for i := range queries {
		queries[i] = randomVector(rnd, conf.Dims)
	}

	reads := benchbar.NewBar(fmt.Sprintf("Running %d searches", searches), searches, conf.Silent)
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(conf.Goroutines)
	for _, query := range queries {
		group.Go(func() error {
			if _, err := idx.Search(groupCtx, query, 10); err != nil {
				return err
			}
			reads.Inc()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return benchmarkResult{}, err
	}
	reads.Finish()

	return benchmarkResult{
		Name:        "Vector",
		Duration:    time.Since(start),
		TotalReads:  reads.Count(),
		TotalWrites: writes.Count(),
	}, nil
}

func randomVector(rnd *rand.Rand, dims int) []float32 {
	v := make([]float32, dims)
	for i := range v {
		v[i] = rnd.Float32()
	}
	return v
}
