// Package vecindex stores float32 vectors in a sqlite-vec vec0 virtual table
// and answers k-nearest-neighbour queries against it.
//
// The vec0 module must be registered on every connection of the given
// *sql.DB, which is what shim.VecAutoInit arranges for connections opened
// after it is called.
package vecindex

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
)

var (
	// ErrDimensionMismatch is returned when a vector does not have the
	// dimensions of the index.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	// ErrInvalidName is returned for names that are not plain identifiers.
	ErrInvalidName = errors.New("invalid index name")
	// ErrInvalidDimensions is returned for a non-positive dimension count.
	ErrInvalidDimensions = errors.New("invalid index dimensions")
	// ErrNotFound is returned when deleting an id that is not indexed.
	ErrNotFound = errors.New("vector not found")
)

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Match is a search result.
type Match struct {
	ID       int64
	Distance float64
}

// Index is a vec0 table of fixed-dimension vectors keyed by rowid.
type Index struct {
	db   *sql.DB
	name string
	dims int
}

// Available returns the version of the vector extension loaded on a
// connection of db.
func Available(ctx context.Context, db *sql.DB) (string, error) {
	var version string
	if err := db.QueryRowContext(ctx, "SELECT vec_version()").Scan(&version); err != nil {
		return "", fmt.Errorf("vector extension is not loaded: %w", err)
	}
	return version, nil
}

// Open creates the vec0 table name if it does not exist and returns an
// index over it.
func Open(ctx context.Context, db *sql.DB, name string, dims int) (*Index, error) {
	if !namePattern.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if dims <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDimensions, dims)
	}

	query := fmt.Sprintf(
		"CREATE VIRTUAL TABLE IF NOT EXISTS %s USING vec0(embedding float[%d])", name, dims,
	)
	if _, err := db.ExecContext(ctx, query); err != nil {
		return nil, fmt.Errorf("failed to create index %s: %w", name, err)
	}

	return &Index{db: db, name: name, dims: dims}, nil
}

// Name returns the table name of the index.
func (idx *Index) Name() string {
	return idx.name
}

// Dims returns the number of dimensions of the indexed vectors.
func (idx *Index) Dims() int {
	return idx.dims
}

func (idx *Index) serialize(vector []float32) ([]byte, error) {
	if len(vector) != idx.dims {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vector), idx.dims)
	}

	blob, err := sqlite_vec.SerializeFloat32(vector)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize vector: %w", err)
	}
	return blob, nil
}

// Upsert stores vector under id, replacing any previous vector. vec0 has no
// UPSERT, so the old row is deleted in the same transaction.
func (idx *Index) Upsert(ctx context.Context, id int64, vector []float32) error {
	blob, err := idx.serialize(vector)
	if err != nil {
		return err
	}

	tx, err := idx.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin upsert: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE rowid = ?", idx.name), id); err != nil {
		return fmt.Errorf("failed to delete previous vector %d: %w", id, err)
	}
	if _, err := tx.ExecContext(
		ctx, fmt.Sprintf("INSERT INTO %s (rowid, embedding) VALUES (?, ?)", idx.name), id, blob,
	); err != nil {
		return fmt.Errorf("failed to insert vector %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit upsert: %w", err)
	}
	return nil
}

// Delete removes the vector stored under id.
func (idx *Index) Delete(ctx context.Context, id int64) error {
	res, err := idx.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE rowid = ?", idx.name), id)
	if err != nil {
		return fmt.Errorf("failed to delete vector %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

// Count returns the number of stored vectors.
func (idx *Index) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := idx.db.QueryRowContext(
		ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", idx.name),
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count vectors: %w", err)
	}
	return count, nil
}

// Search returns up to k stored vectors nearest to query, closest first.
func (idx *Index) Search(ctx context.Context, query []float32, k int) ([]Match, error) {
	if k <= 0 {
		return []Match{}, nil
	}

	blob, err := idx.serialize(query)
	if err != nil {
		return nil, err
	}

	rows, err := idx.db.QueryContext(ctx, fmt.Sprintf(
		"SELECT rowid, distance FROM %s WHERE embedding MATCH ? AND k = ? ORDER BY distance",
		idx.name,
	), blob, k)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	defer rows.Close()

	matches := []Match{}
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.ID, &m.Distance); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	return matches, nil
}
