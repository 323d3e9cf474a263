//go:build !sqlite_omit_vec

package sqliteshimbench

import (
	"testing"

	"github.com/nsqlite/sqliteshim/internal/shim"
	"github.com/stretchr/testify/assert"
)

func TestVecBenchmarks(t *testing.T) {
	assert.True(t, shim.VecCompiledIn())
	assert.Len(t, vecBenchmarks(), 1)
}
