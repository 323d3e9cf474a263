//go:build sqlite_omit_vec

package sqliteshimbench

// vecBenchmarks is empty in builds without the vector extension, which keeps
// vecindex and its bindings out of the binary.
func vecBenchmarks() []benchmark {
	return nil
}
