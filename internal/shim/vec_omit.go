//go:build sqlite_omit_vec

package shim

// Without the extension the entry point stays shim_vec_unavailable_init.
const vecCompiledIn = false
