package log

import (
	"log/slog"
	"sort"
)

// KV is a set of key-value pairs attached to a log entry.
type KV map[string]any

// Namespaces used across the project.
const (
	NsShim   = "shim"
	NsSQLite = "sqlite"
	NsVec    = "vec"
	NsRepl   = "repl"
)

// reservedKeyPrefix is prepended to keys that collide with the keys slog
// writes for every entry.
const reservedKeyPrefix = "kv_"

// kvToArgs flattens the first KV into slog arguments with keys in sorted
// order. Any further KV is ignored.
func kvToArgs(keyVals ...KV) []any {
	args := []any{}
	if len(keyVals) == 0 {
		return args
	}

	kv := keyVals[0]
	keys := make([]string, 0, len(kv))
	for key := range kv {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		args = append(args, safeKey(key), kv[key])
	}
	return args
}

func safeKey(key string) string {
	switch key {
	case slog.MessageKey, slog.LevelKey, slog.TimeKey, slog.SourceKey:
		return reservedKeyPrefix + key
	}
	return key
}

// kvToArgsNs is kvToArgs with the namespace as the leading "ns" pair.
func kvToArgsNs(namespace string, keyVals ...KV) []any {
	return append([]any{"ns", namespace}, kvToArgs(keyVals...)...)
}
