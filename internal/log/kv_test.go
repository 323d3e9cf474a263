package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKvToArgs(t *testing.T) {
	t.Run("NoArgs", func(t *testing.T) {
		result := kvToArgs()
		assert.Equal(t, []any{}, result)
	})

	t.Run("OneArg", func(t *testing.T) {
		kv := KV{"key": "value"}
		result := kvToArgs(kv)
		assert.Equal(t, []any{"key", "value"}, result)
	})

	t.Run("MultipleArgs", func(t *testing.T) {
		kv1 := KV{"key1": "value1", "key2": "value2"}
		kv2 := KV{"key3": "value3"}
		result := kvToArgs(kv1, kv2)
		assert.Equal(t, []any{"key1", "value1", "key2", "value2"}, result)
	})

	t.Run("PickOnlyFirst", func(t *testing.T) {
		kv1 := KV{"key1": "value1"}
		kv2 := KV{"key2": "value2"}
		result := kvToArgs(kv1, kv2)
		assert.Equal(t, []any{"key1", "value1"}, result)
	})

	t.Run("Order", func(t *testing.T) {
		kv := KV{"z": "value1", "a": "value2"}
		result := kvToArgs(kv)
		assert.Equal(t, []any{"a", "value2", "z", "value1"}, result)
	})
}

func TestKvToArgsNs(t *testing.T) {
	t.Run("NoArgs", func(t *testing.T) {
		result := kvToArgsNs("namespace")
		assert.Equal(t, []any{"ns", "namespace"}, result)
	})

	t.Run("OneArg", func(t *testing.T) {
		kv := KV{"key": "value"}
		result := kvToArgsNs("namespace", kv)
		assert.Equal(t, []any{"ns", "namespace", "key", "value"}, result)
	})

	t.Run("MultipleArgs", func(t *testing.T) {
		kv1 := KV{"key1": "value1", "key2": "value2"}
		kv2 := KV{"key3": "value3"}
		result := kvToArgsNs("namespace", kv1, kv2)
		assert.Equal(t, []any{"ns", "namespace", "key1", "value1", "key2", "value2"}, result)
	})

	t.Run("PickOnlyFirst", func(t *testing.T) {
		kv1 := KV{"key1": "value1"}
		kv2 := KV{"key2": "value2"}
		result := kvToArgsNs("namespace", kv1, kv2)
		assert.Equal(t, []any{"ns", "namespace", "key1", "value1"}, result)
	})

	t.Run("Order", func(t *testing.T) {
		kv := KV{"z": "value1", "a": "value2"}
		result := kvToArgsNs("namespace", kv)
		assert.Equal(t, []any{"ns", "namespace", "a", "value2", "z", "value1"}, result)
	})

	t.Run("ReservedKeys", func(t *testing.T) {
		kv := KV{"msg": "boom", "level": 1, "time": 2, "code": 28}
		result := kvToArgsNs("namespace", kv)
		assert.Equal(t, []any{
			"ns", "namespace", "code", 28, "kv_level", 1, "kv_msg", "boom", "kv_time", 2,
		}, result)
	})
}

func TestLogger(t *testing.T) {
	decode := func(t *testing.T, buf *bytes.Buffer) []map[string]any {
		t.Helper()

		var entries []map[string]any
		for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
			if line == "" {
				continue
			}
			entry := map[string]any{}
			require.NoError(t, json.Unmarshal([]byte(line), &entry))
			entries = append(entries, entry)
		}
		return entries
	}

	t.Run("Uninitialized", func(t *testing.T) {
		var logger Logger
		assert.False(t, logger.IsInitialized())
		logger = NewLogger(&bytes.Buffer{})
		assert.True(t, logger.IsInitialized())
	})

	t.Run("Namespace", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(buf)

		logger.WarnNs(NsSQLite, "sqlite error log", KV{"code": 28, "msg": "boom"})

		entries := decode(t, buf)
		require.Len(t, entries, 1)
		assert.Equal(t, "WARN", entries[0]["level"])
		assert.Equal(t, "sqlite error log", entries[0]["msg"])
		assert.Equal(t, NsSQLite, entries[0]["ns"])
		assert.Equal(t, float64(28), entries[0]["code"])
		assert.Equal(t, "boom", entries[0]["kv_msg"])
	})

	t.Run("DebugDisabledByDefault", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(buf)

		logger.DebugNs(NsVec, "hidden")
		logger.Info("shown")

		entries := decode(t, buf)
		require.Len(t, entries, 1)
		assert.Equal(t, "shown", entries[0]["msg"])
	})

	t.Run("WithDebug", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(buf, WithDebug(true))

		logger.Debug("visible")

		entries := decode(t, buf)
		require.Len(t, entries, 1)
		assert.Equal(t, "DEBUG", entries[0]["level"])
	})

	t.Run("With", func(t *testing.T) {
		buf := &bytes.Buffer{}
		base := NewLogger(buf)
		logger := base.With(KV{"session": "abc"})

		logger.ErrorNs(NsRepl, "failed", KV{"error": "x"})

		entries := decode(t, buf)
		require.Len(t, entries, 1)
		assert.Equal(t, "abc", entries[0]["session"])
		assert.Equal(t, NsRepl, entries[0]["ns"])
		assert.Equal(t, "ERROR", entries[0]["level"])
	})
}
