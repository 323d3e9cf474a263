package numutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntWithCommas(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{in: 0, want: "0"},
		{in: 999, want: "999"},
		{in: 1000, want: "1,000"},
		{in: 12345, want: "12,345"},
		{in: 1000001, want: "1,000,001"},
		{in: -12345, want: "-12,345"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, IntWithCommas(tt.in))
		})
	}

	t.Run("Int", func(t *testing.T) {
		assert.Equal(t, "2,048", IntWithCommas(2048))
	})
}

func TestBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{in: 0, want: "0 bytes"},
		{in: 1023, want: "1,023 bytes"},
		{in: 1536, want: "1,536 bytes (1.5 KiB)"},
		{in: 3 * 1024 * 1024, want: "3,145,728 bytes (3.0 MiB)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Bytes(tt.in))
		})
	}
}
