package numutil

import "fmt"

// Integer is any signed integer type.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// IntWithCommas returns a string representation of an integer with commas.
//
// Example:
//
//	12345 -> "12,345"
func IntWithCommas[T Integer](i T) string {
	n := int64(i)
	if n < 0 {
		return "-" + IntWithCommas(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return IntWithCommas(n/1000) + "," + fmt.Sprintf("%03d", n%1000)
}

// Bytes formats a byte count with commas and the largest binary unit that
// keeps the value at or above one.
//
// Example:
//
//	1536 -> "1,536 bytes (1.5 KiB)"
func Bytes[T Integer](i T) string {
	n := int64(i)
	units := []string{"KiB", "MiB", "GiB", "TiB"}

	value := float64(n)
	unit := ""
	for _, u := range units {
		if value < 1024 && value > -1024 {
			break
		}
		value /= 1024
		unit = u
	}

	if unit == "" {
		return IntWithCommas(n) + " bytes"
	}
	return fmt.Sprintf("%s bytes (%.1f %s)", IntWithCommas(n), value, unit)
}
