// Package sizefmt converts byte counts into human-readable units.
package sizefmt

import "fmt"

var units = []string{"B", "KB", "MB", "GB", "TB"}

// Format renders a byte count using the largest unit that keeps the value
// at or above one, with one decimal place for non-byte units.
func Format(n int64) string {
	if n < 0 {
		return "0 B"
	}
	v := float64(n)
	i := 0
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f %s", v, units[i])
}
