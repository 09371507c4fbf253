package render

import (
	"fmt"
	"time"
)

// FormatDuration picks a unit from the number of decimal digits in the
// nanosecond count: up to 2 digits ns, up to 5 us, up to 8 ms, else s.
func FormatDuration(d time.Duration) string {
	ns := d.Nanoseconds()
	if ns <= 0 {
		return "0ns"
	}
	digits := 0
	for n := ns; n != 0; n /= 10 {
		digits++
	}
	f := float64(ns)
	switch {
	case digits <= 2:
		return fmt.Sprintf("%.0fns", f)
	case digits <= 5:
		return fmt.Sprintf("%.2fus", f/1e3)
	case digits <= 8:
		return fmt.Sprintf("%.2fms", f/1e6)
	default:
		return fmt.Sprintf("%.2fs", f/1e9)
	}
}
