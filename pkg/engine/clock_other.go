//go:build !unix

package engine

// cpuClock is unavailable on non-Unix platforms.
func cpuClock() (Clock, bool) {
	return nil, false
}
