//go:build unix

package engine

import (
	"syscall"
	"time"
)

type rusageClock struct{}

func (rusageClock) Now() time.Duration {
	var ru syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &ru); err != nil {
		return 0
	}
	return time.Duration(ru.Utime.Nano() + ru.Stime.Nano())
}

// cpuClock returns a clock over user+system CPU time of this process.
func cpuClock() (Clock, bool) {
	return rusageClock{}, true
}
