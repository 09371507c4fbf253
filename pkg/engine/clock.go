package engine

import (
	"fmt"
	"time"
)

// Timer selects how test durations are measured.
type Timer int

const (
	// TimerReal measures wall-clock time.
	TimerReal Timer = iota
	// TimerCPU measures CPU time consumed by the process.
	TimerCPU
)

func (t Timer) String() string {
	if t == TimerCPU {
		return "cpu"
	}
	return "real"
}

// ParseTimer maps "real" or "cpu" to a Timer. The empty string is real time.
func ParseTimer(s string) (Timer, error) {
	switch s {
	case "", "real":
		return TimerReal, nil
	case "cpu":
		return TimerCPU, nil
	default:
		return TimerReal, fmt.Errorf("unknown timer %q (expected real or cpu)", s)
	}
}

// Clock reads a monotonically increasing instant.
type Clock interface {
	Now() time.Duration
}

type realClock struct{ origin time.Time }

func (c realClock) Now() time.Duration { return time.Since(c.origin) }

// NewClock returns the clock for t. CPU time falls back to wall-clock time on
// platforms without a process CPU counter.
func NewClock(t Timer) Clock {
	if t == TimerCPU {
		if c, ok := cpuClock(); ok {
			return c
		}
	}
	return realClock{origin: time.Now()}
}
