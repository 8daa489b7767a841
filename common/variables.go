package common

import (
	"sync/atomic"
)

const (
	Product = `previewctl`
)

var (
	Version = `v0.3.1`

	verbosity atomic.Int32
)

const (
	Normal int32 = iota
	Silently
	Debugging
	Tracing
)

// DefineVerbosity selects one verbosity level; trace wins over debug,
// debug wins over silent.
func DefineVerbosity(silent, debug, trace bool) {
	level := Normal
	switch {
	case trace:
		level = Tracing
	case debug:
		level = Debugging
	case silent:
		level = Silently
	}
	verbosity.Store(level)
}

func Silent() bool {
	return verbosity.Load() == Silently
}

func DebugFlag() bool {
	return verbosity.Load() >= Debugging
}

func TraceFlag() bool {
	return verbosity.Load() == Tracing
}

// UserAgent identifies previewctl towards the host RPC server.
func UserAgent() string {
	return Product + "/" + Version
}
