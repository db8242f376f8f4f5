// Package goroutine provides utilities for safely launching goroutines with panic recovery.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"sentinel/internal/shared/logger"
)

// SafeGo launches fn in a new goroutine with panic recovery. If the
// goroutine panics, the panic is caught and logged with its stack trace
// instead of crashing the process. Use this for goroutines spawned
// directly with `go`, not already supervised by an errgroup.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer Recover(log, name)
		fn()
	}()
}

// Recover is a deferred panic guard for a goroutine a caller has already
// spawned — e.g. inside an errgroup.Go closure, where calling SafeGo
// would spawn a second goroutine and break the group's Wait
// synchronization. Used for per-batch and per-descriptor probe tasks
// (spec §7 "every descriptor within a batch is independent ... No error
// ever aborts the overall run"): a single task's panic is caught and
// counted as an error instead of taking down the whole run.
func Recover(log logger.Interface, name string) {
	if r := recover(); r != nil {
		log.Error("goroutine panicked",
			"goroutine", name,
			"panic", fmt.Sprintf("%v", r),
			"stack", string(debug.Stack()),
		)
	}
}
