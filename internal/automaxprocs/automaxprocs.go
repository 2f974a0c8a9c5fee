// Package automaxprocs sets GOMAXPROCS to the container CPU quota when imported.
//
// Set TASK_WORKER_MAXPROCS_VERBOSE=1 to report the value that was chosen.
package automaxprocs

import (
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

func init() {
	options := []maxprocs.Option{maxprocs.Logger(func(string, ...any) {})}
	if os.Getenv("TASK_WORKER_MAXPROCS_VERBOSE") != "" {
		options = []maxprocs.Option{maxprocs.Logger(func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "task-worker: "+format+"\n", args...)
		})}
	}
	if _, err := maxprocs.Set(options...); err != nil {
		fmt.Fprintf(os.Stderr, "task-worker:warning: could not match GOMAXPROCS to the CPU quota: %v\n", err)
	}
}
