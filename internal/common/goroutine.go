package common

import (
	"fmt"
	"os"
	"runtime"

	"github.com/ternarybob/arbor"
)

// SafeGo runs fn in a goroutine, logging instead of crashing on panic.
//
// Example:
//
//	common.SafeGo(logger, "detail:price", func() {
//	    publish(loadPrice(ctx))
//	})
func SafeGo(logger arbor.ILogger, name string, fn func()) {
	go func() {
		defer recoverGoroutine(logger, name)
		fn()
	}()
}

func recoverGoroutine(logger arbor.ILogger, name string) {
	r := recover()
	if r == nil {
		return
	}

	buf := make([]byte, 4096)
	stackTrace := string(buf[:runtime.Stack(buf, false)])

	if logger != nil {
		logger.Error().
			Str("goroutine", name).
			Str("panic", fmt.Sprintf("%v", r)).
			Str("stack", stackTrace).
			Msg("Recovered from panic in goroutine")
		return
	}
	fmt.Fprintf(os.Stderr, "PANIC in goroutine %s: %v\n%s\n", name, r, stackTrace)
}
