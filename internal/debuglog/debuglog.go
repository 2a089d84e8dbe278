// Package debuglog gates diagnostic output behind the DEBUG environment
// variable (or an explicit override from configuration).
package debuglog

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	fiberlog "github.com/gofiber/fiber/v2/log"
)

const prefix = "[fquack] "

var (
	envOnce sync.Once
	enabled atomic.Bool
)

// FromEnv reports whether the DEBUG environment variable is set, even to
// an empty value.
func FromEnv() bool {
	_, ok := os.LookupEnv("DEBUG")
	return ok
}

func loadEnv() {
	envOnce.Do(func() {
		if FromEnv() {
			SetEnabled(true)
		}
	})
}

// Enabled reports whether diagnostics are on. Callers building expensive
// arguments should check it first.
func Enabled() bool {
	loadEnv()
	return enabled.Load()
}

// SetEnabled switches diagnostics on or off, overriding DEBUG.
func SetEnabled(on bool) {
	envOnce.Do(func() {})
	enabled.Store(on)
	if on {
		fiberlog.SetLevel(fiberlog.LevelDebug)
	} else {
		fiberlog.SetLevel(fiberlog.LevelWarn)
	}
}

// SetOutput redirects diagnostics (and every other fiberlog message).
func SetOutput(w io.Writer) { fiberlog.SetOutput(w) }

// Printf logs at debug level when enabled.
func Printf(format string, a ...any) {
	if !Enabled() {
		return
	}
	fiberlog.Debugf(prefix+format, a...)
}
