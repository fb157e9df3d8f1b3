// Package capture is the fault-time write path: it records a fault into
// the persistent region and resets the device.
//
// Everything here runs while the process is already failing, so no
// operation in the path may itself fail. Encoding saturates instead of
// erroring, the notification hook is a bare function call, and the path
// ends in the reset primitive.
package capture

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/ssargent/muninn/pkg/codec"
	"github.com/ssargent/muninn/pkg/region"
)

// notifyHook is the process-wide notification slot. The redesign of the
// original bare global: registration may race fault-capable goroutines, so
// the slot is atomic.
var notifyHook atomic.Pointer[func()]

// RegisterNotifyHook stores fn as the notification hook invoked
// synchronously before reset, typically to drive a human-visible signal
// such as an LED pattern. There is one slot and the last registration
// wins; a nil fn clears it. Register before enabling any code path that
// can fault. If the hook never returns, the reset never happens.
func RegisterNotifyHook(fn func()) {
	if fn == nil {
		notifyHook.Store(nil)
		return
	}
	notifyHook.Store(&fn)
}

// Config wires a Capturer to its environment.
type Config struct {
	// Region supplies the persistent record region.
	Region region.Accessor

	// Reset is the hardware reset primitive. It must not return; on
	// Linux targets SysReset is the usual choice. Tests substitute a
	// recorder.
	Reset func()

	// Minimal skips message formatting at fault time, recording only
	// filename, line, and column.
	Minimal bool
}

// Capturer composes the region, codec, and reset primitive into the
// terminal fault path.
type Capturer struct {
	region  region.Accessor
	reset   func()
	minimal bool
}

// New creates a Capturer from the given configuration.
func New(cfg Config) *Capturer {
	return &Capturer{
		region:  cfg.Region,
		reset:   cfg.Reset,
		minimal: cfg.Minimal,
	}
}

// Fault records the fault and resets the device. It encodes the record
// into the region, invokes the notification hook if one is registered,
// then invokes the reset primitive. When the reset honors its contract
// this function never returns; it is the terminal action of the faulting
// context.
//
// loc may be nil when no source location is known. value is the fault's
// payload, usually the recovered panic value.
func (c *Capturer) Fault(loc *codec.Location, value any) {
	reg := c.region.Bytes()

	if c.minimal {
		codec.Encode(reg, loc, nil)
	} else {
		codec.Encode(reg, loc, func(w io.Writer) {
			if loc != nil {
				fmt.Fprintf(w, "panicked at '%v', %s:%d:%d", value, loc.File, loc.Line, loc.Column)
			} else {
				fmt.Fprintf(w, "panicked at '%v'", value)
			}
		})
	}

	if fn := notifyHook.Load(); fn != nil {
		(*fn)()
	}
	c.reset()
}

// Guard turns a panic into a captured fault. Use it as the outermost
// deferred call of fault-capable goroutines:
//
//	defer c.Guard()
//
// A recovered panic is recorded with the panic site's file and line
// (column 0, the runtime does not report columns) and ends in a reset.
// Without a panic in flight it does nothing.
func (c *Capturer) Guard() {
	r := recover()
	if r == nil {
		return
	}
	c.Fault(panicOrigin(), r)
}

// panicOrigin walks the stack past the runtime's panic machinery to the
// frame that panicked.
func panicOrigin() *codec.Location {
	var pcs [32]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.Function != "" && !strings.HasPrefix(frame.Function, "runtime.") {
			return &codec.Location{File: frame.File, Line: uint32(frame.Line)}
		}
		if !more {
			return nil
		}
	}
}
