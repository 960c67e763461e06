// internal/pdp/errors.go
package pdp

import (
	"errors"
	"fmt"
)

var (
	// ErrRange marks a module or channel index outside its valid range.
	ErrRange = errors.New("pdp: index out of range")

	// ErrTimeout marks a HAL call that returned a non-zero status.
	ErrTimeout = errors.New("pdp: timeout")
)

// Error is one non-fatal failure recorded by a Panel.
// Kind is ErrRange or ErrTimeout.
type Error struct {
	Kind   error
	Op     string
	Status Status

	// Range info, set only for ErrRange. Max is exclusive.
	Min   int
	Max   int
	Value int

	Msg string
}

func (e *Error) Error() string {
	s := fmt.Sprintf("%v: %s", e.Kind, e.Op)
	if errors.Is(e.Kind, ErrRange) {
		s += fmt.Sprintf(" (min=%d max=%d requested=%d)", e.Min, e.Max, e.Value)
	}
	if e.Status != StatusOK {
		s += fmt.Sprintf(" status=%d", e.Status)
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}

func (e *Error) Unwrap() error { return e.Kind }

// Reporter receives every error a Panel records.
// Reports never change what the Panel returns.
type Reporter interface {
	Report(err *Error)
}

// NopReporter discards all reports. Usable as a zero value.
type NopReporter struct{}

// Report discards the error.
func (NopReporter) Report(*Error) {}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(err *Error)

// Report calls f(err).
func (f ReporterFunc) Report(err *Error) { f(err) }

// Reporters fans one report out to every non-nil member, in order.
type Reporters []Reporter

// Report forwards err to each reporter.
func (rs Reporters) Report(err *Error) {
	for _, r := range rs {
		if r != nil {
			r.Report(err)
		}
	}
}

var (
	_ Reporter = NopReporter{}
	_ Reporter = ReporterFunc(nil)
	_ Reporter = Reporters(nil)
)
