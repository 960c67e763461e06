// internal/status/tracker.go
package status

import (
	"errors"

	"github.com/tamzrod/pdp-monitor/internal/pdp"
)

// Tracker folds panel error reports into a Snapshot.
// It implements pdp.Reporter.
//
// A Tracker is owned by one publisher goroutine; it holds no lock.
type Tracker struct {
	snap Snapshot

	pending     int
	pendingCode uint16
}

// NewTracker returns a tracker in the boot state.
func NewTracker() *Tracker {
	return &Tracker{snap: Snapshot{Health: HealthUnknown}}
}

// Report records one error for the current cycle.
func (t *Tracker) Report(err *pdp.Error) {
	t.pending++
	t.pendingCode = CodeOf(err)
	if t.snap.ErrorCount < 0xFFFF {
		t.snap.ErrorCount++
	}
}

// Cycle closes the current publish cycle and returns the new snapshot
// and whether it differs from the previous one.
func (t *Tracker) Cycle(disabled bool) (Snapshot, bool) {
	prev := t.snap

	switch {
	case disabled:
		t.snap.Health = HealthDisabled
		if t.pending > 0 {
			t.snap.LastErrorCode = t.pendingCode
		}

	case t.pending > 0:
		t.snap.Health = HealthError
		t.snap.LastErrorCode = t.pendingCode

	default:
		// Recovery / OK
		t.snap.Health = HealthOK
		t.snap.LastErrorCode = ErrorCodeNone
		t.snap.SecondsInError = 0
	}

	t.pending = 0
	t.pendingCode = ErrorCodeNone

	return t.snap, t.snap != prev
}

// Tick advances seconds-in-error by one while not OK.
// seconds_in_error saturates; it never wraps.
func (t *Tracker) Tick() (Snapshot, bool) {
	if t.snap.Health == HealthOK || t.snap.SecondsInError == 0xFFFF {
		return t.snap, false
	}
	t.snap.SecondsInError++
	return t.snap, true
}

// Snapshot returns the current state.
func (t *Tracker) Snapshot() Snapshot { return t.snap }

// CodeOf maps a panel error to its status-block error code.
func CodeOf(err *pdp.Error) uint16 {
	switch {
	case err == nil:
		return ErrorCodeNone
	case errors.Is(err, pdp.ErrRange):
		return ErrorCodeRange
	case errors.Is(err, pdp.ErrTimeout):
		return ErrorCodeTimeout
	default:
		return ErrorCodeOther
	}
}

var _ pdp.Reporter = (*Tracker)(nil)
