// internal/status/tracker_test.go
package status

import (
	"testing"

	"github.com/tamzrod/pdp-monitor/internal/pdp"
)

func TestTracker_OKCycle(t *testing.T) {
	tr := NewTracker()

	snap, changed := tr.Cycle(false)
	if !changed {
		t.Fatalf("first cycle should leave the boot state")
	}
	if snap.Health != HealthOK {
		t.Fatalf("health: got=%d want=%d", snap.Health, HealthOK)
	}

	if _, changed := tr.Cycle(false); changed {
		t.Fatalf("steady OK cycle should not report a change")
	}
}

func TestTracker_ErrorThenRecovery(t *testing.T) {
	tr := NewTracker()

	tr.Report(&pdp.Error{Kind: pdp.ErrTimeout, Op: "GetVoltage", Status: -1154})
	snap, _ := tr.Cycle(false)
	if snap.Health != HealthError || snap.LastErrorCode != ErrorCodeTimeout {
		t.Fatalf("unexpected error snapshot: %+v", snap)
	}

	snap, changed := tr.Tick()
	if !changed || snap.SecondsInError != 1 {
		t.Fatalf("tick while in error: got=%+v changed=%v", snap, changed)
	}

	snap, changed = tr.Cycle(false)
	if !changed {
		t.Fatalf("recovery must report a change")
	}
	if snap.Health != HealthOK || snap.LastErrorCode != 0 || snap.SecondsInError != 0 {
		t.Fatalf("seconds_in_error not reset on recovery: %+v", snap)
	}
	if snap.ErrorCount != 1 {
		t.Fatalf("error count: got=%d want=1", snap.ErrorCount)
	}

	if _, changed := tr.Tick(); changed {
		t.Fatalf("tick while OK must not change state")
	}
}

func TestTracker_Disabled(t *testing.T) {
	tr := NewTracker()

	tr.Report(&pdp.Error{Kind: pdp.ErrRange, Op: "Initialize", Max: 4, Value: 9})
	snap, _ := tr.Cycle(true)
	if snap.Health != HealthDisabled {
		t.Fatalf("health: got=%d want=%d", snap.Health, HealthDisabled)
	}
	if snap.LastErrorCode != ErrorCodeRange {
		t.Fatalf("last error: got=%d want=%d", snap.LastErrorCode, ErrorCodeRange)
	}

	// Later disabled cycles keep the init error code.
	snap, changed := tr.Cycle(true)
	if changed || snap.LastErrorCode != ErrorCodeRange {
		t.Fatalf("disabled steady state changed: %+v", snap)
	}
}

func TestTracker_SecondsInErrorSaturates(t *testing.T) {
	tr := NewTracker()
	tr.Report(&pdp.Error{Kind: pdp.ErrTimeout})
	tr.Cycle(false)
	tr.snap.SecondsInError = 0xFFFF

	snap, changed := tr.Tick()
	if changed || snap.SecondsInError != 0xFFFF {
		t.Fatalf("seconds_in_error wrapped: %+v", snap)
	}
}

func TestEncode(t *testing.T) {
	regs := Encode(Snapshot{Health: HealthError, LastErrorCode: 2, SecondsInError: 7, ErrorCount: 3})
	if len(regs) != SlotsPerPanel {
		t.Fatalf("block size: got=%d want=%d", len(regs), SlotsPerPanel)
	}
	if regs[SlotHealthCode] != HealthError || regs[SlotLastErrorCode] != 2 ||
		regs[SlotSecondsInError] != 7 || regs[SlotErrorCount] != 3 {
		t.Fatalf("unexpected block: %v", regs)
	}
}
