// internal/status/encode.go
package status

// Encode converts a Snapshot into a full panel status block.
// Layout is protocol-locked. Reserved and name slots are left zero.
// No IO. No side effects.
func Encode(s Snapshot) []uint16 {
	regs := make([]uint16, SlotsPerPanel)

	regs[SlotHealthCode] = s.Health
	regs[SlotLastErrorCode] = s.LastErrorCode
	regs[SlotSecondsInError] = s.SecondsInError
	regs[SlotErrorCount] = s.ErrorCount

	return regs
}
