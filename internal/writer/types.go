// internal/writer/types.go
package writer

// RegisterWriter is the exact contract table and status writes use.
// IMPORTANT: There must be NO other version of this interface anywhere.
type RegisterWriter interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}

// StatusPlan is where one panel's status block lives.
type StatusPlan struct {
	Endpoint   string
	UnitID     uint8
	BaseSlot   uint16
	DeviceName string
}
