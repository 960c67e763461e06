// internal/pdp/hal.go
package pdp

// Status is a raw HAL status code.
// 0 means success; non-zero is opaque and HAL-defined.
type Status int32

// StatusOK is the only success status.
const StatusOK Status = 0

// HAL is the hardware surface the panel delegates to.
// Every call is synchronous and blocking. Thread safety belongs to the implementation.
type HAL interface {
	InitializePDP(module int) Status
	GetNumPDPModules() int

	GetPDPVoltage(module int) (float64, Status)
	GetPDPTemperature(module int) (float64, Status)
	GetPDPChannelCurrent(module, channel int) (float64, Status)
	GetPDPTotalCurrent(module int) (float64, Status)
	GetPDPTotalPower(module int) (float64, Status)
	GetPDPTotalEnergy(module int) (float64, Status)

	ResetPDPTotalEnergy(module int) Status
	ClearPDPStickyFaults(module int) Status

	// ErrorMessage describes a status code.
	ErrorMessage(status Status) string
}
