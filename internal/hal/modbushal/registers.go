// internal/hal/modbushal/registers.go
package modbushal

// PDP register map on the Modbus gateway.
// One Modbus unit per module: unit id = UnitIDBase + module.
// These values define the gateway contract and MUST NOT be configurable.

// ---- INPUT REGISTERS (FC 4) ----
// Every reading is an IEEE-754 float32, big-endian, two registers wide.

const RegsPerValue = 2

const (
	RegVoltage        uint16 = 0
	RegTemperature    uint16 = 2
	RegChannelCurrent uint16 = 4 // 16 channels, RegsPerValue each
	RegTotalCurrent   uint16 = 36
	RegTotalPower     uint16 = 38
	RegTotalEnergy    uint16 = 40
)

// ---- COILS (FC 5) ----

const (
	CoilResetTotalEnergy  uint16 = 0
	CoilClearStickyFaults uint16 = 1
)

// coilOn is the FC 5 payload for "ON".
const coilOn uint16 = 0xFF00

func channelRegister(channel int) uint16 {
	return RegChannelCurrent + uint16(channel)*RegsPerValue
}
