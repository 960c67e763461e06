// internal/status/constants.go
package status

// Panel Status Block layout constants.
// These values define the protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerPanel is the fixed number of logical slots per panel.
const SlotsPerPanel = 20

// ---- SLOT INDICES ----

// SlotHealthCode holds the panel health state.
const SlotHealthCode = 0

// SlotLastErrorCode holds the code of the last reported error.
const SlotLastErrorCode = 1

// SlotSecondsInError holds the duration (in seconds) the panel has been unhealthy.
const SlotSecondsInError = 2

// SlotErrorCount holds the saturating count of reported errors since start.
const SlotErrorCount = 3

// ---- RESERVED RANGE ----

// Slots 4-10 are reserved for future use.
const SlotReservedStart = 4
const SlotReservedEnd = 10

// ---- DEVICE NAME ----

// SlotDeviceNameStart is the first slot used for the device name.
// Device name is always placed at the END of the status block.
const SlotDeviceNameStart = 11

// SlotDeviceNameSlots is the number of slots reserved for the device name.
const SlotDeviceNameSlots = 8

// SlotDeviceNameEnd is the last slot used for the device name (inclusive).
const SlotDeviceNameEnd = SlotDeviceNameStart + SlotDeviceNameSlots - 1

// ---- LIMITS ----

// DeviceNameMaxChars is the maximum number of ASCII characters stored for device name.
const DeviceNameMaxChars = 16

// ---- HEALTH CODES ----

// HealthUnknown represents the boot state, before the first publish.
const HealthUnknown uint16 = 0

// HealthOK represents a publish cycle with no reported errors.
const HealthOK uint16 = 1

// HealthError represents a publish cycle with at least one reported error.
const HealthError uint16 = 2

// HealthDisabled represents a panel whose initialization failed.
const HealthDisabled uint16 = 4

// ---- ERROR CODES ----

// ErrorCodeNone means no error since the last healthy cycle.
const ErrorCodeNone uint16 = 0

// ErrorCodeRange is a module or channel index out of range.
const ErrorCodeRange uint16 = 1

// ErrorCodeTimeout is a HAL call that returned a non-zero status.
const ErrorCodeTimeout uint16 = 2

// ErrorCodeOther is any error of an unknown kind.
const ErrorCodeOther uint16 = 0xFFFF
