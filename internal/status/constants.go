// internal/status/constants.go
package status

// Bus Status Block layout constants.
// These values define the protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerBus is the fixed number of logical slots per bus.
const SlotsPerBus = 20

// ---- SLOT INDICES ----

// SlotHealthCode holds the bus health state.
const SlotHealthCode = 0

// SlotFailureCount holds the failure tracker count, saturated at 65535.
const SlotFailureCount = 1

// SlotSecondsInError holds the duration (in seconds) the bus has been in error.
const SlotSecondsInError = 2

// SlotLabelsConfigured holds the number of labels defined for the bus.
const SlotLabelsConfigured = 3

// SlotLabelsValid holds the number of labels currently valid.
const SlotLabelsValid = 4

// ---- RESERVED RANGE ----

// Slots 5-10 are reserved for future use.
const SlotReservedStart = 5
const SlotReservedEnd = 10

// ---- DEVICE NAME ----

// SlotDeviceNameStart is the first slot used for the bus name.
// The name is always placed at the END of the status block.
const SlotDeviceNameStart = 11

// SlotDeviceNameSlots is the number of slots reserved for the name.
const SlotDeviceNameSlots = 8

// SlotDeviceNameEnd is the last slot used for the name (inclusive).
const SlotDeviceNameEnd = SlotDeviceNameStart + SlotDeviceNameSlots - 1

// ---- LIMITS ----

// DeviceNameMaxChars is the maximum number of ASCII characters stored for the name.
const DeviceNameMaxChars = 16

// ---- HEALTH CODES ----

// HealthUnknown represents an unknown or boot state.
const HealthUnknown uint16 = 0

// HealthOK represents a receiving bus with every label valid.
const HealthOK uint16 = 1

// HealthError represents a failed bus (no good word for failure_threshold ticks).
const HealthError uint16 = 2

// HealthStale represents a receiving bus with at least one label not valid.
const HealthStale uint16 = 3

// HealthDisabled represents a disabled bus.
const HealthDisabled uint16 = 4
