// internal/config/config.go
package config

type Config struct {
	Bridge BridgeConfig `yaml:"bridge"`
}

type BridgeConfig struct {
	Buses        []BusConfig        `yaml:"buses"`
	StatusMemory StatusMemoryConfig `yaml:"status_memory"`
	NATS         NATSConfig         `yaml:"nats"`
	Metrics      MetricsConfig      `yaml:"metrics"`
}

// ---- BUS ----

type BusConfig struct {
	ID          string            `yaml:"id"`
	Transceiver TransceiverConfig `yaml:"transceiver"`

	TickIntervalMs    int    `yaml:"tick_interval_ms"`
	FailureThreshold  uint32 `yaml:"failure_threshold"`
	DrainLimit        int    `yaml:"drain_limit"`
	PublishIntervalMs int    `yaml:"publish_interval_ms"`

	Labels   []LabelConfig  `yaml:"labels"`
	Transmit TransmitConfig `yaml:"transmit"`
	Targets  []TargetConfig `yaml:"targets"`

	// Bus status block (optional, opt-in)
	Status *StatusConfig `yaml:"status"`
}

// ---- TRANSCEIVER ----

const (
	TransceiverSerial   = "serial"
	TransceiverLoopback = "loopback"
)

type TransceiverConfig struct {
	Kind      string `yaml:"kind"`
	Device    string `yaml:"device"`
	BaudRate  int    `yaml:"baud_rate"`
	TimeoutMs int    `yaml:"timeout_ms"`
	Echo      bool   `yaml:"echo"` // loopback only
}

// ---- LABELS ----

// LabelConfig is one label definition. Label is written in octal, e.g. "203".
type LabelConfig struct {
	Label        string  `yaml:"label"`
	Kind         string  `yaml:"kind"`
	SigBits      uint8   `yaml:"sig_bits"`
	SigDigits    uint8   `yaml:"sig_digits"`
	Resolution   float64 `yaml:"resolution"`
	MinValid     float64 `yaml:"min_valid"`
	MaxValid     float64 `yaml:"max_valid"`
	DiscreteBits uint8   `yaml:"discrete_bits"`

	MinIntervalMs uint32 `yaml:"min_interval_ms"`
	MaxIntervalMs uint32 `yaml:"max_interval_ms"`
}

// ---- TRANSMIT ----

// TransmitConfig retransmits valid labels of this bus. To names the bus
// whose transmitter is used; empty means this bus.
type TransmitConfig struct {
	To         string   `yaml:"to"`
	IntervalMs int      `yaml:"interval_ms"`
	Labels     []string `yaml:"labels"`
}

// ---- TARGET ----

// TargetConfig is one Modbus memory receiving the per-label register blocks.
type TargetConfig struct {
	Endpoint    string `yaml:"endpoint"`
	UnitID      uint8  `yaml:"unit_id"`
	BaseAddress uint16 `yaml:"base_address"`
	TimeoutMs   int    `yaml:"timeout_ms"`
}

// ---- STATUS ----

type StatusConfig struct {
	UnitID     uint8  `yaml:"unit_id"`
	Slot       uint16 `yaml:"slot"`
	DeviceName string `yaml:"device_name"`
}

type StatusMemoryConfig struct {
	Endpoint  string `yaml:"endpoint"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- NATS / METRICS ----

type NATSConfig struct {
	URL           string `yaml:"url"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

type MetricsConfig struct {
	Listen string `yaml:"listen"`
}
