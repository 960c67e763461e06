// internal/config/config.go
package config

type Config struct {
	PDP PDPConfig `yaml:"pdp"`
}

type PDPConfig struct {
	Log    LogConfig     `yaml:"log"`
	Source SourceConfig  `yaml:"source"`
	Poll   PollConfig    `yaml:"poll"`
	Panels []PanelConfig `yaml:"panels"`
}

// ---- LOG ----

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"` // empty => stderr
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// ---- SOURCE (HAL gateway) ----

type SourceConfig struct {
	Transport string `yaml:"transport"` // tcp | rtu
	Endpoint  string `yaml:"endpoint"`  // tcp
	Device    string `yaml:"device"`    // rtu
	BaudRate  int    `yaml:"baud_rate"` // rtu
	TimeoutMs int    `yaml:"timeout_ms"`

	UnitIDBase uint8 `yaml:"unit_id_base"`
	Modules    int   `yaml:"modules"` // HAL-reported module count
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// ---- PANEL ----

type PanelConfig struct {
	ID         string        `yaml:"id"`
	Module     int           `yaml:"module"`
	DeviceName string        `yaml:"device_name"`
	Table      TableConfig   `yaml:"table"`
	Status     *StatusConfig `yaml:"status"` // optional, opt-in
}

// TableConfig is where the panel's telemetry table lives.
type TableConfig struct {
	Endpoint string `yaml:"endpoint"`
	UnitID   uint8  `yaml:"unit_id"`
	Address  uint16 `yaml:"address"`
}

type StatusConfig struct {
	Endpoint string `yaml:"endpoint"`
	UnitID   uint8  `yaml:"unit_id"`
	Slot     uint16 `yaml:"slot"`
}
