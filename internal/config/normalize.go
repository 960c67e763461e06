// internal/config/normalize.go
package config

// Defaults applied by Normalize.
const (
	DefaultTimeoutMs = 1000
	DefaultBaudRate  = 115200
	DefaultLogLevel  = "info"

	deviceNameMaxChars = 16
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	src := &cfg.PDP.Source
	if src.TimeoutMs == 0 {
		src.TimeoutMs = DefaultTimeoutMs
	}
	if src.Transport == "rtu" && src.BaudRate == 0 {
		src.BaudRate = DefaultBaudRate
	}

	if cfg.PDP.Log.Level == "" {
		cfg.PDP.Log.Level = DefaultLogLevel
	}

	for i := range cfg.PDP.Panels {
		p := &cfg.PDP.Panels[i]

		// Normalize device_name:
		// - ASCII already validated
		// - Truncate to max 16 characters
		if len(p.DeviceName) > deviceNameMaxChars {
			p.DeviceName = p.DeviceName[:deviceNameMaxChars]
		}
		if p.DeviceName == "" {
			p.DeviceName = p.ID
			if len(p.DeviceName) > deviceNameMaxChars {
				p.DeviceName = p.DeviceName[:deviceNameMaxChars]
			}
		}
	}
}
