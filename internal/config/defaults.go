package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		FrameDir: "frames",
		Capture: CaptureConfig{
			IntervalSeconds: 2,
			DurationMinutes: 1440,
			JPEGQuality:     75,
			StateFile:       "round_state.txt",
			SummaryFile:     "capture_summary.log",
		},
		Classify: ClassifyConfig{
			LedgerFile: "classifications.json",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "fornax.log",
		},
	}
}
