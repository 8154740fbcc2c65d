package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// CaptureCommand runs one capture round against the furnace camera.
type CaptureCommand struct {
	Duration int     `long:"duration" description:"Round length in minutes (overrides config)"`
	Interval float64 `long:"interval" description:"Seconds between saved frames (overrides config)"`
	Quality  int     `long:"quality" description:"JPEG quality 1-100 (overrides config)"`
	FrameDir string  `long:"frame-dir" description:"Directory frames are written to (overrides config)"`

	globals *GlobalFlags
	version string
}

// ClassifyCommand opens the interactive frame classifier.
type ClassifyCommand struct {
	FrameDir string `long:"frame-dir" description:"Directory holding captured frames (overrides config)"`
	Ledger   string `long:"ledger" description:"Classification ledger file (overrides config)"`

	globals *GlobalFlags
	version string
}

// StatsCommand prints classification statistics from the ledger.
type StatsCommand struct {
	FrameDir string `long:"frame-dir" description:"Directory holding captured frames (overrides config)"`
	Ledger   string `long:"ledger" description:"Classification ledger file (overrides config)"`

	globals *GlobalFlags
	version string
}
