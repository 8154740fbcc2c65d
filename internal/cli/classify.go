package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sinterlabs/fornax/internal/app"
	"github.com/sinterlabs/fornax/internal/frame"
	"github.com/sinterlabs/fornax/internal/ledger"
)

// Execute implements the go-flags Commander interface for ClassifyCommand.
func (c *ClassifyCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	if c.FrameDir != "" {
		cfg.FrameDir = c.FrameDir
	}
	if c.Ledger != "" {
		cfg.Classify.LedgerFile = c.Ledger
	}

	frames := frame.List(cfg.FrameDir)
	if len(frames) == 0 {
		return fmt.Errorf("no frames found in %s; run a capture round first", cfg.FrameDir)
	}

	// The TUI owns the terminal, so logs go to a file.
	log, closeLog, err := newFileLogger(cfg.Logging.File, cfg.Logging.Level, c.globals != nil && c.globals.Verbose)
	if err != nil {
		return err
	}
	defer closeLog()

	led := ledger.Load(cfg.Classify.LedgerFile, cfg.FrameDir, log)
	log.Info("classifier starting", "frames", len(frames), "classified", led.Len())

	m := app.New(frames, cfg.FrameDir, led)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run classifier: %w", err)
	}

	log.Info("classifier exited", "classified", led.Len())
	return nil
}
