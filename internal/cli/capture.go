package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/sinterlabs/fornax/internal/camera"
	"github.com/sinterlabs/fornax/internal/capture"
	"github.com/sinterlabs/fornax/internal/config"
	"github.com/sinterlabs/fornax/internal/rounds"
)

// Execute implements the go-flags Commander interface for CaptureCommand.
func (c *CaptureCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	c.applyOverrides(cfg)

	log := newLogger(cfg.Logging.Level, c.globals != nil && c.globals.Verbose)
	log = log.With("run_id", uuid.NewString())

	cam, err := config.LoadCamera()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.FrameDir, 0755); err != nil {
		return fmt.Errorf("create frame directory: %w", err)
	}

	round := rounds.Next(cfg.Capture.StateFile, cfg.FrameDir, log)
	log.Info("starting capture round",
		"round", round,
		"camera", cam.MaskedURL(),
		"interval", cfg.Capture.Interval(),
		"duration", cfg.Capture.Duration(),
		"quality", cfg.Capture.JPEGQuality)

	stream, err := camera.Open(cam.RTSPURL(), cfg.Capture.JPEGQuality, log)
	if err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	defer stream.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res := capture.Run(ctx, stream, capture.Options{
		Dir:      cfg.FrameDir,
		Round:    round,
		Interval: cfg.Capture.Interval(),
		Duration: cfg.Capture.Duration(),
	}, log)

	summary := capture.Summary{
		Round:         res.Round,
		MaskedURL:     cam.MaskedURL(),
		ConfiguredFor: cfg.Capture.Duration(),
		Interval:      cfg.Capture.Interval(),
		Quality:       cfg.Capture.JPEGQuality,
		FramesSaved:   res.FramesSaved,
		TotalBytes:    res.TotalBytes,
		StartedAt:     res.StartedAt,
		EndedAt:       res.EndedAt,
	}
	if err := capture.AppendSummary(cfg.Capture.SummaryFile, summary); err != nil {
		log.Warn("summary append failed", "path", cfg.Capture.SummaryFile, "error", err)
	}

	if err := rounds.Save(cfg.Capture.StateFile, res.Round); err != nil {
		log.Warn("round state save failed", "path", cfg.Capture.StateFile, "error", err)
	}

	log.Info("capture round finished",
		"round", res.Round,
		"cause", res.Cause.String(),
		"frames", res.FramesSaved,
		"bytes", res.TotalBytes,
		"elapsed", res.EndedAt.Sub(res.StartedAt))
	return nil
}

// applyOverrides folds command line flags over the loaded config.
func (c *CaptureCommand) applyOverrides(cfg *config.Config) {
	if c.Duration > 0 {
		cfg.Capture.DurationMinutes = c.Duration
	}
	if c.Interval > 0 {
		cfg.Capture.IntervalSeconds = c.Interval
	}
	if c.Quality > 0 {
		cfg.Capture.JPEGQuality = c.Quality
	}
	if c.FrameDir != "" {
		cfg.FrameDir = c.FrameDir
	}
}
