// Package capture runs the frame sampling loop: poll a source, gate saves
// by a fixed interval, and write numbered JPEG files for one round.
package capture

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/sinterlabs/fornax/internal/frame"
)

// pollDelay paces the read loop so it does not spin between saves.
const pollDelay = 50 * time.Millisecond

// Frame is one encoded image pulled from a Source. CapturedAt is the
// source's read time; when zero, the loop's own clock is used.
type Frame struct {
	Data       []byte
	CapturedAt time.Time
}

// Source yields encoded frames until the stream ends. Read blocks for the
// next frame and returns an error once the source stops yielding; the loop
// treats that as a normal end of capture, not a failure. Close releases
// the underlying stream.
type Source interface {
	Read() (Frame, error)
	Close() error
}

// Options configures a capture run.
type Options struct {
	Dir      string
	Round    int
	Interval time.Duration
	Duration time.Duration
}

// StopCause records why a capture run ended.
type StopCause int

const (
	DurationElapsed StopCause = iota
	SourceExhausted
	Canceled
)

func (c StopCause) String() string {
	switch c {
	case DurationElapsed:
		return "duration elapsed"
	case SourceExhausted:
		return "source exhausted"
	case Canceled:
		return "canceled"
	}
	return "unknown"
}

// Result is what a capture run produced. TotalBytes covers the files saved
// in this round only, not the whole directory.
type Result struct {
	Round       int
	FramesSaved int
	Files       []string
	TotalBytes  int64
	StartedAt   time.Time
	EndedAt     time.Time
	Cause       StopCause
}

// Run captures frames from src into opts.Dir until the configured duration
// elapses, the source stops yielding, or ctx is canceled. All three are
// normal ends; Run never fails. The first frame is saved immediately, the
// rest whenever at least opts.Interval has passed since the previous save.
// Empty frames are skipped without consuming a sequence number or
// resetting the interval gate.
func Run(ctx context.Context, src Source, opts Options, log *slog.Logger) Result {
	r := &runner{now: time.Now, sleep: sleepCtx}
	return r.run(ctx, src, opts, log)
}

type runner struct {
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration)
}

func (r *runner) run(ctx context.Context, src Source, opts Options, log *slog.Logger) Result {
	start := r.now()
	deadline := start.Add(opts.Duration)
	res := Result{Round: opts.Round, StartedAt: start}

	var lastSave time.Time
	for {
		if ctx.Err() != nil {
			res.Cause = Canceled
			log.Info("capture canceled", "round", opts.Round)
			break
		}
		if !r.now().Before(deadline) {
			res.Cause = DurationElapsed
			break
		}

		f, err := src.Read()
		if err != nil {
			res.Cause = SourceExhausted
			log.Warn("source stopped yielding frames, ending capture", "round", opts.Round, "error", err)
			break
		}

		now := f.CapturedAt
		if now.IsZero() {
			now = r.now()
		}
		if now.Sub(lastSave) >= opts.Interval {
			seq := res.FramesSaved + 1
			if len(f.Data) == 0 {
				log.Warn("empty frame, skipping save", "round", opts.Round, "frame", seq)
			} else {
				name := frame.Filename(frame.Identity{
					Round:     opts.Round,
					Sequence:  seq,
					Timestamp: now.UnixMilli(),
				})
				path := filepath.Join(opts.Dir, name)
				if err := os.WriteFile(path, f.Data, 0644); err != nil {
					log.Error("save frame failed", "round", opts.Round, "frame", seq, "path", path, "error", err)
				} else {
					res.FramesSaved++
					res.Files = append(res.Files, path)
					lastSave = now
					log.Info("saved frame", "round", opts.Round, "frame", seq, "bytes", len(f.Data), "path", path)
				}
			}
		}

		r.sleep(ctx, pollDelay)
	}

	res.EndedAt = r.now()
	for _, path := range res.Files {
		fi, err := os.Stat(path)
		if err != nil {
			log.Warn("saved frame missing during size accounting", "path", path, "error", err)
			continue
		}
		res.TotalBytes += fi.Size()
	}
	return res
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
