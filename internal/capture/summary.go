package capture

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Summary is the per-round metadata block appended to the capture summary
// log after every run.
type Summary struct {
	Round         int
	MaskedURL     string
	ConfiguredFor time.Duration
	Interval      time.Duration
	Quality       int
	FramesSaved   int
	TotalBytes    int64
	StartedAt     time.Time
	EndedAt       time.Time
}

// TotalKB returns the size of the round's frames in kilobytes.
func (s Summary) TotalKB() float64 {
	return float64(s.TotalBytes) / 1024
}

// AverageKB returns the mean frame size in kilobytes, 0 when nothing was
// saved.
func (s Summary) AverageKB() float64 {
	if s.FramesSaved == 0 {
		return 0
	}
	return s.TotalKB() / float64(s.FramesSaved)
}

const summaryStamp = "2006-01-02 15:04:05.000"

func (s Summary) block() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n--- Round %d Start: %s ---\n", s.Round, s.StartedAt.Format(summaryStamp))
	fmt.Fprintf(&b, "Camera URL: %s\n", s.MaskedURL)
	fmt.Fprintf(&b, "Configured Duration: %d minutes\n", int(s.ConfiguredFor.Minutes()))
	fmt.Fprintf(&b, "Actual Duration: %.2f seconds\n", s.EndedAt.Sub(s.StartedAt).Seconds())
	fmt.Fprintf(&b, "Capture Interval: %g seconds\n", s.Interval.Seconds())
	fmt.Fprintf(&b, "JPEG Quality: %d\n", s.Quality)
	fmt.Fprintf(&b, "Frames Saved in Round: %d\n", s.FramesSaved)
	fmt.Fprintf(&b, "Total Size (Round): %.2f KB\n", s.TotalKB())
	fmt.Fprintf(&b, "Average Size per Frame (Round): %.2f KB\n", s.AverageKB())
	fmt.Fprintf(&b, "--- Round %d End: %s ---\n", s.Round, s.EndedAt.Format(summaryStamp))
	return b.String()
}

// AppendSummary appends the round's block to the summary log, creating the
// file on first use. The log is append-only; earlier rounds are never
// rewritten.
func AppendSummary(path string, s Summary) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open summary log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(s.block()); err != nil {
		return fmt.Errorf("append summary: %w", err)
	}
	return nil
}
