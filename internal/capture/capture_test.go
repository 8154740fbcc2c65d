package capture

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeClock drives the loop deterministically: every poll sleep advances
// the clock by the requested delay.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) runner() *runner {
	return &runner{
		now: func() time.Time { return c.t },
		sleep: func(_ context.Context, d time.Duration) {
			c.t = c.t.Add(d)
		},
	}
}

var errStreamDone = errors.New("stream done")

// scriptedSource returns its frames in order, then an end-of-stream error.
type scriptedSource struct {
	frames []Frame
}

func (s *scriptedSource) Read() (Frame, error) {
	if len(s.frames) == 0 {
		return Frame{}, errStreamDone
	}
	f := s.frames[0]
	s.frames = s.frames[1:]
	return f, nil
}

func (s *scriptedSource) Close() error {
	return nil
}

func repeatFrames(n int, data string) []Frame {
	frames := make([]Frame, n)
	for i := range frames {
		frames[i] = Frame{Data: []byte(data)}
	}
	return frames
}

var captureStart = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func TestRunSavesOnInterval(t *testing.T) {
	dir := t.TempDir()
	clock := &fakeClock{t: captureStart}
	src := &scriptedSource{frames: repeatFrames(200, "jpegdata")}

	res := clock.runner().run(context.Background(), src, Options{
		Dir:      dir,
		Round:    3,
		Interval: 2 * time.Second,
		Duration: 5 * time.Second,
	}, discardLogger())

	if res.Cause != DurationElapsed {
		t.Errorf("cause = %v, want duration elapsed", res.Cause)
	}
	if res.FramesSaved != 3 {
		t.Fatalf("frames saved = %d, want 3", res.FramesSaved)
	}

	// First frame immediately, then one per interval.
	base := captureStart.UnixMilli()
	want := []string{
		filepath.Join(dir, "round_3_1_"+msString(base)+".jpg"),
		filepath.Join(dir, "round_3_2_"+msString(base+2000)+".jpg"),
		filepath.Join(dir, "round_3_3_"+msString(base+4000)+".jpg"),
	}
	for i, path := range want {
		if res.Files[i] != path {
			t.Errorf("files[%d] = %q, want %q", i, res.Files[i], path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read saved frame: %v", err)
		}
		if string(data) != "jpegdata" {
			t.Errorf("frame content = %q, want jpegdata", data)
		}
	}

	if res.TotalBytes != int64(3*len("jpegdata")) {
		t.Errorf("total bytes = %d, want %d", res.TotalBytes, 3*len("jpegdata"))
	}
	if got := res.EndedAt.Sub(res.StartedAt); got != 5*time.Second {
		t.Errorf("run duration = %v, want 5s", got)
	}
}

func TestRunStopsWhenSourceExhausted(t *testing.T) {
	dir := t.TempDir()
	clock := &fakeClock{t: captureStart}
	src := &scriptedSource{frames: repeatFrames(4, "abc")}

	res := clock.runner().run(context.Background(), src, Options{
		Dir:      dir,
		Round:    1,
		Interval: 0,
		Duration: time.Hour,
	}, discardLogger())

	if res.Cause != SourceExhausted {
		t.Errorf("cause = %v, want source exhausted", res.Cause)
	}
	if res.FramesSaved != 4 {
		t.Errorf("frames saved = %d, want 4", res.FramesSaved)
	}
	if res.TotalBytes != 12 {
		t.Errorf("total bytes = %d, want 12", res.TotalBytes)
	}
}

func TestRunSkipsEmptyFramesWithoutClosingGate(t *testing.T) {
	dir := t.TempDir()
	clock := &fakeClock{t: captureStart}

	// One save at t=0, then gate reopens at t=2.00 where an empty frame
	// arrives. The skip must not reset the gate: the next good frame at
	// t=2.05 saves immediately instead of waiting another interval.
	script := []Frame{{Data: []byte("first")}}
	script = append(script, repeatFrames(39, "x")...)
	script = append(script, Frame{})
	script = append(script, Frame{Data: []byte("second")})
	src := &scriptedSource{frames: script}

	res := clock.runner().run(context.Background(), src, Options{
		Dir:      dir,
		Round:    1,
		Interval: 2 * time.Second,
		Duration: time.Hour,
	}, discardLogger())

	if res.Cause != SourceExhausted {
		t.Errorf("cause = %v, want source exhausted", res.Cause)
	}
	if res.FramesSaved != 2 {
		t.Fatalf("frames saved = %d, want 2", res.FramesSaved)
	}

	base := captureStart.UnixMilli()
	wantSecond := filepath.Join(dir, "round_1_2_"+msString(base+2050)+".jpg")
	if res.Files[1] != wantSecond {
		t.Errorf("files[1] = %q, want %q (gate must stay open after a skip)",
			res.Files[1], wantSecond)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	clock := &fakeClock{t: captureStart}
	src := &scriptedSource{frames: repeatFrames(10, "abc")}

	res := clock.runner().run(ctx, src, Options{
		Dir:      t.TempDir(),
		Round:    1,
		Interval: 0,
		Duration: time.Hour,
	}, discardLogger())

	if res.Cause != Canceled {
		t.Errorf("cause = %v, want canceled", res.Cause)
	}
	if res.FramesSaved != 0 {
		t.Errorf("frames saved = %d, want 0", res.FramesSaved)
	}
}

func TestRunSaveFailureDoesNotCount(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	clock := &fakeClock{t: captureStart}
	src := &scriptedSource{frames: repeatFrames(3, "abc")}

	res := clock.runner().run(context.Background(), src, Options{
		Dir:      missing,
		Round:    1,
		Interval: 0,
		Duration: time.Hour,
	}, discardLogger())

	if res.FramesSaved != 0 {
		t.Errorf("frames saved = %d, want 0", res.FramesSaved)
	}
	if len(res.Files) != 0 {
		t.Errorf("files = %v, want none", res.Files)
	}
}

func msString(ms int64) string {
	return strconv.FormatInt(ms, 10)
}
