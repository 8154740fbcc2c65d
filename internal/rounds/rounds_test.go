package rounds

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// seedFrames creates empty frame files for the given rounds.
func seedFrames(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestNextCleanSlate(t *testing.T) {
	dir := t.TempDir()
	got := Next(filepath.Join(dir, "state.txt"), filepath.Join(dir, "frames"), discardLogger())
	if got != 1 {
		t.Errorf("Next = %d, want 1", got)
	}
}

func TestNextFromStateOnly(t *testing.T) {
	dir := t.TempDir()
	state := filepath.Join(dir, "state.txt")
	if err := Save(state, 4); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := Next(state, filepath.Join(dir, "frames"), discardLogger())
	if got != 5 {
		t.Errorf("Next = %d, want 5", got)
	}
}

func TestNextFromFramesOnly(t *testing.T) {
	dir := t.TempDir()
	seedFrames(t, dir, "round_2_1_100.jpg", "round_7_3_200.jpg", "round_7_9_300.jpg")

	got := Next(filepath.Join(dir, "state.txt"), dir, discardLogger())
	if got != 8 {
		t.Errorf("Next = %d, want 8", got)
	}
}

func TestNextTakesGreaterSource(t *testing.T) {
	dir := t.TempDir()
	state := filepath.Join(dir, "state.txt")
	seedFrames(t, dir, "round_7_1_100.jpg")

	// Stale state: frames got ahead of the counter.
	if err := Save(state, 5); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := Next(state, dir, discardLogger()); got != 8 {
		t.Errorf("Next = %d, want 8", got)
	}

	// Counter ahead of the frames (frames were pruned).
	if err := Save(state, 9); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := Next(state, dir, discardLogger()); got != 10 {
		t.Errorf("Next = %d, want 10", got)
	}
}

func TestNextMalformedState(t *testing.T) {
	dir := t.TempDir()
	state := filepath.Join(dir, "state.txt")
	if err := os.WriteFile(state, []byte("not a number\n"), 0644); err != nil {
		t.Fatalf("write state: %v", err)
	}
	seedFrames(t, dir, "round_3_1_100.jpg")

	if got := Next(state, dir, discardLogger()); got != 4 {
		t.Errorf("Next = %d, want 4", got)
	}
}

func TestNextIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	seedFrames(t, dir, "round_99_banana.jpg", "readme.txt", "round_2_1_100.jpg")

	if got := Next(filepath.Join(dir, "state.txt"), dir, discardLogger()); got != 3 {
		t.Errorf("Next = %d, want 3", got)
	}
}

func TestSaveThenNext(t *testing.T) {
	dir := t.TempDir()
	state := filepath.Join(dir, "state.txt")

	if err := Save(state, 12); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := Next(state, filepath.Join(dir, "frames"), discardLogger()); got != 13 {
		t.Errorf("Next = %d, want 13", got)
	}
}
