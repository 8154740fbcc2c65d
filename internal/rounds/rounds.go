// Package rounds reconciles and persists the capture round counter.
package rounds

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/sinterlabs/fornax/internal/frame"
)

// Next returns the round number the next capture run should use: the
// greater of the persisted counter and the highest round found in
// frameDir, plus one. The state file is advisory; when it is missing,
// unreadable, or malformed the counter falls back to 0 and the frame scan
// decides. A clean slate yields round 1. Next never fails.
func Next(statePath, frameDir string, log *slog.Logger) int {
	persisted := readState(statePath, log)
	scanned := maxScanned(frameDir)
	return max(persisted, scanned) + 1
}

func readState(path string, log *slog.Logger) int {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("no round state file, frame scan decides", "path", path)
		} else {
			log.Warn("round state unreadable, assuming 0", "path", path, "error", err)
		}
		return 0
	}
	text := strings.TrimSpace(string(data))
	n, err := strconv.Atoi(text)
	if err != nil {
		log.Warn("round state malformed, assuming 0", "path", path, "content", text)
		return 0
	}
	return n
}

func maxScanned(dir string) int {
	highest := 0
	for _, name := range frame.List(dir) {
		if id, ok := frame.Parse(name); ok && id.Round > highest {
			highest = id.Round
		}
	}
	return highest
}

// Save persists the round a capture run just finished. Callers log a
// failure and move on; the next run reconstructs the counter from the
// frame scan.
func Save(path string, round int) error {
	if err := os.WriteFile(path, []byte(strconv.Itoa(round)+"\n"), 0644); err != nil {
		return fmt.Errorf("write round state: %w", err)
	}
	return nil
}
