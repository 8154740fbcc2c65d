// Package frame defines the naming scheme for captured frames and lists
// frame inventories from disk.
package frame

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
)

// Identity is the information encoded in a captured frame's filename:
// the capture round, the 1-based sequence within that round, and the
// capture timestamp in Unix milliseconds. Ordering is defined by
// (Round, Sequence); the timestamp is informational.
type Identity struct {
	Round     int
	Sequence  int
	Timestamp int64
}

// namePattern matches round_{round}_{seq}_{unixms}.jpg. Only the
// extension is case-insensitive.
var namePattern = regexp.MustCompile(`^round_(\d+)_(\d+)_(\d+)(?i:\.jpg)$`)

// Filename renders the canonical filename for an identity.
func Filename(id Identity) string {
	return fmt.Sprintf("round_%d_%d_%d.jpg", id.Round, id.Sequence, id.Timestamp)
}

// Parse extracts an Identity from a frame filename. It reports false for
// any name not produced by the capture pipeline.
func Parse(name string) (Identity, bool) {
	m := namePattern.FindStringSubmatch(name)
	if m == nil {
		return Identity{}, false
	}
	round, err := strconv.Atoi(m[1])
	if err != nil {
		return Identity{}, false
	}
	seq, err := strconv.Atoi(m[2])
	if err != nil {
		return Identity{}, false
	}
	ts, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return Identity{}, false
	}
	return Identity{Round: round, Sequence: seq, Timestamp: ts}, true
}

// Less reports whether a orders before b.
func Less(a, b Identity) bool {
	if a.Round != b.Round {
		return a.Round < b.Round
	}
	return a.Sequence < b.Sequence
}

// List returns the frame filenames in dir ordered by (round, sequence)
// ascending. Files that do not match the naming scheme are skipped. A
// missing or unreadable directory yields an empty inventory; whether that
// is fatal is the caller's call.
func List(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	type namedID struct {
		name string
		id   Identity
	}
	var frames []namedID
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		id, ok := Parse(e.Name())
		if !ok {
			continue
		}
		frames = append(frames, namedID{name: e.Name(), id: id})
	}

	sort.Slice(frames, func(i, j int) bool {
		return Less(frames[i].id, frames[j].id)
	})

	names := make([]string, len(frames))
	for i, f := range frames {
		names[i] = f.name
	}
	return names
}
