// Package ledger owns frame classifications: the record set keyed by frame
// filename, its JSON file on disk, and the aggregate statistics derived
// from it.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/sinterlabs/fornax/internal/frame"
)

// Validation failures reported by Classify.
var (
	ErrUnknownCategory     = errors.New("unknown category")
	ErrSubcategoryRequired = errors.New("subcategory required")
	ErrUnknownSubcategory  = errors.New("unknown subcategory")
)

// Metadata is the frame identity copied into a classification record.
type Metadata struct {
	RoundID     int   `json:"round_id"`
	FrameNumber int   `json:"frame_number"`
	Timestamp   int64 `json:"timestamp"`
}

// Record is one frame's classification. The subcategory fields are present
// only for event categories, never for "no event".
type Record struct {
	CategoryID      string    `json:"category_id"`
	CategoryName    string    `json:"category_name"`
	OriginalPath    string    `json:"original_path"`
	Metadata        Metadata  `json:"metadata"`
	ClassifiedAt    time.Time `json:"classified_at"`
	SubcategoryID   string    `json:"subcategory_id,omitempty"`
	SubcategoryName string    `json:"subcategory_name,omitempty"`
}

// Outcome reports what a Classify call did.
type Outcome int

const (
	// Rejected means validation failed and nothing changed.
	Rejected Outcome = iota
	// NoOp means the frame already carried the identical classification.
	NoOp
	// Applied means a record was written, new or replacing a previous one.
	Applied
)

func (o Outcome) String() string {
	switch o {
	case Rejected:
		return "rejected"
	case NoOp:
		return "noop"
	case Applied:
		return "applied"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Result describes a Classify call. Err carries the validation failure for
// a rejection. SaveErr is set when the record was applied in memory but the
// file write failed; the ledger stays ahead of disk until a later save
// succeeds.
type Result struct {
	Outcome      Outcome
	Reclassified bool
	Record       Record
	Err          error
	SaveErr      error
}

// Ledger is the in-memory classification set backed by a JSON file.
type Ledger struct {
	path     string
	frameDir string
	records  map[string]Record
	stats    Stats
	log      *slog.Logger

	now func() time.Time
}

// Load reads the ledger at path. A missing file starts an empty ledger. A
// file that does not parse is moved aside to {path}.corrupt-{unixts} before
// an empty ledger takes its place, so a hand-edit gone wrong is never
// destroyed. frameDir is recorded into each record's original_path.
func Load(path, frameDir string, log *slog.Logger) *Ledger {
	l := &Ledger{
		path:     path,
		frameDir: frameDir,
		records:  make(map[string]Record),
		stats:    make(Stats),
		log:      log,
		now:      time.Now,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info("no ledger yet, starting empty", "path", path)
		} else {
			log.Warn("ledger unreadable, starting empty", "path", path, "error", err)
		}
		return l
	}

	var records map[string]Record
	if err := json.Unmarshal(data, &records); err != nil {
		backup := fmt.Sprintf("%s.corrupt-%d", path, l.now().Unix())
		if renameErr := os.Rename(path, backup); renameErr != nil {
			log.Error("ledger malformed and backup failed, starting empty",
				"path", path, "error", err, "backup_error", renameErr)
		} else {
			log.Error("ledger malformed, backed up and starting empty",
				"path", path, "backup", backup, "error", err)
		}
		return l
	}
	if records != nil {
		l.records = records
	}
	l.stats = Recompute(l.records)

	log.Info("ledger loaded", "path", path, "records", len(l.records))
	return l
}

// Classify applies (category, subcategory) to frameID and persists the
// ledger. The "no event" category ignores subcategoryID entirely; every
// other category requires a valid one. Identical reclassification is a
// NoOp that touches nothing.
func (l *Ledger) Classify(frameID, categoryID, subcategoryID string) Result {
	cat, ok := CategoryByID(categoryID)
	if !ok {
		return Result{Outcome: Rejected, Err: fmt.Errorf("%w: %q", ErrUnknownCategory, categoryID)}
	}

	var sub Subcategory
	if cat.ID != NoEventID {
		if subcategoryID == "" {
			return Result{Outcome: Rejected, Err: ErrSubcategoryRequired}
		}
		sub, ok = SubcategoryByID(subcategoryID)
		if !ok {
			return Result{Outcome: Rejected, Err: fmt.Errorf("%w: %q", ErrUnknownSubcategory, subcategoryID)}
		}
	}

	prev, had := l.records[frameID]
	if had && prev.CategoryID == cat.ID && prev.SubcategoryID == sub.ID {
		return Result{Outcome: NoOp, Record: prev}
	}

	id, _ := frame.Parse(frameID)
	rec := Record{
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
		OriginalPath: filepath.Join(l.frameDir, frameID),
		Metadata: Metadata{
			RoundID:     id.Round,
			FrameNumber: id.Sequence,
			Timestamp:   id.Timestamp,
		},
		ClassifiedAt:    l.now(),
		SubcategoryID:   sub.ID,
		SubcategoryName: sub.Name,
	}

	if had {
		l.stats.remove(prev)
	}
	l.records[frameID] = rec
	l.stats.add(rec)

	res := Result{Outcome: Applied, Reclassified: had, Record: rec}
	if err := l.Save(); err != nil {
		l.log.Warn("ledger save failed, memory ahead of disk", "path", l.path, "error", err)
		res.SaveErr = err
	}
	return res
}

// Save rewrites the whole document: encode, write a temp file next to the
// target, rename over it.
func (l *Ledger) Save() error {
	data, err := json.MarshalIndent(l.records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(l.path), filepath.Base(l.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp ledger: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp ledger: %w", err)
	}
	if err := os.Rename(tmp.Name(), l.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace ledger: %w", err)
	}
	return nil
}

// Get returns the record for frameID, if any.
func (l *Ledger) Get(frameID string) (Record, bool) {
	r, ok := l.records[frameID]
	return r, ok
}

// Len returns the number of classified frames.
func (l *Ledger) Len() int {
	return len(l.records)
}

// Stats returns a copy of the aggregate counts.
func (l *Ledger) Stats() Stats {
	return l.stats.clone()
}

// Records returns a copy of the record set.
func (l *Ledger) Records() map[string]Record {
	out := make(map[string]Record, len(l.records))
	for k, v := range l.records {
		out[k] = v
	}
	return out
}

// Path returns the backing file location.
func (l *Ledger) Path() string {
	return l.path
}
