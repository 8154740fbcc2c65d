// Package classify drives a labeling session: a cursor over the frame
// inventory, a pending subcategory selection, modal overlay flags, and
// classification dispatch into the ledger.
package classify

import (
	"fmt"

	"github.com/sinterlabs/fornax/internal/ledger"
)

// Overlay identifies which modal panel is shown over the frame view.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayHelp
	OverlayStats
)

// Controller is the interaction state machine. It is strictly
// single-threaded: the UI adapter feeds it one event at a time and renders
// from its accessors in between.
type Controller struct {
	frames  []string
	led     *ledger.Ledger
	cursor  int
	pending string
	overlay Overlay
	done    bool
}

// New creates a controller over a non-empty inventory. Callers reject an
// empty inventory before getting here.
func New(frames []string, led *ledger.Ledger) *Controller {
	return &Controller{frames: frames, led: led}
}

// Handle applies one event and returns the status line it produced, or ""
// when the event carries no message. After Quit the controller is done and
// ignores everything.
func (c *Controller) Handle(ev Event) string {
	if c.done {
		return ""
	}

	switch e := ev.(type) {
	case Navigate:
		c.move(e.Delta)
		return ""

	case Jump:
		c.move(e.Delta)
		return fmt.Sprintf("Jumped to frame %d", c.cursor+1)

	case SelectSubcategory:
		sub, ok := ledger.SubcategoryByID(e.ID)
		if !ok {
			return fmt.Sprintf("Unknown subcategory %q", e.ID)
		}
		c.pending = sub.ID
		return fmt.Sprintf("Subcategory armed: %s", sub.Name)

	case ClassifyFrame:
		return c.classify(e.CategoryID)

	case ToggleHelp:
		if c.overlay == OverlayHelp {
			c.overlay = OverlayNone
		} else {
			c.overlay = OverlayHelp
		}
		return ""

	case ToggleStats:
		if c.overlay == OverlayStats {
			c.overlay = OverlayNone
		} else {
			c.overlay = OverlayStats
		}
		return ""

	case Quit:
		c.done = true
		if err := c.led.Save(); err != nil {
			return fmt.Sprintf("Exiting, final save failed: %v", err)
		}
		return "Classifications saved."
	}
	return ""
}

func (c *Controller) classify(categoryID string) string {
	// Category keys are inert while an overlay is up.
	if c.overlay != OverlayNone {
		return ""
	}

	sub := ""
	if categoryID != ledger.NoEventID {
		if c.pending == "" {
			return "Select a subcategory first (I/M/F)"
		}
		sub = c.pending
	}

	res := c.led.Classify(c.frames[c.cursor], categoryID, sub)
	switch res.Outcome {
	case ledger.Rejected:
		return fmt.Sprintf("Not classified: %v", res.Err)

	case ledger.NoOp:
		return fmt.Sprintf("Already classified as %s", recordLabel(res.Record))

	case ledger.Applied:
		msg := fmt.Sprintf("Classified as %s (total %d)",
			recordLabel(res.Record), c.led.Stats()[res.Record.Bucket()])
		if res.SaveErr != nil {
			msg += " (WARNING: ledger not saved)"
		}
		// Advance only on a first-time classification; reclassifying
		// in place leaves the cursor where it is.
		if !res.Reclassified {
			c.move(1)
		}
		return msg
	}
	return ""
}

func (c *Controller) move(delta int) {
	c.cursor += delta
	if c.cursor < 0 {
		c.cursor = 0
	}
	if last := len(c.frames) - 1; c.cursor > last {
		c.cursor = last
	}
}

func recordLabel(r ledger.Record) string {
	if r.SubcategoryName == "" {
		return r.CategoryName
	}
	return fmt.Sprintf("%s (%s)", r.CategoryName, r.SubcategoryName)
}

// Cursor returns the current frame index.
func (c *Controller) Cursor() int { return c.cursor }

// Total returns the inventory size.
func (c *Controller) Total() int { return len(c.frames) }

// Current returns the filename under the cursor.
func (c *Controller) Current() string { return c.frames[c.cursor] }

// Pending returns the armed subcategory, if any.
func (c *Controller) Pending() (ledger.Subcategory, bool) {
	if c.pending == "" {
		return ledger.Subcategory{}, false
	}
	sub, _ := ledger.SubcategoryByID(c.pending)
	return sub, true
}

// Overlay returns the active modal overlay.
func (c *Controller) Overlay() Overlay { return c.overlay }

// Done reports whether the session has ended.
func (c *Controller) Done() bool { return c.done }
