package classify

// Event is a discrete command delivered by the input adapter. The set is
// closed: every implementation lives in this package, and the adapter maps
// raw key input onto it.
type Event interface{ isEvent() }

// Navigate moves the cursor by Delta, clamped to the inventory bounds.
type Navigate struct{ Delta int }

// Jump moves the cursor by a large Delta, clamped to the inventory bounds.
type Jump struct{ Delta int }

// SelectSubcategory arms the pending subcategory used by the next
// event-category classification.
type SelectSubcategory struct{ ID string }

// ClassifyFrame labels the frame under the cursor with CategoryID.
type ClassifyFrame struct{ CategoryID string }

// ToggleHelp shows or hides the help overlay.
type ToggleHelp struct{}

// ToggleStats shows or hides the statistics overlay.
type ToggleStats struct{}

// Quit saves the ledger and ends the session.
type Quit struct{}

func (Navigate) isEvent()          {}
func (Jump) isEvent()              {}
func (SelectSubcategory) isEvent() {}
func (ClassifyFrame) isEvent()     {}
func (ToggleHelp) isEvent()        {}
func (ToggleStats) isEvent()       {}
func (Quit) isEvent()              {}
