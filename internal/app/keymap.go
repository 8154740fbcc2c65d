package app

// Key binding constants used in handleKey. Category digits and
// subcategory letters are matched against the ledger tables instead.
const (
	KeyQuit       = "q"
	KeyQuitUpper  = "Q"
	KeyCtrlC      = "ctrl+c"
	KeyPrev       = "left"
	KeyNext       = "right"
	KeyJump10     = "7"
	KeyJump100    = "8"
	KeyJump1000   = "9"
	KeyHelp       = "h"
	KeyHelpUpper  = "H"
	KeyStats      = "s"
	KeyStatsUpper = "S"
)
