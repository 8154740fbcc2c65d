package cli

import (
	"errors"
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Capture  *CaptureCommand
	Classify *ClassifyCommand
	Stats    *StatsCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "fornax"
	parser.LongDescription = "Furnace camera frame capture and interactive event classification."

	cmds := &commands{
		Capture:  &CaptureCommand{globals: &globals, version: version},
		Classify: &ClassifyCommand{globals: &globals, version: version},
		Stats:    &StatsCommand{globals: &globals, version: version},
	}

	parser.AddCommand("capture", "Capture frames from the camera", "Run one capture round: pull frames from the RTSP camera on an interval and save them as JPEGs.", cmds.Capture)
	parser.AddCommand("classify", "Classify captured frames", "Open the interactive terminal classifier over the captured frames.", cmds.Classify)
	parser.AddCommand("stats", "Show classification statistics", "Print per-category classification counts from the ledger.", cmds.Stats)

	return parser, &globals, cmds
}

// Run is the main entry point for the fornax CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("fornax %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}

// IsFlagsError reports whether err came from flag parsing itself, which
// go-flags already printed to the terminal.
func IsFlagsError(err error) bool {
	var flagsErr *goflags.Error
	return errors.As(err, &flagsErr)
}
