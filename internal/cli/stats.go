package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sinterlabs/fornax/internal/frame"
	"github.com/sinterlabs/fornax/internal/ledger"
)

// statsJSON is the JSON output structure for the stats command.
type statsJSON struct {
	LedgerPath       string         `json:"ledger_path"`
	FramesOnDisk     int            `json:"frames_on_disk"`
	FramesClassified int            `json:"frames_classified"`
	PercentComplete  float64        `json:"percent_complete"`
	Categories       []categoryJSON `json:"categories"`
}

type categoryJSON struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Total         int            `json:"total"`
	Subcategories map[string]int `json:"subcategories,omitempty"`
}

// Execute implements the go-flags Commander interface for StatsCommand.
func (c *StatsCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	if c.FrameDir != "" {
		cfg.FrameDir = c.FrameDir
	}
	if c.Ledger != "" {
		cfg.Classify.LedgerFile = c.Ledger
	}

	log := newLogger(cfg.Logging.Level, c.globals != nil && c.globals.Verbose)
	led := ledger.Load(cfg.Classify.LedgerFile, cfg.FrameDir, log)
	inventory := len(frame.List(cfg.FrameDir))

	return c.render(led, inventory)
}

// render prints the report against a loaded ledger (split out for testing).
func (c *StatsCommand) render(led *ledger.Ledger, inventory int) error {
	if c.globals != nil && c.globals.JSON {
		return c.printJSON(led, inventory)
	}
	return c.printHuman(led, inventory)
}

func (c *StatsCommand) printHuman(led *ledger.Ledger, inventory int) error {
	stats := led.Stats()

	fmt.Println("Fornax Classification Stats")
	fmt.Println("===========================")
	fmt.Printf("Ledger:      %s\n", led.Path())
	fmt.Printf("Frames:      %d on disk\n", inventory)
	if inventory > 0 {
		pct := float64(led.Len()) / float64(inventory) * 100
		fmt.Printf("Classified:  %d (%.1f%%)\n", led.Len(), pct)
	} else {
		fmt.Printf("Classified:  %d\n", led.Len())
	}

	fmt.Println()
	for _, cat := range ledger.Categories {
		fmt.Printf("  %s: %-22s %d\n", cat.ID, cat.Name, stats.CategoryTotal(cat))
		if cat.ID == ledger.NoEventID {
			continue
		}
		for _, sub := range ledger.Subcategories {
			if n := stats[cat.Name+"_"+sub.Name]; n > 0 {
				fmt.Printf("       %-7s %d\n", sub.Name+":", n)
			}
		}
	}

	return nil
}

func (c *StatsCommand) printJSON(led *ledger.Ledger, inventory int) error {
	stats := led.Stats()

	out := statsJSON{
		LedgerPath:       led.Path(),
		FramesOnDisk:     inventory,
		FramesClassified: led.Len(),
		Categories:       make([]categoryJSON, 0, len(ledger.Categories)),
	}
	if inventory > 0 {
		out.PercentComplete = float64(led.Len()) / float64(inventory) * 100
	}

	for _, cat := range ledger.Categories {
		cj := categoryJSON{ID: cat.ID, Name: cat.Name, Total: stats.CategoryTotal(cat)}
		if cat.ID != ledger.NoEventID {
			for _, sub := range ledger.Subcategories {
				if n := stats[cat.Name+"_"+sub.Name]; n > 0 {
					if cj.Subcategories == nil {
						cj.Subcategories = make(map[string]int)
					}
					cj.Subcategories[sub.Name] = n
				}
			}
		}
		out.Categories = append(out.Categories, cj)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
