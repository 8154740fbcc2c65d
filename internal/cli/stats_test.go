package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinterlabs/fornax/internal/ledger"
)

// seedLedger builds a ledger file with two classifications and a frame
// directory with four frames, returning both paths.
func seedLedger(t *testing.T) (ledgerPath, framesDir string) {
	t.Helper()
	dir := t.TempDir()

	framesDir = filepath.Join(dir, "frames")
	require.NoError(t, os.MkdirAll(framesDir, 0755))
	for i := 1; i <= 4; i++ {
		name := fmt.Sprintf("round_1_%d_%d.jpg", i, 1000+i)
		require.NoError(t, os.WriteFile(filepath.Join(framesDir, name), []byte("jpeg"), 0644))
	}

	ledgerPath = filepath.Join(dir, "classifications.json")
	led := ledger.Load(ledgerPath, framesDir, discardLogger())
	res := led.Classify("round_1_1_1001.jpg", "1", "i")
	require.Equal(t, ledger.Applied, res.Outcome)
	res = led.Classify("round_1_2_1002.jpg", "0", "")
	require.Equal(t, ledger.Applied, res.Outcome)

	return ledgerPath, framesDir
}

func TestStatsHumanOutput(t *testing.T) {
	ledgerPath, framesDir := seedLedger(t)
	led := ledger.Load(ledgerPath, framesDir, discardLogger())

	cmd := &StatsCommand{globals: &GlobalFlags{}}
	out := captureOutput(t, func() {
		require.NoError(t, cmd.render(led, 4))
	})

	assert.Contains(t, out, "Fornax Classification Stats")
	assert.Contains(t, out, "Frames:      4 on disk")
	assert.Contains(t, out, "Classified:  2 (50.0%)")
	assert.Contains(t, out, "furnace_filling")
	assert.Contains(t, out, "start:")
	assert.Contains(t, out, "no_event")
}

func TestStatsJSONOutput(t *testing.T) {
	ledgerPath, framesDir := seedLedger(t)
	led := ledger.Load(ledgerPath, framesDir, discardLogger())

	cmd := &StatsCommand{globals: &GlobalFlags{JSON: true}}
	out := captureOutput(t, func() {
		require.NoError(t, cmd.render(led, 4))
	})

	var got statsJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, ledgerPath, got.LedgerPath)
	assert.Equal(t, 4, got.FramesOnDisk)
	assert.Equal(t, 2, got.FramesClassified)
	assert.Equal(t, 50.0, got.PercentComplete)
	require.Len(t, got.Categories, 6)
	assert.Equal(t, "no_event", got.Categories[0].Name)
	assert.Equal(t, 1, got.Categories[0].Total)
	assert.Equal(t, 1, got.Categories[1].Total)
	assert.Equal(t, map[string]int{"start": 1}, got.Categories[1].Subcategories)
}

func TestStatsEndToEnd(t *testing.T) {
	ledgerPath, framesDir := seedLedger(t)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := fmt.Sprintf("frame_dir: %q\nclassify:\n  ledger_file: %q\n", framesDir, ledgerPath)
	require.NoError(t, os.WriteFile(cfgPath, []byte(yamlContent), 0644))

	out := captureOutput(t, func() {
		err := RunWithArgs("test", []string{"--config", cfgPath, "stats"})
		require.NoError(t, err)
	})

	assert.Contains(t, out, "Classified:  2 (50.0%)")
}

func TestStatsEmptyLedger(t *testing.T) {
	dir := t.TempDir()
	led := ledger.Load(filepath.Join(dir, "classifications.json"), dir, discardLogger())

	cmd := &StatsCommand{globals: &GlobalFlags{}}
	out := captureOutput(t, func() {
		require.NoError(t, cmd.render(led, 0))
	})

	assert.Contains(t, out, "Classified:  0")
	assert.NotContains(t, out, "%")
}
