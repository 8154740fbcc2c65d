package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinterlabs/fornax/internal/config"
)

func TestVersionFlag(t *testing.T) {
	output := captureOutput(t, func() {
		err := RunWithArgs("0.1.0-test", []string{"--version"})
		assert.NoError(t, err)
	})

	assert.Contains(t, output, "fornax 0.1.0-test")
}

func TestVersionOutputFormat(t *testing.T) {
	output := captureOutput(t, func() {
		_ = RunWithArgs("1.2.3", []string{"--version"})
	})

	assert.Equal(t, "fornax 1.2.3", strings.TrimSpace(output))
}

func TestAllSubcommandsExist(t *testing.T) {
	expected := []string{"capture", "classify", "stats"}
	parser, _, _ := buildParser("test")

	for _, name := range expected {
		cmd := parser.Find(name)
		assert.NotNil(t, cmd, "subcommand %q should exist", name)
	}
}

func TestUnknownSubcommandFails(t *testing.T) {
	parser, _, _ := buildParser("test")
	_, err := parser.ParseArgs([]string{"nonexistent"})
	require.Error(t, err)
}

func TestHelpFlagDoesNotError(t *testing.T) {
	err := RunWithArgs("test", []string{"--help"})
	assert.NoError(t, err)
}

func TestGlobalFlagsJSON(t *testing.T) {
	globals, _ := parseOnly(t, []string{"--json", "stats"})
	assert.True(t, globals.JSON)
}

func TestGlobalFlagsVerbose(t *testing.T) {
	globals, _ := parseOnly(t, []string{"--verbose", "stats"})
	assert.True(t, globals.Verbose)
}

func TestGlobalFlagsConfig(t *testing.T) {
	globals, _ := parseOnly(t, []string{"--config", "/tmp/test.yaml", "stats"})
	assert.Equal(t, "/tmp/test.yaml", globals.Config)
}

func TestCaptureFlags(t *testing.T) {
	_, cmds := parseOnly(t, []string{"capture", "--duration", "30", "--interval", "0.5", "--quality", "90", "--frame-dir", "/data/frames"})

	assert.Equal(t, 30, cmds.Capture.Duration)
	assert.Equal(t, 0.5, cmds.Capture.Interval)
	assert.Equal(t, 90, cmds.Capture.Quality)
	assert.Equal(t, "/data/frames", cmds.Capture.FrameDir)
}

func TestClassifyFlags(t *testing.T) {
	_, cmds := parseOnly(t, []string{"classify", "--frame-dir", "shots", "--ledger", "labels.json"})

	assert.Equal(t, "shots", cmds.Classify.FrameDir)
	assert.Equal(t, "labels.json", cmds.Classify.Ledger)
}

func TestStatsFlags(t *testing.T) {
	_, cmds := parseOnly(t, []string{"stats", "--ledger", "labels.json"})
	assert.Equal(t, "labels.json", cmds.Stats.Ledger)
}

func TestCaptureApplyOverrides(t *testing.T) {
	cfg := config.DefaultConfig()
	cmd := &CaptureCommand{Duration: 30, Interval: 0.5, Quality: 90, FrameDir: "/data/frames"}
	cmd.applyOverrides(cfg)

	assert.Equal(t, 30, cfg.Capture.DurationMinutes)
	assert.Equal(t, 0.5, cfg.Capture.IntervalSeconds)
	assert.Equal(t, 90, cfg.Capture.JPEGQuality)
	assert.Equal(t, "/data/frames", cfg.FrameDir)
}

func TestCaptureZeroFlagsKeepConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cmd := &CaptureCommand{}
	cmd.applyOverrides(cfg)

	assert.Equal(t, 1440, cfg.Capture.DurationMinutes)
	assert.Equal(t, float64(2), cfg.Capture.IntervalSeconds)
	assert.Equal(t, 75, cfg.Capture.JPEGQuality)
	assert.Equal(t, "frames", cfg.FrameDir)
}
