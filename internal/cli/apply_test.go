package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/layerpause/internal/gcode"
	"github.com/roach88/layerpause/internal/journal"
	"github.com/roach88/layerpause/internal/testutil"
)

func TestApplyCommand_WritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "print.gcode", sampleGCode)
	output := filepath.Join(dir, "paused.gcode")

	cmd := NewApplyCommand(testRootOpts("text"))
	stdout, _, err := execute(cmd, input, "-o", output, "--layer", "2")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Pause inserted before layer 2 (block 2, line 1)")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, pausedAtLayer2, string(data))
}

func TestApplyCommand_StdoutOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "print.gcode", sampleGCode)

	cmd := NewApplyCommand(testRootOpts("text"))
	stdout, stderr, err := execute(cmd, input, "--layer", "2")
	require.NoError(t, err)

	// G-code alone on stdout, report on stderr.
	assert.Equal(t, pausedAtLayer2, stdout)
	assert.Contains(t, stderr, "Pause inserted before layer 2")
	assert.NotContains(t, stderr, "filter applied")
}

func TestApplyCommand_StdoutOutputVerbose(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "print.gcode", sampleGCode)

	opts := testRootOpts("text")
	opts.Verbose = true
	cmd := NewApplyCommand(opts)
	stdout, stderr, err := execute(cmd, input, "--layer", "2")
	require.NoError(t, err)

	assert.Equal(t, pausedAtLayer2, stdout)
	assert.Contains(t, stderr, "filter applied")
}

func TestApplyCommand_StdoutOutputJSONReport(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "print.gcode", sampleGCode)
	dbPath := filepath.Join(dir, "runs.db")

	cmd := newApplyCommand(&ApplyOptions{
		RootOptions: testRootOpts("json"),
		IDGenerator: testutil.NewFixedGenerator("run-1"),
	})
	stdout, stderr, err := execute(cmd, input, "--layer", "2", "--journal", dbPath)
	require.NoError(t, err)
	assert.Equal(t, pausedAtLayer2, stdout)

	// stderr carries the report envelope and nothing else.
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stderr), &resp), "stderr: %s", stderr)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "run-1", resp.RunID)
}

func TestApplyCommand_Stdin(t *testing.T) {
	cmd := NewApplyCommand(testRootOpts("text"))
	cmd.SetIn(strings.NewReader(sampleGCode))

	stdout, _, err := execute(cmd, "-", "--layer", "2")
	require.NoError(t, err)
	assert.Equal(t, pausedAtLayer2, stdout)
}

func TestApplyCommand_LayerNotReached(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "print.gcode", sampleGCode)
	output := filepath.Join(dir, "out.gcode")

	cmd := NewApplyCommand(testRootOpts("text"))
	stdout, _, err := execute(cmd, input, "-o", output, "--layer", "10")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Layer 10 not reached (2 layers seen); stream unchanged")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, sampleGCode, string(data))
}

func TestApplyCommand_BlocksJSON(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "blocks.json", `[";start\n;LAYER:0\nG1 X1", ";LAYER:1\nG1 X2"]`)
	output := filepath.Join(dir, "out.json")

	cmd := NewApplyCommand(testRootOpts("json"))
	stdout, _, err := execute(cmd, input, "-o", output, "--beep=false", "--message", "Swap at {}")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   ApplyResult `json:"data"`
		RunID  string      `json:"run_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Inserted)
	assert.Equal(t, 0, resp.Data.BlockIndex)
	assert.Equal(t, 2, resp.Data.LineIndex)
	assert.False(t, resp.Data.Settings.ShouldBeep)
	assert.Equal(t, "G197 Swap at 1 ;pause", resp.Data.Directive[len(resp.Data.Directive)-1])
	assert.Empty(t, resp.RunID)

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	out, err := gcode.ReadBlocksJSON(f)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, gcode.Block(";start\n;LAYER:0\n"+
		";TYPE:CUSTOM\n"+
		";pause added by post processing\n"+
		";script: PauseAtLayerCraftBot.py\n"+
		"G197 Swap at 1 ;pause\n"+
		"G1 X1\n"), out[0])
	assert.Equal(t, gcode.Block(";LAYER:1\nG1 X2"), out[1])
}

func TestApplyCommand_InputFormatOverride(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "blocks.txt", `[";LAYER:0\nG1 X1"]`)

	cmd := NewApplyCommand(testRootOpts("text"))
	stdout, _, err := execute(cmd, input, "--input-format", "blocks")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "[\n"))
	assert.Contains(t, stdout, "G197 User defined pause at layer 1 ;pause")
}

func TestApplyCommand_SettingsPrecedence(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "print.gcode", sampleGCode)
	settings := writeFile(t, dir, "pause.yaml", "pause_layer: 2\nmessage: \"From file {}\"\nshould_beep: false\n")
	output := filepath.Join(dir, "out.gcode")

	// The file overrides defaults; --layer overrides the file.
	cmd := NewApplyCommand(testRootOpts("json"))
	stdout, _, err := execute(cmd, input, "-o", output, "--settings", settings, "--layer", "1")
	require.NoError(t, err)

	var resp struct {
		Data ApplyResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, 1, resp.Data.Settings.PauseLayer)
	assert.Equal(t, "From file {}", resp.Data.Settings.Message)
	assert.False(t, resp.Data.Settings.ShouldBeep)
	assert.Equal(t, settings, resp.Data.SettingsFile)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "G197 From file 1 ;pause")
	assert.NotContains(t, string(data), "M300")
}

func TestApplyCommand_SettingsFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "print.gcode", sampleGCode)
	settings := writeFile(t, dir, "pause.cue", "pause_layer: 2\n")
	output := filepath.Join(dir, "out.gcode")

	opts := testRootOpts("text")
	opts.Environment = map[string]string{"LAYERPAUSE_SETTINGS": settings}

	cmd := NewApplyCommand(opts)
	stdout, _, err := execute(cmd, input, "-o", output)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Pause inserted before layer 2")
}

func TestApplyCommand_InvalidSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings string
		args     []string
	}{
		{name: "layer flag zero", args: []string{"--layer", "0"}},
		{name: "file below minimum", settings: "pause_layer: 0\n"},
		{name: "file wrong type", settings: "pause_layer: \"two\"\n"},
		{name: "file unknown key", settings: "pause_layr: 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			input := writeFile(t, dir, "print.gcode", sampleGCode)
			args := append([]string{input, "-o", filepath.Join(dir, "out.gcode")}, tt.args...)
			if tt.settings != "" {
				args = append(args, "--settings", writeFile(t, dir, "pause.yaml", tt.settings))
			}

			cmd := NewApplyCommand(testRootOpts("json"))
			stdout, _, err := execute(cmd, args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))

			var resp CLIResponse
			require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, ErrCodeInvalidSettings, resp.Error.Code)

			_, statErr := os.Stat(filepath.Join(dir, "out.gcode"))
			assert.True(t, os.IsNotExist(statErr), "no output on invalid settings")
		})
	}
}

func TestApplyCommand_MissingInput(t *testing.T) {
	dir := t.TempDir()

	cmd := NewApplyCommand(testRootOpts("text"))
	stdout, _, err := execute(cmd, filepath.Join(dir, "missing.gcode"), "-o", filepath.Join(dir, "out.gcode"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E005]")
}

func TestApplyCommand_MissingSettingsFile(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "print.gcode", sampleGCode)

	cmd := NewApplyCommand(testRootOpts("text"))
	stdout, _, err := execute(cmd, input, "-o", filepath.Join(dir, "out.gcode"), "--settings", filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, stdout, "Error [E005]")
}

func TestApplyCommand_BadInputFormat(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "print.gcode", sampleGCode)

	cmd := NewApplyCommand(testRootOpts("text"))
	stdout, _, err := execute(cmd, input, "-o", filepath.Join(dir, "out"), "--input-format", "stl")
	require.Error(t, err)
	assert.Contains(t, stdout, "Error [E009]")
}

func TestApplyCommand_MalformedBlocks(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "blocks.json", `{"not": "an array"}`)

	cmd := NewApplyCommand(testRootOpts("text"))
	stdout, _, err := execute(cmd, input, "-o", filepath.Join(dir, "out.json"))
	require.Error(t, err)
	assert.Contains(t, stdout, "Error [E004]")
}

func TestApplyCommand_Journal(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "print.gcode", sampleGCode)
	dbPath := filepath.Join(dir, "runs.db")

	cmd := newApplyCommand(&ApplyOptions{
		RootOptions: testRootOpts("text"),
		IDGenerator: testutil.NewFixedGenerator("run-1"),
	})
	stdout, _, err := execute(cmd, input, "-o", filepath.Join(dir, "out.gcode"), "--layer", "2", "--journal", dbPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Run recorded: run-1")

	j, err := journal.Open(dbPath)
	require.NoError(t, err)
	defer j.Close()

	run, err := j.ReadRun(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), run.Seq)
	assert.Equal(t, input, run.Input)
	assert.True(t, run.Inserted)
	assert.Equal(t, 2, run.BlockIndex)
	assert.Equal(t, 1, run.LineIndex)
	assert.Equal(t, 2, run.Settings.PauseLayer)
	assert.Equal(t, Version, run.ToolVersion)
}

func TestApplyCommand_JournalFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "print.gcode", sampleGCode)
	dbPath := filepath.Join(dir, "runs.db")

	opts := testRootOpts("json")
	opts.Environment = map[string]string{"LAYERPAUSE_JOURNAL": dbPath}

	cmd := newApplyCommand(&ApplyOptions{
		RootOptions: opts,
		IDGenerator: testutil.NewFixedGenerator("env-run"),
	})
	stdout, _, err := execute(cmd, input, "-o", filepath.Join(dir, "out.gcode"))
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "env-run", resp.RunID)

	_, err = os.Stat(dbPath)
	require.NoError(t, err)
}

func TestApplyResult_WriteTextVerbose(t *testing.T) {
	var sb strings.Builder
	r := ApplyResult{
		Inserted:   true,
		BlockIndex: 1,
		LineIndex:  3,
		Directive:  []string{";TYPE:CUSTOM", "G197 hi ;pause"},
	}
	r.Settings.PauseLayer = 4

	require.NoError(t, r.WriteText(&sb, true))
	assert.Equal(t, "Pause inserted before layer 4 (block 1, line 3)\n"+
		"  + ;TYPE:CUSTOM\n"+
		"  + G197 hi ;pause\n", sb.String())
}
