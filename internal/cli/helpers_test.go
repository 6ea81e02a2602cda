package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// sampleGCode has a preamble and two layers:
//
//	block 0: ;FLAVOR:Marlin / G28
//	block 1: ;LAYER:0 / G1 X1      (layer 1)
//	block 2: ;LAYER:1 / G1 X2      (layer 2)
const sampleGCode = ";FLAVOR:Marlin\nG28\n;LAYER:0\nG1 X1\n;LAYER:1\nG1 X2\n"

// pausedAtLayer2 is sampleGCode after a default pause at layer 2.
const pausedAtLayer2 = ";FLAVOR:Marlin\nG28\n;LAYER:0\nG1 X1\n" +
	";LAYER:1\n" +
	";TYPE:CUSTOM\n" +
	";pause added by post processing\n" +
	";script: PauseAtLayerCraftBot.py\n" +
	"M300 P2000 S50 ;beep\n" +
	"G197 User defined pause at layer 2 ;pause\n" +
	"G1 X2\n"

// testRootOpts returns options that ignore the process environment.
func testRootOpts(format string) *RootOptions {
	return &RootOptions{Format: format, Environment: map[string]string{}}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs cmd with args and returns stdout, stderr and the error.
func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}
