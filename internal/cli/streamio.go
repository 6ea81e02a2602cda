package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/layerpause/internal/gcode"
)

// Input formats.
const (
	FormatGCode  = "gcode"  // flat g-code text, split at ";LAYER:" lines
	FormatBlocks = "blocks" // JSON array of block strings
)

// stdinPath names standard input or output in path arguments.
const stdinPath = "-"

// detectFormat returns the explicit format when set, otherwise guesses from
// the extension: .json means blocks, anything else g-code.
func detectFormat(path, explicit string) (string, error) {
	switch explicit {
	case FormatGCode, FormatBlocks:
		return explicit, nil
	case "":
	default:
		return "", fmt.Errorf("unknown input format %q: must be %s or %s", explicit, FormatGCode, FormatBlocks)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatBlocks, nil
	}
	return FormatGCode, nil
}

// inputName is the label recorded for an input path.
func inputName(path string) string {
	if path == stdinPath {
		return "<stdin>"
	}
	return path
}

// readInput reads path (or stdin for "-") in the given format.
func readInput(cmd *cobra.Command, path, format string) (gcode.Stream, error) {
	var r io.Reader
	if path == stdinPath {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return decodeStream(r, format)
}

func decodeStream(r io.Reader, format string) (gcode.Stream, error) {
	if format == FormatBlocks {
		return gcode.ReadBlocksJSON(r)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read g-code: %w", err)
	}
	return gcode.Segment(string(data)), nil
}

// writeOutput writes the stream in format to path, or to stdout when path
// is empty or "-".
func writeOutput(cmd *cobra.Command, path string, s gcode.Stream, format string) error {
	var buf bytes.Buffer
	if format == FormatBlocks {
		if err := gcode.WriteBlocksJSON(&buf, s); err != nil {
			return err
		}
	} else {
		buf.WriteString(s.String())
	}

	if path == "" || path == stdinPath {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
