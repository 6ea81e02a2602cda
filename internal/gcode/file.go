package gcode

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Segment splits flat g-code text into blocks the way the slicer host does:
// everything before the first layer marker forms the preamble block, and each
// line starting with ";LAYER:" opens a new block.
//
// Segment is lossless: Segment(text).String() == text.
func Segment(text string) Stream {
	if text == "" {
		return Stream{}
	}

	var (
		blocks  Stream
		current strings.Builder
	)
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, LayerMarker) && current.Len() > 0 {
			blocks = append(blocks, Block(current.String()))
			current.Reset()
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		blocks = append(blocks, Block(current.String()))
	}
	return blocks
}

// ReadBlocksJSON decodes a JSON array of strings into a stream.
func ReadBlocksJSON(r io.Reader) (Stream, error) {
	var raw []string
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode blocks: %w", err)
	}
	return FromStrings(raw), nil
}

// WriteBlocksJSON encodes the stream as an indented JSON array of strings.
func WriteBlocksJSON(w io.Writer, s Stream) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s.Strings()); err != nil {
		return fmt.Errorf("encode blocks: %w", err)
	}
	return nil
}
