package pause

import "github.com/roach88/layerpause/internal/gcode"

// Result describes the outcome of one Inject call.
type Result struct {
	// Inserted is false when the requested layer was never reached.
	Inserted bool `json:"inserted"`

	// BlockIndex and LineIndex locate the line the directive was placed in
	// front of, relative to the trimmed lines of the original block.
	// Both are -1 when nothing was inserted.
	BlockIndex int `json:"block_index"`
	LineIndex  int `json:"line_index"`

	// LayersSeen is the layer counter when scanning stopped.
	LayersSeen int `json:"layers_seen"`

	// Directive holds the lines that were (or would have been) inserted.
	Directive Directive `json:"directive"`
}

// Inject splices the pause directive in front of the first instruction of
// the requested layer.
//
// The stream is scanned block by block and line by line with a single layer
// counter that is never reset between blocks. Every line containing ";LAYER:"
// bumps the counter. The first line seen while the counter equals
// s.PauseLayer that is not a comment receives the directive in front of it,
// and its block is rebuilt from its trimmed lines with a trailing newline.
//
// The input stream is never modified. The returned stream shares every
// untouched block with the input; when nothing matched it is an identical
// copy.
func Inject(stream gcode.Stream, s Settings) (gcode.Stream, Result) {
	directive := NewDirective(s)
	out := stream.Clone()
	res := Result{BlockIndex: -1, LineIndex: -1, Directive: directive}

	layer := 0
	for bi, block := range stream {
		lines := block.Lines()
		for li, line := range lines {
			if gcode.IsLayerMarker(line) {
				layer++
			}
			if layer != s.PauseLayer || gcode.IsComment(line) {
				continue
			}

			rebuilt := make([]string, 0, len(lines)+len(directive))
			rebuilt = append(rebuilt, lines[:li]...)
			rebuilt = append(rebuilt, directive...)
			rebuilt = append(rebuilt, lines[li:]...)
			out[bi] = gcode.JoinLines(rebuilt)

			res.Inserted = true
			res.BlockIndex = bi
			res.LineIndex = li
			res.LayersSeen = layer
			return out, res
		}
	}

	res.LayersSeen = layer
	return out, res
}
