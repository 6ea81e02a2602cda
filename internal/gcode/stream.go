package gcode

import "strings"

const (
	// LayerMarker is the substring that identifies a layer-start comment.
	// Matching is by containment, so a marker embedded in a longer comment
	// still counts.
	LayerMarker = ";LAYER:"

	// CommentPrefix starts every g-code comment line.
	CommentPrefix = ";"
)

// Block is one multi-line unit of the instruction stream.
type Block string

// Stream is the ordered sequence of blocks making up a sliced print.
type Stream []Block

// Lines returns the block's lines after trimming surrounding whitespace.
// An empty block yields a single empty line.
func (b Block) Lines() []string {
	return strings.Split(strings.TrimSpace(string(b)), "\n")
}

// JoinLines builds a block from lines, newline separated with a trailing newline.
func JoinLines(lines []string) Block {
	return Block(strings.Join(lines, "\n") + "\n")
}

// IsLayerMarker reports whether line marks the start of a new layer.
func IsLayerMarker(line string) bool {
	return strings.Contains(line, LayerMarker)
}

// IsComment reports whether line is a comment. Layer markers written by the
// slicer are comments too.
func IsComment(line string) bool {
	return strings.HasPrefix(line, CommentPrefix)
}

// Clone returns a shallow copy of the stream. Blocks are immutable strings,
// so replacing an element in the copy never affects the original.
func (s Stream) Clone() Stream {
	if s == nil {
		return nil
	}
	out := make(Stream, len(s))
	copy(out, s)
	return out
}

// Strings converts the stream to plain strings.
func (s Stream) Strings() []string {
	out := make([]string, len(s))
	for i, b := range s {
		out[i] = string(b)
	}
	return out
}

// String concatenates all blocks back into file text.
func (s Stream) String() string {
	var sb strings.Builder
	for _, b := range s {
		sb.WriteString(string(b))
	}
	return sb.String()
}

// FromStrings wraps plain strings as a stream.
func FromStrings(blocks []string) Stream {
	out := make(Stream, len(blocks))
	for i, b := range blocks {
		out[i] = Block(b)
	}
	return out
}

// Equal reports whether two streams hold identical blocks in the same order.
func Equal(a, b Stream) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
