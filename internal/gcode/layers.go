package gcode

// Position addresses a single line within a stream.
type Position struct {
	Block int `json:"block"`
	Line  int `json:"line"`
}

// LayerStart records where a layer's marker sits and where its first
// instruction (first non-comment line at that layer count) sits.
type LayerStart struct {
	Layer  int      `json:"layer"`
	Marker Position `json:"marker"`

	// First is nil when the layer has no instruction before the next marker
	// (or before the end of the stream).
	First *Position `json:"first,omitempty"`
}

// CountLayers returns the number of layer markers in the stream.
func CountLayers(s Stream) int {
	n := 0
	for _, b := range s {
		for _, line := range b.Lines() {
			if IsLayerMarker(line) {
				n++
			}
		}
	}
	return n
}

// Layers walks the stream once and reports every layer start in order.
// Layer numbers are 1-based and count markers across block boundaries.
func Layers(s Stream) []LayerStart {
	var layers []LayerStart
	for bi, b := range s {
		for li, line := range b.Lines() {
			if IsLayerMarker(line) {
				layers = append(layers, LayerStart{
					Layer:  len(layers) + 1,
					Marker: Position{Block: bi, Line: li},
				})
			}
			if len(layers) == 0 || IsComment(line) {
				continue
			}
			cur := &layers[len(layers)-1]
			if cur.First == nil {
				cur.First = &Position{Block: bi, Line: li}
			}
		}
	}
	return layers
}
