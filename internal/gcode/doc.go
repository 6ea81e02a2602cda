// Package gcode models a sliced instruction stream as the slicer host hands it
// to post-processing filters: an ordered list of multi-line text blocks.
//
// Lines are raw strings. Nothing here parses g-code syntax; the only
// structure recognised is the layer marker comment (";LAYER:") and the
// comment prefix (";").
//
// # Block Layout
//
// The slicer typically writes:
//
//	Block 0:   start comments
//	Block 1:   setup code
//	Block 2:   first layer of the print
//	Block 3:   second layer
//	...
//	Block N:   end code
//
// Segment reproduces that layout from a flat .gcode file so the same filters
// can run outside the host.
package gcode
