package gcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountLayers(t *testing.T) {
	assert.Equal(t, 0, CountLayers(nil))
	assert.Equal(t, 0, CountLayers(Stream{"G28\nG1 X1"}))
	assert.Equal(t, 2, CountLayers(Stream{";start\n;LAYER:0\nG1 X1", ";LAYER:1\nG1 X2"}))
	assert.Equal(t, 3, CountLayers(Stream{";LAYER:0\nG1\n;LAYER:1\nG2\n;LAYER:2\nG3"}))
}

func TestLayers(t *testing.T) {
	s := Stream{
		";start\nG28",
		";LAYER:0\n;TYPE:SKIRT\nG1 X1",
		";LAYER:1\n;LAYER:2\nG1 X2",
	}

	layers := Layers(s)
	require.Len(t, layers, 3)

	assert.Equal(t, 1, layers[0].Layer)
	assert.Equal(t, Position{Block: 1, Line: 0}, layers[0].Marker)
	require.NotNil(t, layers[0].First)
	assert.Equal(t, Position{Block: 1, Line: 2}, *layers[0].First)

	// Layer 2 has no instruction before layer 3's marker.
	assert.Equal(t, 2, layers[1].Layer)
	assert.Nil(t, layers[1].First)

	require.NotNil(t, layers[2].First)
	assert.Equal(t, Position{Block: 2, Line: 2}, *layers[2].First)
}

func TestLayersPreambleInstructionsIgnored(t *testing.T) {
	layers := Layers(Stream{"G28\nG29"})
	assert.Empty(t, layers)
}

func TestLayersInstructionCarryingMarker(t *testing.T) {
	layers := Layers(Stream{"G1 X0 ;LAYER:0\nG1 X1"})
	require.Len(t, layers, 1)
	require.NotNil(t, layers[0].First)
	assert.Equal(t, Position{Block: 0, Line: 0}, *layers[0].First)
}
