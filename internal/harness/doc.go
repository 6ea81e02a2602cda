// Package harness provides conformance testing for the pause injector.
//
// A scenario describes an input stream, the settings to apply, and the
// assertions the output must satisfy. Scenarios double as golden tests: the
// rendered snapshot of every run is compared byte for byte against a file
// under golden/.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	blocks:                      # or gcode: a flat file, split at ";LAYER:" lines
//	  - ";FLAVOR:Marlin\nG28\n"
//	  - ";LAYER:0\nG1 X10\n"
//	settings:                    # partial; missing keys take their defaults
//	  pause_layer: 1
//	passes: 1                    # how many times the filter is applied
//	assertions:
//	  - type: inserted
//	    value: true
//	  - type: position
//	    block: 1
//	    line: 1
//
// # Assertion Types
//
//   - inserted: the last pass did (value: true) or did not insert a directive
//   - position: the directive landed in front of block/line
//   - layers_seen: the layer counter stopped at count
//   - line_equals: output line block/line equals text
//   - contains: some output line equals text
//   - count: exactly count output lines equal text
//   - unchanged: the output stream is identical to the input
package harness
