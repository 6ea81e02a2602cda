// Package schema owns the filter's configuration surface: the declarative
// settings document a host renders, and a CUE schema that validates settings
// files and supplies defaults.
//
// A settings file may be CUE, YAML or JSON:
//
//	pause_layer: 12
//	message: "Insert magnets at layer {}"
//	should_beep: false
//
// Missing fields take their defaults; unknown fields and a pause_layer below
// 1 are rejected.
package schema
