package schema

import (
	"encoding/json"

	"github.com/roach88/layerpause/internal/pause"
)

// Document is the declarative description a host renders as a settings form.
type Document struct {
	Name        string                       `json:"name"`
	Description string                       `json:"description"`
	Key         string                       `json:"key"`
	Metadata    map[string]string            `json:"metadata"`
	Version     int                          `json:"version"`
	Settings    map[string]SettingDescriptor `json:"settings"`
}

// SettingDescriptor describes one field of the settings form.
type SettingDescriptor struct {
	Label        string `json:"label"`
	Description  string `json:"description"`
	Type         string `json:"type"` // "int" | "str" | "bool"
	DefaultValue any    `json:"default_value"`
	MinimumValue *int   `json:"minimum_value,omitempty"`
}

// DocumentVersion is the settings document format version.
const DocumentVersion = 2

// NewDocument returns the settings document of the pause-at-layer filter.
func NewDocument() Document {
	minLayer := pause.MinPauseLayer
	return Document{
		Name:        "Pause at layer (CraftBot)",
		Description: "Triggers a pause before a specified layer.",
		Key:         "CraftBotPauseAtLayer",
		Metadata:    map[string]string{},
		Version:     DocumentVersion,
		Settings: map[string]SettingDescriptor{
			pause.KeyPauseLayer: {
				Label: "Pause Layer",
				Description: "The printer will pause before this layer is printed. " +
					"This layer includes supports, and corresponds to the layers seen in the slicer viewer. " +
					"Layer 1 is the first layer of the print.",
				Type:         "int",
				DefaultValue: pause.DefaultPauseLayer,
				MinimumValue: &minLayer,
			},
			pause.KeyMessage: {
				Label:        "Pause Message",
				Description:  "A message to display on the printer. {} is replaced by the layer number.",
				Type:         "str",
				DefaultValue: pause.DefaultMessage,
			},
			pause.KeyShouldBeep: {
				Label:        "Beep",
				Description:  "When ticked, the printer will emit a short tone when pausing.",
				Type:         "bool",
				DefaultValue: pause.DefaultShouldBeep,
			},
		},
	}
}

// MarshalDocument renders the settings document as indented JSON.
func MarshalDocument() ([]byte, error) {
	return json.MarshalIndent(NewDocument(), "", "  ")
}
