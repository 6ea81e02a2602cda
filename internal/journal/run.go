package journal

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/layerpause/internal/digest"
	"github.com/roach88/layerpause/internal/gcode"
	"github.com/roach88/layerpause/internal/pause"
)

// Run is one recorded invocation of the filter.
type Run struct {
	ID             string         `json:"id"`
	Seq            int64          `json:"seq"`
	Input          string         `json:"input"`
	Settings       pause.Settings `json:"settings"`
	SettingsDigest string         `json:"settings_digest"`
	InputDigest    string         `json:"input_digest"`
	OutputDigest   string         `json:"output_digest"`
	Inserted       bool           `json:"inserted"`
	BlockIndex     int            `json:"block_index"`
	LineIndex      int            `json:"line_index"`
	LayersSeen     int            `json:"layers_seen"`
	ToolVersion    string         `json:"tool_version"`
}

// IDGenerator produces run IDs.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run IDs.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// NewRun builds the record for one Inject call. Seq is assigned on write.
func NewRun(id, input, version string, in, out gcode.Stream, s pause.Settings, res pause.Result) (Run, error) {
	settingsDigest, err := digest.Settings(s)
	if err != nil {
		return Run{}, fmt.Errorf("new run: %w", err)
	}

	return Run{
		ID:             id,
		Input:          input,
		Settings:       s,
		SettingsDigest: settingsDigest,
		InputDigest:    digest.Stream(in),
		OutputDigest:   digest.Stream(out),
		Inserted:       res.Inserted,
		BlockIndex:     res.BlockIndex,
		LineIndex:      res.LineIndex,
		LayersSeen:     res.LayersSeen,
		ToolVersion:    version,
	}, nil
}
