package journal

import (
	"context"
	"encoding/json"
	"fmt"
)

// WriteRun records a run and returns it with Seq assigned.
//
// Uses ON CONFLICT(id) DO NOTHING for idempotency: writing the same ID twice
// returns the row stored first.
//
// Settings are stored exactly as given; the message is not normalized, so a
// stored run shows the text that was written into the g-code.
func (j *Journal) WriteRun(ctx context.Context, run Run) (Run, error) {
	settingsJSON, err := json.Marshal(run.Settings)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("write run: begin: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return Run{}, fmt.Errorf("write run: next seq: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, input, settings, settings_digest, input_digest, output_digest,
		 inserted, block_index, line_index, layers_seen, tool_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		seq,
		run.Input,
		string(settingsJSON),
		run.SettingsDigest,
		run.InputDigest,
		run.OutputDigest,
		boolToInt(run.Inserted),
		run.BlockIndex,
		run.LineIndex,
		run.LayersSeen,
		run.ToolVersion,
	)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return Run{}, fmt.Errorf("write run: rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("write run: commit: %w", err)
	}

	if affected == 0 {
		return j.ReadRun(ctx, run.ID)
	}

	run.Seq = seq
	return run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
