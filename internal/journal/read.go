package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrRunNotFound is returned by ReadRun for an unknown ID.
var ErrRunNotFound = errors.New("run not found")

const runColumns = `id, seq, input, settings, settings_digest, input_digest, output_digest,
	inserted, block_index, line_index, layers_seen, tool_version`

// ReadRuns returns recorded runs, oldest first. A limit <= 0 returns all runs.
//
// Ordering is deterministic: ORDER BY seq ASC, id ASC COLLATE BINARY.
// Returns an empty slice (not nil) when the journal is empty.
func (j *Journal) ReadRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY seq ASC, id COLLATE BINARY ASC`
	var args []any
	if limit > 0 {
		// Most recent `limit` runs, still returned oldest first.
		query = `SELECT * FROM (SELECT ` + runColumns + ` FROM runs ORDER BY seq DESC LIMIT ?)
			ORDER BY seq ASC, id COLLATE BINARY ASC`
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// ReadRun returns a single run by ID.
func (j *Journal) ReadRun(ctx context.Context, id string) (Run, error) {
	row := j.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

// ReadRunsByInput returns runs whose input digest matches, oldest first.
func (j *Journal) ReadRunsByInput(ctx context.Context, inputDigest string) ([]Run, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		WHERE input_digest = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, inputDigest)
	if err != nil {
		return nil, fmt.Errorf("query runs by input: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run          Run
		settingsJSON string
		inserted     int
	)
	err := row.Scan(
		&run.ID,
		&run.Seq,
		&run.Input,
		&settingsJSON,
		&run.SettingsDigest,
		&run.InputDigest,
		&run.OutputDigest,
		&inserted,
		&run.BlockIndex,
		&run.LineIndex,
		&run.LayersSeen,
		&run.ToolVersion,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}

	if err := json.Unmarshal([]byte(settingsJSON), &run.Settings); err != nil {
		return Run{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	run.Inserted = inserted != 0

	return run, nil
}
