// Package store persists sweep results to sqlite so experiment runs survive
// the process that produced them.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/pyrat-bench/internal/sweep"
)

// Store is a single-writer sqlite store for sweeps and their reduced rows.
// It implements sweep.Recorder.
type Store struct {
	db *sql.DB
}

// rowStats keeps column order stable through JSON, which a plain map would
// not.
type rowStats struct {
	Columns []string  `json:"columns"`
	Values  []float64 `json:"values"`
}

// Open opens (or creates) the store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS sweeps (
			sweep_id      TEXT PRIMARY KEY,
			grid_keys     TEXT,
			status        TEXT,
			error         TEXT,
			started_at    TIMESTAMP,
			completed_at  TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS sweep_rows (
			sweep_id      TEXT,
			position      BIGINT,
			row_index     TEXT,
			stats         TEXT,
			FOREIGN KEY(sweep_id) REFERENCES sweeps(sweep_id)
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating store schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// BeginSweep inserts a new sweep record and returns its identifier.
func (s *Store) BeginSweep(gridKeys []string) (string, error) {
	keys, err := json.Marshal(gridKeys)
	if err != nil {
		return "", err
	}

	sweepID := uuid.New().String()
	_, err = s.db.Exec(
		`INSERT INTO sweeps (sweep_id, grid_keys, status, started_at) VALUES (?, ?, ?, ?)`,
		sweepID, string(keys), "running", time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("inserting sweep %s: %w", sweepID, err)
	}
	return sweepID, nil
}

// RecordRow stores one combination's index labels and reduced statistics.
func (s *Store) RecordRow(sweepID string, position int, index, columns []string, values []float64) error {
	idx, err := json.Marshal(index)
	if err != nil {
		return err
	}
	stats, err := json.Marshal(rowStats{Columns: columns, Values: values})
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		`INSERT INTO sweep_rows (sweep_id, position, row_index, stats) VALUES (?, ?, ?, ?)`,
		sweepID, position, string(idx), string(stats),
	)
	if err != nil {
		return fmt.Errorf("inserting row %d of sweep %s: %w", position, sweepID, err)
	}
	return nil
}

// FinishSweep stamps the sweep complete, or failed with the run error.
func (s *Store) FinishSweep(sweepID string, runErr error) error {
	status, errMsg := "complete", ""
	if runErr != nil {
		status, errMsg = "failed", runErr.Error()
	}

	res, err := s.db.Exec(
		`UPDATE sweeps SET status = ?, error = ?, completed_at = ? WHERE sweep_id = ?`,
		status, errMsg, time.Now().UTC().Format(time.RFC3339), sweepID,
	)
	if err != nil {
		return fmt.Errorf("finishing sweep %s: %w", sweepID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("sweep %s not found", sweepID)
	}
	return nil
}

// LoadTable reassembles the result table of a completed sweep.
func (s *Store) LoadTable(sweepID string) (*sweep.Table, error) {
	var keysJSON string
	err := s.db.QueryRow(`SELECT grid_keys FROM sweeps WHERE sweep_id = ?`, sweepID).Scan(&keysJSON)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("sweep %s not found", sweepID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading sweep %s: %w", sweepID, err)
	}

	var gridKeys []string
	if err := json.Unmarshal([]byte(keysJSON), &gridKeys); err != nil {
		return nil, fmt.Errorf("decoding grid keys of sweep %s: %w", sweepID, err)
	}

	rows, err := s.db.Query(
		`SELECT row_index, stats FROM sweep_rows WHERE sweep_id = ? ORDER BY position`, sweepID)
	if err != nil {
		return nil, fmt.Errorf("loading rows of sweep %s: %w", sweepID, err)
	}
	defer rows.Close()

	table := sweep.NewTable(gridKeys)
	for rows.Next() {
		var idxJSON, statsJSON string
		if err := rows.Scan(&idxJSON, &statsJSON); err != nil {
			return nil, err
		}

		var index []string
		if err := json.Unmarshal([]byte(idxJSON), &index); err != nil {
			return nil, fmt.Errorf("decoding row index of sweep %s: %w", sweepID, err)
		}
		var stats rowStats
		if err := json.Unmarshal([]byte(statsJSON), &stats); err != nil {
			return nil, fmt.Errorf("decoding row stats of sweep %s: %w", sweepID, err)
		}

		if err := table.AppendRow(index, stats.Columns, stats.Values); err != nil {
			return nil, fmt.Errorf("rebuilding sweep %s: %w", sweepID, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

// SweepInfo summarises one persisted sweep.
type SweepInfo struct {
	SweepID     string
	GridKeys    []string
	Status      string
	Error       string
	StartedAt   time.Time
	CompletedAt *time.Time
}

// ListSweeps returns all persisted sweeps, most recent first.
func (s *Store) ListSweeps() ([]SweepInfo, error) {
	rows, err := s.db.Query(
		`SELECT sweep_id, grid_keys, status, COALESCE(error, ''), started_at, completed_at
		 FROM sweeps ORDER BY started_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SweepInfo
	for rows.Next() {
		var info SweepInfo
		var keysJSON, startedAt string
		var completedAt sql.NullString
		if err := rows.Scan(&info.SweepID, &keysJSON, &info.Status, &info.Error, &startedAt, &completedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(keysJSON), &info.GridKeys); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
			info.StartedAt = t
		}
		if completedAt.Valid {
			if t, err := time.Parse(time.RFC3339, completedAt.String); err == nil {
				info.CompletedAt = &t
			}
		}
		out = append(out, info)
	}
	return out, rows.Err()
}
