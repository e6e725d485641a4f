package wfcstore

import "fmt"

// AttemptRecord captures the outcome of one Solve call against a stored
// catalog, for operators debugging why a configuration needs many
// retries or fails outright.
type AttemptRecord struct {
	CatalogID                      int64
	Seed                           int64
	OutputWidth, OutputHeight      int
	MaxAttempts                    int
	AttemptsUsed                   int
	Succeeded                      bool
	ContradictionX, ContradictionY int
}

// RecordAttempt stores the outcome of a solve attempt. ContradictionX/Y
// should be -1 when Succeeded is true.
func (s *Store) RecordAttempt(r AttemptRecord) error {
	query := s.qb.Build(`INSERT INTO wfc_attempts
		(catalog_id, seed, output_width, output_height, max_attempts, attempts_used, succeeded, contradiction_x, contradiction_y)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	succeededFlag := 0
	if r.Succeeded {
		succeededFlag = 1
	}

	_, err := s.db.Exec(query, r.CatalogID, r.Seed, r.OutputWidth, r.OutputHeight,
		r.MaxAttempts, r.AttemptsUsed, succeededFlag, r.ContradictionX, r.ContradictionY)
	if err != nil {
		return fmt.Errorf("wfcstore: record attempt: %w", err)
	}
	return nil
}

// AttemptStats summarizes the attempt history for a catalog.
type AttemptStats struct {
	Total, Succeeded int
	MaxAttemptsUsed  int
}

// GetAttemptStats aggregates every recorded attempt for a catalog.
func (s *Store) GetAttemptStats(catalogID int64) (AttemptStats, error) {
	var stats AttemptStats
	query := s.qb.Build(`SELECT
		COUNT(*),
		COALESCE(SUM(succeeded), 0),
		COALESCE(MAX(attempts_used), 0)
		FROM wfc_attempts WHERE catalog_id = ?`)

	err := s.db.QueryRow(query, catalogID).Scan(&stats.Total, &stats.Succeeded, &stats.MaxAttemptsUsed)
	if err != nil {
		return AttemptStats{}, fmt.Errorf("wfcstore: attempt stats: %w", err)
	}
	return stats, nil
}
