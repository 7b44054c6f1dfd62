// internal/history/store.go

// Package history owns snapshot persistence. A job's history is an
// append-only ordered sequence of snapshots: Append only ever inserts,
// nothing here updates or deletes a prior entry.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	stderrors "skillgap-engine/internal/common/errors"
	"skillgap-engine/internal/common/logger"
	"skillgap-engine/internal/models"

	"github.com/redis/go-redis/v9"
)

// Store is the snapshot history collaborator the analysis service reads
// from and appends to.
type Store interface {
	Append(ctx context.Context, job models.Job, snapshot models.Snapshot) error
	List(ctx context.Context, jobID string) ([]models.Snapshot, error)
	Latest(ctx context.Context, jobID string) (*models.Snapshot, error)
	JobsWithSnapshots(ctx context.Context) ([]models.JobHistory, error)
}

const latestCacheKeyPrefix = "job:snapshot:latest:"

// PostgresStore persists snapshots in an append-only table and keeps the
// latest snapshot per job in a Redis read-through cache.
type PostgresStore struct {
	db       *sql.DB
	cache    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

// NewPostgresStore builds a store. cache may be nil to disable caching.
func NewPostgresStore(db *sql.DB, cache *redis.Client, cacheTTL time.Duration, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		db:       db,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   log.WithFields(map[string]interface{}{"component": "history"}),
	}
}

// EnsureSchema creates the snapshots table if missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS snapshots (
			snapshot_id  TEXT PRIMARY KEY,
			job_id       TEXT NOT NULL,
			job_title    TEXT NOT NULL,
			job_company  TEXT NOT NULL DEFAULT '',
			generated_at TIMESTAMPTZ NOT NULL,
			payload      JSONB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS snapshots_job_idx ON snapshots (job_id, generated_at)`)
	if err != nil {
		return stderrors.NewHistoryQueryFailedError(err)
	}
	return nil
}

// Append inserts one snapshot. A single INSERT keeps the append atomic;
// prior rows are never touched.
func (s *PostgresStore) Append(ctx context.Context, job models.Job, snapshot models.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return stderrors.NewHistoryAppendFailedError(err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (snapshot_id, job_id, job_title, job_company, generated_at, payload)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		snapshot.SnapshotID, job.ID, job.Title, job.Company, snapshot.GeneratedAt, payload)
	if err != nil {
		return stderrors.NewHistoryAppendFailedError(err)
	}

	s.cacheLatest(ctx, job.ID, payload)
	return nil
}

// List returns a job's full history, oldest first.
func (s *PostgresStore) List(ctx context.Context, jobID string) ([]models.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT payload FROM snapshots
		WHERE job_id = $1
		ORDER BY generated_at ASC`, jobID)
	if err != nil {
		return nil, stderrors.NewHistoryQueryFailedError(err)
	}
	defer rows.Close()

	var snapshots []models.Snapshot
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, stderrors.NewHistoryQueryFailedError(err)
		}
		var snap models.Snapshot
		if err := json.Unmarshal(payload, &snap); err != nil {
			return nil, stderrors.NewHistoryQueryFailedError(err)
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, stderrors.NewHistoryQueryFailedError(err)
	}

	return snapshots, nil
}

// Latest returns the newest snapshot for a job, or nil if the job has no
// history. Cache hits skip Postgres entirely.
func (s *PostgresStore) Latest(ctx context.Context, jobID string) (*models.Snapshot, error) {
	if s.cache != nil {
		if val, err := s.cache.Get(ctx, latestCacheKeyPrefix+jobID).Result(); err == nil {
			var snap models.Snapshot
			if err := json.Unmarshal([]byte(val), &snap); err == nil {
				return &snap, nil
			}
		}
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT payload FROM snapshots
		WHERE job_id = $1
		ORDER BY generated_at DESC
		LIMIT 1`, jobID)

	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, stderrors.NewHistoryQueryFailedError(err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, stderrors.NewHistoryQueryFailedError(err)
	}

	s.cacheLatest(ctx, jobID, payload)
	return &snap, nil
}

// JobsWithSnapshots returns every job that has at least one snapshot,
// with its full ordered history, for cross-job trend aggregation.
func (s *PostgresStore) JobsWithSnapshots(ctx context.Context) ([]models.JobHistory, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT job_id, job_title, job_company, payload FROM snapshots
		ORDER BY job_id ASC, generated_at ASC`)
	if err != nil {
		return nil, stderrors.NewHistoryQueryFailedError(err)
	}
	defer rows.Close()

	var histories []models.JobHistory
	index := make(map[string]int)

	for rows.Next() {
		var jobID, title, company string
		var payload []byte
		if err := rows.Scan(&jobID, &title, &company, &payload); err != nil {
			return nil, stderrors.NewHistoryQueryFailedError(err)
		}
		var snap models.Snapshot
		if err := json.Unmarshal(payload, &snap); err != nil {
			return nil, stderrors.NewHistoryQueryFailedError(err)
		}

		i, exists := index[jobID]
		if !exists {
			histories = append(histories, models.JobHistory{
				Job: models.Job{ID: jobID, Title: title, Company: company},
			})
			i = len(histories) - 1
			index[jobID] = i
		}
		histories[i].Snapshots = append(histories[i].Snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, stderrors.NewHistoryQueryFailedError(err)
	}

	return histories, nil
}

// cacheLatest is best-effort; cache failures are logged, never returned.
func (s *PostgresStore) cacheLatest(ctx context.Context, jobID string, payload []byte) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, latestCacheKeyPrefix+jobID, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("failed to cache latest snapshot", map[string]interface{}{
			"jobId": jobID,
			"error": err,
		})
	}
}
