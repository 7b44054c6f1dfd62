// internal/history/memory.go
package history

import (
	"context"
	"sort"
	"sync"

	"skillgap-engine/internal/models"
)

// MemoryStore is an in-memory Store for tests and local runs without a
// database.
type MemoryStore struct {
	mu        sync.RWMutex
	jobs      map[string]models.Job
	snapshots map[string][]models.Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		jobs:      make(map[string]models.Job),
		snapshots: make(map[string][]models.Snapshot),
	}
}

func (m *MemoryStore) Append(_ context.Context, job models.Job, snapshot models.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = job
	m.snapshots[job.ID] = append(m.snapshots[job.ID], snapshot)
	return nil
}

func (m *MemoryStore) List(_ context.Context, jobID string) ([]models.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Snapshot, len(m.snapshots[jobID]))
	copy(out, m.snapshots[jobID])
	return out, nil
}

func (m *MemoryStore) Latest(_ context.Context, jobID string) (*models.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snaps := m.snapshots[jobID]
	if len(snaps) == 0 {
		return nil, nil
	}
	latest := snaps[len(snaps)-1]
	return &latest, nil
}

func (m *MemoryStore) JobsWithSnapshots(_ context.Context) ([]models.JobHistory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.snapshots))
	for id, snaps := range m.snapshots {
		if len(snaps) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	histories := make([]models.JobHistory, 0, len(ids))
	for _, id := range ids {
		snaps := make([]models.Snapshot, len(m.snapshots[id]))
		copy(snaps, m.snapshots[id])
		histories = append(histories, models.JobHistory{
			Job:       m.jobs[id],
			Snapshots: snaps,
		})
	}
	return histories, nil
}
