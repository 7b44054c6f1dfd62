// internal/analysis/engine.go

// Package analysis implements the skill-gap analysis pipeline:
// requirement extraction, gap scoring, learning-plan building, and trend
// comparison. An Engine holds only read-only collaborators, so snapshot
// builds for different (job, user) pairs can run concurrently.
package analysis

import (
	"context"
	"strings"
	"time"

	"skillgap-engine/internal/catalog"
	stderrors "skillgap-engine/internal/common/errors"
	"skillgap-engine/internal/common/logger"
	"skillgap-engine/internal/common/metrics"
	"skillgap-engine/internal/genai"
	"skillgap-engine/internal/models"

	"github.com/google/uuid"
)

// DefaultAITimeout bounds the single AI suspension point. Timeout is an
// extraction failure, not an analysis failure.
const DefaultAITimeout = 10 * time.Second

// Engine is the skill-gap analysis engine. It is a pure function of
// (job, user skills, prior snapshots); persistence of the returned
// snapshot is the caller's job.
type Engine struct {
	extractor *Extractor
	scorer    *Scorer
	planner   *Planner
	logger    logger.Logger
	aiTimeout time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithAITimeout overrides the AI call deadline.
func WithAITimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.aiTimeout = d
		}
	}
}

// WithMinRequirements overrides the heuristic supplementation floor.
func WithMinRequirements(n int) Option {
	return func(e *Engine) {
		e.extractor.minRequirements = n
	}
}

// NewEngine wires the pipeline. ai may be nil to disable the AI
// extraction strategy.
func NewEngine(cat *catalog.Catalog, ai genai.Completer, log logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		extractor: NewExtractor(cat, ai, log, DefaultMinRequirements),
		scorer:    NewScorer(cat),
		planner:   NewPlanner(cat),
		logger:    log.WithFields(map[string]interface{}{"component": "engine"}),
		aiTimeout: DefaultAITimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze builds one immutable snapshot for a (job, user) pair. prior is
// the job's snapshot history, oldest first. The only error condition is
// an unanalyzable job (no title); extraction failures degrade, they do
// not propagate.
func (e *Engine) Analyze(ctx context.Context, job models.Job, userSkills []models.UserSkill, prior []models.Snapshot) (*models.Snapshot, error) {
	if strings.TrimSpace(job.Title) == "" {
		metrics.AnalysesFailed.WithLabelValues(string(stderrors.ErrCodeInvalidJobInput)).Inc()
		return nil, stderrors.NewInvalidJobInputError("job title is required")
	}

	start := time.Now()

	aiCtx, cancel := context.WithTimeout(ctx, e.aiTimeout)
	requirements, source, summary := e.extractor.Extract(aiCtx, job, userSkills)
	cancel()

	annotated, gaps := e.scorer.Score(requirements, userSkills)
	plan := e.planner.Build(gaps)

	snapshot := &models.Snapshot{
		SnapshotID:   uuid.New().String(),
		GeneratedAt:  time.Now().UTC(),
		Requirements: annotated,
		Gaps:         gaps,
		LearningPlan: plan,
		Stats:        buildStats(annotated, gaps),
		Trend:        SingleJobTrend(gaps, prior),
		Summary:      summary,
	}

	metrics.AnalysesCompleted.WithLabelValues(source).Inc()
	metrics.AnalysisDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	metrics.GapsDetected.WithLabelValues(source).Observe(float64(len(gaps)))

	e.logger.Info("snapshot generated", map[string]interface{}{
		"jobId":        job.ID,
		"snapshotId":   snapshot.SnapshotID,
		"source":       source,
		"requirements": len(annotated),
		"gaps":         len(gaps),
		"totalHours":   plan.TotalHours,
		"trend":        snapshot.Trend.Direction,
	})

	return snapshot, nil
}

// CrossJobTrends aggregates the latest snapshot of every job into the
// on-demand leaderboard report.
func (e *Engine) CrossJobTrends(jobs []models.JobHistory) *models.TrendSummary {
	return CrossJobTrends(jobs)
}

func buildStats(requirements []models.Requirement, gaps []models.Gap) models.Stats {
	stats := models.Stats{
		TotalRequirements: len(requirements),
		TotalGaps:         len(gaps),
	}
	for _, g := range gaps {
		switch g.Priority {
		case models.PriorityP1:
			stats.CriticalGaps++
		case models.PriorityP2:
			stats.HighPriorityGaps++
		}
	}
	return stats
}
