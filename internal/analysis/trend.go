// internal/analysis/trend.go
package analysis

import (
	"fmt"
	"sort"

	"skillgap-engine/internal/catalog"
	"skillgap-engine/internal/models"
)

// Trend directions.
const (
	TrendImproving = "improving"
	TrendRising    = "rising"
	TrendStable    = "stable"
)

// SingleJobTrend compares a new gap list against the most recent prior
// snapshot of the same job. Prior snapshots are oldest-first.
func SingleJobTrend(gaps []models.Gap, prior []models.Snapshot) models.Trend {
	current := len(gaps)

	if len(prior) == 0 {
		trend := models.Trend{
			Direction:       TrendStable,
			Message:         "First analysis for this job. No skill gaps detected.",
			CurrentGapCount: &current,
		}
		if current > 0 {
			trend.Direction = TrendRising
			trend.Message = fmt.Sprintf("First analysis for this job. %d skill gap(s) to work on.", current)
		}
		return trend
	}

	previous := len(prior[len(prior)-1].Gaps)
	trend := models.Trend{
		PreviousGapCount: &previous,
		CurrentGapCount:  &current,
	}

	switch {
	case current < previous:
		trend.Direction = TrendImproving
		trend.Message = fmt.Sprintf("Gap count dropped from %d to %d since the last analysis. Keep going.", previous, current)
	case current > previous:
		trend.Direction = TrendRising
		trend.Message = fmt.Sprintf("Gap count rose from %d to %d since the last analysis.", previous, current)
	default:
		trend.Direction = TrendStable
		trend.Message = fmt.Sprintf("Gap count unchanged at %d since the last analysis.", current)
	}

	return trend
}

// CrossJobTrends aggregates gaps across the latest snapshot of every job
// that has one. Read-only and side-effect-free; nothing here is
// persisted.
func CrossJobTrends(jobs []models.JobHistory) *models.TrendSummary {
	summary := &models.TrendSummary{
		TopGaps:      []models.TopGap{},
		JobSummaries: []models.JobSummary{},
	}

	aggregates := make(map[string]*models.TopGap)
	var order []string

	for _, jh := range jobs {
		if len(jh.Snapshots) == 0 {
			continue
		}
		latest := jh.Snapshots[len(jh.Snapshots)-1]
		summary.TotalJobsWithSnapshots++

		summary.JobSummaries = append(summary.JobSummaries, models.JobSummary{
			JobID:        jh.Job.ID,
			Title:        jh.Job.Title,
			Company:      jh.Job.Company,
			SnapshotID:   latest.SnapshotID,
			GeneratedAt:  latest.GeneratedAt,
			TotalGaps:    latest.Stats.TotalGaps,
			CriticalGaps: latest.Stats.CriticalGaps,
		})

		for _, gap := range latest.Gaps {
			key := catalog.Normalize(gap.SkillName)
			agg, exists := aggregates[key]
			if !exists {
				agg = &models.TopGap{SkillName: gap.SkillName}
				aggregates[key] = agg
				order = append(order, key)
			}
			agg.Occurrences++
			if gap.Priority == models.PriorityP1 {
				agg.CriticalCount++
			}
			agg.Jobs = append(agg.Jobs, models.TopGapJob{
				JobID:    jh.Job.ID,
				Title:    jh.Job.Title,
				Company:  jh.Job.Company,
				Severity: gap.SeverityScore,
			})
		}
	}

	for _, key := range order {
		summary.TopGaps = append(summary.TopGaps, *aggregates[key])
	}
	sort.SliceStable(summary.TopGaps, func(i, j int) bool {
		if summary.TopGaps[i].Occurrences != summary.TopGaps[j].Occurrences {
			return summary.TopGaps[i].Occurrences > summary.TopGaps[j].Occurrences
		}
		return summary.TopGaps[i].CriticalCount > summary.TopGaps[j].CriticalCount
	})

	return summary
}
