// internal/models/snapshot.go
package models

import "time"

// Requirement importance levels.
const (
	ImportanceCritical = "critical"
	ImportanceHigh     = "high"
	ImportanceMedium   = "medium"
	ImportanceLow      = "low"
)

// Requirement extraction sources.
const (
	SourceAI        = "ai"
	SourceHeuristic = "heuristic"
	SourceFallback  = "fallback"
)

// Gap priorities.
const (
	PriorityP1 = "P1"
	PriorityP2 = "P2"
	PriorityP3 = "P3"
)

// Requirement is a single skill the job is inferred to need. After scoring
// it also carries the user's current level so the snapshot stays auditable
// even for requirements that never crossed the gap threshold.
type Requirement struct {
	SkillName     string `json:"skillName"`
	Importance    string `json:"importance"`
	RequiredLevel int    `json:"requiredLevel"`
	Source        string `json:"source"`
	Notes         string `json:"notes,omitempty"`

	CurrentLevel int  `json:"currentLevel"`
	Matched      bool `json:"matched"`
	GapLevel     int  `json:"gapLevel"`
}

// Gap is a requirement whose severity exceeded the gap threshold.
type Gap struct {
	SkillName            string     `json:"skillName"`
	RequiredLevel        int        `json:"requiredLevel"`
	CurrentLevel         int        `json:"currentLevel"`
	SeverityScore        float64    `json:"severityScore"`
	Priority             string     `json:"priority"`
	Summary              string     `json:"summary"`
	RecommendedResources []Resource `json:"recommendedResources"`
}

// Resource is one catalog learning resource attached to a gap or plan step.
type Resource struct {
	Title          string  `json:"title"`
	Provider       string  `json:"provider,omitempty"`
	URL            string  `json:"url,omitempty"`
	EstimatedHours float64 `json:"estimatedHours,omitempty"`
}

// PlanStep is one entry of the learning plan.
type PlanStep struct {
	SkillName            string     `json:"skillName"`
	Priority             string     `json:"priority"`
	RecommendedResources []Resource `json:"recommendedResources"`
	EstimatedHours       float64    `json:"estimatedHours"`
	SuggestedDeadline    string     `json:"suggestedDeadline"`
}

// LearningPlan aggregates the resourced steps for all gaps.
type LearningPlan struct {
	TotalHours float64    `json:"totalHours"`
	Steps      []PlanStep `json:"steps"`
}

// Stats summarizes a snapshot for list views.
type Stats struct {
	TotalRequirements int `json:"totalRequirements"`
	TotalGaps         int `json:"totalGaps"`
	CriticalGaps      int `json:"criticalGaps"`
	HighPriorityGaps  int `json:"highPriorityGaps"`
}

// Trend compares a snapshot's gap count against the immediately
// preceding snapshot for the same job.
type Trend struct {
	Direction        string `json:"direction"`
	Message          string `json:"message"`
	PreviousGapCount *int   `json:"previousGapCount,omitempty"`
	CurrentGapCount  *int   `json:"currentGapCount,omitempty"`
}

// Snapshot is one immutable gap analysis result for a (job, user) pair.
// A job's history is an append-only ordered sequence of these.
type Snapshot struct {
	SnapshotID   string        `json:"snapshotId"`
	GeneratedAt  time.Time     `json:"generatedAt"`
	Requirements []Requirement `json:"requirements"`
	Gaps         []Gap         `json:"gaps"`
	LearningPlan LearningPlan  `json:"learningPlan"`
	Stats        Stats         `json:"stats"`
	Trend        Trend         `json:"trend"`
	Summary      string        `json:"summary,omitempty"`
}

// TopGapJob is one job contributing to a cross-job top gap.
type TopGapJob struct {
	JobID    string  `json:"jobId"`
	Title    string  `json:"title"`
	Company  string  `json:"company"`
	Severity float64 `json:"severity"`
}

// TopGap is one aggregated skill across the latest snapshots of all jobs.
type TopGap struct {
	SkillName     string      `json:"skillName"`
	Occurrences   int         `json:"occurrences"`
	CriticalCount int         `json:"criticalCount"`
	Jobs          []TopGapJob `json:"jobs"`
}

// JobSummary is the per-job row of a TrendSummary.
type JobSummary struct {
	JobID        string    `json:"jobId"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	SnapshotID   string    `json:"snapshotId"`
	GeneratedAt  time.Time `json:"generatedAt"`
	TotalGaps    int       `json:"totalGaps"`
	CriticalGaps int       `json:"criticalGaps"`
}

// TrendSummary is the on-demand cross-job report. It is derived from the
// latest snapshot of each job and never persisted.
type TrendSummary struct {
	TopGaps                []TopGap     `json:"topGaps"`
	JobSummaries           []JobSummary `json:"jobSummaries"`
	TotalJobsWithSnapshots int          `json:"totalJobsWithSnapshots"`
}
