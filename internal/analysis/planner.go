// internal/analysis/planner.go
package analysis

import (
	"skillgap-engine/internal/catalog"
	"skillgap-engine/internal/models"
)

// defaultStepHours is charged per resource without an estimate, and for
// a whole step when no resources matched.
const defaultStepHours = 2

var deadlineByPriority = map[string]string{
	models.PriorityP1: "2 weeks",
	models.PriorityP2: "4 weeks",
	models.PriorityP3: "6 weeks",
}

// Planner attaches catalog resources and time estimates to gaps.
type Planner struct {
	catalog *catalog.Catalog
}

func NewPlanner(cat *catalog.Catalog) *Planner {
	return &Planner{catalog: cat}
}

// Build produces the learning plan for a gap list. TotalHours is the
// exact sum of the step estimates; no gaps means an empty plan, not nil
// steps semantics surprises downstream.
func (p *Planner) Build(gaps []models.Gap) models.LearningPlan {
	plan := models.LearningPlan{Steps: []models.PlanStep{}}

	for _, gap := range gaps {
		resources := p.catalog.Resources(gap.SkillName)

		var hours float64
		for _, r := range resources {
			if r.EstimatedHours > 0 {
				hours += r.EstimatedHours
			} else {
				hours += defaultStepHours
			}
		}
		if len(resources) == 0 {
			hours = defaultStepHours
		}

		plan.Steps = append(plan.Steps, models.PlanStep{
			SkillName:            gap.SkillName,
			Priority:             gap.Priority,
			RecommendedResources: resources,
			EstimatedHours:       hours,
			SuggestedDeadline:    deadlineByPriority[gap.Priority],
		})
		plan.TotalHours += hours
	}

	return plan
}
