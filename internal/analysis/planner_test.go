// internal/analysis/planner_test.go
package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillgap-engine/internal/catalog"
	"skillgap-engine/internal/models"
)

func TestPlannerBuild(t *testing.T) {
	planner := NewPlanner(testCatalog(t))

	gaps := []models.Gap{
		{SkillName: "TypeScript", Priority: models.PriorityP1},
		{SkillName: "React", Priority: models.PriorityP2},
	}

	plan := planner.Build(gaps)

	require.Len(t, plan.Steps, 2)

	// Steps keep gap order, so the highest severity skill comes first.
	ts := plan.Steps[0]
	assert.Equal(t, "TypeScript", ts.SkillName)
	assert.Equal(t, models.PriorityP1, ts.Priority)
	assert.Equal(t, 8.0, ts.EstimatedHours)
	assert.Equal(t, "2 weeks", ts.SuggestedDeadline)
	require.Len(t, ts.RecommendedResources, 1)

	react := plan.Steps[1]
	assert.Equal(t, "React", react.SkillName)
	assert.Equal(t, 18.0, react.EstimatedHours)
	assert.Equal(t, "4 weeks", react.SuggestedDeadline)
	require.Len(t, react.RecommendedResources, 2)

	assert.Equal(t, 26.0, plan.TotalHours)
}

func TestPlannerDefaultHoursForUnknownSkill(t *testing.T) {
	planner := NewPlanner(testCatalog(t))

	gaps := []models.Gap{
		{SkillName: "Quantum Basket Weaving", Priority: models.PriorityP3},
	}

	plan := planner.Build(gaps)

	require.Len(t, plan.Steps, 1)
	assert.Empty(t, plan.Steps[0].RecommendedResources)
	assert.Equal(t, 2.0, plan.Steps[0].EstimatedHours)
	assert.Equal(t, "6 weeks", plan.Steps[0].SuggestedDeadline)
	assert.Equal(t, 2.0, plan.TotalHours)
}

func TestPlannerDefaultHoursForUnestimatedResource(t *testing.T) {
	cat, err := catalog.New([]catalog.Entry{
		{
			Name: "Haskell",
			Resources: []models.Resource{
				{Title: "Learn You a Haskell", Provider: "community"},
				{Title: "Real World Haskell", Provider: "O'Reilly", EstimatedHours: 9},
			},
		},
	})
	require.NoError(t, err)

	plan := NewPlanner(cat).Build([]models.Gap{
		{SkillName: "Haskell", Priority: models.PriorityP2},
	})

	require.Len(t, plan.Steps, 1)
	// Missing estimate counts as 2 hours, the estimated one keeps its 9.
	assert.Equal(t, 11.0, plan.Steps[0].EstimatedHours)
	assert.Equal(t, 11.0, plan.TotalHours)
}

func TestPlannerEmptyGaps(t *testing.T) {
	plan := NewPlanner(testCatalog(t)).Build(nil)

	assert.NotNil(t, plan.Steps)
	assert.Empty(t, plan.Steps)
	assert.Equal(t, 0.0, plan.TotalHours)
}
