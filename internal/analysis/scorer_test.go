// internal/analysis/scorer_test.go
package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillgap-engine/internal/catalog"
	"skillgap-engine/internal/models"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return cat
}

func TestPriorityFor(t *testing.T) {
	tests := []struct {
		severity float64
		expected string
	}{
		{9, models.PriorityP1},
		{6.0, models.PriorityP1},
		{5.99, models.PriorityP2},
		{4.5, models.PriorityP2},
		{3.0, models.PriorityP2},
		{2.99, models.PriorityP3},
		{1, models.PriorityP3},
		{0, models.PriorityP3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, priorityFor(tt.severity), "severity %v", tt.severity)
	}
}

func TestImportanceWeight(t *testing.T) {
	tests := []struct {
		importance string
		expected   float64
	}{
		{models.ImportanceCritical, 3},
		{models.ImportanceHigh, 2},
		{models.ImportanceMedium, 1.5},
		{models.ImportanceLow, 1},
		{"unheard-of", 1.5},
		{"", 1.5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, importanceWeight(tt.importance), "importance %q", tt.importance)
	}
}

func TestScorerSeverityAndPriority(t *testing.T) {
	scorer := NewScorer(testCatalog(t))

	requirements := []models.Requirement{
		{SkillName: "React", RequiredLevel: 4, Importance: models.ImportanceHigh},
		{SkillName: "TypeScript", RequiredLevel: 4, Importance: models.ImportanceHigh},
	}
	userSkills := []models.UserSkill{
		{SkillName: "React", Proficiency: "Intermediate"},
	}

	annotated, gaps := scorer.Score(requirements, userSkills)

	require.Len(t, annotated, 2)
	assert.Equal(t, 2, annotated[0].CurrentLevel)
	assert.True(t, annotated[0].Matched)
	assert.Equal(t, 2, annotated[0].GapLevel)
	assert.Equal(t, 0, annotated[1].CurrentLevel)
	assert.False(t, annotated[1].Matched)

	require.Len(t, gaps, 2)
	// TypeScript: shortfall 4 * weight 2 = 8 outranks React: 2 * 2 = 4.
	assert.Equal(t, "TypeScript", gaps[0].SkillName)
	assert.Equal(t, 8.0, gaps[0].SeverityScore)
	assert.Equal(t, models.PriorityP1, gaps[0].Priority)
	assert.Equal(t, "React", gaps[1].SkillName)
	assert.Equal(t, 4.0, gaps[1].SeverityScore)
	assert.Equal(t, models.PriorityP2, gaps[1].Priority)
}

func TestScorerSynonymMatching(t *testing.T) {
	scorer := NewScorer(testCatalog(t))

	requirements := []models.Requirement{
		{SkillName: "React", RequiredLevel: 3, Importance: models.ImportanceCritical},
	}
	// User declared the synonym, the requirement used the canonical name.
	userSkills := []models.UserSkill{
		{SkillName: "reactjs", Proficiency: "Advanced"},
	}

	annotated, gaps := scorer.Score(requirements, userSkills)

	require.Len(t, annotated, 1)
	assert.Equal(t, 3, annotated[0].CurrentLevel)
	assert.Empty(t, gaps)
}

func TestScorerNoGapWhenLevelMet(t *testing.T) {
	scorer := NewScorer(testCatalog(t))

	requirements := []models.Requirement{
		{SkillName: "Go", RequiredLevel: 3, Importance: models.ImportanceCritical},
		{SkillName: "SQL", RequiredLevel: 2, Importance: models.ImportanceHigh},
	}
	userSkills := []models.UserSkill{
		{SkillName: "Go", Proficiency: "Expert"},
		{SkillName: "SQL", Proficiency: 2},
	}

	annotated, gaps := scorer.Score(requirements, userSkills)

	require.Len(t, annotated, 2)
	assert.Empty(t, gaps)
	// Exceeding the requirement never produces a negative shortfall.
	assert.Equal(t, 0, annotated[0].GapLevel)
}

func TestScorerStableOrderOnTies(t *testing.T) {
	scorer := NewScorer(testCatalog(t))

	// Both 2 * 1.5 = 3.0: extraction order must be preserved.
	requirements := []models.Requirement{
		{SkillName: "Docker", RequiredLevel: 2, Importance: models.ImportanceMedium},
		{SkillName: "Kubernetes", RequiredLevel: 2, Importance: models.ImportanceMedium},
	}

	_, gaps := scorer.Score(requirements, nil)

	require.Len(t, gaps, 2)
	assert.Equal(t, "Docker", gaps[0].SkillName)
	assert.Equal(t, "Kubernetes", gaps[1].SkillName)
	assert.Equal(t, gaps[0].SeverityScore, gaps[1].SeverityScore)
}

func TestScorerAttachesCatalogResources(t *testing.T) {
	scorer := NewScorer(testCatalog(t))

	requirements := []models.Requirement{
		{SkillName: "React", RequiredLevel: 4, Importance: models.ImportanceCritical},
	}

	_, gaps := scorer.Score(requirements, nil)

	require.Len(t, gaps, 1)
	assert.NotEmpty(t, gaps[0].RecommendedResources)
	assert.Contains(t, gaps[0].Summary, "React")
	assert.Contains(t, gaps[0].Summary, "Expert")
	assert.Contains(t, gaps[0].Summary, "None")
}

func TestScorerFirstDeclarationWins(t *testing.T) {
	scorer := NewScorer(testCatalog(t))

	userSkills := []models.UserSkill{
		{SkillName: "React", Proficiency: "Expert"},
		{SkillName: "reactjs", Proficiency: "Beginner"},
	}
	requirements := []models.Requirement{
		{SkillName: "React", RequiredLevel: 4, Importance: models.ImportanceHigh},
	}

	annotated, gaps := scorer.Score(requirements, userSkills)

	assert.Equal(t, 4, annotated[0].CurrentLevel)
	assert.Empty(t, gaps)
}
