// internal/analysis/scorer.go
package analysis

import (
	"fmt"
	"sort"

	"skillgap-engine/internal/catalog"
	"skillgap-engine/internal/models"
)

// GapThreshold is the severity above which a requirement becomes a gap.
const GapThreshold = 0.5

// Severity boundaries for priority assignment.
const (
	priorityP1Threshold = 6.0
	priorityP2Threshold = 3.0
)

var importanceWeights = map[string]float64{
	models.ImportanceCritical: 3,
	models.ImportanceHigh:     2,
	models.ImportanceMedium:   1.5,
	models.ImportanceLow:      1,
}

const defaultImportanceWeight = 1.5

// Scorer joins extracted requirements against the user's normalized
// skills and emits severity-scored, prioritized gaps.
type Scorer struct {
	catalog *catalog.Catalog
}

func NewScorer(cat *catalog.Catalog) *Scorer {
	return &Scorer{catalog: cat}
}

// skillLevels builds the lookup map from the user's declared skills.
// Each skill is filed under all of its aliases; first-seen wins so a
// user declaring both "React" and "reactjs" keeps the first level.
func (s *Scorer) skillLevels(userSkills []models.UserSkill) map[string]int {
	levels := make(map[string]int, len(userSkills)*2)
	for _, skill := range userSkills {
		level := ProficiencyToNumber(skill.Proficiency)
		for _, alias := range s.catalog.Aliases(skill.SkillName) {
			key := catalog.Normalize(alias)
			if _, exists := levels[key]; !exists {
				levels[key] = level
			}
		}
	}
	return levels
}

// currentLevel resolves the user's level for a requirement, trying the
// requirement's own name first and then each of its synonyms. Absence
// means level 0.
func (s *Scorer) currentLevel(levels map[string]int, skillName string) int {
	if level, ok := levels[catalog.Normalize(skillName)]; ok {
		return level
	}
	for _, alias := range s.catalog.Aliases(skillName) {
		if level, ok := levels[catalog.Normalize(alias)]; ok {
			return level
		}
	}
	return 0
}

// Score annotates every requirement with the user's current level and
// returns the gaps that crossed the threshold, sorted by severity
// descending. The sort is stable: equal severities keep extraction
// order, which is therefore significant.
func (s *Scorer) Score(requirements []models.Requirement, userSkills []models.UserSkill) ([]models.Requirement, []models.Gap) {
	levels := s.skillLevels(userSkills)

	annotated := make([]models.Requirement, len(requirements))
	var gaps []models.Gap

	for i, req := range requirements {
		current := s.currentLevel(levels, req.SkillName)
		shortfall := req.RequiredLevel - current
		if shortfall < 0 {
			shortfall = 0
		}

		req.CurrentLevel = current
		req.Matched = current > 0
		req.GapLevel = shortfall
		annotated[i] = req

		severity := float64(shortfall) * importanceWeight(req.Importance)
		if severity <= GapThreshold {
			continue
		}

		gaps = append(gaps, models.Gap{
			SkillName:            req.SkillName,
			RequiredLevel:        req.RequiredLevel,
			CurrentLevel:         current,
			SeverityScore:        severity,
			Priority:             priorityFor(severity),
			Summary:              gapSummary(req.SkillName, req.RequiredLevel, current),
			RecommendedResources: s.catalog.Resources(req.SkillName),
		})
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].SeverityScore > gaps[j].SeverityScore
	})

	return annotated, gaps
}

func importanceWeight(importance string) float64 {
	if w, ok := importanceWeights[importance]; ok {
		return w
	}
	return defaultImportanceWeight
}

// priorityFor is a pure function of severity: >=6 P1, >=3 P2, else P3.
func priorityFor(severity float64) string {
	switch {
	case severity >= priorityP1Threshold:
		return models.PriorityP1
	case severity >= priorityP2Threshold:
		return models.PriorityP2
	default:
		return models.PriorityP3
	}
}

func gapSummary(skillName string, required, current int) string {
	return fmt.Sprintf("%s: requires %s (level %d), you are at %s (level %d)",
		skillName,
		NumberToProficiencyLabel(required), required,
		NumberToProficiencyLabel(current), current,
	)
}
