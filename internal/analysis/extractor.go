// internal/analysis/extractor.go
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"skillgap-engine/internal/catalog"
	stderrors "skillgap-engine/internal/common/errors"
	"skillgap-engine/internal/common/logger"
	"skillgap-engine/internal/common/metrics"
	"skillgap-engine/internal/genai"
	"skillgap-engine/internal/models"
)

// DefaultMinRequirements is the floor below which heuristic results get
// supplemented from a domain template.
const DefaultMinRequirements = 4

const defaultRequiredLevel = 3

var seniorTitleRe = regexp.MustCompile(`(?i)principal|lead|staff|senior`)

const extractionPrompt = `You are a technical recruiter deriving the skill requirements implied by a job posting.

JOB TITLE: %s
COMPANY: %s
INDUSTRY: %s

JOB DESCRIPTION:
%s

CANDIDATE SKILL VOCABULARY (prefer these exact names where they apply):
%s

Identify the skills this job requires. For each, rate importance as one of "critical", "high", "medium", "low" and requiredLevel as an integer 1-5.

Return a JSON object with this exact structure:
{
  "requirements": [
    {"skillName": "<name>", "importance": "<critical|high|medium|low>", "requiredLevel": <1-5>, "notes": "<why>"}
  ],
  "summary": "<2-3 sentence summary of what the role demands>"
}

Return ONLY the JSON object, no markdown, no explanation.`

// Extractor derives a job's requirement list. Strategies run in order
// (AI, heuristic token matching, domain templates) and the first
// non-empty result wins, so each is testable in isolation.
type Extractor struct {
	catalog         *catalog.Catalog
	ai              genai.Completer
	logger          logger.Logger
	minRequirements int
}

func NewExtractor(cat *catalog.Catalog, ai genai.Completer, log logger.Logger, minRequirements int) *Extractor {
	if minRequirements <= 0 {
		minRequirements = DefaultMinRequirements
	}
	return &Extractor{
		catalog:         cat,
		ai:              ai,
		logger:          log.WithFields(map[string]interface{}{"component": "extractor"}),
		minRequirements: minRequirements,
	}
}

// Extract never fails. AI-path errors are logged as warnings and trigger
// the heuristic strategy; the template fallback guarantees a non-empty
// result for any job with a title. The returned source is the strategy
// that produced the bulk of the list.
func (e *Extractor) Extract(ctx context.Context, job models.Job, userSkills []models.UserSkill) ([]models.Requirement, string, string) {
	vocab := e.vocabulary(userSkills)

	requirements, summary, err := e.aiExtract(ctx, job, vocab)
	if err == nil {
		e.logger.Info("requirements extracted via AI", map[string]interface{}{
			"jobId": job.ID,
			"count": len(requirements),
		})
		return requirements, models.SourceAI, summary
	}

	reason := "error"
	if std, ok := err.(*stderrors.StandardError); ok {
		reason = strings.ToLower(string(std.Code))
	}
	metrics.ExtractionFallbacks.WithLabelValues(reason).Inc()
	e.logger.Warn("AI extraction unavailable, using heuristic strategy", map[string]interface{}{
		"jobId":  job.ID,
		"reason": reason,
		"error":  err.Error(),
	})

	requirements = e.heuristicExtract(job, vocab)
	source := models.SourceHeuristic
	if len(requirements) == 0 {
		source = models.SourceFallback
	}

	if len(requirements) < e.minRequirements {
		requirements = e.supplementFromTemplate(job, requirements)
	}

	return requirements, source, ""
}

// vocabulary is the union of the user's skill names and every catalog
// skill that has learning resources, deduplicated by canonical name.
func (e *Extractor) vocabulary(userSkills []models.UserSkill) []string {
	seen := make(map[string]bool)
	var vocab []string

	add := func(name string) {
		key := catalog.Normalize(name)
		if canonical, ok := e.catalog.Canonical(name); ok {
			key = catalog.Normalize(canonical)
		}
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		vocab = append(vocab, name)
	}

	for _, s := range userSkills {
		add(s.SkillName)
	}
	for _, name := range e.catalog.ResourceSkillNames() {
		add(name)
	}

	return vocab
}

// --- AI strategy ---

type aiRequirement struct {
	SkillName     string      `json:"skillName"`
	Importance    string      `json:"importance"`
	RequiredLevel interface{} `json:"requiredLevel"`
	Notes         string      `json:"notes"`
}

type aiPayload struct {
	Requirements []aiRequirement `json:"requirements"`
	Summary      string          `json:"summary"`
}

func (e *Extractor) aiExtract(ctx context.Context, job models.Job, vocab []string) ([]models.Requirement, string, error) {
	if e.ai == nil {
		return nil, "", &stderrors.StandardError{
			Code:    stderrors.ErrCodeExtractionAIDisabled,
			Message: "no AI transport configured",
		}
	}
	if strings.TrimSpace(job.JobDescription) == "" {
		return nil, "", &stderrors.StandardError{
			Code:    stderrors.ErrCodeExtractionAIDisabled,
			Message: "job description is empty",
		}
	}

	prompt := fmt.Sprintf(extractionPrompt,
		job.Title, job.Company, job.Domain(), job.JobDescription,
		strings.Join(vocab, ", "),
	)

	raw, err := e.ai.Complete(ctx, prompt)
	if err != nil {
		return nil, "", err
	}

	doc, err := genai.ExtractJSON(raw)
	if err != nil {
		return nil, "", err
	}
	if err := genai.ValidateRequirementsPayload(doc); err != nil {
		return nil, "", err
	}

	var payload aiPayload
	if err := json.Unmarshal([]byte(doc), &payload); err != nil {
		return nil, "", stderrors.NewExtractionAIBadJSONError(err.Error())
	}
	if len(payload.Requirements) == 0 {
		return nil, "", stderrors.NewExtractionAIEmptyError()
	}

	requirements := make([]models.Requirement, 0, len(payload.Requirements))
	for _, r := range payload.Requirements {
		name := strings.TrimSpace(r.SkillName)
		if name == "" {
			continue
		}
		requirements = append(requirements, models.Requirement{
			SkillName:     name,
			Importance:    normalizeImportance(r.Importance),
			RequiredLevel: coerceLevel(r.RequiredLevel),
			Source:        models.SourceAI,
			Notes:         r.Notes,
		})
	}
	if len(requirements) == 0 {
		return nil, "", stderrors.NewExtractionAIEmptyError()
	}

	return requirements, payload.Summary, nil
}

func normalizeImportance(importance string) string {
	importance = strings.ToLower(strings.TrimSpace(importance))
	switch importance {
	case models.ImportanceCritical, models.ImportanceHigh, models.ImportanceMedium, models.ImportanceLow:
		return importance
	case "":
		return models.ImportanceMedium
	}
	return importance
}

// coerceLevel turns whatever the model returned into an integer in
// [1,5], defaulting to 3.
func coerceLevel(v interface{}) int {
	level := defaultRequiredLevel
	switch n := v.(type) {
	case float64:
		level = int(n)
	case int:
		level = n
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			level = parsed
		}
	}
	if level < 1 || level > 5 {
		return defaultRequiredLevel
	}
	return level
}

// --- Heuristic strategy ---

// heuristicExtract scans the job text for catalog/user skill aliases.
// The index holds lower-cased words, bigrams, and trigrams with their
// occurrence counts, so a skill mentioned twice scores 2.
func (e *Extractor) heuristicExtract(job models.Job, vocab []string) []models.Requirement {
	index := buildTokenIndex(job.JobDescription + " " + job.Title + " " + job.Domain())
	if len(index) == 0 {
		return nil
	}

	requiredLevel := defaultRequiredLevel
	if seniorTitleRe.MatchString(job.Title) {
		requiredLevel = 4
	}

	seen := make(map[string]bool)
	var requirements []models.Requirement

	for _, skill := range vocab {
		canonicalKey := catalog.Normalize(skill)
		if canonical, ok := e.catalog.Canonical(skill); ok {
			canonicalKey = catalog.Normalize(canonical)
		}
		if seen[canonicalKey] {
			continue
		}

		occurrences := 0
		counted := make(map[string]bool)
		for _, alias := range e.catalog.Aliases(skill) {
			key := catalog.Normalize(alias)
			if counted[key] {
				continue
			}
			counted[key] = true
			occurrences += index[key]
		}
		if occurrences == 0 {
			continue
		}
		seen[canonicalKey] = true

		importance := models.ImportanceMedium
		switch {
		case occurrences >= 3:
			importance = models.ImportanceCritical
		case occurrences == 2:
			importance = models.ImportanceHigh
		}

		requirements = append(requirements, models.Requirement{
			SkillName:     skill,
			Importance:    importance,
			RequiredLevel: requiredLevel,
			Source:        models.SourceHeuristic,
		})
	}

	return requirements
}

// buildTokenIndex lower-cases the text and counts every word, bigram,
// and trigram.
func buildTokenIndex(text string) map[string]int {
	words := tokenize(text)
	index := make(map[string]int, len(words)*3)

	for i, w := range words {
		index[w]++
		if i+1 < len(words) {
			index[w+" "+words[i+1]]++
		}
		if i+2 < len(words) {
			index[w+" "+words[i+1]+" "+words[i+2]]++
		}
	}
	return index
}

func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		// Keep +, #, . so tokens like c++, c# and node.js survive.
		w := strings.Trim(f, ",;:()[]{}!?\"'`")
		w = strings.TrimSuffix(w, ".")
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

// --- Template fallback ---

type templateEntry struct {
	skillName     string
	importance    string
	requiredLevel int
}

type domainTemplate struct {
	pattern *regexp.Regexp
	entries []templateEntry
}

// domainTemplates in priority order; the first pattern matching title or
// industry wins. The generic set is the terminal default.
var domainTemplates = []domainTemplate{
	{
		pattern: regexp.MustCompile(`(?i)front[ -]?end|react|\bui\b`),
		entries: []templateEntry{
			{"React", models.ImportanceCritical, 4},
			{"TypeScript", models.ImportanceHigh, 3},
			{"CSS", models.ImportanceHigh, 3},
			{"Automated Testing", models.ImportanceMedium, 3},
			{"Accessibility", models.ImportanceMedium, 2},
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)full[ -]?stack|back[ -]?end|node`),
		entries: []templateEntry{
			{"Node.js", models.ImportanceCritical, 4},
			{"Express", models.ImportanceHigh, 3},
			{"SQL", models.ImportanceHigh, 3},
			{"API Design", models.ImportanceMedium, 3},
			{"Cloud Architecture", models.ImportanceMedium, 2},
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)data|analytics|machine learning|\bml\b`),
		entries: []templateEntry{
			{"Python", models.ImportanceCritical, 4},
			{"SQL", models.ImportanceHigh, 3},
			{"Data Visualization", models.ImportanceHigh, 3},
			{"Machine Learning", models.ImportanceMedium, 3},
			{"Statistics", models.ImportanceMedium, 3},
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)product|manager`),
		entries: []templateEntry{
			{"Product Strategy", models.ImportanceCritical, 4},
			{"Stakeholder Management", models.ImportanceHigh, 3},
			{"Roadmapping", models.ImportanceHigh, 3},
			{"Experimentation", models.ImportanceMedium, 3},
			{"Analytics", models.ImportanceMedium, 3},
		},
	},
}

var genericTemplate = []templateEntry{
	{"Communication", models.ImportanceHigh, 3},
	{"Collaboration", models.ImportanceHigh, 3},
	{"Problem Solving", models.ImportanceMedium, 3},
	{"Time Management", models.ImportanceMedium, 2},
}

// supplementFromTemplate tops up a thin heuristic result with the
// matching domain template, skipping skills already present. The final
// list is never shorter than the template's size.
func (e *Extractor) supplementFromTemplate(job models.Job, existing []models.Requirement) []models.Requirement {
	entries := genericTemplate
	haystack := job.Title + " " + job.Domain()
	for _, tmpl := range domainTemplates {
		if tmpl.pattern.MatchString(haystack) {
			entries = tmpl.entries
			break
		}
	}

	present := make(map[string]bool, len(existing))
	for _, r := range existing {
		key := catalog.Normalize(r.SkillName)
		if canonical, ok := e.catalog.Canonical(r.SkillName); ok {
			key = catalog.Normalize(canonical)
		}
		present[key] = true
	}

	out := existing
	for _, entry := range entries {
		key := catalog.Normalize(entry.skillName)
		if canonical, ok := e.catalog.Canonical(entry.skillName); ok {
			key = catalog.Normalize(canonical)
		}
		if present[key] {
			continue
		}
		present[key] = true
		out = append(out, models.Requirement{
			SkillName:     entry.skillName,
			Importance:    entry.importance,
			RequiredLevel: entry.requiredLevel,
			Source:        models.SourceFallback,
		})
	}

	e.logger.Info("requirement list supplemented from domain template", map[string]interface{}{
		"jobId": job.ID,
		"count": len(out),
	})

	return out
}
