// internal/analysis/extractor_test.go
package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillgap-engine/internal/common/logger"
	"skillgap-engine/internal/models"
)

// fakeCompleter is the in-process stand-in for the generation endpoint.
type fakeCompleter struct {
	response string
	err      error
	prompt   string
	calls    int
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func reqByName(t *testing.T, requirements []models.Requirement, name string) models.Requirement {
	t.Helper()
	for _, r := range requirements {
		if r.SkillName == name {
			return r
		}
	}
	t.Fatalf("requirement %q not found in %+v", name, requirements)
	return models.Requirement{}
}

func TestExtractAIPath(t *testing.T) {
	ai := &fakeCompleter{response: `{
		"requirements": [
			{"skillName": "React", "importance": "CRITICAL", "requiredLevel": 4, "notes": "core framework"},
			{"skillName": "GraphQL", "importance": "", "requiredLevel": "7"},
			{"skillName": "  ", "importance": "high", "requiredLevel": 3}
		],
		"summary": "A senior frontend role."
	}`}

	e := NewExtractor(testCatalog(t), ai, logger.NewNoOpLogger(), 0)
	job := models.Job{
		ID:             "job-1",
		Title:          "Senior Frontend Engineer",
		Company:        "Acme",
		JobDescription: "Build delightful interfaces.",
	}

	requirements, source, summary := e.Extract(context.Background(), job, nil)

	assert.Equal(t, models.SourceAI, source)
	assert.Equal(t, "A senior frontend role.", summary)
	require.Len(t, requirements, 2)

	react := reqByName(t, requirements, "React")
	assert.Equal(t, models.ImportanceCritical, react.Importance)
	assert.Equal(t, 4, react.RequiredLevel)
	assert.Equal(t, models.SourceAI, react.Source)
	assert.Equal(t, "core framework", react.Notes)

	// Blank importance defaults to medium; out-of-range level to 3.
	graphql := reqByName(t, requirements, "GraphQL")
	assert.Equal(t, models.ImportanceMedium, graphql.Importance)
	assert.Equal(t, 3, graphql.RequiredLevel)

	assert.Contains(t, ai.prompt, "Senior Frontend Engineer")
	assert.Contains(t, ai.prompt, "Build delightful interfaces.")
}

func TestExtractFallsBackWhenAIFails(t *testing.T) {
	tests := []struct {
		name string
		ai   *fakeCompleter
	}{
		{"transport error", &fakeCompleter{err: errors.New("connection refused")}},
		{"non-json reply", &fakeCompleter{response: "I am unable to help with that."}},
		{"schema violation", &fakeCompleter{response: `{"requirements": [{"importance": "high"}]}`}},
		{"empty requirements", &fakeCompleter{response: `{"requirements": [], "summary": "nothing"}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExtractor(testCatalog(t), tt.ai, logger.NewNoOpLogger(), 0)
			job := models.Job{
				ID:             "job-2",
				Title:          "Senior Frontend Engineer",
				JobDescription: "We use React and TypeScript. React and TypeScript experience required.",
			}

			requirements, source, summary := e.Extract(context.Background(), job, nil)

			assert.Equal(t, models.SourceHeuristic, source)
			assert.Empty(t, summary)
			assert.NotEmpty(t, requirements)
			assert.Equal(t, 1, tt.ai.calls)
		})
	}
}

func TestHeuristicExtraction(t *testing.T) {
	e := NewExtractor(testCatalog(t), nil, logger.NewNoOpLogger(), 0)
	job := models.Job{
		ID:             "job-3",
		Title:          "Senior Frontend Engineer",
		JobDescription: "We build rich interfaces with React and TypeScript. React and TypeScript experience required.",
	}

	requirements, source, _ := e.Extract(context.Background(), job, nil)

	assert.Equal(t, models.SourceHeuristic, source)

	// Two mentions each -> high importance; senior title -> level 4.
	react := reqByName(t, requirements, "React")
	assert.Equal(t, models.ImportanceHigh, react.Importance)
	assert.Equal(t, 4, react.RequiredLevel)
	assert.Equal(t, models.SourceHeuristic, react.Source)

	ts := reqByName(t, requirements, "TypeScript")
	assert.Equal(t, models.ImportanceHigh, ts.Importance)
	assert.Equal(t, 4, ts.RequiredLevel)

	// Thin heuristic results get topped up from the frontend template.
	assert.GreaterOrEqual(t, len(requirements), DefaultMinRequirements)
	css := reqByName(t, requirements, "CSS")
	assert.Equal(t, models.SourceFallback, css.Source)
}

func TestHeuristicImportanceTiers(t *testing.T) {
	e := NewExtractor(testCatalog(t), nil, logger.NewNoOpLogger(), 0)
	job := models.Job{
		ID:    "job-4",
		Title: "Platform Engineer",
		JobDescription: "Docker Docker Docker everywhere. Kubernetes and k8s clusters. " +
			"Some Python scripting.",
	}

	requirements, _, _ := e.Extract(context.Background(), job, nil)

	// Three mentions -> critical.
	assert.Equal(t, models.ImportanceCritical, reqByName(t, requirements, "Docker").Importance)
	// Canonical name plus the k8s synonym count once each -> high.
	assert.Equal(t, models.ImportanceHigh, reqByName(t, requirements, "Kubernetes").Importance)
	// Single mention -> medium.
	assert.Equal(t, models.ImportanceMedium, reqByName(t, requirements, "Python").Importance)
	// Non-senior title keeps the default level.
	assert.Equal(t, 3, reqByName(t, requirements, "Docker").RequiredLevel)
}

func TestHeuristicMatchesMultiWordSkills(t *testing.T) {
	e := NewExtractor(testCatalog(t), nil, logger.NewNoOpLogger(), 0)
	job := models.Job{
		ID:             "job-5",
		Title:          "Engineering Manager",
		JobDescription: "Strong stakeholder management and product strategy background wanted.",
	}

	requirements, _, _ := e.Extract(context.Background(), job, nil)

	reqByName(t, requirements, "Stakeholder Management")
	reqByName(t, requirements, "Product Strategy")
}

func TestTemplateFallbackByDomain(t *testing.T) {
	tests := []struct {
		name      string
		job       models.Job
		mustHave  string
		critLevel int
		count     int
	}{
		{
			name:      "frontend title",
			job:       models.Job{Title: "Frontend Developer"},
			mustHave:  "React",
			critLevel: 4,
			count:     5,
		},
		{
			name:      "fullstack industry",
			job:       models.Job{Title: "Software Engineer", Industry: "Backend Platforms"},
			mustHave:  "Node.js",
			critLevel: 4,
			count:     5,
		},
		{
			name:      "data title",
			job:       models.Job{Title: "Data Scientist"},
			mustHave:  "Python",
			critLevel: 4,
			count:     5,
		},
		{
			name:      "product title",
			job:       models.Job{Title: "Product Manager"},
			mustHave:  "Product Strategy",
			critLevel: 4,
			count:     5,
		},
		{
			name:      "generic otherwise",
			job:       models.Job{Title: "Registered Nurse"},
			mustHave:  "Communication",
			critLevel: 3,
			count:     4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExtractor(testCatalog(t), nil, logger.NewNoOpLogger(), 0)

			// No description, so both AI and heuristic strategies yield
			// nothing and the template carries the whole result.
			requirements, source, _ := e.Extract(context.Background(), tt.job, nil)

			assert.Equal(t, models.SourceFallback, source)
			require.Len(t, requirements, tt.count)

			req := reqByName(t, requirements, tt.mustHave)
			assert.Equal(t, tt.critLevel, req.RequiredLevel)
			assert.Equal(t, models.SourceFallback, req.Source)
		})
	}
}

func TestSupplementSkipsExistingSkills(t *testing.T) {
	e := NewExtractor(testCatalog(t), nil, logger.NewNoOpLogger(), 0)
	job := models.Job{
		ID:             "job-6",
		Title:          "Frontend Engineer",
		JobDescription: "Must know reactjs well.",
	}

	requirements, _, _ := e.Extract(context.Background(), job, nil)

	// The heuristic found reactjs; the template must not add React again.
	var reactNames []string
	for _, r := range requirements {
		key := r.SkillName
		if key == "React" || key == "reactjs" {
			reactNames = append(reactNames, key)
		}
	}
	assert.Len(t, reactNames, 1)
	reqByName(t, requirements, "TypeScript")
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"React, TypeScript!", []string{"react", "typescript"}},
		{"We ship node.js daily.", []string{"we", "ship", "node.js", "daily"}},
		{"C++ and C# welcome", []string{"c++", "and", "c#", "welcome"}},
		{"  ", nil},
	}

	for _, tt := range tests {
		words := tokenize(tt.input)
		if tt.expected == nil {
			assert.Empty(t, words)
			continue
		}
		assert.Equal(t, tt.expected, words)
	}
}

func TestBuildTokenIndexCountsNGrams(t *testing.T) {
	index := buildTokenIndex("machine learning and machine learning again")

	assert.Equal(t, 2, index["machine"])
	assert.Equal(t, 2, index["machine learning"])
	assert.Equal(t, 1, index["learning and machine"])
}

func TestCoerceLevel(t *testing.T) {
	tests := []struct {
		value    interface{}
		expected int
	}{
		{float64(4), 4},
		{2, 2},
		{"5", 5},
		{" 1 ", 1},
		{float64(0), 3},
		{"9", 3},
		{"not a number", 3},
		{nil, 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, coerceLevel(tt.value), "value %v", tt.value)
	}
}
