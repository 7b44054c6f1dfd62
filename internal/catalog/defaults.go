// internal/catalog/defaults.go
package catalog

import "skillgap-engine/internal/models"

// defaultEntries is the built-in catalog used when no catalog file is
// configured. It covers the skills of every fallback template so a
// template requirement always resolves to at least one resource.
var defaultEntries = []Entry{
	{
		Name:     "React",
		Synonyms: []string{"reactjs", "react.js"},
		Resources: []models.Resource{
			{Title: "React Official Tutorial", Provider: "react.dev", EstimatedHours: 6},
			{Title: "Epic React Patterns", Provider: "EpicReact", EstimatedHours: 12},
		},
	},
	{
		Name:     "TypeScript",
		Synonyms: []string{"ts"},
		Resources: []models.Resource{
			{Title: "TypeScript Handbook", Provider: "typescriptlang.org", EstimatedHours: 8},
		},
	},
	{
		Name:     "CSS",
		Synonyms: []string{"css3", "styling"},
		Resources: []models.Resource{
			{Title: "CSS Grid & Flexbox Deep Dive", Provider: "MDN", EstimatedHours: 5},
		},
	},
	{
		Name:     "Automated Testing",
		Synonyms: []string{"testing", "unit testing", "test automation"},
		Resources: []models.Resource{
			{Title: "Testing JavaScript Applications", Provider: "Manning", EstimatedHours: 10},
		},
	},
	{
		Name:     "Accessibility",
		Synonyms: []string{"a11y", "wcag"},
		Resources: []models.Resource{
			{Title: "Web Accessibility Fundamentals", Provider: "W3C", EstimatedHours: 4},
		},
	},
	{
		Name:     "JavaScript",
		Synonyms: []string{"js", "ecmascript", "es6"},
		Resources: []models.Resource{
			{Title: "You Don't Know JS Yet", Provider: "GitHub", EstimatedHours: 14},
		},
	},
	{
		Name:     "Node.js",
		Synonyms: []string{"node", "nodejs"},
		Resources: []models.Resource{
			{Title: "Node.js Design Patterns", Provider: "Packt", EstimatedHours: 12},
		},
	},
	{
		Name:     "Express",
		Synonyms: []string{"expressjs", "express.js"},
		Resources: []models.Resource{
			{Title: "Building REST APIs with Express", Provider: "Udemy", EstimatedHours: 6},
		},
	},
	{
		Name:     "SQL",
		Synonyms: []string{"postgresql", "postgres", "mysql"},
		Resources: []models.Resource{
			{Title: "SQL for Application Developers", Provider: "Mode", EstimatedHours: 8},
		},
	},
	{
		Name:     "API Design",
		Synonyms: []string{"rest api", "api development", "apis"},
		Resources: []models.Resource{
			{Title: "Designing Web APIs", Provider: "O'Reilly", EstimatedHours: 7},
		},
	},
	{
		Name:     "Cloud Architecture",
		Synonyms: []string{"aws", "cloud", "azure", "gcp"},
		Resources: []models.Resource{
			{Title: "AWS Well-Architected Framework", Provider: "AWS", EstimatedHours: 9},
		},
	},
	{
		Name:     "Go",
		Synonyms: []string{"golang"},
		Resources: []models.Resource{
			{Title: "The Go Programming Language", Provider: "Addison-Wesley", EstimatedHours: 16},
		},
	},
	{
		Name:     "Python",
		Synonyms: []string{"python3", "py"},
		Resources: []models.Resource{
			{Title: "Python Crash Course", Provider: "No Starch", EstimatedHours: 12},
		},
	},
	{
		Name:     "Data Visualization",
		Synonyms: []string{"dataviz", "dashboards", "tableau"},
		Resources: []models.Resource{
			{Title: "Storytelling with Data", Provider: "Wiley", EstimatedHours: 6},
		},
	},
	{
		Name:     "Machine Learning",
		Synonyms: []string{"ml", "deep learning"},
		Resources: []models.Resource{
			{Title: "Machine Learning Specialization", Provider: "Coursera", EstimatedHours: 30},
		},
	},
	{
		Name:     "Statistics",
		Synonyms: []string{"statistical analysis", "stats"},
		Resources: []models.Resource{
			{Title: "Practical Statistics for Data Scientists", Provider: "O'Reilly", EstimatedHours: 10},
		},
	},
	{
		Name:     "Docker",
		Synonyms: []string{"containers", "containerization"},
		Resources: []models.Resource{
			{Title: "Docker Deep Dive", Provider: "Leanpub", EstimatedHours: 8},
		},
	},
	{
		Name:     "Kubernetes",
		Synonyms: []string{"k8s"},
		Resources: []models.Resource{
			{Title: "Kubernetes Up & Running", Provider: "O'Reilly", EstimatedHours: 12},
		},
	},
	{
		Name:     "Product Strategy",
		Synonyms: []string{"product vision", "product planning"},
		Resources: []models.Resource{
			{Title: "Inspired: How to Create Tech Products", Provider: "SVPG", EstimatedHours: 8},
		},
	},
	{
		Name:     "Stakeholder Management",
		Synonyms: []string{"stakeholder communication"},
		Resources: []models.Resource{
			{Title: "Influence Without Authority", Provider: "Wiley", EstimatedHours: 5},
		},
	},
	{
		Name:     "Roadmapping",
		Synonyms: []string{"product roadmap", "roadmap planning"},
		Resources: []models.Resource{
			{Title: "Product Roadmaps Relaunched", Provider: "O'Reilly", EstimatedHours: 6},
		},
	},
	{
		Name:     "Experimentation",
		Synonyms: []string{"ab testing", "a/b testing"},
		Resources: []models.Resource{
			{Title: "Trustworthy Online Controlled Experiments", Provider: "Cambridge", EstimatedHours: 10},
		},
	},
	{
		Name:     "Analytics",
		Synonyms: []string{"product analytics", "data analysis"},
		Resources: []models.Resource{
			{Title: "Lean Analytics", Provider: "O'Reilly", EstimatedHours: 7},
		},
	},
	{
		Name:     "Communication",
		Synonyms: []string{"written communication", "presentation"},
		Resources: []models.Resource{
			{Title: "Crucial Conversations", Provider: "McGraw-Hill", EstimatedHours: 5},
		},
	},
	{
		Name:     "Collaboration",
		Synonyms: []string{"teamwork", "cross-functional collaboration"},
		Resources: []models.Resource{
			{Title: "The Five Dysfunctions of a Team", Provider: "Jossey-Bass", EstimatedHours: 4},
		},
	},
	{
		Name:     "Problem Solving",
		Synonyms: []string{"critical thinking"},
		Resources: []models.Resource{
			{Title: "Bulletproof Problem Solving", Provider: "Wiley", EstimatedHours: 6},
		},
	},
	{
		Name:     "Time Management",
		Synonyms: []string{"prioritization"},
		Resources: []models.Resource{
			{Title: "Deep Work", Provider: "Grand Central", EstimatedHours: 4},
		},
	},
	{
		Name:     "Leadership",
		Synonyms: []string{"people management", "team leadership"},
		Resources: []models.Resource{
			{Title: "The Manager's Path", Provider: "O'Reilly", EstimatedHours: 8},
		},
	},
}
