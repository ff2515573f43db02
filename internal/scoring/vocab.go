package scoring

// Vocabulary is the immutable configuration data the engine matches posting
// and candidate text against. Injected at construction so tests can run
// with smaller word lists.
type Vocabulary struct {
	// SkillSynonyms maps a canonical skill name to its common variants.
	SkillSynonyms map[string][]string
	// ArchitectureKeywords signal design, testing, and code-quality practice.
	ArchitectureKeywords []string
	// CollaborationKeywords signal cross-functional and leadership practice.
	CollaborationKeywords []string
	// ScalePatterns are regular expressions matching quantified impact
	// language ("1M users", "30% improvement").
	ScalePatterns []string
	// TechTerms are the technologies treated as likely posting requirements.
	TechTerms []string
	// Countries are the location tokens treated as country-level matches.
	Countries []string
}

// DefaultVocabulary returns the standard word lists used in production.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		SkillSynonyms: map[string][]string{
			"javascript":             {"js", "ecmascript", "node", "nodejs", "node.js"},
			"typescript":             {"ts"},
			"python":                 {"py"},
			"objective-c":            {"objective c", "objc"},
			"c++":                    {"cpp", "cplusplus"},
			"c#":                     {"csharp"},
			"swiftui":                {"swift ui"},
			"uikit":                  {"ui kit"},
			"react":                  {"reactjs", "react.js"},
			"vue":                    {"vuejs", "vue.js"},
			"angular":                {"angularjs", "angular.js"},
			"graphql":                {"graph ql"},
			"postgresql":             {"postgres", "psql"},
			"mongodb":                {"mongo"},
			"kubernetes":             {"k8s"},
			"amazon web services":    {"aws"},
			"google cloud platform":  {"gcp"},
			"continuous integration": {"ci/cd", "ci cd"},
		},
		ArchitectureKeywords: []string{
			"clean architecture", "mvvm", "mvc", "viper", "vip",
			"solid", "design patterns", "dependency injection",
			"modular", "modularization", "microservices",
			"tdd", "test driven", "unit test", "xctest", "xctestcase",
			"code review", "pull request", "pr review",
			"refactor", "technical debt", "best practices",
		},
		CollaborationKeywords: []string{
			"cross-functional", "cross functional", "collaborate", "collaboration",
			"partner", "stakeholder", "product manager", "designer",
			"mentor", "mentoring", "lead", "leadership", "team",
			"agile", "scrum", "sprint", "standup",
			"communicate", "communication", "presentation",
		},
		ScalePatterns: []string{
			`\d+[km]?\+?\s*users`,
			`\d+%\s*(improvement|reduction|increase|decrease)`,
			`(millions?|thousands?)\s*(of\s+)?(users|customers|downloads)`,
			`high.?traffic`, `large.?scale`, `enterprise`,
			`performance\s+optimi[sz]`, `crash\s+rate`,
		},
		TechTerms: []string{
			"swift", "objective-c", "swiftui", "uikit", "combine", "rxswift",
			"graphql", "rest", "api", "websocket",
			"python", "javascript", "typescript", "java", "kotlin", "go", "rust",
			"react", "vue", "angular", "django", "flask", "spring",
			"aws", "azure", "gcp", "docker", "kubernetes",
			"postgresql", "mongodb", "redis", "mysql", "sqlite",
			"git", "ci/cd", "jenkins", "github actions",
			"agile", "scrum", "jira",
		},
		Countries: []string{
			"usa", "us", "united states", "uk", "canada", "japan", "germany", "australia",
		},
	}
}
