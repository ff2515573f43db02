package sources

import "strings"

// techStackTerms are the technologies adapters tag onto postings.
var techStackTerms = []string{
	"python", "javascript", "java", "swift", "kotlin", "go", "rust",
	"react", "vue", "angular", "django", "flask", "spring",
	"aws", "azure", "gcp", "docker", "kubernetes",
	"postgresql", "mongodb", "redis", "mysql",
	"swiftui", "uikit", "combine", "rxswift",
}

// ExtractTechStack scans a posting description for known technologies.
func ExtractTechStack(text string) []string {
	textLower := strings.ToLower(text)

	var stack []string
	for _, tech := range techStackTerms {
		if strings.Contains(textLower, tech) {
			stack = append(stack, titleCase(tech))
		}
	}
	return stack
}

// titleCase upper-cases the first letter only; tech names are otherwise
// kept verbatim.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
