package parsing

import (
	"regexp"
	"strings"
)

// dictionaryEntry pairs a lowercase token with the display name it stands for.
type dictionaryEntry struct {
	key     string
	display string
}

// skillDictionary is checked in order; output follows the order of first match.
var skillDictionary = []dictionaryEntry{
	{"java", "Java"},
	{"python", "Python"},
	{"c++", "C++"},
	{"cpp", "C++"},
	{"javascript", "JavaScript"},
	{"js", "JavaScript"},
	{"react", "React"},
	{"react.js", "React"},
	{"reactjs", "React"},
	{"node", "Node.js"},
	{"node.js", "Node.js"},
	{"nodejs", "Node.js"},
	{"express", "Express"},
	{"express.js", "Express"},
	{"sql", "SQL"},
	{"mysql", "MySQL"},
	{"postgresql", "PostgreSQL"},
	{"postgres", "PostgreSQL"},
	{"mongodb", "MongoDB"},
	{"mongo", "MongoDB"},
	{"html", "HTML"},
	{"html5", "HTML"},
	{"css", "CSS"},
	{"css3", "CSS"},
	{"docker", "Docker"},
	{"git", "Git"},
	{"aws", "AWS"},
	{"typescript", "TypeScript"},
	{"ts", "TypeScript"},
	{"angular", "Angular"},
	{"vue", "Vue.js"},
	{"vue.js", "Vue.js"},
	{"django", "Django"},
	{"flask", "Flask"},
	{"spring", "Spring"},
	{"spring boot", "Spring Boot"},
	{"kubernetes", "Kubernetes"},
	{"k8s", "Kubernetes"},
	{"jenkins", "Jenkins"},
	{"linux", "Linux"},
	{"unix", "Unix"},
	{"azure", "Azure"},
	{"gcp", "Google Cloud"},
	{"graphql", "GraphQL"},
	{"rest", "REST API"},
	{"api", "REST API"},
}

var (
	reSkillNoise = regexp.MustCompile(`[^\w\s+.#]`)
	reSpaces     = regexp.MustCompile(`\s+`)
)

// ExtractSkills finds dictionary skills that appear as whole space-delimited tokens in text.
// Results are lowercase display names, deduplicated in first-match order.
func ExtractSkills(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	cleaned := strings.ToLower(text)
	cleaned = reSkillNoise.ReplaceAllString(cleaned, " ")
	cleaned = reSpaces.ReplaceAllString(cleaned, " ")
	padded := " " + cleaned + " "

	found := make([]string, 0, 8)
	seen := make(map[string]bool)
	for _, entry := range skillDictionary {
		if !strings.Contains(padded, " "+entry.key+" ") {
			continue
		}
		skill := strings.ToLower(entry.display)
		if seen[skill] {
			continue
		}
		seen[skill] = true
		found = append(found, skill)
	}
	return found
}
